package builder

import (
	"testing"

	"github.com/inkwell-labs/mathlayout/pkg/ast"
	"github.com/inkwell-labs/mathlayout/pkg/mathbox"
	"github.com/inkwell-labs/mathlayout/pkg/options"
)

func atom(kind ast.Kind, text string) *ast.Node {
	return &ast.Node{Kind: kind, Mode: ast.Math, Text: text}
}

func TestBuildAtomProducesNonZeroWidth(t *testing.T) {
	b := New()
	n := atom(ast.KindOrd, "x")
	e, err := b.Build(n, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Size().Width <= 0 {
		t.Fatalf("width should be positive, got %v", e.Size().Width)
	}
}

func TestBuildListInsertsSpacingBetweenOrdAndBin(t *testing.T) {
	b := New()
	list := &ast.Node{Kind: ast.KindOrdGroup, Children: []*ast.Node{
		atom(ast.KindOrd, "x"),
		atom(ast.KindBin, "+"),
		atom(ast.KindOrd, "y"),
	}}
	e, err := b.Build(list, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hbox, ok := e.(*mathbox.HBox)
	if !ok {
		t.Fatalf("expected *mathbox.HBox, got %T", e)
	}
	// three atoms + two inter-atom kerns = 5 children
	if len(hbox.Children) != 5 {
		t.Fatalf("expected 5 children (atoms + kerns), got %d", len(hbox.Children))
	}
}

func TestBuildListDegradesLeadingBinToOrd(t *testing.T) {
	b := New()
	// a leading "+" (unary) must not get the wide bin gap against what follows.
	list := &ast.Node{Kind: ast.KindOrdGroup, Children: []*ast.Node{
		atom(ast.KindBin, "+"),
		atom(ast.KindOrd, "y"),
	}}
	e, err := b.Build(list, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hbox := e.(*mathbox.HBox)
	// degraded bin->ord against ord gets no spacing, so just the two atoms.
	if len(hbox.Children) != 2 {
		t.Fatalf("expected 2 children (no spacing kern for degraded leading bin), got %d", len(hbox.Children))
	}
}

func TestBuildFractionProducesTallerBoxThanOperandsAlone(t *testing.T) {
	b := New()
	n := &ast.Node{
		Kind:        ast.KindFraction,
		Numerator:   atom(ast.KindOrd, "1"),
		Denominator: atom(ast.KindOrd, "2"),
		HasBar:      true,
	}
	e, err := b.Build(n, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := e.Size()
	if d.Height <= 0 || d.Depth <= 0 {
		t.Fatalf("fraction should have both height and depth, got %+v", d)
	}
	if _, ok := e.(*mathbox.Fraction); !ok {
		t.Fatalf("expected *mathbox.Fraction in semantic mode, got %T", e)
	}
}

func TestBuildFractionLayoutOnlyModeUnwraps(t *testing.T) {
	b := &Builder{Mode: LayoutOnlyMode, Trace: func(string, ...any) {}}
	n := &ast.Node{
		Kind:        ast.KindFraction,
		Numerator:   atom(ast.KindOrd, "1"),
		Denominator: atom(ast.KindOrd, "2"),
		HasBar:      true,
	}
	e, err := b.Build(n, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := e.(*mathbox.Fraction); ok {
		t.Fatalf("layout-only mode should not return a semantic wrapper")
	}
}

func TestBuildSupSubNonLimitAddsWidth(t *testing.T) {
	b := New()
	base := atom(ast.KindOrd, "x")
	n := &ast.Node{Kind: ast.KindSupSub, Base: base, Sup: atom(ast.KindOrd, "2")}
	e, err := b.Build(n, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	baseOnly, _ := b.Build(base, options.Default())
	if e.Size().Width <= baseOnly.Size().Width {
		t.Fatalf("sup'd width %v should exceed bare base width %v", e.Size().Width, baseOnly.Size().Width)
	}
}

func TestBuildSupSubLimitsUsesLargeOpPath(t *testing.T) {
	b := New()
	base := &ast.Node{Kind: ast.KindOp, OpKind: ast.OpSymbol, Text: "x", HasLimits: true}
	n := &ast.Node{Kind: ast.KindSupSub, Base: base, Sup: atom(ast.KindOrd, "n")}
	e, err := b.Build(n, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := e.(*mathbox.LargeOp); !ok {
		t.Fatalf("expected *mathbox.LargeOp for a \\limits operator, got %T", e)
	}
}

func TestBuildRadicalRaisesRadicandAboveBaseline(t *testing.T) {
	b := New()
	n := &ast.Node{Kind: ast.KindRadical, Radicand: atom(ast.KindOrd, "x")}
	e, err := b.Build(n, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Size().Height <= 0 {
		t.Fatalf("radical should have positive height, got %v", e.Size().Height)
	}
}

func TestBuildDelimitedWrapsBody(t *testing.T) {
	b := New()
	n := &ast.Node{Kind: ast.KindDelimited, LeftDelim: "(", RightDelim: ")", Body: atom(ast.KindOrd, "x")}
	e, err := b.Build(n, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	delim, ok := e.(*mathbox.Delimited)
	if !ok {
		t.Fatalf("expected *mathbox.Delimited, got %T", e)
	}
	if delim.Layout.Size().Width <= delim.Body.Size().Width {
		t.Fatalf("delimited width %v should exceed bare body width %v", delim.Layout.Size().Width, delim.Body.Size().Width)
	}
}

func TestBuildDelimitedEmptySideOmitsGlyph(t *testing.T) {
	b := New()
	n := &ast.Node{Kind: ast.KindDelimited, LeftDelim: ".", RightDelim: ")", Body: atom(ast.KindOrd, "x")}
	e, err := b.Build(n, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	delim := e.(*mathbox.Delimited)
	if delim.Left != "." {
		t.Fatalf("Left should record the null delimiter, got %q", delim.Left)
	}
}

func TestBuildPhantomMatchesInnerSize(t *testing.T) {
	b := New()
	n := &ast.Node{Kind: ast.KindPhantom, Children: []*ast.Node{atom(ast.KindOrd, "x")}}
	e, err := b.Build(n, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inner, _ := b.Build(atom(ast.KindOrd, "x"), options.Default())
	if e.Size() != inner.Size() {
		t.Fatalf("phantom size %+v should match inner size %+v", e.Size(), inner.Size())
	}
}

func TestBuildRuleUsesNodeFields(t *testing.T) {
	b := New()
	n := &ast.Node{Kind: ast.KindRule, RuleWidth: 0.5, RuleHeight: 0.2, RuleShift: 0.1}
	e, err := b.Build(n, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := e.Size()
	if d.Width != 0.5 {
		t.Fatalf("width = %v, want 0.5", d.Width)
	}
}

func TestBuildKernHasNoVerticalExtent(t *testing.T) {
	b := New()
	n := &ast.Node{Kind: ast.KindKern, KernWidth: 0.3}
	e, err := b.Build(n, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := e.Size()
	if d.Height != 0 || d.Depth != 0 {
		t.Fatalf("kern should have zero height/depth, got %+v", d)
	}
}

func TestBuildRaiseBoxShiftsElement(t *testing.T) {
	b := New()
	n := &ast.Node{Kind: ast.KindRaiseBox, RaiseAmount: 0.3, Children: []*ast.Node{atom(ast.KindOrd, "x")}}
	e, err := b.Build(n, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	base, _ := b.Build(atom(ast.KindOrd, "x"), options.Default())
	if e.Size().Height <= base.Size().Height {
		t.Fatalf("raised box height %v should exceed unraised height %v", e.Size().Height, base.Size().Height)
	}
}

func TestBuildHrefDeniedByDefaultStillBuildsContent(t *testing.T) {
	b := New()
	n := &ast.Node{Kind: ast.KindHref, URL: "https://example.com", Children: []*ast.Node{atom(ast.KindOrd, "x")}}
	e, err := b.Build(n, options.Default())
	if err != nil {
		t.Fatalf("href build should not itself fail when untrusted: %v", err)
	}
	if e.Size().Width <= 0 {
		t.Fatalf("content should still be laid out even when untrusted")
	}
}

func TestParseColorHex(t *testing.T) {
	c := parseColor("#ff0080", options.Black)
	if c.R != 0xff || c.G != 0x00 || c.B != 0x80 {
		t.Fatalf("parseColor hex = %+v", c)
	}
}

func TestParseColorUnknownFallsBack(t *testing.T) {
	fallback := options.Color{R: 1, G: 2, B: 3}
	c := parseColor("notacolor", fallback)
	if c != fallback {
		t.Fatalf("unknown color should fall back to %+v, got %+v", fallback, c)
	}
}

func TestBuildColorOverridesChildOptions(t *testing.T) {
	b := New()
	n := &ast.Node{Kind: ast.KindColor, Color: "#ff0000", Children: []*ast.Node{atom(ast.KindOrd, "x")}}
	e, err := b.Build(n, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hbox := e.(*mathbox.HBox)
	text := hbox.Children[0].Elem.(*mathbox.Text)
	if text.Style.Color.R != 0xff {
		t.Fatalf("expected red text, got %+v", text.Style.Color)
	}
}

func TestBuildSizingResetsToTextStyle(t *testing.T) {
	b := New()
	n := &ast.Node{Kind: ast.KindSizing, SizeIndex: 2, Children: []*ast.Node{atom(ast.KindOrd, "x")}}
	opts := options.Default() // starts at Display
	e, err := b.Build(n, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Size().Width <= 0 {
		t.Fatalf("sizing node should still produce laid-out content")
	}
}

func TestAtomKindNonAtomDefaultsToOrd(t *testing.T) {
	n := &ast.Node{Kind: ast.KindFraction}
	if AtomKind(n) != ast.KindOrd {
		t.Fatalf("AtomKind for a non-atom node should default to KindOrd")
	}
}

func TestBuildIncludeGraphicsReservesExplicitSize(t *testing.T) {
	b := New()
	n := &ast.Node{Kind: ast.KindIncludeGraphics, GraphicsOptions: map[string]string{"width": "10pt", "height": "5pt"}}
	e, err := b.Build(n, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Size().Width <= 0 {
		t.Fatalf("expected positive width from explicit options")
	}
}

func TestBuildAccentFixedOverRaisesMarkAboveAccentee(t *testing.T) {
	b := New()
	n := &ast.Node{Kind: ast.KindAccent, AccentKind: ast.AccentFixedOver, AccentLabel: "hat", Accentee: atom(ast.KindOrd, "x")}
	e, err := b.Build(n, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	accenteeOnly, _ := b.Build(atom(ast.KindOrd, "x"), options.Default().HavingStyle(options.Default().Style.Cramp()))
	if e.Size().Height <= accenteeOnly.Size().Height {
		t.Fatalf("accented height %v should exceed bare accentee height %v", e.Size().Height, accenteeOnly.Size().Height)
	}
}

func TestBuildAccentStretchyPicksWiderPathForLongerAccentee(t *testing.T) {
	b := New()
	short := &ast.Node{Kind: ast.KindAccent, AccentKind: ast.AccentStretchyOver, AccentLabel: "widehat", Accentee: atom(ast.KindOrd, "x")}
	long := &ast.Node{Kind: ast.KindAccent, AccentKind: ast.AccentStretchyOver, AccentLabel: "widehat", Accentee: atom(ast.KindOrd, "xyiban")}
	es, err := b.Build(short, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	el, err := b.Build(long, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if es.Size().Width <= 0 || el.Size().Width <= 0 {
		t.Fatalf("both stretchy accents should have positive width")
	}
}
