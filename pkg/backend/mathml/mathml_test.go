package mathml

import (
	"strings"
	"testing"

	"github.com/inkwell-labs/mathlayout/pkg/ast"
)

func atom(kind ast.Kind, text string) *ast.Node {
	return &ast.Node{Kind: kind, Text: text}
}

func TestRenderOrdEmitsMi(t *testing.T) {
	out := Render(atom(ast.KindOrd, "x"), Options{})
	if !strings.Contains(out, "<mi>x</mi>") {
		t.Fatalf("expected <mi>x</mi> in %q", out)
	}
}

func TestRenderDigitEmitsMn(t *testing.T) {
	out := Render(atom(ast.KindOrd, "12"), Options{})
	if !strings.Contains(out, "<mn>12</mn>") {
		t.Fatalf("expected <mn>12</mn> in %q", out)
	}
}

func TestRenderFractionEmitsMfrac(t *testing.T) {
	n := &ast.Node{
		Kind:        ast.KindFraction,
		Numerator:   atom(ast.KindOrd, "1"),
		Denominator: atom(ast.KindOrd, "2"),
		HasBar:      true,
	}
	out := Render(n, Options{})
	if !strings.Contains(out, "<mfrac>") || !strings.Contains(out, "</mfrac>") {
		t.Fatalf("expected mfrac wrapper in %q", out)
	}
}

func TestRenderFractionWithoutBarSetsZeroLinethickness(t *testing.T) {
	n := &ast.Node{
		Kind:        ast.KindFraction,
		Numerator:   atom(ast.KindOrd, "1"),
		Denominator: atom(ast.KindOrd, "2"),
		HasBar:      false,
	}
	out := Render(n, Options{})
	if !strings.Contains(out, `linethickness="0"`) {
		t.Fatalf("expected linethickness=0 in %q", out)
	}
}

func TestRenderSupSubBothEmitsMsubsup(t *testing.T) {
	n := &ast.Node{Kind: ast.KindSupSub, Base: atom(ast.KindOrd, "x"), Sup: atom(ast.KindOrd, "2"), Sub: atom(ast.KindOrd, "i")}
	out := Render(n, Options{})
	if !strings.Contains(out, "<msubsup>") {
		t.Fatalf("expected msubsup in %q", out)
	}
}

func TestRenderRadicalWithIndexEmitsMroot(t *testing.T) {
	n := &ast.Node{Kind: ast.KindRadical, Radicand: atom(ast.KindOrd, "x"), Index: atom(ast.KindOrd, "3")}
	out := Render(n, Options{})
	if !strings.Contains(out, "<mroot>") {
		t.Fatalf("expected mroot in %q", out)
	}
}

func TestRenderRadicalWithoutIndexEmitsMsqrt(t *testing.T) {
	n := &ast.Node{Kind: ast.KindRadical, Radicand: atom(ast.KindOrd, "x")}
	out := Render(n, Options{})
	if !strings.Contains(out, "<msqrt>") {
		t.Fatalf("expected msqrt in %q", out)
	}
}

func TestRenderHrefUntrustedDropsAttribute(t *testing.T) {
	n := &ast.Node{Kind: ast.KindHref, URL: "https://example.com", Children: []*ast.Node{atom(ast.KindOrd, "x")}}
	out := Render(n, Options{})
	if strings.Contains(out, "href=") {
		t.Fatalf("untrusted href must not be emitted, got %q", out)
	}
}

func TestRenderHrefTrustedEmitsAttribute(t *testing.T) {
	n := &ast.Node{Kind: ast.KindHref, URL: "https://example.com", Children: []*ast.Node{atom(ast.KindOrd, "x")}}
	out := Render(n, Options{Trust: func(string) bool { return true }})
	if !strings.Contains(out, `href="https://example.com"`) {
		t.Fatalf("expected href attribute in %q", out)
	}
}

func TestRenderDelimitedUsesFenceMarkers(t *testing.T) {
	n := &ast.Node{Kind: ast.KindDelimited, LeftDelim: "(", RightDelim: ")", Body: atom(ast.KindOrd, "x")}
	out := Render(n, Options{})
	if strings.Count(out, `fence="true"`) != 2 {
		t.Fatalf("expected two fence markers in %q", out)
	}
}
