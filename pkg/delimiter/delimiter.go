// Package delimiter selects or synthesizes a tall-enough delimiter glyph
// for a given symbol and required height: walking a small-to-large size
// sequence and, failing that, assembling a stacked glyph from top/middle/
// repeat/bottom pieces joined by lap kerns. The sequence-table-plus-walk
// shape mirrors a classic TeX make_left_right/var_delimiter port; process-
// wide classification and glyph tables are exposed only through pure
// lookup functions, the way pkg/metrics exposes its σ/ξ tables.
package delimiter

import (
	"github.com/inkwell-labs/mathlayout/pkg/mathbox"
	"github.com/inkwell-labs/mathlayout/pkg/mathutil"
)

// StackClass classifies how a delimiter symbol may be enlarged.
type StackClass int

const (
	StackNever StackClass = iota
	StackAlways
	StackLarge
)

// classify reports the StackClass for a delimiter symbol. Unknown
// symbols are treated as StackNever (they simply cannot grow).
func classify(symbol string) StackClass {
	switch symbol {
	case "<", ">", "/", `\`:
		return StackNever
	case "|", "‖", "↑", "↓", "↕", "∥":
		return StackAlways
	case "(", ")", "[", "]", "{", "}", "⌊", "⌋", "⌈", "⌉", "\\surd", ".":
		return StackLarge
	default:
		return StackNever
	}
}

// sequenceStep is one candidate in a delimiter's size sequence.
type sequenceStep struct {
	// kind distinguishes a small (current-font, scaled by style) glyph
	// from a pre-drawn large glyph font, from the final stacked assembly.
	kind      stepKind
	sizeIndex int // for kindSmall: which style size (0=display/text,1=script,2=scriptscript); for kindLarge: which Size<N>-Regular font (1..4)
}

type stepKind int

const (
	kindSmall stepKind = iota
	kindLarge
	kindStack
)

// sequenceFor returns the ordered candidate list for a delimiter class,
// per classic TeX: Small(scriptscript) -> Small(script) -> Small(text),
// then Large(1..4) for StackLarge, then Stack for StackAlways/StackLarge.
func sequenceFor(class StackClass) []sequenceStep {
	base := []sequenceStep{
		{kind: kindSmall, sizeIndex: 2},
		{kind: kindSmall, sizeIndex: 1},
		{kind: kindSmall, sizeIndex: 0},
	}
	switch class {
	case StackLarge:
		for n := 1; n <= 4; n++ {
			base = append(base, sequenceStep{kind: kindLarge, sizeIndex: n})
		}
		base = append(base, sequenceStep{kind: kindStack})
	case StackAlways:
		base = append(base, sequenceStep{kind: kindStack})
	}
	return base
}

// GlyphLookup resolves the (height+depth) span, in em, of a candidate
// glyph at a given step, or reports that the piece does not exist so the
// walk can skip to Stack. Callers (pkg/builder) supply this so delimiter
// stays independent of the concrete font table in pkg/metrics.
type GlyphLookup func(symbol string, step GlyphStep) (heightPlusDepth float64, ok bool)

// GlyphStep mirrors sequenceStep in the exported surface callers need to
// implement GlyphLookup.
type GlyphStep struct {
	Large     bool // true -> use Size<SizeIndex>-Regular; false -> small, scaled by style
	SizeIndex int
}

// Assembly describes a stacked-glyph construction, once the walk decides
// no single glyph suffices.
type Assembly struct {
	Top, Middle, Repeat, Bottom string
	HasMiddle                   bool
	RepeatHeightPlusDepth       float64
	TopHeightPlusDepth          float64
	MiddleHeightPlusDepth       float64
	BottomHeightPlusDepth       float64
}

const lap = 0.008 // em, hides anti-aliasing seams between stacked pieces

// StartIndex returns the sequence's starting offset for a given style
// size index (0 display/text, 1 script, 2 scriptscript): smaller current
// style starts further along the sequence, since it already renders in a
// larger relative em.
func StartIndex(currentStyleSize int) int {
	idx := 2 - currentStyleSize
	if idx < 0 {
		idx = 0
	}
	if idx > 2 {
		idx = 2
	}
	return idx
}

// Select walks symbol's size sequence looking for the first candidate
// whose span is >= requiredHeight, starting at StartIndex(currentStyleSize).
// lookup resolves a candidate's span; sizeMultiplier scales a kindSmall
// candidate (Large and Stack pieces are already absolute). If no small or
// large candidate suffices, Select returns the final step (Stack) so the
// caller can fall through to Assemble.
func Select(symbol string, requiredHeight float64, currentStyleSize int, sizeMultiplier float64, lookup GlyphLookup) (GlyphStep, mathutil.AppError) {
	class := classify(symbol)
	seq := sequenceFor(class)
	if len(seq) == 0 {
		return GlyphStep{}, mathutil.IllegalDelimiter(symbol)
	}
	start := StartIndex(currentStyleSize)
	if start >= len(seq) {
		start = len(seq) - 1
	}
	var last GlyphStep
	for i := start; i < len(seq); i++ {
		step := seq[i]
		if step.kind == kindStack {
			return GlyphStep{Large: false, SizeIndex: -1}, nil // sentinel: caller must Assemble
		}
		gs := GlyphStep{Large: step.kind == kindLarge, SizeIndex: step.sizeIndex}
		span, ok := lookup(symbol, gs)
		if !ok {
			continue
		}
		if step.kind == kindSmall {
			span *= sizeMultiplier
		}
		last = gs
		if span >= requiredHeight {
			return gs, nil
		}
	}
	return last, nil
}

// IsStackSentinel reports whether a GlyphStep returned by Select signals
// that the caller must fall through to Assemble.
func IsStackSentinel(s GlyphStep) bool { return s.SizeIndex == -1 && !s.Large }

// RepeatCount computes how many repeat-glyph copies are needed to reach
// requiredHeight given the assembly's fixed pieces, per TeX's formula:
// ceil((H - (top+bottom+middle?)) / (factor*repeatHD)), factor = 2
// if a middle piece exists (the count is then per side, since the repeat
// appears symmetrically above and below the middle), else 1. The repeat string's length is measured in runes, not
// bytes, so a multi-byte repeat glyph (e.g. a non-ASCII vertical bar) is
// still counted as a single character rather than panicking on a byte-
// length assertion.
func RepeatCount(a Assembly, requiredHeight float64) int {
	if len([]rune(a.Repeat)) == 0 {
		return 0
	}
	factor := 1.0
	fixed := a.TopHeightPlusDepth + a.BottomHeightPlusDepth
	if a.HasMiddle {
		factor = 2.0
		fixed += a.MiddleHeightPlusDepth
	}
	remaining := requiredHeight - fixed
	if remaining <= 0 {
		return 0
	}
	perRepeat := factor * a.RepeatHeightPlusDepth
	if perRepeat <= 0 {
		return 0
	}
	n := remaining / perRepeat
	count := int(n)
	if float64(count) < n {
		count++
	}
	return count
}

// GlyphFactory renders a named glyph/path piece into a mathbox.Element of
// a given height+depth; supplied by the caller since path rendering is
// backend-agnostic geometry, not delimiter's concern.
type GlyphFactory func(name string, heightPlusDepth float64) mathbox.Element

// Assemble builds the stacked VBox for an Assembly at a given repeat
// count (with a middle piece, repeatCount copies go on each side of it),
// inserting a negative lap kern (KernBefore) between every adjacent pair
// of pieces, and reports the realized total height+depth (recomputed from
// the integer repeat count, which may differ slightly from the original
// requiredHeight).
func Assemble(a Assembly, repeatCount int, make_ GlyphFactory) (*mathbox.VBox, float64) {
	var items []mathbox.VItem
	addPiece := func(name string, hd float64, first bool) {
		kern := 0.0
		if !first {
			kern = -lap
		}
		items = append(items, mathbox.VItem{Elem: make_(name, hd), KernBefore: kern})
	}

	total := 0.0
	half := repeatCount

	addPiece(a.Top, a.TopHeightPlusDepth, true)
	total += a.TopHeightPlusDepth
	for i := 0; i < half; i++ {
		addPiece(a.Repeat, a.RepeatHeightPlusDepth, false)
		total += a.RepeatHeightPlusDepth - lap
	}
	if a.HasMiddle {
		addPiece(a.Middle, a.MiddleHeightPlusDepth, false)
		total += a.MiddleHeightPlusDepth - lap
		for i := 0; i < repeatCount; i++ {
			addPiece(a.Repeat, a.RepeatHeightPlusDepth, false)
			total += a.RepeatHeightPlusDepth - lap
		}
	}
	addPiece(a.Bottom, a.BottomHeightPlusDepth, false)
	total += a.BottomHeightPlusDepth - lap

	amount := total / 2 // centered anchor; caller adjusts for axis below
	v := mathbox.NewVBoxTop(items, amount)
	return v, total
}

// AxisCenteredDepth returns the VBox depth that centers a stack of
// totalHeight on the math axis: depth = totalHeight/2 - axisHeight*sizeMultiplier.
func AxisCenteredDepth(totalHeight, axisHeight, sizeMultiplier float64) float64 {
	d := totalHeight/2 - axisHeight*sizeMultiplier
	if d < 0 {
		return 0
	}
	return d
}

const (
	delimiterFactor = 901.0
	delimiterExtend = 5.0 // pt
)

// RequiredHeight implements \left/\right auto-sizing: given the maximum
// distance from the axis D = max(h-axis, d+axis), both in em, the
// delimiter height is max(D/500*delimiterFactor, 2*D - delimiterExtend),
// with delimiterExtend (5pt) converted to em via ptPerEm. Derived from
// TeX's make_left_right.
func RequiredHeight(h, d, axisHeight, ptPerEm float64) float64 {
	upper := h - axisHeight
	lower := d + axisHeight
	big := mathutil.Max(upper, lower)
	a := big / 500 * delimiterFactor
	b := 2*big - delimiterExtend/ptPerEm
	return mathutil.Max(a, b)
}
