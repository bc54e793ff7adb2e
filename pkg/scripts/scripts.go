// Package scripts places a base's superscript and/or subscript — either
// beside it (TeX rule 18, the ordinary case) or above/below it as limits
// on a large operator (TeX rule 13, displaystyle or explicit \limits).
package scripts

import (
	"github.com/inkwell-labs/mathlayout/pkg/mathbox"
	"github.com/inkwell-labs/mathlayout/pkg/metrics"
	"github.com/inkwell-labs/mathlayout/pkg/mathutil"
)

// BaseInfo is the subset of a base atom's own geometry placement needs:
// its box plus whether it is a single symbol (only single symbols get an
// italic-correction-driven subscript kern) and its italic correction.
type BaseInfo struct {
	Box           mathbox.Element
	IsSingleGlyph bool
	Italic        float64
	// ChildSizeRatio is the sup's own style size multiplier divided by
	// the base's, used by the supDrop term below.
	ChildSizeRatio float64
}

// SupShift computes rule 18's superscript raise: the largest of the
// style's sup1/sup2/sup3 (selected by the caller per cramping/style),
// base.height - supDrop*childSizeRatio, and sup.depth + xHeight/4.
func SupShift(styleSup, baseHeight, supDrop, childSizeRatio, supDepth, xHeight float64) float64 {
	a := styleSup
	b := baseHeight - supDrop*childSizeRatio
	c := supDepth + xHeight/4
	return mathutil.Max(a, mathutil.Max(b, c))
}

// SubShift computes rule 18's subscript drop: the largest of sub1, sub2,
// and sub.height - 4/5*xHeight.
func SubShift(sub1, sub2, subHeight, xHeight float64) float64 {
	return mathutil.Max(sub1, mathutil.Max(sub2, subHeight-0.8*xHeight))
}

// ReconcileBothPresent enforces rule 18's joint clearance when both a
// superscript and a subscript are present: the gap between the
// superscript's baseline-relative bottom (supShift - supDepth) and the
// subscript's baseline-relative top (subHeight - subShift) must be at
// least 4*defaultRuleThickness; if not, supShift is raised, then subShift
// is set so the superscript's bottom sits 4/5*xHeight above the axis.
func ReconcileBothPresent(supShift, subShift, supDepth, subHeight, defaultRuleThickness, xHeight float64) (float64, float64) {
	gap := (supShift - supDepth) - (subHeight - subShift)
	need := 4 * defaultRuleThickness
	if gap >= need {
		return supShift, subShift
	}
	supShift = 0.8*xHeight + supDepth
	subShift = need + subHeight - 0.8*xHeight
	return supShift, subShift
}

// BuildNonLimit assembles a base with a beside-placed sup and/or sub,
// applying italic correction to the subscript when base is a single
// glyph (rule 18f). sup and sub may be nil if absent.
func BuildNonLimit(base BaseInfo, sup, sub mathbox.Element, supShift, subShift float64) *mathbox.Scripts {
	subKern := 0.0
	if base.IsSingleGlyph {
		subKern = -base.Italic
	}

	var children []mathbox.HChild
	children = append(children, mathbox.HChild{Elem: base.Box})

	switch {
	case sup != nil && sub != nil:
		stack := mathbox.NewVBoxIndividual([]mathbox.VItem{
			{Elem: sup, Shift: supShift},
			{Elem: sub, Shift: -subShift},
		})
		children = append(children, mathbox.HChild{Elem: mathbox.NewKern(subKern)})
		children = append(children, mathbox.HChild{Elem: stack})
	case sup != nil:
		children = append(children, mathbox.HChild{Elem: sup, Shift: supShift})
	case sub != nil:
		children = append(children, mathbox.HChild{Elem: mathbox.NewKern(subKern)})
		children = append(children, mathbox.HChild{Elem: sub, Shift: -subShift})
	}

	layout := mathbox.NewHBox(children)
	return mathbox.NewScripts(base.Box, sup, sub, false, layout)
}

// LimitKerns computes rule 13's above/below kerns: k1 = max(bigOpSpacing1,
// bigOpSpacing3 - sup.depth); k2 = max(bigOpSpacing2, bigOpSpacing4 - sub.height).
func LimitKerns(m metrics.StyleMetrics, supDepth, subHeight float64) (k1, k2 float64) {
	k1 = mathutil.Max(m.BigOpSpacing1, m.BigOpSpacing3-supDepth)
	k2 = mathutil.Max(m.BigOpSpacing2, m.BigOpSpacing4-subHeight)
	return k1, k2
}

// BuildLimits assembles a large operator with above/below limits: a VBox
// stacking [padding bigOpSpacing5, sup, kern k1, base (centered), kern k2,
// sub, padding bigOpSpacing5], anchored so the base's own baseline is the
// group's baseline. The upper limit is offset right by the base's italic
// correction (slant), the lower limit offset left by the same amount, so
// the group gets a left-margin spacer of that width to avoid a negative
// overall left edge.
func BuildLimits(base BaseInfo, sup, sub mathbox.Element, m metrics.StyleMetrics) *mathbox.LargeOp {
	baseDims := base.Box.Size()
	width := baseDims.Width
	if sup != nil && sup.Size().Width > width {
		width = sup.Size().Width
	}
	if sub != nil && sub.Size().Width > width {
		width = sub.Size().Width
	}

	var items []mathbox.VItem
	amount := 0.0 // distance from the stack's top down to the base's baseline

	if sup != nil {
		supDims := sup.Size()
		k1, _ := LimitKerns(m, supDims.Depth, 0)
		items = append(items, mathbox.VItem{Elem: shiftHoriz(sup, width, base.Italic), KernBefore: m.BigOpSpacing5})
		items = append(items, mathbox.VItem{Elem: centerWithin(base.Box, width), KernBefore: k1})
		amount = m.BigOpSpacing5 + supDims.Height + supDims.Depth + k1 + baseDims.Height
	} else {
		items = append(items, mathbox.VItem{Elem: centerWithin(base.Box, width)})
		amount = baseDims.Height
	}

	if sub != nil {
		subDims := sub.Size()
		_, k2 := LimitKerns(m, 0, subDims.Height)
		items = append(items, mathbox.VItem{Elem: shiftHoriz(sub, width, -base.Italic), KernBefore: k2})
		items = append(items, mathbox.VItem{Elem: mathbox.NewKern(0), KernBefore: m.BigOpSpacing5})
	}

	stack := mathbox.NewVBoxTop(items, amount)
	var layout mathbox.Element = stack
	if base.Italic > 0 {
		layout = mathbox.SimpleHBox(mathbox.NewKern(base.Italic), stack)
	}
	return mathbox.NewLargeOp("", true, layout)
}

func shiftHoriz(e mathbox.Element, width, italicOffset float64) mathbox.Element {
	w := e.Size().Width
	pad := (width - w) / 2
	left := pad + italicOffset
	right := pad - italicOffset
	if left < 0 {
		left = 0
	}
	if right < 0 {
		right = 0
	}
	return mathbox.SimpleHBox(mathbox.NewKern(left), e, mathbox.NewKern(right))
}

func centerWithin(e mathbox.Element, width float64) mathbox.Element {
	w := e.Size().Width
	if w >= width {
		return e
	}
	pad := (width - w) / 2
	return mathbox.SimpleHBox(mathbox.NewKern(pad), e, mathbox.NewKern(pad))
}
