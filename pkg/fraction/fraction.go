// Package fraction lays out a numerator/denominator pair around a rule
// (or, for \atop-style fractions, no rule), computing shift-up/shift-down
// from style constants and clamping both to the clearance TeX chapter 17
// requires around the bar.
package fraction

import (
	"github.com/inkwell-labs/mathlayout/pkg/mathbox"
	"github.com/inkwell-labs/mathlayout/pkg/metrics"
	"github.com/inkwell-labs/mathlayout/pkg/mathutil"
)

// Shifts computes the unclamped shift-up u (numerator) and shift-down v
// (denominator): display style uses num1/denom1; other styles use
// num2/denom2, except num2 is replaced by num3 when the rule has zero
// thickness (the \atop / binomial case).
func Shifts(isDisplay bool, ruleThickness float64, m metrics.StyleMetrics) (u, v float64) {
	if isDisplay {
		return m.Num1, m.Denom1
	}
	if ruleThickness == 0 {
		return m.Num3, m.Denom2
	}
	return m.Num2, m.Denom2
}

// Clearance returns phi, the minimum gap required between the bar and
// each operand: 3*theta in display style, theta otherwise. For a ruleless
// fraction (theta == 0) TeX substitutes a fixed clearance of 7*defaultRuleThickness
// (display) or 3*defaultRuleThickness (otherwise) — the "phi-less rule".
func Clearance(isDisplay bool, ruleThickness, defaultRuleThickness float64) float64 {
	if ruleThickness > 0 {
		if isDisplay {
			return 3 * ruleThickness
		}
		return ruleThickness
	}
	if isDisplay {
		return 7 * defaultRuleThickness
	}
	return 3 * defaultRuleThickness
}

// Clamp adjusts u and v so the numerator and denominator clear the bar by
// at least phi, given the bar's position at the axis with half-thickness
// theta/2: u is raised so u - numDepth - (axisHeight + theta/2) >= phi,
// and v is raised so (axisHeight - theta/2) - (denHeight - v) >= phi.
func Clamp(u, v, numDepth, denHeight, axisHeight, ruleThickness, phi float64) (float64, float64) {
	half := ruleThickness / 2
	minU := phi + numDepth + axisHeight + half
	if u < minU {
		u = minU
	}
	minV := phi + denHeight - axisHeight + half
	if v < minV {
		v = minV
	}
	return u, v
}

// Build assembles the fraction VBox: numerator at (0, u), an optional
// rule at the axis (width = max(N.width, D.width), thickness theta),
// denominator at (0, -v). Both operands are centered within the wider
// width. hasBar selects whether the rule is emitted at all (\atop omits
// it entirely, not merely with zero thickness).
func Build(numerator, denominator mathbox.Element, u, v, ruleThickness, axisHeight float64, hasBar bool) *mathbox.Fraction {
	width := mathutil.Max(numerator.Size().Width, denominator.Size().Width)
	num := centerWithin(numerator, width)
	den := centerWithin(denominator, width)

	var items []mathbox.VItem
	items = append(items, mathbox.VItem{Elem: num, Shift: u})
	if hasBar && ruleThickness > 0 {
		rule := mathbox.NewRule(width, ruleThickness, axisHeight-ruleThickness/2)
		items = append(items, mathbox.VItem{Elem: rule, Shift: 0})
	}
	items = append(items, mathbox.VItem{Elem: den, Shift: -v})

	body := mathbox.NewVBoxIndividual(items)
	return mathbox.NewFraction(numerator, denominator, ruleThickness, body)
}

// centerWithin wraps elem in an HBox of total width, inserting symmetric
// kerns so elem sits centered; returns elem unwrapped if it already fills
// width.
func centerWithin(elem mathbox.Element, width float64) mathbox.Element {
	w := elem.Size().Width
	if w >= width {
		return elem
	}
	pad := (width - w) / 2
	return mathbox.SimpleHBox(mathbox.NewKern(pad), elem, mathbox.NewKern(pad))
}
