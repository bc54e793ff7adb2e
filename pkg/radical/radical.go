// Package radical builds the surd (square/nth-root) construction: a
// vinculum rule over a raised radicand, with the surd glyph itself chosen
// by walking pkg/delimiter's STACK_LARGE sequence under the symbol
// "\surd", and an optional root index placed above-left of the surd.
package radical

import (
	"github.com/inkwell-labs/mathlayout/pkg/delimiter"
	"github.com/inkwell-labs/mathlayout/pkg/mathbox"
	"github.com/inkwell-labs/mathlayout/pkg/metrics"
)

// Clearance returns the TeX-defined gap phi the radicand's top must clear
// above the vinculum: x-height in display style, default rule thickness
// otherwise.
func Clearance(isDisplay bool, m metrics.StyleMetrics) float64 {
	if isDisplay {
		return m.XHeight
	}
	return m.DefaultRuleThickness
}

// RuleThickness returns the vinculum's thickness: the larger of the
// style's default rule thickness and the options' minimum, plus an extra
// allowance the chosen surd path may require to look visually solid at
// its drawn size (extraVinculum).
func RuleThickness(defaultThickness, minThickness, extraVinculum float64) float64 {
	t := defaultThickness
	if minThickness > t {
		t = minThickness
	}
	return t + extraVinculum
}

// Target is the surd height/depth that the \surd glyph (or its stacked
// assembly) must reach: the radicand's own height+depth, plus the
// clearance above it, plus the vinculum's own thickness.
func Target(radicandHeight, radicandDepth, clearance, ruleThickness float64) float64 {
	return radicandHeight + radicandDepth + clearance + ruleThickness
}

// Build assembles the full radical layout: a VBox of [index-raised
// above-left kern row (optional), surd+vinculum beside the raised
// radicand]. surd is the already-sized surd Element (chosen by the
// caller via pkg/delimiter.Select/Assemble against Target); vinculum is
// the Rule drawn at ruleThickness; radicand is raised by clearance+
// ruleThickness so its top sits exactly at the vinculum's underside.
func Build(radicand mathbox.Element, surd mathbox.Element, ruleThickness, clearance float64, index mathbox.Element) *mathbox.Radical {
	rDims := radicand.Size()
	raise := clearance + ruleThickness
	vinculum := mathbox.NewRule(rDims.Width, ruleThickness, rDims.Height+raise)

	body := mathbox.NewVBoxIndividual([]mathbox.VItem{
		{Elem: vinculum, Shift: 0},
		{Elem: radicand, Shift: raise},
	})

	var withSurd mathbox.Element = mathbox.SimpleHBox(surd, body)
	if index != nil {
		idxDims := index.Size()
		surdDims := surd.Size()
		// raise the index so its baseline sits above the surd's own
		// shoulder, per the classic \root placement.
		raiseIndex := 0.6*surdDims.Height - idxDims.Depth
		withSurd = mathbox.NewHBox([]mathbox.HChild{
			{Elem: index, Shift: raiseIndex},
			{Elem: withSurd, Shift: 0},
		})
	}

	return mathbox.NewRadical(radicand, index, ruleThickness, withSurd)
}

// SelectSurd walks the delimiter size sequence for "\surd" to find a
// glyph/assembly at least targetHeight tall, reusing pkg/delimiter's
// general machinery rather than duplicating the sequence-walk logic.
func SelectSurd(targetHeight float64, currentStyleSize int, sizeMultiplier float64, lookup delimiter.GlyphLookup) (delimiter.GlyphStep, error) {
	step, err := delimiter.Select(`\surd`, targetHeight, currentStyleSize, sizeMultiplier, lookup)
	if err != nil {
		return delimiter.GlyphStep{}, err
	}
	return step, nil
}
