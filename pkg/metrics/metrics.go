// Package metrics provides the two static, process-wide immutable tables
// the rest of the engine reads: per-font glyph boxes and per-style σ/ξ
// typographic constants. Tables are plain Go maps populated once at
// package init and read through pure lookup functions, following a
// property-bag-plus-small-Get*-with-fallback-accessors pattern,
// generalized here from string properties to typed numeric records.
package metrics

import "github.com/inkwell-labs/mathlayout/pkg/mathutil"

// GlyphBox is the five-float metric record fixed per codepoint per font:
// depth and height above/below the baseline, the italic correction, the
// skew (for accent placement), and the advance width, all in em.
type GlyphBox struct {
	Depth, Height, Italic, Skew, Width float64
}

// StyleMetrics is the σ/ξ record for one of the three font-size columns:
// slant, inter-word space, xHeight, quad, and the TeX
// fraction/script/radical/delimiter/rule constants, all in em except
// PtPerEm which is in pt-per-em.
type StyleMetrics struct {
	Slant, Space, XHeight, Quad float64
	Num1, Num2, Num3            float64
	Denom1, Denom2              float64
	Sup1, Sup2, Sup3            float64
	Sub1, Sub2                  float64
	SupDrop, SubDrop            float64
	Delim1, Delim2              float64
	AxisHeight                  float64
	DefaultRuleThickness        float64
	BigOpSpacing1, BigOpSpacing2 float64
	BigOpSpacing3, BigOpSpacing4 float64
	BigOpSpacing5                float64
	SqrtRuleThickness             float64
	PtPerEm                       float64
	DoubleRuleSep                 float64
	ArrayRuleWidth                float64
	FboxSep                       float64
	FboxRule                      float64
}

// CSSEmPerMu is quad/18: the conversion from mu to em for this style's
// quad.
func (m StyleMetrics) CSSEmPerMu() float64 { return m.Quad / mathutil.MuPerEm }

// styleTable holds the three σ/ξ columns, indexed 0 (display/text),
// 1 (script), 2 (scriptscript). Values follow the classic Computer
// Modern / TeX plain.tex parameter set.
var styleTable = [3]StyleMetrics{
	{ // column 0: display/text size
		Slant: 0.25, Space: 0, XHeight: 0.431, Quad: 1.0,
		Num1: 0.677, Num2: 0.394, Num3: 0.444,
		Denom1: 0.686, Denom2: 0.345,
		Sup1: 0.413, Sup2: 0.363, Sup3: 0.289,
		Sub1: 0.150, Sub2: 0.247,
		SupDrop: 0.386, SubDrop: 0.05,
		Delim1: 2.39, Delim2: 1.01,
		AxisHeight:           0.25,
		DefaultRuleThickness: 0.04,
		BigOpSpacing1:        0.111, BigOpSpacing2: 0.167,
		BigOpSpacing3: 0.2, BigOpSpacing4: 0.6, BigOpSpacing5: 0.1,
		SqrtRuleThickness: 0.04,
		PtPerEm:           mathutil.DefaultPtPerEm,
		DoubleRuleSep:     0.2, ArrayRuleWidth: 0.04,
		FboxSep: 0.3, FboxRule: 0.04,
	},
	{ // column 1: script size
		Slant: 0.25, Space: 0, XHeight: 0.431, Quad: 1.0,
		Num1: 0.732, Num2: 0.384, Num3: 0.444,
		Denom1: 0.752, Denom2: 0.344,
		Sup1: 0.503, Sup2: 0.431, Sup3: 0.286,
		Sub1: 0.143, Sub2: 0.286,
		SupDrop: 0.353, SubDrop: 0.071,
		Delim1: 1.7, Delim2: 1.157,
		AxisHeight:           0.25,
		DefaultRuleThickness: 0.049,
		BigOpSpacing1:        0.111, BigOpSpacing2: 0.167,
		BigOpSpacing3: 0.2, BigOpSpacing4: 0.6, BigOpSpacing5: 0.1,
		SqrtRuleThickness: 0.049,
		PtPerEm:           mathutil.DefaultPtPerEm,
		DoubleRuleSep:     0.2, ArrayRuleWidth: 0.049,
		FboxSep: 0.3, FboxRule: 0.049,
	},
	{ // column 2: scriptscript size
		Slant: 0.25, Space: 0, XHeight: 0.431, Quad: 1.0,
		Num1: 0.925, Num2: 0.372, Num3: 0.444,
		Denom1: 0.921, Denom2: 0.344,
		Sup1: 0.553, Sup2: 0.503, Sup3: 0.286,
		Sub1: 0.143, Sub2: 0.286,
		SupDrop: 0.324, SubDrop: 0.071,
		Delim1: 1.7, Delim2: 1.157,
		AxisHeight:           0.25,
		DefaultRuleThickness: 0.049,
		BigOpSpacing1:        0.111, BigOpSpacing2: 0.167,
		BigOpSpacing3: 0.2, BigOpSpacing4: 0.6, BigOpSpacing5: 0.1,
		SqrtRuleThickness: 0.049,
		PtPerEm:           mathutil.DefaultPtPerEm,
		DoubleRuleSep:     0.2, ArrayRuleWidth: 0.049,
		FboxSep: 0.3, FboxRule: 0.049,
	},
}

// StyleMetricsForIndex returns the σ/ξ record for sizeIndex (0..2,
// clamped); column 2 serves both the scriptscript style column and any
// caller-selected index beyond 2.
func StyleMetricsForIndex(sizeIndex int) StyleMetrics {
	if sizeIndex < 0 {
		sizeIndex = 0
	}
	if sizeIndex > 2 {
		sizeIndex = 2
	}
	return styleTable[sizeIndex]
}

// SizeIndexForBaseSize applies the classic TeX cutoffs: sizeIndex = 0 if
// base size >= 5; 1 if >= 3; else 2, where base size is in the style's
// own size-multiplier units (i.e. the caller passes baseSize * the
// style's multiplier, in pt).
func SizeIndexForBaseSize(baseSizePt float64) int {
	switch {
	case baseSizePt >= 5:
		return 0
	case baseSizePt >= 3:
		return 1
	default:
		return 2
	}
}
