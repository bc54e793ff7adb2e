package metrics

import (
	"fmt"

	"github.com/fogleman/gg"
	"github.com/inkwell-labs/mathlayout/pkg/mathutil"
)

// fontTable maps a font family name to its per-codepoint glyph boxes.
// This is a small embedded table standing in for a full external font
// metric resource; it carries enough entries to exercise every layout
// code path and test.
var fontTable = map[string]map[rune]GlyphBox{
	"Main-Italic": {
		'x': {Depth: 0, Height: 0.431, Italic: 0.025, Skew: 0, Width: 0.572},
		'y': {Depth: 0.204, Height: 0.431, Italic: 0.021, Skew: 0, Width: 0.489},
		'a': {Depth: 0, Height: 0.431, Italic: 0.0, Skew: 0, Width: 0.528},
		'b': {Depth: 0, Height: 0.694, Italic: 0.013, Skew: 0, Width: 0.56},
		'i': {Depth: 0, Height: 0.661, Italic: 0.0, Skew: 0, Width: 0.266},
		'n': {Depth: 0, Height: 0.431, Italic: 0.027, Skew: 0, Width: 0.6},
	},
	"Main-Regular": {
		'0': {Depth: 0, Height: 0.644, Italic: 0, Skew: 0, Width: 0.5},
		'1': {Depth: 0, Height: 0.644, Italic: 0, Skew: 0, Width: 0.5},
		'2': {Depth: 0, Height: 0.644, Italic: 0, Skew: 0, Width: 0.5},
		'M': {Depth: 0, Height: 0.683, Italic: 0, Skew: 0, Width: 0.917},
		'+': {Depth: 0.086, Height: 0.586, Italic: 0, Skew: 0, Width: 0.778},
		'=': {Depth: 0.023, Height: 0.464, Italic: 0, Skew: 0, Width: 0.778},
		'(': {Depth: 0.25, Height: 0.75, Italic: 0, Skew: 0, Width: 0.389},
		')': {Depth: 0.25, Height: 0.75, Italic: 0, Skew: 0, Width: 0.389},
		',': {Depth: 0.194, Height: 0.106, Italic: 0, Skew: 0, Width: 0.278},
		'.': {Depth: 0, Height: 0.106, Italic: 0, Skew: 0, Width: 0.278},
		' ': {Depth: 0, Height: 0, Italic: 0, Skew: 0, Width: 0.25},
	},
	"Size1-Regular": { // \big-family oversize parens
		'(': {Depth: 0.35, Height: 0.85, Italic: 0, Skew: 0, Width: 0.472},
		')': {Depth: 0.35, Height: 0.85, Italic: 0, Skew: 0, Width: 0.472},
	},
	"Size2-Regular": {
		'(': {Depth: 0.65, Height: 1.15, Italic: 0, Skew: 0, Width: 0.597},
		')': {Depth: 0.65, Height: 1.15, Italic: 0, Skew: 0, Width: 0.597},
	},
	"Size3-Regular": {
		'(': {Depth: 0.95, Height: 1.45, Italic: 0, Skew: 0, Width: 0.736},
		')': {Depth: 0.95, Height: 1.45, Italic: 0, Skew: 0, Width: 0.736},
	},
	"Size4-Regular": {
		'(': {Depth: 1.45, Height: 1.95, Italic: 0, Skew: 0, Width: 0.875},
		')': {Depth: 1.45, Height: 1.95, Italic: 0, Skew: 0, Width: 0.875},
	},
}

// fallbackProxy remaps an unsupported codepoint onto one this table does
// carry metrics for, covering Latin-1 extras and Cyrillic glyphs that are
// visually indistinguishable from a Latin lookalike.
var fallbackProxy = map[rune]rune{
	0x00E0: 'a', 0x00E1: 'a', 0x00E8: 'e', 0x00E9: 'e', // Latin-1 accented extras -> base letter
	0x0430: 'a', // CYRILLIC SMALL LETTER A looks like Latin a
	0x0435: 'e', // CYRILLIC SMALL LETTER IE looks like Latin e
	0x043E: 'o', // CYRILLIC SMALL LETTER O looks like Latin o
	0x0440: 'p', // CYRILLIC SMALL LETTER ER looks like Latin p
}

// GlyphMetrics looks up the metric box for codepoint in font. In Text mode
// an unsupported but legal codepoint falls back to the metrics of 'M';
// in Math mode an unknown codepoint is a hard failure.
func GlyphMetrics(codepoint rune, font string, mode Mode) (GlyphBox, mathutil.AppError) {
	if box, ok := lookup(codepoint, font); ok {
		return box, nil
	}
	if base, _, ok := FoldMathAlpha(codepoint); ok {
		if box, ok := lookup(base, font); ok {
			return box, nil
		}
	}
	if proxy, ok := fallbackProxy[codepoint]; ok {
		if box, ok := lookup(proxy, font); ok {
			return box, nil
		}
	}
	if mode == ModeText {
		if box, ok := lookup('M', font); ok {
			return box, nil
		}
	}
	return GlyphBox{}, mathutil.UnknownGlyphMetrics(codepoint, font)
}

func lookup(r rune, font string) (GlyphBox, bool) {
	table, ok := fontTable[font]
	if !ok {
		return GlyphBox{}, false
	}
	box, ok := table[r]
	return box, ok
}

// Mode distinguishes the two lookup policies GlyphMetrics applies; it
// mirrors ast.Mode but lives here to avoid metrics depending on ast.
type Mode int

const (
	ModeMath Mode = iota
	ModeText
)

// MeasureWithRasterizer measures a string with a real font: it loads a
// system/bundled font face into a throwaway fogleman/gg context and
// measures the string directly. GlyphMetrics does not call it; glyphs
// absent from the embedded table go through the proxy and 'M' fallbacks
// there or fail. The measuring sequence is the one the teacher's
// pkg/text/measure.go uses for its HTML text runs. ptPerEm
// converts the returned pixel-ish width/height (gg works in the font's
// native point size) to em.
func MeasureWithRasterizer(s string, fontPath string, fontSizePt, ptPerEm float64) (widthEm, heightEm float64, err error) {
	dc := gg.NewContext(1, 1)
	if loadErr := dc.LoadFontFace(fontPath, fontSizePt); loadErr != nil {
		return 0, 0, fmt.Errorf("loading font %s: %w", fontPath, loadErr)
	}
	w, h := dc.MeasureString(s)
	return mathutil.PtToEm(w, ptPerEm), mathutil.PtToEm(h, ptPerEm), nil
}
