package metrics

// MathAlphaVariant tags the style a Mathematical Alphanumeric Symbol
// (Unicode block U+1D400-U+1D7FF) encodes in its codepoint rather than in
// surrounding markup: \mathbb{A}, \mathfrak{A}, and \mathcal{A} each
// arrive as a distinct rune, not as 'A' plus a command.
type MathAlphaVariant struct {
	Bold         bool
	Italic       bool
	Script       bool
	Fraktur      bool
	DoubleStruck bool
	SansSerif    bool
	Monospace    bool
}

type mathAlphaLetterBlock struct {
	upperStart, lowerStart rune
	variant                MathAlphaVariant
}

// mathAlphaLetters covers the block's contiguous 26-letter runs. A few
// codepoints within these runs are reserved by Unicode in favor of
// pre-existing Letterlike Symbols (italic small h, several script and
// double-struck letters); those fall through as unfolded, same as any
// other glyph this table has no entry for.
var mathAlphaLetters = []mathAlphaLetterBlock{
	{0x1D400, 0x1D41A, MathAlphaVariant{Bold: true}},
	{0x1D434, 0x1D44E, MathAlphaVariant{Italic: true}},
	{0x1D468, 0x1D482, MathAlphaVariant{Bold: true, Italic: true}},
	{0x1D49C, 0x1D4B6, MathAlphaVariant{Script: true}},
	{0x1D4D0, 0x1D4EA, MathAlphaVariant{Bold: true, Script: true}},
	{0x1D504, 0x1D51E, MathAlphaVariant{Fraktur: true}},
	{0x1D538, 0x1D552, MathAlphaVariant{DoubleStruck: true}},
	{0x1D56C, 0x1D586, MathAlphaVariant{Bold: true, Fraktur: true}},
	{0x1D5A0, 0x1D5BA, MathAlphaVariant{SansSerif: true}},
	{0x1D5D4, 0x1D5EE, MathAlphaVariant{SansSerif: true, Bold: true}},
	{0x1D608, 0x1D622, MathAlphaVariant{SansSerif: true, Italic: true}},
	{0x1D63C, 0x1D656, MathAlphaVariant{SansSerif: true, Bold: true, Italic: true}},
	{0x1D670, 0x1D68A, MathAlphaVariant{Monospace: true}},
}

// mathAlphaReserved lists the reserved codepoints inside those runs.
var mathAlphaReserved = map[rune]bool{
	0x1D455: true,
	0x1D49D: true, 0x1D4A0: true, 0x1D4A1: true, 0x1D4A3: true, 0x1D4A4: true, 0x1D4A7: true, 0x1D4A8: true, 0x1D4AD: true,
	0x1D4BA: true, 0x1D4BC: true, 0x1D4C4: true,
	0x1D506: true, 0x1D50B: true, 0x1D50C: true, 0x1D515: true, 0x1D51D: true,
	0x1D53A: true, 0x1D53F: true, 0x1D545: true, 0x1D547: true, 0x1D548: true, 0x1D549: true, 0x1D551: true,
}

type mathAlphaDigitBlock struct {
	start   rune
	variant MathAlphaVariant
}

// mathAlphaDigits covers the block's five 10-digit runs.
var mathAlphaDigits = []mathAlphaDigitBlock{
	{0x1D7CE, MathAlphaVariant{Bold: true}},
	{0x1D7D8, MathAlphaVariant{DoubleStruck: true}},
	{0x1D7E2, MathAlphaVariant{SansSerif: true}},
	{0x1D7EC, MathAlphaVariant{SansSerif: true, Bold: true}},
	{0x1D7F6, MathAlphaVariant{Monospace: true}},
}

// FoldMathAlpha folds r, if it falls in the Mathematical Alphanumeric
// Symbols block, to its base ASCII letter or digit plus the variant it
// encodes. ok is false for anything outside the block (including its
// handful of reserved gaps), same as any other unmapped codepoint.
func FoldMathAlpha(r rune) (base rune, variant MathAlphaVariant, ok bool) {
	if mathAlphaReserved[r] {
		return 0, MathAlphaVariant{}, false
	}
	for _, blk := range mathAlphaLetters {
		if r >= blk.upperStart && r < blk.upperStart+26 {
			return 'A' + (r - blk.upperStart), blk.variant, true
		}
		if r >= blk.lowerStart && r < blk.lowerStart+26 {
			return 'a' + (r - blk.lowerStart), blk.variant, true
		}
	}
	for _, blk := range mathAlphaDigits {
		if r >= blk.start && r < blk.start+10 {
			return '0' + (r - blk.start), blk.variant, true
		}
	}
	return 0, MathAlphaVariant{}, false
}
