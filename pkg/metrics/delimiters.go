package metrics

import "fmt"

// DelimiterGlyph is the (height+depth, width) span of one candidate in a
// delimiter's growth sequence, keyed by symbol and tier: the same
// embedded-table approach fontTable takes for ordinary glyphs, sized here
// to cover the \left/\right delimiter set instead of a running-text
// font.
type DelimiterGlyph struct {
	HeightPlusDepth float64
	Width           float64
}

// delimiterSmall holds each symbol's current-font (un-styled) span; the
// caller scales it by the enclosing style's size multiplier, exactly as
// GlyphMetrics' caller scales an ordinary glyph by FontSizeEm.
var delimiterSmall = map[string]DelimiterGlyph{
	"(":      {HeightPlusDepth: 1.00, Width: 0.389},
	")":      {HeightPlusDepth: 1.00, Width: 0.389},
	"[":      {HeightPlusDepth: 1.00, Width: 0.417},
	"]":      {HeightPlusDepth: 1.00, Width: 0.417},
	"{":      {HeightPlusDepth: 1.00, Width: 0.583},
	"}":      {HeightPlusDepth: 1.00, Width: 0.583},
	"|":      {HeightPlusDepth: 1.00, Width: 0.278},
	"‖":      {HeightPlusDepth: 1.00, Width: 0.472},
	"⌈":      {HeightPlusDepth: 1.00, Width: 0.417},
	"⌉":      {HeightPlusDepth: 1.00, Width: 0.417},
	"⌊":      {HeightPlusDepth: 1.00, Width: 0.417},
	"⌋":      {HeightPlusDepth: 1.00, Width: 0.417},
	`\surd`:  {HeightPlusDepth: 1.00, Width: 0.6},
	"↑":      {HeightPlusDepth: 0.888, Width: 0.667},
	"↓":      {HeightPlusDepth: 0.888, Width: 0.667},
	"↕":      {HeightPlusDepth: 0.888, Width: 0.667},
}

// delimiterLarge holds the four pre-drawn Size<N>-Regular tiers for each
// symbol that can grow via STACK_LARGE, each 1.5x the previous tier; the
// first two tiers match the Size1/Size2-Regular paren spans in fontTable
// (1.2 and 1.8), while fontTable's Size3/Size4 parens span 2.4 and 3.4.
var delimiterLarge = map[string][4]DelimiterGlyph{
	"(":     {{1.20, 0.472}, {1.80, 0.597}, {2.70, 0.736}, {4.05, 0.875}},
	")":     {{1.20, 0.472}, {1.80, 0.597}, {2.70, 0.736}, {4.05, 0.875}},
	"[":     {{1.20, 0.472}, {1.80, 0.597}, {2.70, 0.736}, {4.05, 0.875}},
	"]":     {{1.20, 0.472}, {1.80, 0.597}, {2.70, 0.736}, {4.05, 0.875}},
	"{":     {{1.20, 0.667}, {1.80, 0.667}, {2.70, 0.667}, {4.05, 0.667}},
	"}":     {{1.20, 0.667}, {1.80, 0.667}, {2.70, 0.667}, {4.05, 0.667}},
	"|":     {{1.20, 0.278}, {1.80, 0.278}, {2.70, 0.278}, {4.05, 0.278}},
	"⌈":     {{1.20, 0.417}, {1.80, 0.417}, {2.70, 0.417}, {4.05, 0.417}},
	"⌉":     {{1.20, 0.417}, {1.80, 0.417}, {2.70, 0.417}, {4.05, 0.417}},
	"⌊":     {{1.20, 0.417}, {1.80, 0.417}, {2.70, 0.417}, {4.05, 0.417}},
	"⌋":     {{1.20, 0.417}, {1.80, 0.417}, {2.70, 0.417}, {4.05, 0.417}},
	`\surd`: {{1.25, 0.75}, {1.90, 0.95}, {2.85, 1.15}, {4.25, 1.35}},
}

// DelimiterSmallSize returns symbol's unstyled (small) glyph span.
func DelimiterSmallSize(symbol string) (DelimiterGlyph, bool) {
	g, ok := delimiterSmall[symbol]
	return g, ok
}

// DelimiterLargeSize returns symbol's pre-drawn Size<tier>-Regular glyph
// span, tier in 1..4.
func DelimiterLargeSize(symbol string, tier int) (DelimiterGlyph, bool) {
	tiers, ok := delimiterLarge[symbol]
	if !ok || tier < 1 || tier > 4 {
		return DelimiterGlyph{}, false
	}
	return tiers[tier-1], true
}

// DelimiterPathName names the SVG path piece a small or large delimiter
// candidate would be painted from: "sqrtMain"/"sqrtSize<N>" for the surd,
// "<symbol>.small"/"<symbol>.size<N>" for everything else. Backends read
// this only as an opaque identifier (pkg/backend/raster paints a generic
// boxed placeholder for any Path regardless of name); it exists so two
// different delimiters never collide on the same painted name.
func DelimiterPathName(symbol string, large bool, tier int) string {
	base := "sqrt"
	if symbol != `\surd` {
		base = symbolKey(symbol)
	}
	if !large {
		if symbol == `\surd` {
			return base + "Main"
		}
		return base + ".small"
	}
	if symbol == `\surd` {
		return fmt.Sprintf("%sSize%d", base, tier)
	}
	return fmt.Sprintf("%s.size%d", base, tier)
}

// symbolKey maps a delimiter rune to a short ASCII path-name fragment,
// since raw brackets/braces/Unicode arrows are awkward inside a path
// identifier.
func symbolKey(symbol string) string {
	switch symbol {
	case "(":
		return "paren-l"
	case ")":
		return "paren-r"
	case "[":
		return "brack-l"
	case "]":
		return "brack-r"
	case "{":
		return "brace-l"
	case "}":
		return "brace-r"
	case "|":
		return "vert"
	case "‖":
		return "Vert"
	case "⌈":
		return "ceil-l"
	case "⌉":
		return "ceil-r"
	case "⌊":
		return "floor-l"
	case "⌋":
		return "floor-r"
	case "↑":
		return "uparrow"
	case "↓":
		return "downarrow"
	case "↕":
		return "updownarrow"
	default:
		return "delim"
	}
}

// DelimiterAssemblyPiece is one fixed or repeatable piece of a stacked
// delimiter assembly, with its own span and painted width.
type DelimiterAssemblyPiece struct {
	Name            string
	HeightPlusDepth float64
	Width           float64
}

// DelimiterAssemblyTable names and sizes the top/middle/bottom/repeat
// pieces a symbol stacks from when no single glyph is tall enough.
type DelimiterAssemblyTable struct {
	Top, Bottom, Repeat DelimiterAssemblyPiece
	Middle              DelimiterAssemblyPiece
	HasMiddle           bool
}

// delimiterAssembly holds the stacked-piece set for every symbol that can
// grow via STACK_ALWAYS/STACK_LARGE, following classic TeX var_delimiter:
// braces get a top, bottom, middle and a thin repeat rule; parens/
// brackets/bars/surd get a top, bottom, and repeat rule with no middle.
var delimiterAssembly = map[string]DelimiterAssemblyTable{
	"(": {Top: piece("paren-l.top", 0.35, 0.472), Bottom: piece("paren-l.bot", 0.35, 0.472), Repeat: piece("paren-l.rep", 0.30, 0.472)},
	")": {Top: piece("paren-r.top", 0.35, 0.472), Bottom: piece("paren-r.bot", 0.35, 0.472), Repeat: piece("paren-r.rep", 0.30, 0.472)},
	"[": {Top: piece("brack-l.top", 0.30, 0.417), Bottom: piece("brack-l.bot", 0.30, 0.417), Repeat: piece("brack-l.rep", 0.30, 0.417)},
	"]": {Top: piece("brack-r.top", 0.30, 0.417), Bottom: piece("brack-r.bot", 0.30, 0.417), Repeat: piece("brack-r.rep", 0.30, 0.417)},
	"{": {Top: piece("brace-l.top", 0.30, 0.667), Bottom: piece("brace-l.bot", 0.30, 0.667), Middle: piece("brace-l.mid", 0.30, 0.667), Repeat: piece("brace-l.rep", 0.25, 0.667), HasMiddle: true},
	"}": {Top: piece("brace-r.top", 0.30, 0.667), Bottom: piece("brace-r.bot", 0.30, 0.667), Middle: piece("brace-r.mid", 0.30, 0.667), Repeat: piece("brace-r.rep", 0.25, 0.667), HasMiddle: true},
	"|": {Top: piece("vert.top", 0.30, 0.278), Bottom: piece("vert.bot", 0.30, 0.278), Repeat: piece("vert.rep", 0.30, 0.278)},
	"⌈": {Top: piece("ceil-l.top", 0.30, 0.417), Bottom: piece("ceil-l.bot", 0.30, 0.417), Repeat: piece("ceil-l.rep", 0.30, 0.417)},
	"⌉": {Top: piece("ceil-r.top", 0.30, 0.417), Bottom: piece("ceil-r.bot", 0.30, 0.417), Repeat: piece("ceil-r.rep", 0.30, 0.417)},
	"⌊": {Top: piece("floor-l.top", 0.30, 0.417), Bottom: piece("floor-l.bot", 0.30, 0.417), Repeat: piece("floor-l.rep", 0.30, 0.417)},
	"⌋": {Top: piece("floor-r.top", 0.30, 0.417), Bottom: piece("floor-r.bot", 0.30, 0.417), Repeat: piece("floor-r.rep", 0.30, 0.417)},
	`\surd`: {Top: piece("sqrtTop", 0.35, 0.75), Bottom: piece("sqrtBot", 0.35, 0.75), Repeat: piece("sqrtRep", 0.35, 0.75)},
}

func piece(name string, heightPlusDepth, width float64) DelimiterAssemblyPiece {
	return DelimiterAssemblyPiece{Name: name, HeightPlusDepth: heightPlusDepth, Width: width}
}

// DelimiterAssemblyFor returns symbol's stacked-piece table, if it has
// one (STACK_NEVER symbols never reach Assemble since their sequence
// has no trailing Stack step).
func DelimiterAssemblyFor(symbol string) (DelimiterAssemblyTable, bool) {
	a, ok := delimiterAssembly[symbol]
	return a, ok
}
