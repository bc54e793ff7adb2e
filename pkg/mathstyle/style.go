// Package mathstyle implements the style lattice: the eight TeX styles
// {Display, Text, Script, ScriptScript} x {normal, cramped}, their size
// indices/multipliers, and the deterministic sup/sub/fracNum/fracDen/cramp
// transitions. The enum-with-derivation-methods shape mirrors a small
// string-backed (here int-backed) CSS-style enum with a handful of Get*
// accessors, except here the "accessors" are the style transition rules
// fixed by TeX chapter 17.
package mathstyle

// Style is one of the eight TeX math styles.
type Style int

const (
	Display Style = iota
	DisplayCramped
	Text
	TextCramped
	Script
	ScriptCramped
	ScriptScript
	ScriptScriptCramped
)

// sizeIndex returns the 0..3 column used to select the σ/ξ metric record
// (0=display/text, 1=script, 2=scriptscript; a 4th slot exists for
// symmetry with the metric table's [0..3] style columns, though TeX
// itself folds display and text into column 0).
func (s Style) sizeIndex() int {
	switch s {
	case Display, DisplayCramped, Text, TextCramped:
		return 0
	case Script, ScriptCramped:
		return 1
	default:
		return 2
	}
}

// SizeMultiplier is the size multiplier relative to the current base
// size: display and text are 1.0, script ≈0.7, scriptscript ≈0.5.
func (s Style) SizeMultiplier() float64 {
	switch s {
	case Display, DisplayCramped, Text, TextCramped:
		return 1.0
	case Script, ScriptCramped:
		return 0.7
	default:
		return 0.5
	}
}

// IsDisplay reports whether s is one of the two display-style variants.
func (s Style) IsDisplay() bool {
	return s == Display || s == DisplayCramped
}

// IsCramped reports whether s is a cramped variant. Cramped styles never
// raise superscripts; used inside radicands and fraction denominators.
func (s Style) IsCramped() bool {
	switch s {
	case DisplayCramped, TextCramped, ScriptCramped, ScriptScriptCramped:
		return true
	}
	return false
}

// StyleIndex returns the 0..3 metric-table column for this style,
// independent of cramping. This is distinct from the font-size-driven
// selector (sizeIndex = 0 if base size >= 5; 1 if >= 3; else 2): that one
// picks a column from the absolute point size, while StyleIndex picks the
// column from the style itself. Display and Text share column 0 as in
// TeX's param arrays.
func (s Style) StyleIndex() int { return s.sizeIndex() }

func crampedOf(s Style) Style {
	switch s {
	case Display:
		return DisplayCramped
	case Text:
		return TextCramped
	case Script:
		return ScriptCramped
	case ScriptScript:
		return ScriptScriptCramped
	}
	return s // already cramped
}

// Cramp returns the cramped twin of s (idempotent).
func (s Style) Cramp() Style { return crampedOf(s) }

// Sup returns the style used for a superscript built in style s.
// TeX rule 18a: display/text -> script; script/scriptscript -> scriptscript;
// cramping of s propagates to the result.
func (s Style) Sup() Style {
	cramped := s.IsCramped()
	var base Style
	switch s {
	case Display, DisplayCramped, Text, TextCramped:
		base = Script
	default:
		base = ScriptScript
	}
	if cramped {
		return crampedOf(base)
	}
	return base
}

// Sub returns the style used for a subscript built in style s. Subscripts
// are always cramped (TeX rule 18b).
func (s Style) Sub() Style {
	return crampedOf(s.Sup())
}

// FracNum returns the style used for a fraction's numerator built in style
// s (TeX rule 15a): one step smaller than s, keeping s's cramping.
func (s Style) FracNum() Style {
	cramped := s.IsCramped()
	var base Style
	switch s {
	case Display, DisplayCramped:
		base = Text
	case Text, TextCramped:
		base = Script
	default:
		base = ScriptScript
	}
	if cramped {
		return crampedOf(base)
	}
	return base
}

// FracDen returns the style used for a fraction's denominator built in
// style s (TeX rule 15b): one step smaller than s and always cramped.
func (s Style) FracDen() Style {
	return crampedOf(s.FracNum())
}

// String returns the style's canonical name (no "Cramped" suffix hidden:
// cramped variants render e.g. "textstyle-cramped").
func (s Style) String() string {
	switch s {
	case Display:
		return "displaystyle"
	case DisplayCramped:
		return "displaystyle-cramped"
	case Text:
		return "textstyle"
	case TextCramped:
		return "textstyle-cramped"
	case Script:
		return "scriptstyle"
	case ScriptCramped:
		return "scriptstyle-cramped"
	case ScriptScript:
		return "scriptscriptstyle"
	case ScriptScriptCramped:
		return "scriptscriptstyle-cramped"
	}
	return "unknown"
}
