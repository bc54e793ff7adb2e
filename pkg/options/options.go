// Package options implements the immutable per-node rendering context:
// style, base size, color, font selection, sizing limits, and the trust
// flag. Every derivation returns a fresh value rather than mutating in
// place, in the spirit of a value-ish CSS style property bag, but
// enforced by construction: Options has no exported mutator, only
// With*/having* methods that return a copy.
package options

import "github.com/inkwell-labs/mathlayout/pkg/mathstyle"

// FontShape is the font-shape axis (roman/italic), orthogonal to weight.
type FontShape int

const (
	ShapeUpright FontShape = iota
	ShapeItalic
)

// FontWeight narrows a CSS-style weight axis to the two weights math
// typesetting actually varies.
type FontWeight int

const (
	WeightNormal FontWeight = iota
	WeightBold
)

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

// Black is the default text color.
var Black = Color{0, 0, 0}

// Options is the immutable context threaded through every builder call.
// Copy semantics: Go structs copy by value, so every having*/with*
// method below can build its result with `o := *opt; o.Field = x; return &o`
// without aliasing the caller's Options.
type Options struct {
	Style    mathstyle.Style
	BaseSize float64 // pt, the document's nominal text size (TeX's \textfont size)
	Color    Color

	FontFamily string
	FontWeight FontWeight
	FontShape  FontShape

	MinRuleThickness float64 // em, CSS's math-style min rule thickness floor
	MaxSize          float64 // em, delimiter/rule clamp ceiling before reporting overflow
	MaxExpand        float64 // multiplier ceiling for \stretchy expansion

	// Trust gates commands that would emit a URL, raw id, class, style,
	// or data attribute. Defaults deny (nil predicate).
	Trust func(command string) bool

	// Trace is carried with the other options but nothing reads it;
	// pkg/builder's per-node debug logging is switched on through
	// builder.Builder.Trace (or mathpipe.Pipeline.Trace) instead.
	Trace bool
}

// Default returns the root Options: displaystyle, 10pt base size, black,
// upright roman, default trust policy (deny everything).
func Default() *Options {
	return &Options{
		Style:            mathstyle.Display,
		BaseSize:         10.0,
		Color:            Black,
		FontFamily:       "Main",
		FontWeight:       WeightNormal,
		FontShape:        ShapeUpright,
		MinRuleThickness: 0,
		MaxSize:          1000,
		MaxExpand:        1000,
		Trust:            nil,
	}
}

// HavingStyle returns a copy of o with Style replaced.
func (o *Options) HavingStyle(s mathstyle.Style) *Options {
	c := *o
	c.Style = s
	return &c
}

// HavingBaseStyle returns a copy of o whose Style is reset to s and whose
// size tracking resets to that style's own base (used when entering a
// \displaystyle/\textstyle/... override node).
func (o *Options) HavingBaseStyle(s mathstyle.Style) *Options {
	return o.HavingStyle(s)
}

// HavingBaseSizing returns a copy of o with the style reset to its
// un-scripted form (size multiplier 1) at the current base size, used by
// \sizing nodes that establish a new absolute size rather than a relative
// style change.
func (o *Options) HavingBaseSizing() *Options {
	c := *o
	switch {
	case o.Style.IsCramped():
		c.Style = mathstyle.TextCramped
	default:
		c.Style = mathstyle.Text
	}
	return &c
}

// WithFont returns a copy of o with FontFamily replaced.
func (o *Options) WithFont(family string) *Options {
	c := *o
	c.FontFamily = family
	return &c
}

// WithColor returns a copy of o with Color replaced.
func (o *Options) WithColor(col Color) *Options {
	c := *o
	c.Color = col
	return &c
}

// WithWeight returns a copy of o with FontWeight replaced.
func (o *Options) WithWeight(w FontWeight) *Options {
	c := *o
	c.FontWeight = w
	return &c
}

// WithShape returns a copy of o with FontShape replaced.
func (o *Options) WithShape(sh FontShape) *Options {
	c := *o
	c.FontShape = sh
	return &c
}

// WithBaseSize returns a copy of o with BaseSize replaced (pt).
func (o *Options) WithBaseSize(pt float64) *Options {
	c := *o
	c.BaseSize = pt
	return &c
}

// SizingClasses reports the CSS-style size-change classes between o and
// previous (used by the HTML backend to emit size-up-N/size-down-N
// classes, mirroring a CSS size-change-class concept): positive when
// o is larger, negative when smaller, zero when unchanged.
func (o *Options) SizingClasses(previous *Options) int {
	if previous == nil {
		return 0
	}
	cur := o.Style.SizeMultiplier() * o.BaseSize
	prev := previous.Style.SizeMultiplier() * previous.BaseSize
	switch {
	case cur > prev:
		return 1
	case cur < prev:
		return -1
	default:
		return 0
	}
}

// FontSizeEm returns the effective font size in em relative to the
// document root (i.e. the style's size multiplier; BaseSize itself is
// the root em-to-pt conversion, not a per-node multiplier).
func (o *Options) FontSizeEm() float64 {
	return o.Style.SizeMultiplier()
}

// IsTrusted reports whether command is allowed to emit its side effect.
// A nil predicate denies everything.
func (o *Options) IsTrusted(command string) bool {
	if o.Trust == nil {
		return false
	}
	return o.Trust(command)
}
