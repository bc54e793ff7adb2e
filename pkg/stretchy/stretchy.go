// Package stretchy composes over/under accents, arrows, and braces from
// named SVG path families rather than a single fixed glyph: single-path
// decorations (arrows, tildes) stretch one path to the accentee's width;
// multi-path decorations (braces, left-right arrows) fix their end pieces
// and flex-stretch a middle piece between them.
package stretchy

import "github.com/inkwell-labs/mathlayout/pkg/mathbox"

// Family names one of the four width-tiered path variants widehat,
// widecheck, and widetilde select between, keyed by the accentee's
// character count.
type Family int

const (
	FamilyNarrow Family = iota // 1 character
	FamilyShort                // 2-4 characters
	FamilyMedium               // 5-9 characters
	FamilyWide                 // 10+ characters
)

// SelectFamily picks a Family by counting runes in accentee (not bytes),
// matching the character-count rule multi-variant stretchy accents use.
func SelectFamily(accentee string) Family {
	n := len([]rune(accentee))
	switch {
	case n <= 1:
		return FamilyNarrow
	case n <= 4:
		return FamilyShort
	case n <= 9:
		return FamilyMedium
	default:
		return FamilyWide
	}
}

// pathName maps a decoration base name and Family to the concrete SVG
// path family name (e.g. "widehat" + FamilyShort -> "widehat2").
func pathName(base string, f Family) string {
	suffix := [...]string{"1", "2", "3", "4"}[f]
	return base + suffix
}

// MinWidth is the minimum viewBox width a stretched path may render at;
// below this the path would visually collapse.
const MinWidth = 0.5 // em

// PathBuilder renders a named path at a given width/height into a
// mathbox.Element; supplied by the caller (the rendering backend knows
// how to rasterize or emit SVG, stretchy only decides which path and at
// what size).
type PathBuilder func(name string, width, height float64) mathbox.Element

// BuildSinglePath composes a one-piece decoration (an arrow, tilde, or
// hat) stretched to at least max(accenteeWidth, MinWidth), aligned over
// (above=true) or under (above=false) the accentee.
func BuildSinglePath(base string, accentee mathbox.Element, above bool, height float64, build PathBuilder) *mathbox.Accent {
	w := accentee.Size().Width
	if w < MinWidth {
		w = MinWidth
	}
	family := SelectFamily(nameHint(accentee))
	name := pathName(base, family)
	path := build(name, w, height)

	var layout mathbox.Element
	if above {
		layout = mathbox.NewVBoxTop([]mathbox.VItem{
			{Elem: path},
			{Elem: accentee, KernBefore: 0},
		}, path.Size().Height+path.Size().Depth+accentee.Size().Height)
	} else {
		layout = mathbox.NewVBoxBottom([]mathbox.VItem{
			{Elem: accentee},
			{Elem: path, KernBefore: 0},
		}, path.Size().Height+path.Size().Depth+accentee.Size().Depth)
	}
	return mathbox.NewAccent(accentee, name, above, true, layout)
}

// nameHint recovers a string whose rune count approximates the visual
// width of accentee, for family selection when the caller has only an
// Element (not the original glyph run) in hand. Backends that still have
// the source text should call SelectFamily directly instead.
func nameHint(e mathbox.Element) string {
	if t, ok := e.(*mathbox.Text); ok {
		return t.Glyphs
	}
	return "xx" // unknown-width fallback: treat as a short, multi-char run
}

// MultiPiece is one fixed-width end piece of a multi-path decoration
// (brace's left/right tips, left-right arrow's heads).
type MultiPiece struct {
	Name  string
	Width float64
}

// BuildMultiPath composes a left+middle+right (brace) or left+right
// (double arrow, no middle) decoration as an HBox: fixed-width end
// pieces, with a middle piece flex-stretched to fill the remaining width
// down to accenteeWidth. If middleName is empty (the left-right-arrow
// case), a kern between left and right widens the row to accenteeWidth;
// the two pieces abut when accenteeWidth is no wider than both together.
func BuildMultiPath(left, right MultiPiece, middleName string, accenteeWidth, height float64, build PathBuilder) mathbox.Element {
	total := left.Width + right.Width
	if middleName == "" {
		w := accenteeWidth
		if w < total {
			w = total
		}
		gap := w - total
		return mathbox.SimpleHBox(
			build(left.Name, left.Width, height),
			mathbox.NewKern(gap),
			build(right.Name, right.Width, height),
		)
	}
	middleWidth := accenteeWidth - total
	if middleWidth < 0 {
		middleWidth = 0
	}
	return mathbox.SimpleHBox(
		build(left.Name, left.Width, height),
		build(middleName, middleWidth, height),
		build(right.Name, right.Width, height),
	)
}
