// Package mathbox implements the generic layout primitives: HBox, the
// three VBox positioning modes, Text, Rule, Path, Kern, Phantom, plus the
// optional semantic variants that wrap a precomputed primitive layout.
// This generalizes an HTML-box-model mutable-Box/immutable-Fragment pair
// into a single always-immutable Element tree: every constructor below
// computes and freezes width/height/depth at creation time, and nothing
// mutates a sealed Element afterward.
package mathbox

import "github.com/inkwell-labs/mathlayout/pkg/options"

// Dims is the (width, height, depth) triple every Element carries
// (all three are non-negative once construction completes).
type Dims struct {
	Width, Height, Depth float64
}

// Element is any node of the layout tree. Every constructor in this
// package returns a value already satisfying Element; there is no
// in-place mutation after construction.
type Element interface {
	Size() Dims
}

// TextStyle is the subset of Options baked into a Text element at
// construction time.
type TextStyle struct {
	SizeMult    float64
	Font        string
	FontVariant string
	Color       options.Color
}

// Text is a run of glyphs rendered in a single style.
type Text struct {
	Glyphs string
	Style  TextStyle
	dims   Dims
}

// NewText constructs a Text element with precomputed dims (the caller —
// pkg/builder, via pkg/metrics — supplies width/height/depth since Text
// has no way to measure itself without a font table).
func NewText(glyphs string, style TextStyle, dims Dims) *Text {
	return &Text{Glyphs: glyphs, Style: style, dims: dims}
}

func (t *Text) Size() Dims { return t.dims }

// Rule is a filled rectangle: width x height, shifted vertically by Shift
// (positive raises the rule above the baseline).
type Rule struct {
	Width, Height, Shift float64
}

func NewRule(width, height, shift float64) *Rule {
	return &Rule{Width: width, Height: height, Shift: shift}
}

func (r *Rule) Size() Dims {
	if r.Shift >= 0 {
		return Dims{Width: r.Width, Height: r.Height + r.Shift, Depth: 0}
	}
	return Dims{Width: r.Width, Height: r.Height, Depth: -r.Shift}
}

// Path is a named SVG path (surd, arrows, braces, ...) with its own
// intrinsic box; Params carries backend-specific rendering hints (e.g.
// stretch factors) that do not affect layout.
type Path struct {
	Name   string
	Params map[string]float64
	dims   Dims
}

func NewPath(name string, params map[string]float64, dims Dims) *Path {
	return &Path{Name: name, Params: params, dims: dims}
}

func (p *Path) Size() Dims { return p.dims }

// Kern is a horizontal gap: an Element with zero height and depth used
// as an ordinary HBox child.
type Kern struct {
	Width float64
}

func NewKern(width float64) *Kern { return &Kern{Width: width} }

func (k *Kern) Size() Dims { return Dims{Width: k.Width} }

// Phantom occupies Inner's box but produces no ink; backends skip
// painting it while the layout tree still reserves its space.
type Phantom struct {
	Inner Element
}

func NewPhantom(inner Element) *Phantom { return &Phantom{Inner: inner} }

func (p *Phantom) Size() Dims { return p.Inner.Size() }

// HChild is one child of an HBox: the element plus its vertical shift
// from the HBox's own baseline (positive raises it). Most children have
// Shift == 0; a nonzero shift is how e.g. a raised fraction or an
// axis-centered delimiter participates in an enclosing horizontal list
// without needing its own VBox wrapper.
type HChild struct {
	Elem  Element
	Shift float64
}

// HBox is a horizontal concatenation of children sharing one baseline,
// each offset vertically by its own Shift.
type HBox struct {
	Children []HChild
	dims     Dims
}

// NewHBox concatenates children left to right and computes dims per
// width = Σ child.width; height = max child (height + shift); depth =
// max child (depth - shift).
func NewHBox(children []HChild) *HBox {
	var width, height, depth float64
	for _, c := range children {
		d := c.Elem.Size()
		width += d.Width
		if h := d.Height + c.Shift; h > height {
			height = h
		}
		if dp := d.Depth - c.Shift; dp > depth {
			depth = dp
		}
	}
	return &HBox{Children: children, dims: Dims{Width: width, Height: height, Depth: depth}}
}

// SimpleHBox is a convenience constructor for children with no shift.
func SimpleHBox(children ...Element) *HBox {
	hc := make([]HChild, len(children))
	for i, e := range children {
		hc[i] = HChild{Elem: e}
	}
	return NewHBox(hc)
}

func (h *HBox) Size() Dims { return h.dims }
