package mathbox

// Anchor selects one of the three VBox positioning modes a vertical
// math stack needs: anchored from the top, from the bottom, or with
// each child shifted individually.
type Anchor int

const (
	// AnchorTop: the VBox's baseline sits Amount below the top of the
	// stacked children.
	AnchorTop Anchor = iota
	// AnchorBottom: the VBox's baseline sits Amount above the bottom of
	// the stacked children.
	AnchorBottom
	// AnchorIndividual: every child carries its own Shift from the
	// VBox's baseline; there is no single "amount".
	AnchorIndividual
)

// VItem is one child of a VBox. Items are laid out top-to-bottom in the
// order given; KernBefore inserts an explicit vertical gap between this
// item's top edge and the previous item's bottom edge. Shift is only meaningful
// under AnchorIndividual.
type VItem struct {
	Elem       Element
	KernBefore float64
	Shift      float64
}

// VBox is a vertical stack of children. AxisRef records the style's
// axisHeight at construction time so axis-centered consumers (delimiter
// stacks, fraction bars) can recover it without re-deriving style state.
type VBox struct {
	Items   []VItem
	Anchor  Anchor
	Amount  float64
	AxisRef *float64
	dims    Dims
}

// span is the total vertical extent (height+depth) of the stacked
// children plus the inter-child kerns — the quantity VBox.Height+VBox.Depth
// must equal.
func span(items []VItem) float64 {
	var total float64
	for _, it := range items {
		d := it.Elem.Size()
		total += it.KernBefore + d.Height + d.Depth
	}
	return total
}

// NewVBoxTop builds a VBox whose baseline is `amount` below the top of
// the stack (AnchorTop).
func NewVBoxTop(items []VItem, amount float64) *VBox {
	total := span(items)
	depth := total - amount
	if depth < 0 {
		depth = 0
	}
	return &VBox{Items: items, Anchor: AnchorTop, Amount: amount,
		dims: Dims{Width: maxWidth(items), Height: amount, Depth: depth}}
}

// NewVBoxBottom builds a VBox whose baseline is `amount` above the
// bottom of the stack (AnchorBottom).
func NewVBoxBottom(items []VItem, amount float64) *VBox {
	total := span(items)
	height := total - amount
	if height < 0 {
		height = 0
	}
	return &VBox{Items: items, Anchor: AnchorBottom, Amount: amount,
		dims: Dims{Width: maxWidth(items), Height: height, Depth: amount}}
}

// NewVBoxIndividual builds a VBox where every item supplies its own
// Shift from the VBox's baseline (AnchorIndividual).
func NewVBoxIndividual(items []VItem) *VBox {
	var height, depth float64
	for _, it := range items {
		d := it.Elem.Size()
		if h := it.Shift + d.Height; h > height {
			height = h
		}
		if dp := d.Depth - it.Shift; dp > depth {
			depth = dp
		}
	}
	return &VBox{Items: items, Anchor: AnchorIndividual,
		dims: Dims{Width: maxWidth(items), Height: height, Depth: depth}}
}

// WithAxis attaches the style's axisHeight to v and returns v, for
// callers that need to recover it later (delimiter centering).
func (v *VBox) WithAxis(axisHeight float64) *VBox {
	a := axisHeight
	v.AxisRef = &a
	return v
}

func maxWidth(items []VItem) float64 {
	var w float64
	for _, it := range items {
		if d := it.Elem.Size().Width; d > w {
			w = d
		}
	}
	return w
}

func (v *VBox) Size() Dims { return v.dims }

// ItemOffsets returns, for each item in order, the y-offset (in em,
// positive up) of that item's own baseline relative to the VBox's
// baseline. Backends use this to place children absolutely.
func (v *VBox) ItemOffsets() []float64 {
	offsets := make([]float64, len(v.Items))
	if v.Anchor == AnchorIndividual {
		for i, it := range v.Items {
			offsets[i] = it.Shift
		}
		return offsets
	}
	// Top-to-bottom edge tracking: cursor is the running top edge,
	// measured downward (positive) from the stack's own top.
	var cursor float64
	for i, it := range v.Items {
		cursor += it.KernBefore
		d := it.Elem.Size()
		baselineFromTop := cursor + d.Height
		offsets[i] = v.dims.Height - baselineFromTop
		cursor += d.Height + d.Depth
	}
	return offsets
}
