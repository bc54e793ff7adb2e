package mathbox

// Placed pairs an Element with its absolute position relative to the
// layout tree's own origin (the root's baseline at x=0, y=0; x grows
// right, y grows up).
type Placed struct {
	Elem Element
	X, Y float64
}

// LayoutTree wraps a root Element with the walk/measure operations
// backends need. It never mutates the tree it wraps; Walk and Dimensions
// are pure functions of the frozen Element graph.
type LayoutTree struct {
	Root Element
}

// NewLayoutTree wraps root.
func NewLayoutTree(root Element) *LayoutTree {
	return &LayoutTree{Root: root}
}

// Dimensions returns the root element's own box.
func (t *LayoutTree) Dimensions() Dims {
	return t.Root.Size()
}

// Walk performs a depth-first, pre-order traversal of the tree, invoking
// visit once per element with its absolute position. The root is visited
// first at (0, 0).
func (t *LayoutTree) Walk(visit func(Placed)) {
	walkElement(t.Root, 0, 0, visit)
}

func walkElement(e Element, x, y float64, visit func(Placed)) {
	visit(Placed{Elem: e, X: x, Y: y})
	switch v := e.(type) {
	case *HBox:
		cursor := x
		for _, c := range v.Children {
			walkElement(c.Elem, cursor, y+c.Shift, visit)
			cursor += c.Elem.Size().Width
		}
	case *VBox:
		offsets := v.ItemOffsets()
		for i, it := range v.Items {
			walkElement(it.Elem, x, y+offsets[i], visit)
		}
	case *Phantom:
		walkElement(v.Inner, x, y, visit)
	case *Fraction:
		walkElement(v.Layout, x, y, visit)
	case *Scripts:
		walkElement(v.Layout, x, y, visit)
	case *Radical:
		walkElement(v.Layout, x, y, visit)
	case *Delimited:
		walkElement(v.Layout, x, y, visit)
	case *LargeOp:
		walkElement(v.Layout, x, y, visit)
	case *Accent:
		walkElement(v.Layout, x, y, visit)
	case *Array:
		walkElement(v.Layout, x, y, visit)
	}
}

// Collect runs Walk and returns every visited node in traversal order,
// for callers (tests, the geometry-diff harness) that want a slice
// rather than a callback.
func (t *LayoutTree) Collect() []Placed {
	var out []Placed
	t.Walk(func(p Placed) { out = append(out, p) })
	return out
}
