// Package gui renders a mathbox.LayoutTree directly onto a fyne/v2
// canvas: every Placed element becomes one canvas.Text, canvas.Line, or
// canvas.Rectangle primitive inside a container.NewWithoutLayout, at the
// absolute position LayoutTree.Walk already computed — no intermediate
// raster image, unlike pkg/backend/raster. The window shell (entry box
// on top, status label on bottom, content filling the middle) is the
// teacher's cmd/l14 browser-window shape, with the URL bar and HTTP
// fetch swapped for a caller-supplied expression parser.
package gui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/inkwell-labs/mathlayout/pkg/ast"
	"github.com/inkwell-labs/mathlayout/pkg/mathbox"
	"github.com/inkwell-labs/mathlayout/pkg/mathpipe"
	"github.com/inkwell-labs/mathlayout/pkg/options"
)

// ParseFunc turns raw markup into an AST the pipeline can build. Parsing
// itself is out of core (see pkg/ast's package doc); a Viewer just needs
// something that produces a tree from a string.
type ParseFunc func(source string) (*ast.Node, error)

// Viewer is a minimal fyne window for interactively typesetting math.
type Viewer struct {
	Pipeline *mathpipe.Pipeline
	Parse    ParseFunc
	Options  *options.Options
	// PxPerEm converts the LayoutTree's em-relative geometry to canvas
	// pixels; canvas.Text's TextSize is derived from it too.
	PxPerEm float64
	Width   int
	Height  int
	Title   string
}

// NewViewer returns a Viewer with sane canvas defaults that resolves
// input through parse.
func NewViewer(pipeline *mathpipe.Pipeline, parse ParseFunc) *Viewer {
	return &Viewer{
		Pipeline: pipeline,
		Parse:    parse,
		Options:  options.Default(),
		PxPerEm:  40,
		Width:    1024,
		Height:   300,
		Title:    "mathlayout viewer",
	}
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run() {
	a := app.New()
	w := a.NewWindow(v.Title)
	w.Resize(fyne.NewSize(float32(v.Width), float32(v.Height)))

	formula := container.NewWithoutLayout()
	status := widget.NewLabel("Enter a math expression and press Enter")

	entry := widget.NewEntry()
	entry.SetPlaceHolder(`x^2 + \frac{1}{2}`)
	entry.OnSubmitted = func(source string) {
		status.SetText("Typesetting...")
		node, perr := v.Parse(source)
		if perr != nil {
			status.SetText("Parse error: " + perr.Error())
			return
		}
		tree, berr := v.Pipeline.Build(node, v.Options)
		if berr != nil {
			status.SetText("Layout error: " + berr.UserMessage())
			return
		}

		formula.Objects = nil
		baseX, baseY := float32(20), float32(v.Height)/2
		tree.Walk(func(p mathbox.Placed) {
			obj := v.canvasObjectFor(p)
			if obj == nil {
				return
			}
			size := p.Elem.Size()
			x := baseX + float32(p.X)*float32(v.PxPerEm)
			// mathbox Y is positive-up with the baseline at 0; fyne Y
			// grows down, so a box's top-left is baseY - (y + height).
			y := baseY - float32(p.Y+size.Height)*float32(v.PxPerEm)
			obj.Move(fyne.NewPos(x, y))
			obj.Resize(fyne.NewSize(
				float32(size.Width)*float32(v.PxPerEm),
				float32(size.Height+size.Depth)*float32(v.PxPerEm),
			))
			formula.Add(obj)
		})
		formula.Refresh()

		status.SetText(source)
		w.SetTitle(fmt.Sprintf("%s — %s", v.Title, source))
	}

	topBar := container.NewBorder(nil, nil, nil, nil, entry)
	content := container.NewBorder(topBar, status, nil, nil, formula)
	w.SetContent(content)
	w.Canvas().Focus(entry)

	w.ShowAndRun()
}

// canvasObjectFor picks the fyne primitive matching p's element kind;
// unrecognized elements (Kern, Phantom, the semantic wrappers that defer
// to their own Layout field during Walk) contribute no visible object.
func (v *Viewer) canvasObjectFor(p mathbox.Placed) fyne.CanvasObject {
	switch e := p.Elem.(type) {
	case *mathbox.Text:
		t := canvas.NewText(e.Glyphs, color.RGBA{R: e.Style.Color.R, G: e.Style.Color.G, B: e.Style.Color.B, A: 0xff})
		t.TextSize = float32(e.Style.SizeMult) * float32(v.PxPerEm)
		return t
	case *mathbox.Rule:
		if e.Width <= 0 || e.Height <= 0 {
			return nil
		}
		return canvas.NewRectangle(color.Black)
	case *mathbox.Path:
		line := canvas.NewLine(color.Black)
		line.StrokeWidth = 1
		return line
	default:
		return nil
	}
}
