// Package raster paints a mathbox.LayoutTree onto a fogleman/gg canvas,
// adapted from the teacher's pkg/render drawing primitives (Push/Pop
// save-state, DrawRectangle+Fill for rules, LoadFontFace+
// DrawStringAnchored for glyph runs) but walking a LayoutTree instead of
// a CSS box tree, and with none of its stray DEBUG fmt.Printf probes.
package raster

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/inkwell-labs/mathlayout/pkg/mathbox"
	"github.com/inkwell-labs/mathlayout/pkg/options"
)

// Painter draws a LayoutTree onto an RGBA canvas at a fixed point-per-em
// scale.
type Painter struct {
	dc          *gg.Context
	fontPath    string
	ptPerEm     float64
	lastFontKey string
}

// NewPainter creates a Painter over a fresh width x height canvas.
func NewPainter(width, height int, fontPath string, ptPerEm float64) *Painter {
	return &Painter{dc: gg.NewContext(width, height), fontPath: fontPath, ptPerEm: ptPerEm}
}

// NewPainterForImage creates a Painter that draws onto an existing RGBA
// image, mirroring the teacher's NewRendererForImage constructor.
func NewPainterForImage(target *image.RGBA, fontPath string, ptPerEm float64) *Painter {
	return &Painter{dc: gg.NewContextForRGBA(target), fontPath: fontPath, ptPerEm: ptPerEm}
}

func (p *Painter) loadFont(sizePt float64) {
	key := fmt.Sprintf("%s@%.2f", p.fontPath, sizePt)
	if key == p.lastFontKey {
		return
	}
	if err := p.dc.LoadFontFace(p.fontPath, sizePt); err == nil {
		p.lastFontKey = key
	}
}

// Clear fills the canvas with white, matching the teacher's default
// canvas background before any paint pass.
func (p *Painter) Clear() {
	p.dc.SetRGB(1, 1, 1)
	p.dc.Clear()
}

// Render walks tree and paints every placed element with its origin at
// (originX, originY) in pixels, treating 1 em as ptPerEm pixels.
func (p *Painter) Render(tree *mathbox.LayoutTree, originX, originY float64) {
	tree.Walk(func(pl mathbox.Placed) {
		x := originX + pl.X*p.ptPerEm
		y := originY - pl.Y*p.ptPerEm // mathbox Y is positive-up; gg is positive-down
		p.paint(pl.Elem, x, y)
	})
}

func (p *Painter) paint(e mathbox.Element, x, y float64) {
	switch v := e.(type) {
	case *mathbox.Text:
		p.paintText(v, x, y)
	case *mathbox.Rule:
		p.paintRule(v, x, y)
	case *mathbox.Path:
		p.paintPath(v, x, y)
	}
}

func (p *Painter) paintText(t *mathbox.Text, x, y float64) {
	sizePt := t.Style.SizeMult * p.ptPerEm
	if sizePt <= 0 {
		sizePt = p.ptPerEm
	}
	p.loadFont(sizePt)
	col := t.Style.Color
	p.dc.SetRGB255(int(col.R), int(col.G), int(col.B))
	p.dc.DrawStringAnchored(t.Glyphs, x, y, 0, 1)
}

func (p *Painter) paintRule(r *mathbox.Rule, x, y float64) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	h := r.Height * p.ptPerEm
	w := r.Width * p.ptPerEm
	p.dc.Push()
	p.dc.SetRGB(0, 0, 0)
	top := y - (r.Height+r.Shift)*p.ptPerEm // Shift is positive-up, like mathbox Y
	p.dc.DrawRectangle(x, top, w, h)
	p.dc.Fill()
	p.dc.Pop()
}

// paintPath draws a placeholder outline for a named stretchy/surd path;
// a production backend would rasterize the named SVG path data instead.
func (p *Painter) paintPath(path *mathbox.Path, x, y float64) {
	d := path.Size()
	w, h := d.Width*p.ptPerEm, (d.Height+d.Depth)*p.ptPerEm
	if w <= 0 || h <= 0 {
		return
	}
	p.dc.Push()
	p.dc.SetRGB(0, 0, 0)
	p.dc.SetLineWidth(1)
	p.dc.DrawRectangle(x, y-d.Height*p.ptPerEm, w, h)
	p.dc.Stroke()
	p.dc.Pop()
}

// PaintImage draws img scaled to fit widthEm x heightEm at (x, y)
// (top-left, in canvas pixels after the caller has already done the
// em-to-pixel conversion), the same Translate+Scale+DrawImage sequence
// the teacher's drawImage used for a CSS replaced element, minus its
// stray DEBUG prints. A LayoutTree has no image element of its own (the
// builder only reserves \includegraphics's box dimensions); callers that
// resolved pixels via mathpipe.Pipeline.LoadImage call this directly at
// the same (x, y) Walk gave the reserved Rule.
func (p *Painter) PaintImage(img image.Image, x, y, widthEm, heightEm float64) {
	bounds := img.Bounds()
	imgW, imgH := float64(bounds.Dx()), float64(bounds.Dy())
	if imgW <= 0 || imgH <= 0 {
		return
	}
	p.dc.Push()
	p.dc.Translate(x, y)
	p.dc.Scale(widthEm*p.ptPerEm/imgW, heightEm*p.ptPerEm/imgH)
	p.dc.DrawImage(img, 0, 0)
	p.dc.Pop()
}

// SavePNG writes the canvas to filename.
func (p *Painter) SavePNG(filename string) error {
	return p.dc.SavePNG(filename)
}

// Image returns the canvas's backing RGBA image.
func (p *Painter) Image() image.Image {
	return p.dc.Image()
}

// ColorFor resolves opts' current color to the RGB triple a Text node's
// style carries, so callers building a Text element outside pkg/builder
// (tests, tools) can stay consistent with how builder stamps color.
func ColorFor(opts *options.Options) (r, g, b uint8) {
	return opts.Color.R, opts.Color.G, opts.Color.B
}
