package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/inkwell-labs/mathlayout/pkg/mathbox"
)

func TestRenderDoesNotPanicWithoutAFontFile(t *testing.T) {
	p := NewPainter(100, 100, "/nonexistent/font.ttf", 10)
	p.Clear()
	tree := mathbox.NewLayoutTree(mathbox.SimpleHBox(
		mathbox.NewText("x", mathbox.TextStyle{SizeMult: 1}, mathbox.Dims{Width: 0.5, Height: 0.4}),
		mathbox.NewRule(0.4, 0.04, 0),
	))
	p.Render(tree, 10, 50)
	if p.Image() == nil {
		t.Fatalf("expected a non-nil image after rendering")
	}
}

func TestPaintRuleSkipsZeroSizedRule(t *testing.T) {
	p := NewPainter(10, 10, "", 10)
	p.Clear()
	// a zero-width rule must not panic or draw anything meaningful
	p.paint(mathbox.NewRule(0, 0, 0), 0, 0)
}

func TestPaintImageDoesNotPanicOnEmptyImage(t *testing.T) {
	p := NewPainter(20, 20, "", 10)
	p.Clear()
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	p.PaintImage(img, 0, 0, 1, 1)
}

func TestPaintImageDoesNotPanicOnSmallImage(t *testing.T) {
	p := NewPainter(40, 40, "", 10)
	p.Clear()
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{R: 255, A: 255})
	p.PaintImage(src, 5, 5, 1, 1)
	if p.Image() == nil {
		t.Fatalf("expected a non-nil canvas after painting an image")
	}
}
