package gui

import (
	"testing"

	"github.com/inkwell-labs/mathlayout/pkg/ast"
	"github.com/inkwell-labs/mathlayout/pkg/mathpipe"
)

func TestNewViewerSetsCanvasDefaults(t *testing.T) {
	v := NewViewer(mathpipe.New(), func(string) (*ast.Node, error) { return nil, nil })
	if v.Width <= 0 || v.Height <= 0 {
		t.Fatalf("expected positive canvas defaults, got %dx%d", v.Width, v.Height)
	}
	if v.Options == nil {
		t.Fatalf("expected default options to be populated")
	}
	if v.PxPerEm <= 0 {
		t.Fatalf("expected a positive default PxPerEm, got %v", v.PxPerEm)
	}
}
