package mathpipe

import (
	"encoding/base64"
	"testing"

	"github.com/inkwell-labs/mathlayout/pkg/ast"
	"github.com/inkwell-labs/mathlayout/pkg/builder"
	"github.com/inkwell-labs/mathlayout/pkg/options"
)

func TestBuildProducesNonZeroLayout(t *testing.T) {
	p := New()
	n := &ast.Node{Kind: ast.KindOrd, Mode: ast.Math, Text: "x"}
	tree, err := p.Build(n, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Dimensions().Width <= 0 {
		t.Fatalf("expected positive width, got %v", tree.Dimensions().Width)
	}
}

func TestBuildDefaultsOptionsWhenNil(t *testing.T) {
	p := New()
	n := &ast.Node{Kind: ast.KindOrd, Mode: ast.Math, Text: "x"}
	tree, err := p.Build(n, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	explicit, err := p.Build(n, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Dimensions() != explicit.Dimensions() {
		t.Fatalf("nil opts should behave like options.Default(): %+v vs %+v", tree.Dimensions(), explicit.Dimensions())
	}
}

func TestBuildBothModesAgreeGeometrically(t *testing.T) {
	p := New()
	n := &ast.Node{
		Kind:        ast.KindFraction,
		Numerator:   &ast.Node{Kind: ast.KindOrd, Text: "1"},
		Denominator: &ast.Node{Kind: ast.KindOrd, Text: "2"},
		HasBar:      true,
	}
	sem, lay, err := p.BuildBoth(n, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sem.Dimensions() != lay.Dimensions() {
		t.Fatalf("semantic vs layout-only dims differ: %+v vs %+v", sem.Dimensions(), lay.Dimensions())
	}
}

func TestWithModeDoesNotMutateOriginal(t *testing.T) {
	p := New()
	p2 := p.WithMode(builder.LayoutOnlyMode)
	if p.Mode != builder.SemanticMode {
		t.Fatalf("original pipeline mode was mutated")
	}
	if p2.Mode != builder.LayoutOnlyMode {
		t.Fatalf("WithMode did not apply to the copy")
	}
}

const tinyPNGBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNk+A8AAQUBAScY42YAAAAASUVORK5CYII="

func TestLoadImageForwardsToConfiguredFetcher(t *testing.T) {
	data, err := base64.StdEncoding.DecodeString(tinyPNGBase64)
	if err != nil {
		t.Fatalf("test fixture decode failed: %v", err)
	}
	called := false
	p := New().WithFetcher(func(ref string) ([]byte, error) {
		called = true
		return data, nil
	})
	o := options.Default()
	o.Trust = func(string) bool { return true }
	img, aerr := p.LoadImage("https://example.com/pipeline-test.png", o)
	if aerr != nil {
		t.Fatalf("unexpected error: %v", aerr)
	}
	if !called {
		t.Fatalf("expected the configured fetcher to be invoked")
	}
	if img == nil {
		t.Fatalf("expected a decoded image")
	}
}
