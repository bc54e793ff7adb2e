// Package mathpipe is the top-level orchestrator: it owns the one
// entry point a caller needs (Pipeline.Build) and wires together the
// builder, options, and image fetcher the way pkg/resource's renderer
// wired together its own parse/layout/render stages — except mathpipe
// stops at a finished mathbox.LayoutTree and leaves painting to a
// backend.
package mathpipe

import (
	"image"

	"github.com/inkwell-labs/mathlayout/pkg/ast"
	"github.com/inkwell-labs/mathlayout/pkg/builder"
	"github.com/inkwell-labs/mathlayout/pkg/includegraphics"
	"github.com/inkwell-labs/mathlayout/pkg/mathbox"
	"github.com/inkwell-labs/mathlayout/pkg/mathutil"
	"github.com/inkwell-labs/mathlayout/pkg/options"
)

// Fetcher retrieves raw bytes for a network or relative-path reference,
// the same shape includegraphics.Fetcher uses; Pipeline forwards it
// along rather than constructing one.
type Fetcher = includegraphics.Fetcher

// Pipeline holds the build-wide configuration that outlives any one
// call to Build: the semantics mode and an optional image fetcher for
// \includegraphics.
type Pipeline struct {
	Mode    builder.Semantics
	Fetcher Fetcher
	Trace   func(format string, args ...any)
}

// New returns a Pipeline in semantic mode with no fetcher configured
// (network and filesystem \includegraphics references fail closed).
func New() *Pipeline {
	return &Pipeline{Mode: builder.SemanticMode}
}

// WithFetcher returns a copy of p with Fetcher replaced.
func (p *Pipeline) WithFetcher(f Fetcher) *Pipeline {
	c := *p
	c.Fetcher = f
	return &c
}

// WithMode returns a copy of p with Mode replaced.
func (p *Pipeline) WithMode(m builder.Semantics) *Pipeline {
	c := *p
	c.Mode = m
	return &c
}

// Build runs the full pipeline: dispatch the AST through pkg/builder
// under opts, and wrap the resulting Element in a LayoutTree a backend
// can walk. A nil opts uses options.Default().
func (p *Pipeline) Build(n *ast.Node, opts *options.Options) (*mathbox.LayoutTree, mathutil.AppError) {
	if opts == nil {
		opts = options.Default()
	}
	b := &builder.Builder{Mode: p.Mode, Trace: p.Trace}
	if b.Trace == nil {
		b.Trace = func(string, ...any) {}
	}

	root, err := b.Build(n, opts)
	if err != nil {
		return nil, err
	}
	return mathbox.NewLayoutTree(root), nil
}

// LoadImage resolves src through p's configured Fetcher, for a backend
// that needs the decoded pixels \includegraphics reserved space for
// (the builder itself only computes dimensions; it never decodes).
func (p *Pipeline) LoadImage(src string, opts *options.Options) (image.Image, mathutil.AppError) {
	return includegraphics.Load(src, opts, p.Fetcher)
}

// BuildBoth runs Build twice, once in semantic mode and once in
// layout-only mode, and returns both trees so the caller can check that
// they are geometrically identical (invariant: a semantic node's
// precomputed Layout must always equal what layout-only mode would
// produce on its own). BuildBoth itself does not compare them. Intended for tests and mathtest, not the
// hot path — production callers should pick one Mode and stick to it.
func (p *Pipeline) BuildBoth(n *ast.Node, opts *options.Options) (semantic, layoutOnly *mathbox.LayoutTree, err mathutil.AppError) {
	semPipe := p.WithMode(builder.SemanticMode)
	layPipe := p.WithMode(builder.LayoutOnlyMode)

	semantic, err = semPipe.Build(n, opts)
	if err != nil {
		return nil, nil, err
	}
	layoutOnly, err = layPipe.Build(n, opts)
	if err != nil {
		return nil, nil, err
	}
	return semantic, layoutOnly, nil
}
