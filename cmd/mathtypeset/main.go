// Command mathtypeset typesets a math expression to PNG, HTML, or
// MathML, the same flag-driven markup-to-file shape as the teacher's
// l14show (fetch a URL, render, save a PNG) with the HTTP fetch
// replaced by an AST source (a JSON file, or one of pkg/mathdemo's
// canned expressions) since lexing/parsing markup is out of core.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/inkwell-labs/mathlayout/pkg/ast"
	"github.com/inkwell-labs/mathlayout/pkg/backend/html"
	"github.com/inkwell-labs/mathlayout/pkg/backend/mathml"
	"github.com/inkwell-labs/mathlayout/pkg/backend/raster"
	"github.com/inkwell-labs/mathlayout/pkg/mathdemo"
	"github.com/inkwell-labs/mathlayout/pkg/mathpipe"
	"github.com/inkwell-labs/mathlayout/pkg/options"
)

func main() {
	astPath := flag.String("ast", "", "path to a JSON-encoded ast.Node (\"-\" for stdin)")
	demo := flag.String("demo", "", fmt.Sprintf("use a built-in demo expression instead of -ast (one of: %v)", mathdemo.Names()))
	format := flag.String("format", "png", "output format: png, html, or mathml")
	width := flag.Int("w", 800, "raster canvas width in pixels (format=png only)")
	height := flag.Int("h", 200, "raster canvas height in pixels (format=png only)")
	ptPerEm := flag.Float64("pt-per-em", 40, "points per em (format=png only)")
	font := flag.String("font", "", "path to a TrueType font file (format=png only)")
	output := flag.String("o", "output", "output file path (extension appended if missing)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mathtypeset [flags]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	node, err := resolveInput(*astPath, *demo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving input: %v\n", err)
		os.Exit(1)
	}

	pipeline := mathpipe.New()
	opts := options.Default()

	switch *format {
	case "png":
		tree, berr := pipeline.Build(node, opts)
		if berr != nil {
			fmt.Fprintf(os.Stderr, "Error building layout: %v\n", berr)
			os.Exit(1)
		}
		painter := raster.NewPainter(*width, *height, *font, *ptPerEm)
		painter.Clear()
		painter.Render(tree, 20, float64(*height)/2)
		path := ensureExt(*output, ".png")
		if err := painter.SavePNG(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving PNG: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Saved to %s\n", path)
	case "html":
		out := html.Render(node, html.Options{})
		path := ensureExt(*output, ".html")
		if err := os.WriteFile(path, []byte(out), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving HTML: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Saved to %s\n", path)
	case "mathml":
		out := mathml.Render(node, mathml.Options{})
		path := ensureExt(*output, ".mathml")
		if err := os.WriteFile(path, []byte(out), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving MathML: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Saved to %s\n", path)
	default:
		fmt.Fprintf(os.Stderr, "Unknown -format %q: expected png, html, or mathml\n", *format)
		os.Exit(1)
	}
}

func resolveInput(astPath, demo string) (*ast.Node, error) {
	if astPath != "" {
		return mathdemo.DecodeFile(astPath)
	}
	if demo != "" {
		n, ok := mathdemo.Named(demo)
		if !ok {
			return nil, fmt.Errorf("unknown -demo %q (try one of %v)", demo, mathdemo.Names())
		}
		return n, nil
	}
	return nil, fmt.Errorf("one of -ast or -demo is required")
}

func ensureExt(path, ext string) string {
	if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
		return path
	}
	return path + ext
}
