// Package mathdemo is the thin seam the two command-line tools
// (cmd/mathtypeset, cmd/mathview) share for turning a command-line
// argument into an *ast.Node: either by decoding a JSON-encoded tree
// from a file, or by building one of a handful of canned expressions.
// A real lexer/parser is out of core (see pkg/ast's package doc), so
// this is deliberately not a markup parser.
package mathdemo

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/inkwell-labs/mathlayout/pkg/ast"
)

// DecodeFile reads path (or stdin, if path is "-") as a JSON-encoded
// ast.Node tree.
func DecodeFile(path string) (*ast.Node, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	var n ast.Node
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("decode AST JSON: %w", err)
	}
	return &n, nil
}

// Named returns one of a small set of built-in expressions, for a quick
// "does this round-trip" smoke test without an external AST file.
func Named(name string) (*ast.Node, bool) {
	n, ok := builtins[name]
	return n, ok
}

// Names lists every built-in demo expression, in a stable order.
func Names() []string {
	return []string{"atom", "fraction", "sqrt", "supsub", "sum-limits"}
}

func ord(text string) *ast.Node { return &ast.Node{Kind: ast.KindOrd, Mode: ast.Math, Text: text} }

var builtins = map[string]*ast.Node{
	"atom": ord("x"),
	"fraction": {
		Kind:        ast.KindFraction,
		Mode:        ast.Math,
		Numerator:   ord("1"),
		Denominator: ord("2"),
		HasBar:      true,
	},
	"sqrt": {
		Kind:     ast.KindRadical,
		Mode:     ast.Math,
		Radicand: ord("x"),
	},
	"supsub": {
		Kind: ast.KindSupSub,
		Mode: ast.Math,
		Base: ord("x"),
		Sup:  ord("2"),
	},
	"sum-limits": {
		Kind: ast.KindSupSub,
		Mode: ast.Math,
		Base: &ast.Node{Kind: ast.KindOp, Mode: ast.Math, Text: "∑", OpKind: ast.OpSymbol, HasLimits: true},
		Sup:  ord("n"),
		Sub:  ord("i=1"),
	},
}
