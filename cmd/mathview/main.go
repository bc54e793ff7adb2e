// Command mathview opens an interactive fyne window for typesetting
// math expressions, the adapted shell of the teacher's cmd/l14 browser
// window: an entry box where the URL bar was, a status label, and a
// canvas that now shows a live-rendered formula instead of a fetched
// page. Parsing is out of core, so the entry box accepts either a
// built-in demo name (see pkg/mathdemo.Names) or a path to a
// JSON-encoded ast.Node, prefixed with "@".
package main

import (
	"fmt"
	"strings"

	"github.com/inkwell-labs/mathlayout/pkg/ast"
	"github.com/inkwell-labs/mathlayout/pkg/backend/gui"
	"github.com/inkwell-labs/mathlayout/pkg/mathdemo"
	"github.com/inkwell-labs/mathlayout/pkg/mathpipe"
)

func main() {
	v := gui.NewViewer(mathpipe.New(), parseInput)
	v.Title = "mathview"
	v.Run()
}

func parseInput(source string) (*ast.Node, error) {
	source = strings.TrimSpace(source)
	if strings.HasPrefix(source, "@") {
		n, err := mathdemo.DecodeFile(strings.TrimPrefix(source, "@"))
		if err != nil {
			return nil, fmt.Errorf("decode AST file: %w", err)
		}
		return n, nil
	}
	if n, ok := mathdemo.Named(source); ok {
		return n, nil
	}
	return nil, fmt.Errorf("unknown demo %q (try one of %v, or \"@path/to/tree.json\")", source, mathdemo.Names())
}
