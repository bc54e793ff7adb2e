package mathdemo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/inkwell-labs/mathlayout/pkg/ast"
)

func TestNamedReturnsAllListedNames(t *testing.T) {
	for _, name := range Names() {
		if _, ok := Named(name); !ok {
			t.Errorf("Names() listed %q but Named(%q) reported not found", name, name)
		}
	}
}

func TestNamedUnknownReportsFalse(t *testing.T) {
	if _, ok := Named("not-a-real-demo"); ok {
		t.Fatalf("expected an unknown demo name to report ok=false")
	}
}

func TestDecodeFileRoundTrips(t *testing.T) {
	n := &ast.Node{Kind: ast.KindFraction, Numerator: &ast.Node{Kind: ast.KindOrd, Text: "1"}, Denominator: &ast.Node{Kind: ast.KindOrd, Text: "2"}, HasBar: true}
	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "tree.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if got.Kind != ast.KindFraction || got.Numerator.Text != "1" || got.Denominator.Text != "2" || !got.HasBar {
		t.Fatalf("round-tripped node mismatch: %+v", got)
	}
}

func TestDecodeFileMissingFileErrors(t *testing.T) {
	if _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
