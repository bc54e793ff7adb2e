package mathtest

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"testing"

	"github.com/inkwell-labs/mathlayout/pkg/mathbox"
)

// goldenRecord is the on-disk shape for a saved reference geometry: the
// root Dims plus every Placed node's (Dims, X, Y), in Walk order.
type goldenRecord struct {
	Root  mathbox.Dims `json:"root"`
	Nodes []goldenNode `json:"nodes"`
}

type goldenNode struct {
	X    float64      `json:"x"`
	Y    float64      `json:"y"`
	Dims mathbox.Dims `json:"dims"`
}

func toRecord(tree *mathbox.LayoutTree) goldenRecord {
	rec := goldenRecord{Root: tree.Dimensions()}
	for _, p := range tree.Collect() {
		rec.Nodes = append(rec.Nodes, goldenNode{X: p.X, Y: p.Y, Dims: p.Elem.Size()})
	}
	return rec
}

// SaveGolden writes tree's geometry to path as JSON, overwriting
// whatever was there, mirroring the teacher's UpdateReferenceImage.
func SaveGolden(path string, tree *mathbox.LayoutTree) error {
	rec := toRecord(tree)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal golden record: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// loadGolden reads a previously saved geometry.
func loadGolden(path string) (goldenRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return goldenRecord{}, err
	}
	var rec goldenRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return goldenRecord{}, fmt.Errorf("unmarshal golden record %s: %w", path, err)
	}
	return rec, nil
}

// AssertMatchesGolden compares tree's geometry against the JSON file at
// path. If the file does not exist, or MATHTEST_UPDATE_GOLDEN is set,
// it writes tree's current geometry there instead of failing, the same
// update-on-demand escape hatch the teacher's reference-image regen
// path offered.
func AssertMatchesGolden(t *testing.T, tree *mathbox.LayoutTree, path string, opts CompareOptions) {
	t.Helper()

	if os.Getenv("MATHTEST_UPDATE_GOLDEN") != "" {
		if err := SaveGolden(path, tree); err != nil {
			t.Fatalf("failed to update golden file %s: %v", path, err)
		}
		return
	}

	rec, err := loadGolden(path)
	if os.IsNotExist(err) {
		if err := SaveGolden(path, tree); err != nil {
			t.Fatalf("failed to create golden file %s: %v", path, err)
		}
		t.Logf("created new golden file %s", path)
		return
	}
	if err != nil {
		t.Fatalf("failed to load golden file %s: %v", path, err)
	}

	actual := toRecord(tree)
	if len(actual.Nodes) != len(rec.Nodes) {
		t.Fatalf("%s: node count differs: got %d, golden has %d", path, len(actual.Nodes), len(rec.Nodes))
	}
	if !CompareDims(actual.Root, rec.Root, opts) {
		t.Errorf("%s: root dims differ: got %+v, golden %+v", path, actual.Root, rec.Root)
	}
	for i := range actual.Nodes {
		a, g := actual.Nodes[i], rec.Nodes[i]
		if math.Abs(a.X-g.X) > opts.Tolerance || math.Abs(a.Y-g.Y) > opts.Tolerance || !CompareDims(a.Dims, g.Dims, opts) {
			t.Errorf("%s: node %d differs: got {x=%.6f y=%.6f %+v}, golden {x=%.6f y=%.6f %+v}",
				path, i, a.X, a.Y, a.Dims, g.X, g.Y, g.Dims)
		}
	}
}
