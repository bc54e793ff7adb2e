// Package mathtest is a geometry-diff reference-testing harness,
// adapted from the teacher's pixel-by-pixel PNG comparator: instead of
// diffing two rendered images within a color tolerance, it diffs two
// mathbox.LayoutTree geometries (root Dims plus every Placed element's
// position) within a float tolerance, since a typeset formula has no
// pixels of its own until a backend paints it.
package mathtest

import (
	"fmt"
	"math"

	"github.com/inkwell-labs/mathlayout/pkg/mathbox"
)

// CompareResult reports the outcome of a geometry comparison.
type CompareResult struct {
	Match           bool
	DifferentNodes  int
	TotalNodes      int
	MaxDifference   float64 // largest absolute difference found, in em
	MismatchReasons []string
}

// CompareOptions configures the comparison.
type CompareOptions struct {
	// Tolerance is the maximum allowed absolute difference, in em, for
	// any single width/height/depth/x/y value.
	Tolerance float64
}

// DefaultOptions allows the small rounding slack float64 arithmetic
// accumulates across nested box construction.
func DefaultOptions() CompareOptions {
	return CompareOptions{Tolerance: 1e-6}
}

// CompareTrees walks actual and expected in lockstep and reports every
// node whose Dims or position differs by more than opts.Tolerance.
func CompareTrees(actual, expected *mathbox.LayoutTree, opts CompareOptions) (*CompareResult, error) {
	a := actual.Collect()
	e := expected.Collect()
	if len(a) != len(e) {
		return &CompareResult{Match: false}, fmt.Errorf("node count differs: actual=%d, expected=%d", len(a), len(e))
	}

	result := &CompareResult{Match: true, TotalNodes: len(a)}
	for i := range a {
		diffs := comparePlaced(a[i], e[i], opts.Tolerance)
		if len(diffs) == 0 {
			continue
		}
		result.Match = false
		result.DifferentNodes++
		for _, d := range diffs {
			if d.delta > result.MaxDifference {
				result.MaxDifference = d.delta
			}
			result.MismatchReasons = append(result.MismatchReasons,
				fmt.Sprintf("node %d: %s differs by %.6f (actual=%.6f expected=%.6f)", i, d.field, d.delta, d.actual, d.expected))
		}
	}
	return result, nil
}

type fieldDiff struct {
	field            string
	actual, expected float64
	delta            float64
}

func comparePlaced(a, e mathbox.Placed, tolerance float64) []fieldDiff {
	var diffs []fieldDiff
	if d := math.Abs(a.X - e.X); d > tolerance {
		diffs = append(diffs, fieldDiff{"X", a.X, e.X, d})
	}
	if d := math.Abs(a.Y - e.Y); d > tolerance {
		diffs = append(diffs, fieldDiff{"Y", a.Y, e.Y, d})
	}
	ad, ed := a.Elem.Size(), e.Elem.Size()
	if d := math.Abs(ad.Width - ed.Width); d > tolerance {
		diffs = append(diffs, fieldDiff{"Width", ad.Width, ed.Width, d})
	}
	if d := math.Abs(ad.Height - ed.Height); d > tolerance {
		diffs = append(diffs, fieldDiff{"Height", ad.Height, ed.Height, d})
	}
	if d := math.Abs(ad.Depth - ed.Depth); d > tolerance {
		diffs = append(diffs, fieldDiff{"Depth", ad.Depth, ed.Depth, d})
	}
	return diffs
}

// CompareDims is the single-box equivalent of CompareTrees, for callers
// that only care about a root box's own size (the common case for a
// builder unit test that isn't a full reference corpus entry).
func CompareDims(actual, expected mathbox.Dims, opts CompareOptions) bool {
	return math.Abs(actual.Width-expected.Width) <= opts.Tolerance &&
		math.Abs(actual.Height-expected.Height) <= opts.Tolerance &&
		math.Abs(actual.Depth-expected.Depth) <= opts.Tolerance
}
