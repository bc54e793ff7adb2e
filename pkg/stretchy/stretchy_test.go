package stretchy

import (
	"testing"

	"github.com/inkwell-labs/mathlayout/pkg/mathbox"
)

func TestSelectFamilyByRuneCountNotByteLength(t *testing.T) {
	cases := []struct {
		s    string
		want Family
	}{
		{"x", FamilyNarrow},
		{"xy", FamilyShort},
		{"abcd", FamilyShort},
		{"abcde", FamilyMedium},
		{"abcdefghi", FamilyMedium},
		{"abcdefghij", FamilyWide},
		{"日本語文字列超長", FamilyMedium}, // 8 multi-byte runes (24 bytes), counted as 8 characters
	}
	for _, c := range cases {
		if got := SelectFamily(c.s); got != c.want {
			t.Errorf("SelectFamily(%q) = %v, want %v", c.s, got, c.want)
		}
	}
}

func TestBuildSinglePathStretchesToMinWidth(t *testing.T) {
	accentee := mathbox.NewText("x", mathbox.TextStyle{}, mathbox.Dims{Width: 0.1, Height: 0.4})
	called := false
	build := func(name string, width, height float64) mathbox.Element {
		called = true
		if width < MinWidth {
			t.Fatalf("path width %v below MinWidth %v", width, MinWidth)
		}
		return mathbox.NewRule(width, height, 0)
	}
	acc := BuildSinglePath("widehat", accentee, true, 0.3, build)
	if !called {
		t.Fatalf("build was never called")
	}
	if !acc.Above {
		t.Fatalf("expected Above accent")
	}
}

func TestBuildMultiPathNoMiddleAbuts(t *testing.T) {
	left := MultiPiece{Name: "arrowleft", Width: 0.3}
	right := MultiPiece{Name: "arrowright", Width: 0.3}
	build := func(name string, width, height float64) mathbox.Element {
		return mathbox.NewRule(width, height, 0)
	}
	e := BuildMultiPath(left, right, "", 0.4, 0.2, build)
	if e.Size().Width < 0.6 {
		t.Fatalf("width = %v, should be at least the two fixed pieces (0.6)", e.Size().Width)
	}
}

func TestBuildMultiPathWithMiddleFillsGap(t *testing.T) {
	left := MultiPiece{Name: "braceleft", Width: 0.2}
	right := MultiPiece{Name: "braceright", Width: 0.2}
	build := func(name string, width, height float64) mathbox.Element {
		return mathbox.NewRule(width, height, 0)
	}
	e := BuildMultiPath(left, right, "bracemid", 1.0, 0.2, build)
	if e.Size().Width != 1.0 {
		t.Fatalf("width = %v, want 1.0 (stretched to accentee width)", e.Size().Width)
	}
}
