package fraction

import (
	"testing"

	"github.com/inkwell-labs/mathlayout/pkg/mathbox"
	"github.com/inkwell-labs/mathlayout/pkg/metrics"
)

func TestShiftsDisplayUsesNum1Denom1(t *testing.T) {
	m := metrics.StyleMetricsForIndex(0)
	u, v := Shifts(true, 0.04, m)
	if u != m.Num1 || v != m.Denom1 {
		t.Fatalf("got u=%v v=%v, want Num1=%v Denom1=%v", u, v, m.Num1, m.Denom1)
	}
}

func TestShiftsTextUsesNum2Denom2(t *testing.T) {
	m := metrics.StyleMetricsForIndex(0)
	u, v := Shifts(false, 0.04, m)
	if u != m.Num2 || v != m.Denom2 {
		t.Fatalf("got u=%v v=%v, want Num2=%v Denom2=%v", u, v, m.Num2, m.Denom2)
	}
}

func TestShiftsZeroThicknessUsesNum3(t *testing.T) {
	m := metrics.StyleMetricsForIndex(0)
	u, _ := Shifts(false, 0, m)
	if u != m.Num3 {
		t.Fatalf("got u=%v, want Num3=%v", u, m.Num3)
	}
}

func TestClearanceDisplayIsTripleTheta(t *testing.T) {
	if got := Clearance(true, 0.04, 0.04); got != 0.12 {
		t.Fatalf("Clearance = %v, want 0.12", got)
	}
}

func TestClearanceTextIsTheta(t *testing.T) {
	if got := Clearance(false, 0.04, 0.04); got != 0.04 {
		t.Fatalf("Clearance = %v, want 0.04", got)
	}
}

func TestClearanceZeroThicknessUsesFixedMultiple(t *testing.T) {
	if got := Clearance(true, 0, 0.04); got != 0.28 {
		t.Fatalf("Clearance = %v, want 0.28 (7*default)", got)
	}
	if got := Clearance(false, 0, 0.04); got != 0.12 {
		t.Fatalf("Clearance = %v, want 0.12 (3*default)", got)
	}
}

func TestClampRaisesUAndVToMeetPhi(t *testing.T) {
	u, v := Clamp(0, 0, 0.1, 0.1, 0.25, 0.04, 0.12)
	minU := 0.12 + 0.1 + 0.25 + 0.02
	minV := 0.12 + 0.1 - 0.25 + 0.02
	if u != minU {
		t.Fatalf("u = %v, want %v", u, minU)
	}
	if v != minV {
		t.Fatalf("v = %v, want %v", v, minV)
	}
}

func TestClampDoesNotLowerSufficientShifts(t *testing.T) {
	u, v := Clamp(5, 5, 0.1, 0.1, 0.25, 0.04, 0.12)
	if u != 5 || v != 5 {
		t.Fatalf("clamp should not lower already-sufficient shifts: u=%v v=%v", u, v)
	}
}

func TestBuildWidthIsMaxOfOperands(t *testing.T) {
	num := mathbox.NewText("a", mathbox.TextStyle{}, mathbox.Dims{Width: 1, Height: 0.5, Depth: 0})
	den := mathbox.NewText("bb", mathbox.TextStyle{}, mathbox.Dims{Width: 2, Height: 0.5, Depth: 0})
	frac := Build(num, den, 0.677, 0.686, 0.04, 0.25, true)
	if frac.Size().Width != 2 {
		t.Fatalf("width = %v, want 2", frac.Size().Width)
	}
}

func TestBuildOmitsRuleWhenHasBarFalse(t *testing.T) {
	num := mathbox.NewText("a", mathbox.TextStyle{}, mathbox.Dims{Width: 1, Height: 0.5, Depth: 0})
	den := mathbox.NewText("b", mathbox.TextStyle{}, mathbox.Dims{Width: 1, Height: 0.5, Depth: 0})
	withBar := Build(num, den, 0.677, 0.686, 0.04, 0.25, true)
	withoutBar := Build(num, den, 0.677, 0.686, 0.04, 0.25, false)
	// The barless fraction's VBox has one fewer item: numerator and
	// denominator only, with no rule between them.
	if n := len(withBar.Layout.(*mathbox.VBox).Items); n != 3 {
		t.Fatalf("with bar: got %d items, want 3 (numerator, rule, denominator)", n)
	}
	if n := len(withoutBar.Layout.(*mathbox.VBox).Items); n != 2 {
		t.Fatalf("without bar: got %d items, want 2 (numerator, denominator)", n)
	}
	// Height comes from the numerator and its shift, which are identical
	// in both builds, so the rule's presence does not change it.
	if withBar.Size().Height != withoutBar.Size().Height {
		t.Fatalf("height should be unaffected by the rule's own presence here: with=%v without=%v",
			withBar.Size().Height, withoutBar.Size().Height)
	}
}
