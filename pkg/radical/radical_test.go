package radical

import (
	"testing"

	"github.com/inkwell-labs/mathlayout/pkg/mathbox"
	"github.com/inkwell-labs/mathlayout/pkg/metrics"
)

func TestClearanceUsesXHeightInDisplay(t *testing.T) {
	m := metrics.StyleMetricsForIndex(0)
	if got := Clearance(true, m); got != m.XHeight {
		t.Fatalf("display clearance = %v, want xHeight %v", got, m.XHeight)
	}
	if got := Clearance(false, m); got != m.DefaultRuleThickness {
		t.Fatalf("non-display clearance = %v, want default rule thickness %v", got, m.DefaultRuleThickness)
	}
}

func TestRuleThicknessTakesMax(t *testing.T) {
	if got := RuleThickness(0.04, 0.1, 0); got != 0.1 {
		t.Fatalf("RuleThickness = %v, want 0.1 (min overrides default)", got)
	}
	if got := RuleThickness(0.04, 0, 0.01); got != 0.05 {
		t.Fatalf("RuleThickness = %v, want 0.05", got)
	}
}

func TestTargetSumsComponents(t *testing.T) {
	got := Target(1.0, 0.2, 0.04, 0.04)
	if got != 1.28 {
		t.Fatalf("Target = %v, want 1.28", got)
	}
}

func TestBuildRaisesRadicandAboveVinculum(t *testing.T) {
	radicand := mathbox.NewText("x", mathbox.TextStyle{}, mathbox.Dims{Width: 0.5, Height: 0.4, Depth: 0})
	surd := mathbox.NewRule(0.3, 0.5, 0)
	frac := Build(radicand, surd, 0.04, 0.1, nil)
	d := frac.Size()
	if d.Width <= 0 {
		t.Fatalf("radical width should be positive, got %v", d.Width)
	}
	if d.Height <= radicand.Size().Height {
		t.Fatalf("radical height %v should exceed radicand height %v once raised", d.Height, radicand.Size().Height)
	}
}

func TestBuildWithIndexWidensLayout(t *testing.T) {
	radicand := mathbox.NewText("x", mathbox.TextStyle{}, mathbox.Dims{Width: 0.5, Height: 0.4, Depth: 0})
	surd := mathbox.NewRule(0.3, 0.5, 0)
	index := mathbox.NewText("3", mathbox.TextStyle{}, mathbox.Dims{Width: 0.3, Height: 0.3, Depth: 0})
	withIndex := Build(radicand, surd, 0.04, 0.1, index)
	withoutIndex := Build(radicand, surd, 0.04, 0.1, nil)
	if withIndex.Size().Width <= withoutIndex.Size().Width {
		t.Fatalf("adding an index should widen the layout: with=%v without=%v",
			withIndex.Size().Width, withoutIndex.Size().Width)
	}
}
