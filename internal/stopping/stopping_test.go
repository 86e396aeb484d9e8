package stopping

import (
	"testing"

	"github.com/gioe/quotient/internal/blueprint"
)

func evaluator(t *testing.T, cfg Config) *Evaluator {
	t.Helper()
	e, err := New(blueprint.MustDefault(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func fullCoverage() map[string]int {
	cov := make(map[string]int)
	for _, d := range blueprint.DefaultDomains() {
		cov[d.Tag] = d.MinItems
	}
	return cov
}

func TestEvaluate_BelowMinNeverStops(t *testing.T) {
	e := evaluator(t, DefaultConfig())
	// Even with perfect precision and full coverage.
	for items := 0; items < DefaultConfig().MinItems; items++ {
		d, err := e.Evaluate(Input{SE: 0.01, ItemsGiven: items, Coverage: fullCoverage()})
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if d.ShouldStop {
			t.Errorf("items=%d: ShouldStop = true, want false below minimum", items)
		}
	}
}

func TestEvaluate_MaxItemsOverridesEverything(t *testing.T) {
	e := evaluator(t, DefaultConfig())
	// Huge se, zero coverage: max_items still wins.
	d, err := e.Evaluate(Input{SE: 2.0, ItemsGiven: DefaultConfig().MaxItems, Coverage: map[string]int{}})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !d.ShouldStop {
		t.Fatal("ShouldStop = false at max items, want true")
	}
	if d.Reason != ReasonMaxItems {
		t.Errorf("Reason = %q, want %q", d.Reason, ReasonMaxItems)
	}
	if d.BalanceMet {
		t.Error("BalanceMet = true with zero coverage, want false")
	}
}

func TestEvaluate_ContentBalanceBlocksPrecisionStop(t *testing.T) {
	e := evaluator(t, DefaultConfig())
	cov := fullCoverage()
	cov[blueprint.TagWorkingMemory] = 0

	d, err := e.Evaluate(Input{SE: 0.10, ItemsGiven: 10, Coverage: cov})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if d.ShouldStop {
		t.Error("ShouldStop = true with unmet balance under waiver, want false")
	}
	if d.Reason != ReasonContentBalancePending {
		t.Errorf("Reason = %q, want %q", d.Reason, ReasonContentBalancePending)
	}
	if d.DomainsMet[blueprint.TagWorkingMemory] {
		t.Error("DomainsMet[working-memory] = true, want false")
	}
}

func TestEvaluate_BalanceWaiverBoundary(t *testing.T) {
	cfg := DefaultConfig()
	e := evaluator(t, cfg)
	cov := fullCoverage()
	cov[blueprint.TagWorkingMemory] = 0

	// One item short of the waiver: balance still blocks.
	d, err := e.Evaluate(Input{SE: 0.10, ItemsGiven: cfg.BalanceWaiverItems - 1, Coverage: cov})
	if err != nil {
		t.Fatal(err)
	}
	if d.ShouldStop {
		t.Error("ShouldStop = true just below waiver, want false")
	}

	// Exactly at the waiver: balance no longer blocks, precision stops.
	d, err = e.Evaluate(Input{SE: 0.10, ItemsGiven: cfg.BalanceWaiverItems, Coverage: cov})
	if err != nil {
		t.Fatal(err)
	}
	if !d.ShouldStop || d.Reason != ReasonSEThreshold {
		t.Errorf("at waiver: ShouldStop = %v, Reason = %q, want stop with %q", d.ShouldStop, d.Reason, ReasonSEThreshold)
	}
}

func TestEvaluate_MinItemsBoundary(t *testing.T) {
	cfg := DefaultConfig()
	e := evaluator(t, cfg)

	// Exactly at min items with good precision: stop is allowed.
	d, err := e.Evaluate(Input{SE: 0.20, ItemsGiven: cfg.MinItems, Coverage: fullCoverage()})
	if err != nil {
		t.Fatal(err)
	}
	if !d.ShouldStop || d.Reason != ReasonSEThreshold {
		t.Errorf("at min: ShouldStop = %v, Reason = %q, want stop with %q", d.ShouldStop, d.Reason, ReasonSEThreshold)
	}
}

func TestEvaluate_SEThresholdPrimaryPath(t *testing.T) {
	e := evaluator(t, DefaultConfig())
	d, err := e.Evaluate(Input{SE: 0.29, ItemsGiven: 10, Coverage: fullCoverage()})
	if err != nil {
		t.Fatal(err)
	}
	if !d.ShouldStop || d.Reason != ReasonSEThreshold {
		t.Errorf("ShouldStop = %v, Reason = %q, want se_threshold stop", d.ShouldStop, d.Reason)
	}

	d, err = e.Evaluate(Input{SE: 0.31, ItemsGiven: 10, Coverage: fullCoverage()})
	if err != nil {
		t.Fatal(err)
	}
	if d.ShouldStop {
		t.Error("ShouldStop = true with se above threshold and no stabilization, want false")
	}
}

func TestEvaluate_ThetaStable(t *testing.T) {
	e := evaluator(t, DefaultConfig())

	// se slightly above threshold, estimate no longer moving.
	d, err := e.Evaluate(Input{
		SE: 0.34, ItemsGiven: 12, Coverage: fullCoverage(),
		DeltaTheta: 0.005, HasDelta: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !d.ShouldStop || d.Reason != ReasonThetaStable {
		t.Errorf("ShouldStop = %v, Reason = %q, want theta_stable stop", d.ShouldStop, d.Reason)
	}

	// Same delta but se far from threshold: keep testing.
	d, err = e.Evaluate(Input{
		SE: 0.80, ItemsGiven: 12, Coverage: fullCoverage(),
		DeltaTheta: 0.005, HasDelta: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if d.ShouldStop {
		t.Error("ShouldStop = true with se far from threshold, want false")
	}

	// No delta yet: stabilization cannot apply.
	d, err = e.Evaluate(Input{SE: 0.34, ItemsGiven: 12, Coverage: fullCoverage(), DeltaTheta: 0})
	if err != nil {
		t.Fatal(err)
	}
	if d.ShouldStop {
		t.Error("ShouldStop = true without a theta delta, want false")
	}
}

func TestEvaluate_RejectsNegativeInputs(t *testing.T) {
	e := evaluator(t, DefaultConfig())

	if _, err := e.Evaluate(Input{SE: -0.1, ItemsGiven: 5}); err == nil {
		t.Error("expected error for negative se")
	}
	if _, err := e.Evaluate(Input{SE: 0.5, ItemsGiven: -1}); err == nil {
		t.Error("expected error for negative item count")
	}
	if _, err := e.Evaluate(Input{SE: 0.5, ItemsGiven: 5, Coverage: map[string]int{"x": -2}}); err == nil {
		t.Error("expected error for negative coverage")
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	reg := blueprint.MustDefault()
	if _, err := New(reg, Config{MinItems: 10, MaxItems: 5, SEThreshold: 0.3}); err == nil {
		t.Error("expected error for min > max")
	}
	if _, err := New(reg, Config{MinItems: 1, MaxItems: 5, SEThreshold: 0}); err == nil {
		t.Error("expected error for zero se threshold")
	}
}
