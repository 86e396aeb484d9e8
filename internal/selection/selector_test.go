package selection

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/gioe/quotient/internal/blueprint"
	"github.com/gioe/quotient/internal/itembank"
)

func testRegistry(t *testing.T) *blueprint.Registry {
	t.Helper()
	reg, err := blueprint.New([]blueprint.Domain{
		{Tag: "alpha", TargetShare: 0.5, MinItems: 1},
		{Tag: "beta", TargetShare: 0.5, MinItems: 1},
	})
	if err != nil {
		t.Fatalf("blueprint.New() error = %v", err)
	}
	return reg
}

func deterministic(reg *blueprint.Registry, maxItems int) *Selector {
	return New(reg, Config{TopK: 1, SoftTolerance: DefaultSoftTolerance, MaxItems: maxItems})
}

func item(id, domain string, a, b float64) itembank.Calibrated {
	return itembank.Calibrated{ItemID: id, A: a, B: b, Tag: domain}
}

func freshState(reg *blueprint.Registry) State {
	return State{
		Administered: make(map[string]bool),
		SeenBefore:   make(map[string]bool),
		Coverage:     reg.ZeroCoverage(),
	}
}

func rng() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

func TestSelect_MaxInformationWithK1(t *testing.T) {
	reg := testRegistry(t)
	sel := deterministic(reg, 20)
	st := freshState(reg)
	st.Coverage["alpha"] = 1
	st.Coverage["beta"] = 1
	st.ItemsGiven = 2

	// At theta=0 the b=0 high-discrimination item is most informative.
	pool := []itembank.Item{
		item("far", "alpha", 1.5, 3.0),
		item("near", "alpha", 1.5, 0.0),
		item("weak", "beta", 0.4, 0.0),
	}
	got, err := sel.Select(pool, st, rng())
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got.ID() != "near" {
		t.Errorf("Select() = %q, want near", got.ID())
	}
}

func TestSelect_ExcludesAdministeredAndSeen(t *testing.T) {
	reg := testRegistry(t)
	sel := deterministic(reg, 20)
	st := freshState(reg)
	st.Administered["a1"] = true
	st.SeenBefore["a2"] = true

	pool := []itembank.Item{
		item("a1", "alpha", 1.5, 0),
		item("a2", "alpha", 1.4, 0),
		item("a3", "beta", 0.5, 0),
	}
	got, err := sel.Select(pool, st, rng())
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got.ID() != "a3" {
		t.Errorf("Select() = %q, want a3", got.ID())
	}
}

func TestSelect_SkipsInvalidCalibration(t *testing.T) {
	reg := testRegistry(t)
	sel := deterministic(reg, 20)
	st := freshState(reg)

	pool := []itembank.Item{
		item("zero-a", "alpha", 0, 0),
		item("neg-a", "alpha", -1.2, 0),
		item("stray", "gamma", 1.5, 0),
		item("ok", "beta", 0.6, 1.0),
	}
	got, err := sel.Select(pool, st, rng())
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got.ID() != "ok" {
		t.Errorf("Select() = %q, want ok", got.ID())
	}
}

func TestSelect_PoolExhausted(t *testing.T) {
	reg := testRegistry(t)
	sel := deterministic(reg, 20)
	st := freshState(reg)
	st.Administered["a1"] = true
	st.Administered["b1"] = true

	pool := []itembank.Item{
		item("a1", "alpha", 1.0, 0),
		item("b1", "beta", 1.0, 0),
	}
	_, err := sel.Select(pool, st, rng())
	if !errors.Is(err, ErrNoEligibleItems) {
		t.Fatalf("Select() error = %v, want ErrNoEligibleItems", err)
	}
}

func TestSelect_HardBalanceRestrictsToDeficientDomain(t *testing.T) {
	reg := testRegistry(t)
	sel := deterministic(reg, 20)
	st := freshState(reg)
	st.Coverage["alpha"] = 1
	st.ItemsGiven = 1

	// beta is below its minimum; the far more informative alpha item must
	// be passed over.
	pool := []itembank.Item{
		item("alpha-best", "alpha", 2.0, 0),
		item("beta-weak", "beta", 0.5, 2.0),
	}
	got, err := sel.Select(pool, st, rng())
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got.ID() != "beta-weak" {
		t.Errorf("Select() = %q, want beta-weak", got.ID())
	}
}

func TestSelect_HardBalanceSkippedWhenSlotsShort(t *testing.T) {
	reg, err := blueprint.New([]blueprint.Domain{
		{Tag: "alpha", TargetShare: 0.5, MinItems: 3},
		{Tag: "beta", TargetShare: 0.5, MinItems: 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	// 5 items given, max 6: one slot left, five deficits. Hard balance
	// cannot fill them all, so information wins.
	sel := deterministic(reg, 6)
	st := freshState(reg)
	st.Coverage["alpha"] = 1
	st.ItemsGiven = 5

	pool := []itembank.Item{
		item("alpha-best", "alpha", 2.0, 0),
		item("beta-weak", "beta", 0.5, 2.0),
	}
	got, err := sel.Select(pool, st, rng())
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got.ID() != "alpha-best" {
		t.Errorf("Select() = %q, want alpha-best", got.ID())
	}
}

func TestSelect_SoftBalanceRestrictsToUnderweightDomain(t *testing.T) {
	reg := testRegistry(t)
	sel := deterministic(reg, 40)
	st := freshState(reg)
	// Minimums met, but beta's share (2/10) trails its 0.5 target.
	st.Coverage["alpha"] = 8
	st.Coverage["beta"] = 2
	st.ItemsGiven = 10

	pool := []itembank.Item{
		item("alpha-best", "alpha", 2.0, 0),
		item("beta-weak", "beta", 0.5, 2.0),
	}
	got, err := sel.Select(pool, st, rng())
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got.ID() != "beta-weak" {
		t.Errorf("Select() = %q, want beta-weak", got.ID())
	}
}

func TestSelect_SoftBalanceInactiveWhenShareOnTarget(t *testing.T) {
	reg := testRegistry(t)
	sel := deterministic(reg, 40)
	st := freshState(reg)
	st.Coverage["alpha"] = 5
	st.Coverage["beta"] = 5
	st.ItemsGiven = 10

	pool := []itembank.Item{
		item("alpha-best", "alpha", 2.0, 0),
		item("beta-weak", "beta", 0.5, 2.0),
	}
	got, err := sel.Select(pool, st, rng())
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got.ID() != "alpha-best" {
		t.Errorf("Select() = %q, want alpha-best", got.ID())
	}
}

func TestSelect_SoftBalanceUnionOfUnderweightDomains(t *testing.T) {
	reg, err := blueprint.New([]blueprint.Domain{
		{Tag: "alpha", TargetShare: 0.5, MinItems: 1},
		{Tag: "beta", TargetShare: 0.3, MinItems: 1},
		{Tag: "gamma", TargetShare: 0.2, MinItems: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	sel := deterministic(reg, 40)
	st := freshState(reg)
	// alpha trails its target by 0.3, beta by 0.2, gamma is over target.
	st.Coverage["alpha"] = 2
	st.Coverage["beta"] = 1
	st.Coverage["gamma"] = 7
	st.ItemsGiven = 10

	// Both underweight domains stay in play; information decides between
	// them, so beta's strong item beats alpha's despite alpha's larger
	// shortfall. gamma's even stronger item is excluded.
	pool := []itembank.Item{
		item("alpha-weak", "alpha", 0.5, 2.0),
		item("beta-strong", "beta", 1.8, 0),
		item("gamma-best", "gamma", 2.5, 0),
	}
	got, err := sel.Select(pool, st, rng())
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got.ID() != "beta-strong" {
		t.Errorf("Select() = %q, want beta-strong", got.ID())
	}
}

func TestNew_ZeroConfigDefaults(t *testing.T) {
	reg := testRegistry(t)
	sel := New(reg, Config{})

	if got := sel.cfg.TopK; got != DefaultTopK {
		t.Errorf("TopK = %d, want %d", got, DefaultTopK)
	}
	if got := sel.cfg.SoftTolerance; got != DefaultSoftTolerance {
		t.Errorf("SoftTolerance = %v, want %v", got, DefaultSoftTolerance)
	}
	if got := sel.cfg.MaxItems; got != DefaultMaxItems {
		t.Errorf("MaxItems = %d, want %d", got, DefaultMaxItems)
	}
}

func TestSelect_ZeroConfigKeepsHardBalance(t *testing.T) {
	reg := testRegistry(t)
	// A zero-value config must still enforce hard balance: with MaxItems
	// defaulted there are slots left for beta's deficit.
	sel := New(reg, Config{TopK: 1})
	st := freshState(reg)
	st.Coverage["alpha"] = 1
	st.ItemsGiven = 1

	pool := []itembank.Item{
		item("alpha-best", "alpha", 2.0, 0),
		item("beta-weak", "beta", 0.5, 2.0),
	}
	got, err := sel.Select(pool, st, rng())
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got.ID() != "beta-weak" {
		t.Errorf("Select() = %q, want beta-weak", got.ID())
	}
}

func TestSelect_RandomesquePicksWithinTopK(t *testing.T) {
	reg := testRegistry(t)
	sel := New(reg, Config{TopK: 3, MaxItems: 20})
	st := freshState(reg)
	st.Coverage["alpha"] = 1
	st.Coverage["beta"] = 1
	st.ItemsGiven = 2

	pool := []itembank.Item{
		item("i1", "alpha", 1.8, 0),
		item("i2", "alpha", 1.6, 0),
		item("i3", "beta", 1.4, 0),
		item("i4", "beta", 0.3, 3.0),
	}
	top3 := map[string]bool{"i1": true, "i2": true, "i3": true}

	r := rand.New(rand.NewSource(42))
	picked := make(map[string]bool)
	for i := 0; i < 200; i++ {
		got, err := sel.Select(pool, st, r)
		if err != nil {
			t.Fatalf("Select() error = %v", err)
		}
		if !top3[got.ID()] {
			t.Fatalf("Select() = %q, outside top-3", got.ID())
		}
		picked[got.ID()] = true
	}
	// Over 200 seeded draws all three candidates should appear.
	if len(picked) != 3 {
		t.Errorf("distinct picks = %d, want 3 (got %v)", len(picked), picked)
	}
}

func TestSelect_SeededReproducibility(t *testing.T) {
	reg := testRegistry(t)
	sel := New(reg, Config{TopK: 5, MaxItems: 20})
	st := freshState(reg)
	st.Coverage["alpha"] = 1
	st.Coverage["beta"] = 1
	st.ItemsGiven = 2

	pool := []itembank.Item{
		item("i1", "alpha", 1.8, 0),
		item("i2", "alpha", 1.6, 0),
		item("i3", "beta", 1.4, 0),
		item("i4", "beta", 1.2, 0),
		item("i5", "beta", 1.0, 0),
	}

	var first []string
	r1 := rand.New(rand.NewSource(99))
	for i := 0; i < 20; i++ {
		got, err := sel.Select(pool, st, r1)
		if err != nil {
			t.Fatal(err)
		}
		first = append(first, got.ID())
	}

	r2 := rand.New(rand.NewSource(99))
	for i := 0; i < 20; i++ {
		got, err := sel.Select(pool, st, r2)
		if err != nil {
			t.Fatal(err)
		}
		if got.ID() != first[i] {
			t.Fatalf("draw %d = %q, want %q (same seed must reproduce)", i, got.ID(), first[i])
		}
	}
}

func TestSelect_NilRandSource(t *testing.T) {
	reg := testRegistry(t)
	sel := deterministic(reg, 20)
	_, err := sel.Select([]itembank.Item{item("a", "alpha", 1, 0)}, freshState(reg), nil)
	if err == nil {
		t.Fatal("expected error for nil random source")
	}
}
