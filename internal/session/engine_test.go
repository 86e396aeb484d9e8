package session

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/gioe/quotient/internal/blueprint"
	"github.com/gioe/quotient/internal/irt"
	"github.com/gioe/quotient/internal/itembank"
	"github.com/gioe/quotient/internal/selection"
	"github.com/gioe/quotient/internal/stopping"
)

func testEngine(t *testing.T, reg *blueprint.Registry, selCfg selection.Config, stopCfg stopping.Config) *Engine {
	t.Helper()
	e, err := New(reg, selCfg, stopCfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func defaultEngine(t *testing.T) *Engine {
	return testEngine(t, blueprint.MustDefault(), selection.DefaultConfig(), stopping.DefaultConfig())
}

// centeredItem builds an item at difficulty 0 cycling through the default
// domains so content balance fills as the test runs.
func centeredItem(i int) itembank.Calibrated {
	tags := blueprint.MustDefault().Tags()
	tag := tags[i%len(tags)]
	return itembank.Calibrated{
		ItemID: tag + string(rune('a'+i/len(tags))),
		A:      1.5,
		B:      0,
		Tag:    tag,
	}
}

func TestInitialize_Defaults(t *testing.T) {
	e := defaultEngine(t)
	sess, err := e.Initialize("ex-1", "sess-1", nil)
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if sess.Status != StatusInitialized {
		t.Errorf("Status = %q, want initialized", sess.Status)
	}
	if sess.Theta != 0 || sess.SE != 1 {
		t.Errorf("(Theta, SE) = (%v, %v), want population default (0, 1)", sess.Theta, sess.SE)
	}
	if len(sess.Coverage) != 6 {
		t.Errorf("Coverage domains = %d, want 6", len(sess.Coverage))
	}
}

func TestInitialize_WithPrior(t *testing.T) {
	e := defaultEngine(t)
	sess, err := e.Initialize("ex-1", "sess-1", &irt.Prior{Mean: 0.8, SD: 0.5})
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if sess.Theta != 0.8 || sess.SE != 0.5 {
		t.Errorf("(Theta, SE) = (%v, %v), want seeded (0.8, 0.5)", sess.Theta, sess.SE)
	}

	if _, err := e.Initialize("ex-1", "sess-2", &irt.Prior{Mean: 0, SD: 0}); err == nil {
		t.Error("expected error for prior sd = 0")
	}
}

func TestProcessResponse_MaintainsInvariants(t *testing.T) {
	e := defaultEngine(t)
	sess, _ := e.Initialize("ex-1", "sess-1", nil)

	for i := 0; i < 15; i++ {
		step, err := e.ProcessResponse(sess, centeredItem(i), i%3 != 0)
		if err != nil {
			t.Fatalf("ProcessResponse(%d) error = %v", i, err)
		}
		if step.Theta < irt.GridMin || step.Theta > irt.GridMax {
			t.Errorf("step %d: Theta = %v, want within grid", i, step.Theta)
		}
		if step.SE <= 0 {
			t.Errorf("step %d: SE = %v, want > 0", i, step.SE)
		}
	}

	if got := len(sess.Administered); got != 15 {
		t.Fatalf("Administered = %d items, want 15", got)
	}
	if got := len(sess.Trajectory); got != 15 {
		t.Errorf("Trajectory length = %d, want 15", got)
	}
	if got := len(sess.SETrajectory); got != 15 {
		t.Errorf("SETrajectory length = %d, want 15", got)
	}
	for i, se := range sess.SETrajectory {
		if se <= 0 {
			t.Errorf("SETrajectory[%d] = %v, want > 0", i, se)
		}
	}
	covSum := 0
	for _, n := range sess.Coverage {
		covSum += n
	}
	if covSum != 15 {
		t.Errorf("coverage sum = %d, want 15", covSum)
	}
	if sess.Status != StatusActive {
		t.Errorf("Status = %q, want active", sess.Status)
	}
}

func TestProcessResponse_RejectsBadItems(t *testing.T) {
	e := defaultEngine(t)
	sess, _ := e.Initialize("ex-1", "sess-1", nil)

	bad := itembank.Calibrated{ItemID: "x", A: 0, B: 0, Tag: blueprint.TagWorkingMemory}
	var ipe *irt.InvalidParameterError
	if _, err := e.ProcessResponse(sess, bad, true); !errors.As(err, &ipe) {
		t.Errorf("non-positive discrimination: error = %v, want *InvalidParameterError", err)
	}

	stray := itembank.Calibrated{ItemID: "y", A: 1.0, B: 0, Tag: "phrenology"}
	var ude *blueprint.UnknownDomainError
	if _, err := e.ProcessResponse(sess, stray, true); !errors.As(err, &ude) {
		t.Errorf("unknown domain: error = %v, want *UnknownDomainError", err)
	}

	ok := centeredItem(0)
	if _, err := e.ProcessResponse(sess, ok, true); err != nil {
		t.Fatalf("ProcessResponse() error = %v", err)
	}
	if _, err := e.ProcessResponse(sess, ok, false); err == nil {
		t.Error("expected error for re-administered item")
	}
}

func TestEndToEnd_AlternatingResponsesAtCenter(t *testing.T) {
	e := defaultEngine(t)
	sess, err := e.Initialize("ex-1", "sess-1", &irt.Prior{Mean: 0, SD: 1})
	if err != nil {
		t.Fatal(err)
	}

	var last StepResult
	for i := 0; ; i++ {
		last, err = e.ProcessResponse(sess, centeredItem(i), i%2 == 0)
		if err != nil {
			t.Fatalf("ProcessResponse(%d) error = %v", i, err)
		}
		if last.Decision.ShouldStop {
			break
		}
		if i > 30 {
			t.Fatal("no stop after 30 items")
		}
	}

	if math.Abs(last.Theta) > 0.3 {
		t.Errorf("final Theta = %v, want within 0.3 of 0", last.Theta)
	}
	r := last.Decision.Reason
	if r != stopping.ReasonSEThreshold && r != stopping.ReasonMaxItems {
		t.Errorf("stop reason = %q, want se_threshold or max_items", r)
	}

	final, err := e.Finalize(sess, r)
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if final.Score.Score < 91 || final.Score.Score > 109 {
		t.Errorf("Score = %d, want near 100", final.Score.Score)
	}
}

func TestEndToEnd_OneItemPerDomain(t *testing.T) {
	var domains []blueprint.Domain
	for _, tag := range blueprint.MustDefault().Tags() {
		domains = append(domains, blueprint.Domain{Tag: tag, TargetShare: 1.0 / 6.0, MinItems: 1})
	}
	reg, err := blueprint.New(domains)
	if err != nil {
		t.Fatal(err)
	}
	e := testEngine(t, reg,
		selection.Config{TopK: 1, MaxItems: 20},
		stopping.Config{MinItems: 1, MaxItems: 20, SEThreshold: 0.05},
	)

	pool := make([]itembank.Item, 0, 6)
	for i, tag := range reg.Tags() {
		pool = append(pool, itembank.Calibrated{
			ItemID: tag + "-only",
			A:      1.0 + 0.1*float64(i),
			B:      0,
			Tag:    tag,
		})
	}

	sess, _ := e.Initialize("ex-1", "sess-1", nil)
	seenDomains := make(map[string]bool)
	for i := 0; i < 6; i++ {
		item, err := e.NextItem(sess, pool, nil)
		if err != nil {
			t.Fatalf("NextItem(%d) error = %v", i, err)
		}
		if seenDomains[item.Domain()] {
			t.Fatalf("NextItem(%d) repeated domain %q before covering all", i, item.Domain())
		}
		seenDomains[item.Domain()] = true
		if _, err := e.ProcessResponse(sess, item, true); err != nil {
			t.Fatalf("ProcessResponse(%d) error = %v", i, err)
		}
	}
	if len(seenDomains) != 6 {
		t.Fatalf("covered %d domains, want 6", len(seenDomains))
	}

	_, err = e.NextItem(sess, pool, nil)
	if !errors.Is(err, selection.ErrNoEligibleItems) {
		t.Fatalf("call 7: error = %v, want ErrNoEligibleItems", err)
	}
}

func TestNextItem_FullPoolAdministered(t *testing.T) {
	e := defaultEngine(t)
	sess, _ := e.Initialize("ex-1", "sess-1", nil)

	pool := make([]itembank.Item, 0, 12)
	for i := 0; i < 12; i++ {
		it := centeredItem(i)
		pool = append(pool, it)
		if _, err := e.ProcessResponse(sess, it, true); err != nil {
			t.Fatal(err)
		}
	}

	_, err := e.NextItem(sess, pool, nil)
	if !errors.Is(err, selection.ErrNoEligibleItems) {
		t.Fatalf("NextItem() error = %v, want ErrNoEligibleItems", err)
	}
}

func TestNextItem_ExcludesPriorSessionExposure(t *testing.T) {
	e := defaultEngine(t)
	sess, _ := e.Initialize("ex-1", "sess-1", nil)

	a := centeredItem(0)
	b := centeredItem(1)
	got, err := e.NextItem(sess, []itembank.Item{a, b}, map[string]bool{a.ID(): true})
	if err != nil {
		t.Fatalf("NextItem() error = %v", err)
	}
	if got.ID() != b.ID() {
		t.Errorf("NextItem() = %q, want %q (a was seen in a prior session)", got.ID(), b.ID())
	}
}

func TestFinalize_Idempotent(t *testing.T) {
	e := defaultEngine(t)
	sess, _ := e.Initialize("ex-1", "sess-1", nil)
	for i := 0; i < 10; i++ {
		if _, err := e.ProcessResponse(sess, centeredItem(i), i%2 == 0); err != nil {
			t.Fatal(err)
		}
	}

	first, err := e.Finalize(sess, stopping.ReasonSEThreshold)
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if sess.Status != StatusComplete {
		t.Fatalf("Status = %q, want complete", sess.Status)
	}

	// Second finalize, even with a different reason, reproduces the first.
	second, err := e.Finalize(sess, stopping.ReasonMaxItems)
	if err != nil {
		t.Fatalf("second Finalize() error = %v", err)
	}
	if second.StopReason != first.StopReason {
		t.Errorf("StopReason = %q, want %q", second.StopReason, first.StopReason)
	}
	if second.Theta != first.Theta || second.SE != first.SE || second.Score != first.Score {
		t.Errorf("second Finalize differs: %+v vs %+v", second, first)
	}
}

func TestFinalize_DomainBreakdown(t *testing.T) {
	e := defaultEngine(t)
	sess, _ := e.Initialize("ex-1", "sess-1", nil)

	tags := blueprint.MustDefault().Tags()
	// Two items in the first domain (one correct), one in the second.
	items := []struct {
		it      itembank.Calibrated
		correct bool
	}{
		{itembank.Calibrated{ItemID: "d0-1", A: 1.2, B: 0, Tag: tags[0]}, true},
		{itembank.Calibrated{ItemID: "d0-2", A: 1.2, B: 0.5, Tag: tags[0]}, false},
		{itembank.Calibrated{ItemID: "d1-1", A: 1.0, B: -0.5, Tag: tags[1]}, true},
	}
	for _, c := range items {
		if _, err := e.ProcessResponse(sess, c.it, c.correct); err != nil {
			t.Fatal(err)
		}
	}

	final, err := e.Finalize(sess, stopping.ReasonAllItemsExhausted)
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	d0 := final.Domains[tags[0]]
	if d0.Administered != 2 || d0.Correct != 1 || d0.Accuracy != 0.5 {
		t.Errorf("domain %q = %+v, want 2 administered, 1 correct, 0.5 accuracy", tags[0], d0)
	}
	d2 := final.Domains[tags[2]]
	if d2.Administered != 0 || d2.Accuracy != 0 {
		t.Errorf("untouched domain %q = %+v, want zeros", tags[2], d2)
	}
	if final.StopReason != stopping.ReasonAllItemsExhausted {
		t.Errorf("StopReason = %q, want all_items_exhausted", final.StopReason)
	}
}

func TestProcessResponse_AfterComplete(t *testing.T) {
	e := defaultEngine(t)
	sess, _ := e.Initialize("ex-1", "sess-1", nil)
	if _, err := e.ProcessResponse(sess, centeredItem(0), true); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Finalize(sess, stopping.ReasonMaxItems); err != nil {
		t.Fatal(err)
	}

	if _, err := e.ProcessResponse(sess, centeredItem(1), true); err == nil {
		t.Error("expected error for ProcessResponse on complete session")
	}
	if _, err := e.NextItem(sess, []itembank.Item{centeredItem(2)}, nil); err == nil {
		t.Error("expected error for NextItem on complete session")
	}
}
