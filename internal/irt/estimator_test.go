package irt

import (
	"errors"
	"math"
	"testing"
)

func allCorrect(n int, a, b float64) []Response {
	rs := make([]Response, n)
	for i := range rs {
		rs[i] = Response{ItemID: "i", Discrimination: a, Difficulty: b, Correct: true}
	}
	return rs
}

func flip(rs []Response) []Response {
	out := make([]Response, len(rs))
	for i, r := range rs {
		r.Correct = !r.Correct
		out[i] = r
	}
	return out
}

func TestEAP_NoResponses_ReturnsPrior(t *testing.T) {
	prior := Prior{Mean: 0.7, SD: 0.4}
	est, err := EAP(nil, prior)
	if err != nil {
		t.Fatalf("EAP() error = %v", err)
	}
	if est.Theta != prior.Mean {
		t.Errorf("Theta = %v, want %v", est.Theta, prior.Mean)
	}
	if est.SE != prior.SD {
		t.Errorf("SE = %v, want %v", est.SE, prior.SD)
	}
}

func TestEAP_NonPositiveDiscrimination(t *testing.T) {
	rs := []Response{{ItemID: "bad-item", Discrimination: 0, Difficulty: 0, Correct: true}}
	_, err := EAP(rs, DefaultPrior())
	if err == nil {
		t.Fatal("expected error for discrimination = 0")
	}
	var ipe *InvalidParameterError
	if !errors.As(err, &ipe) {
		t.Fatalf("error type = %T, want *InvalidParameterError", err)
	}
	if ipe.ItemID != "bad-item" {
		t.Errorf("ItemID = %q, want bad-item", ipe.ItemID)
	}
}

func TestEAP_StaysOnGrid(t *testing.T) {
	streams := map[string][]Response{
		"all-correct":   allCorrect(15, 2.0, 0),
		"all-incorrect": flip(allCorrect(15, 2.0, 0)),
	}
	mixed := allCorrect(15, 1.2, 0.5)
	for i := range mixed {
		mixed[i].Correct = i%2 == 0
	}
	streams["mixed"] = mixed

	for name, rs := range streams {
		est, err := EAP(rs, DefaultPrior())
		if err != nil {
			t.Fatalf("%s: EAP() error = %v", name, err)
		}
		if est.Theta < GridMin || est.Theta > GridMax {
			t.Errorf("%s: Theta = %v, want within [%v, %v]", name, est.Theta, GridMin, GridMax)
		}
		if est.SE <= 0 {
			t.Errorf("%s: SE = %v, want > 0", name, est.SE)
		}
		if math.IsNaN(est.Theta) || math.IsInf(est.Theta, 0) {
			t.Errorf("%s: Theta = %v, want finite", name, est.Theta)
		}
	}
}

func TestEAP_MirrorSymmetry(t *testing.T) {
	// Items symmetric about difficulty 0: flipping every correctness
	// mirrors theta and preserves se.
	rs := []Response{
		{Discrimination: 1.5, Difficulty: -1.0, Correct: true},
		{Discrimination: 1.5, Difficulty: 1.0, Correct: true},
		{Discrimination: 1.0, Difficulty: -0.5, Correct: true},
		{Discrimination: 1.0, Difficulty: 0.5, Correct: true},
		{Discrimination: 2.0, Difficulty: 0.0, Correct: true},
	}
	fwd, err := EAP(rs, DefaultPrior())
	if err != nil {
		t.Fatalf("EAP() error = %v", err)
	}
	rev, err := EAP(flip(rs), DefaultPrior())
	if err != nil {
		t.Fatalf("EAP(flipped) error = %v", err)
	}
	if math.Abs(fwd.Theta+rev.Theta) > 1e-9 {
		t.Errorf("Theta = %v and mirrored %v, want exact negatives", fwd.Theta, rev.Theta)
	}
	if math.Abs(fwd.SE-rev.SE) > 1e-9 {
		t.Errorf("SE = %v and mirrored %v, want equal", fwd.SE, rev.SE)
	}
}

func TestEAP_TightPriorDominatesWithFewResponses(t *testing.T) {
	rs := allCorrect(1, 1.0, 0)

	tight, err := EAP(rs, Prior{Mean: 0, SD: 0.2})
	if err != nil {
		t.Fatalf("EAP() error = %v", err)
	}
	loose, err := EAP(rs, Prior{Mean: 0, SD: 2.0})
	if err != nil {
		t.Fatalf("EAP() error = %v", err)
	}
	if math.Abs(tight.Theta) >= math.Abs(loose.Theta) {
		t.Errorf("tight prior Theta = %v, loose = %v; tight should stay closer to the prior mean", tight.Theta, loose.Theta)
	}
}

func TestEAP_PriorInfluenceVanishes(t *testing.T) {
	// Precision adds: many responses should pull the estimate far from an
	// off-center prior mean.
	rs := allCorrect(30, 1.5, 1.0)
	est, err := EAP(rs, Prior{Mean: -2.0, SD: 1.0})
	if err != nil {
		t.Fatalf("EAP() error = %v", err)
	}
	if est.Theta < 1.0 {
		t.Errorf("Theta = %v, want > 1.0 after 30 correct answers at difficulty 1", est.Theta)
	}

	few, _ := EAP(rs[:2], Prior{Mean: -2.0, SD: 1.0})
	if few.SE <= est.SE {
		t.Errorf("SE with 2 responses = %v, with 30 = %v; more responses should shrink se", few.SE, est.SE)
	}
}

func TestEAP_InvalidPriorSD(t *testing.T) {
	_, err := EAP(allCorrect(1, 1, 0), Prior{Mean: 0, SD: 0})
	if err == nil {
		t.Fatal("expected error for prior sd = 0")
	}
}

func TestProbability_Extremes(t *testing.T) {
	if p := Probability(100, 3.0, 0); p != 1.0 {
		t.Errorf("Probability(100) = %v, want 1", p)
	}
	if p := Probability(-100, 3.0, 0); p <= 0 || p > 1e-10 {
		t.Errorf("Probability(-100) = %v, want tiny positive", p)
	}
	if p := Probability(0, 1.0, 0); math.Abs(p-0.5) > 1e-12 {
		t.Errorf("Probability(0) = %v, want 0.5", p)
	}
}

func TestInformation_NonNegativeFinite(t *testing.T) {
	for _, a := range []float64{0.01, 0.5, 1.0, 2.5} {
		for theta := -10.0; theta <= 10.0; theta += 0.5 {
			info := Information(theta, a, 0.3)
			if info < 0 {
				t.Fatalf("Information(%v, %v) = %v, want >= 0", theta, a, info)
			}
			if math.IsNaN(info) || math.IsInf(info, 0) {
				t.Fatalf("Information(%v, %v) = %v, want finite", theta, a, info)
			}
		}
	}
}

func BenchmarkEAP_15Responses(b *testing.B) {
	rs := allCorrect(15, 1.5, 0)
	for i := range rs {
		rs[i].Correct = i%2 == 0
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := EAP(rs, DefaultPrior()); err != nil {
			b.Fatal(err)
		}
	}
}
