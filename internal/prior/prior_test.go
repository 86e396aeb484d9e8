package prior

import (
	"math"
	"testing"

	"github.com/gioe/quotient/internal/irt"
)

func TestSeed_EmptyHistoryReturnsDefault(t *testing.T) {
	p, err := Seed(nil)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if p != irt.DefaultPrior() {
		t.Errorf("Seed() = %+v, want population default", p)
	}
}

func TestSeed_PrecisionWeighting(t *testing.T) {
	// The tighter estimate should dominate the combined mean.
	p, err := Seed([]irt.Estimate{
		{Theta: 1.0, SE: 0.2},
		{Theta: -1.0, SE: 0.8},
	})
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	// Weights 25 and 1.5625: mean = (25 - 1.5625) / 26.5625.
	want := (25.0 - 1.5625) / 26.5625
	if math.Abs(p.Mean-want) > 1e-9 {
		t.Errorf("Mean = %v, want %v", p.Mean, want)
	}
	if p.SD >= 0.2 {
		t.Errorf("SD = %v, want tighter than the best single estimate", p.SD)
	}
}

func TestSeed_ClampsMean(t *testing.T) {
	p, err := Seed([]irt.Estimate{{Theta: 5.0, SE: 0.3}})
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if p.Mean != MeanMax {
		t.Errorf("Mean = %v, want clamped to %v", p.Mean, MeanMax)
	}
}

func TestSeed_ClampsSD(t *testing.T) {
	// Many tight estimates drive combined sd below the floor.
	var history []irt.Estimate
	for i := 0; i < 50; i++ {
		history = append(history, irt.Estimate{Theta: 0.5, SE: 0.15})
	}
	p, err := Seed(history)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if p.SD != SDMin {
		t.Errorf("SD = %v, want floored at %v", p.SD, SDMin)
	}

	// A single vague estimate caps at the ceiling.
	p, err = Seed([]irt.Estimate{{Theta: 0, SE: 3.0}})
	if err != nil {
		t.Fatal(err)
	}
	if p.SD != SDMax {
		t.Errorf("SD = %v, want capped at %v", p.SD, SDMax)
	}
}

func TestSeed_RejectsNonPositiveSE(t *testing.T) {
	_, err := Seed([]irt.Estimate{{Theta: 0, SE: 0}})
	if err == nil {
		t.Fatal("expected error for se = 0")
	}
}
