package scoring

import (
	"math"
	"testing"
)

func TestConvert_Center(t *testing.T) {
	r, err := Convert(0, 0.30)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if r.Score != 100 {
		t.Errorf("Score = %d, want 100", r.Score)
	}
	if r.CILower != 91 || r.CIUpper != 109 {
		t.Errorf("CI = [%d, %d], want [91, 109]", r.CILower, r.CIUpper)
	}
	if math.Abs(r.Percentile-50.0) > 1e-9 {
		t.Errorf("Percentile = %v, want 50", r.Percentile)
	}
}

func TestConvert_ClampsHigh(t *testing.T) {
	for _, se := range []float64{0, 0.2, 1.0} {
		r, err := Convert(5, se)
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if r.Score != ScoreMax {
			t.Errorf("se=%v: Score = %d, want %d", se, r.Score, ScoreMax)
		}
		if r.CIUpper != ScoreMax {
			t.Errorf("se=%v: CIUpper = %d, want clamped %d", se, r.CIUpper, ScoreMax)
		}
	}
}

func TestConvert_ClampsLow(t *testing.T) {
	r, err := Convert(-5, 0.4)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if r.Score != ScoreMin {
		t.Errorf("Score = %d, want %d", r.Score, ScoreMin)
	}
	if r.CILower != ScoreMin {
		t.Errorf("CILower = %d, want clamped %d", r.CILower, ScoreMin)
	}
}

func TestConvert_PercentileSeparatesClampedScores(t *testing.T) {
	a, err := Convert(4.5, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Convert(6.0, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if a.Score != b.Score {
		t.Fatalf("scores %d vs %d, both should clamp to %d", a.Score, b.Score, ScoreMax)
	}
	if b.Percentile <= a.Percentile {
		t.Errorf("percentiles %v vs %v: higher theta must keep a higher percentile", a.Percentile, b.Percentile)
	}
}

func TestConvert_ZeroSE(t *testing.T) {
	r, err := Convert(1.0, 0)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if r.CILower != r.Score || r.CIUpper != r.Score {
		t.Errorf("CI = [%d, %d], want zero-width at %d", r.CILower, r.CIUpper, r.Score)
	}
}

func TestConvert_AsymmetricIntervalNearCeiling(t *testing.T) {
	// Score near the ceiling: the upper bound clamps, the lower does not.
	r, err := Convert(3.8, 0.30)
	if err != nil {
		t.Fatal(err)
	}
	if r.Score != 157 {
		t.Fatalf("Score = %d, want 157", r.Score)
	}
	if r.CIUpper != ScoreMax {
		t.Errorf("CIUpper = %d, want clamped %d", r.CIUpper, ScoreMax)
	}
	if r.CILower >= r.Score {
		t.Errorf("CILower = %d, want below the point score", r.CILower)
	}
	if r.Score-r.CILower == r.CIUpper-r.Score {
		t.Error("interval symmetric around a clamped point score, want asymmetric")
	}
}

func TestConvert_RejectsBadInputs(t *testing.T) {
	if _, err := Convert(0, -0.1); err == nil {
		t.Error("expected error for negative se")
	}
	if _, err := Convert(math.NaN(), 0.3); err == nil {
		t.Error("expected error for NaN theta")
	}
	if _, err := Convert(0, math.Inf(1)); err == nil {
		t.Error("expected error for infinite se")
	}
}

func TestPhi(t *testing.T) {
	cases := []struct {
		z    float64
		want float64
	}{
		{0, 0.5},
		{1.96, 0.975},
		{-1.96, 0.025},
	}
	for _, c := range cases {
		if got := Phi(c.z); math.Abs(got-c.want) > 1e-3 {
			t.Errorf("Phi(%v) = %v, want %v", c.z, got, c.want)
		}
	}
}
