// Package scoring maps a final ability estimate onto the normed IQ reporting
// scale.
package scoring

import (
	"fmt"
	"math"
)

const (
	// ScaleMean and ScaleSD define the reporting scale: IQ = 100 + 15*theta.
	ScaleMean = 100.0
	ScaleSD   = 15.0

	// ScoreMin and ScoreMax bound the reported score.
	ScoreMin = 40
	ScoreMax = 160

	// z95 is the two-sided 95% normal quantile.
	z95 = 1.96
)

// Result is a converted score with its confidence interval and percentile.
type Result struct {
	Score int
	// CILower and CIUpper bound the 95% interval. Each bound is clamped
	// independently, so the interval can sit asymmetrically around a
	// clamped point score.
	CILower int
	CIUpper int
	// Percentile is 100*Phi(theta), computed from the unclamped theta so
	// extreme abilities still separate after score clamping collapses them.
	Percentile float64
}

// Convert maps (theta, se) onto the reporting scale. Negative se and
// non-finite inputs are caller errors.
func Convert(theta, se float64) (Result, error) {
	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return Result{}, fmt.Errorf("non-finite theta %v", theta)
	}
	if math.IsNaN(se) || math.IsInf(se, 0) {
		return Result{}, fmt.Errorf("non-finite se %v", se)
	}
	if se < 0 {
		return Result{}, fmt.Errorf("negative se %g", se)
	}

	score := clampScore(int(math.Round(ScaleMean + ScaleSD*theta)))
	margin := z95 * ScaleSD * se

	return Result{
		Score:      score,
		CILower:    clampScore(int(math.Round(float64(score) - margin))),
		CIUpper:    clampScore(int(math.Round(float64(score) + margin))),
		Percentile: 100.0 * Phi(theta),
	}, nil
}

// Phi is the standard normal CDF.
func Phi(z float64) float64 {
	return 0.5 * math.Erfc(-z/math.Sqrt2)
}

func clampScore(s int) int {
	if s < ScoreMin {
		return ScoreMin
	}
	if s > ScoreMax {
		return ScoreMax
	}
	return s
}
