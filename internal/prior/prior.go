// Package prior seeds the starting ability prior for a returning examinee
// from their previous final estimates.
package prior

import (
	"fmt"
	"math"

	"github.com/gioe/quotient/internal/irt"
)

// Clamp bounds for the seeded prior. A history-derived prior is never allowed
// to be more extreme or more confident than these.
const (
	MeanMin = -3.0
	MeanMax = 3.0
	SDMin   = 0.1
	SDMax   = 1.0
)

// Seed combines past final estimates into a starting prior, weighting each by
// its precision (1/se^2). With no history it returns the population default.
// A non-positive historical se is a caller error.
func Seed(history []irt.Estimate) (irt.Prior, error) {
	if len(history) == 0 {
		return irt.DefaultPrior(), nil
	}

	totalPrecision := 0.0
	weightedSum := 0.0
	for i, h := range history {
		if h.SE <= 0 {
			return irt.Prior{}, fmt.Errorf("history entry %d: se must be > 0, got %g", i, h.SE)
		}
		w := 1.0 / (h.SE * h.SE)
		totalPrecision += w
		weightedSum += w * h.Theta
	}

	mean := clamp(weightedSum/totalPrecision, MeanMin, MeanMax)
	sd := clamp(math.Sqrt(1.0/totalPrecision), SDMin, SDMax)
	return irt.Prior{Mean: mean, SD: sd}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
