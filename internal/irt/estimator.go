package irt

import "math"

const (
	// GridMin and GridMax bound the ability scale used for estimation.
	GridMin = -4.0
	GridMax = 4.0

	// GridPoints is the number of quadrature points. High enough that the
	// exact count has negligible effect on the estimate; fixed for
	// determinism.
	GridPoints = 61

	// minSE is the floor applied to the posterior standard deviation so the
	// se > 0 invariant holds even for degenerate posteriors.
	minSE = 1e-6
)

// Response is a single graded answer with the item parameters snapshotted at
// administration time.
type Response struct {
	ItemID         string
	Discrimination float64
	Difficulty     float64
	Correct        bool
}

// Prior is a univariate normal prior over ability.
type Prior struct {
	Mean float64
	SD   float64
}

// DefaultPrior returns the population prior N(0, 1).
func DefaultPrior() Prior {
	return Prior{Mean: 0, SD: 1}
}

// Estimate holds a point ability estimate and its standard error.
type Estimate struct {
	Theta float64
	SE    float64
}

// grid is the fixed quadrature grid, computed once at package init.
var grid = buildGrid()

func buildGrid() [GridPoints]float64 {
	var g [GridPoints]float64
	step := (GridMax - GridMin) / float64(GridPoints-1)
	for q := range g {
		g[q] = GridMin + float64(q)*step
	}
	return g
}

// EAP computes the Expected-A-Posteriori ability estimate and its standard
// error from the given responses under the prior. With no responses it
// returns the prior unchanged. Stateless and safe to call concurrently.
//
// A response with non-positive discrimination fails with
// *InvalidParameterError naming the offending item.
func EAP(responses []Response, prior Prior) (Estimate, error) {
	for _, r := range responses {
		if r.Discrimination <= 0 {
			return Estimate{}, &InvalidParameterError{
				Field:  "discrimination",
				Value:  r.Discrimination,
				ItemID: r.ItemID,
			}
		}
	}
	if prior.SD <= 0 {
		return Estimate{}, &InvalidParameterError{Field: "prior.sd", Value: prior.SD}
	}

	if len(responses) == 0 {
		return Estimate{Theta: prior.Mean, SE: prior.SD}, nil
	}

	// Posterior weight at each grid point: prior density times the response
	// likelihood. The uniform quadrature weight cancels in normalization.
	var weights [GridPoints]float64
	total := 0.0
	for q, theta := range grid {
		w := normalPDF(theta, prior.Mean, prior.SD)
		for _, r := range responses {
			p := Probability(theta, r.Discrimination, r.Difficulty)
			if r.Correct {
				w *= p
			} else {
				w *= 1.0 - p
			}
		}
		weights[q] = w
		total += w
	}

	if total <= 0 || math.IsNaN(total) {
		// Likelihood underflowed everywhere. Fall back to the prior rather
		// than dividing by zero; theta stays inside the grid.
		return Estimate{Theta: prior.Mean, SE: prior.SD}, nil
	}

	mean := 0.0
	for q, theta := range grid {
		mean += theta * weights[q] / total
	}

	variance := 0.0
	for q, theta := range grid {
		d := theta - mean
		variance += d * d * weights[q] / total
	}

	se := math.Sqrt(variance)
	if se < minSE {
		se = minSE
	}
	return Estimate{Theta: mean, SE: se}, nil
}
