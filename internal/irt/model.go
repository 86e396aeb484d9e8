package irt

import "math"

// Probability returns P(correct | theta) under the two-parameter logistic
// model with discrimination a and difficulty b.
// The logistic is evaluated branch-on-sign so large |a*(theta-b)| never
// overflows math.Exp.
func Probability(theta, a, b float64) float64 {
	z := a * (theta - b)
	if z >= 0 {
		return 1.0 / (1.0 + math.Exp(-z))
	}
	ez := math.Exp(z)
	return ez / (1.0 + ez)
}

// Information returns the Fisher information of a 2PL item at theta:
// I(theta) = a^2 * P * (1-P). Non-negative and finite for any finite inputs.
func Information(theta, a, b float64) float64 {
	p := Probability(theta, a, b)
	return a * a * p * (1.0 - p)
}

// normalPDF returns the density of N(mean, sd) at x.
func normalPDF(x, mean, sd float64) float64 {
	z := (x - mean) / sd
	return math.Exp(-0.5*z*z) / (sd * math.Sqrt(2.0*math.Pi))
}
