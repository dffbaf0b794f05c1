package estimate

import (
	"errors"
	"math"

	"solar-imbalance/internal/model"
)

var (
	ErrZeroSubdivisions = errors.New("subdivisions must be > 0")
	ErrInvalidSigma     = errors.New("standard deviation must be a finite number > 0")
	ErrInvalidBand      = errors.New("band bounds must be finite with lower <= upper")
)

// Integrate approximates the probability mass (as a percentage) of the output
// distribution inside band using the composite trapezoidal rule.
func Integrate(band model.Band, pc, sigma float64) (float64, error) {
	if band.Subdivisions <= 0 {
		return 0, ErrZeroSubdivisions
	}
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma <= 0 {
		return 0, ErrInvalidSigma
	}
	a, b := band.Lower, band.Upper
	if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0) || b < a {
		return 0, ErrInvalidBand
	}

	n := band.Subdivisions
	h := (b - a) / float64(n)
	sum := (Density(a, pc, sigma) + Density(b, pc, sigma)) / 2
	for i := 1; i < n; i++ {
		sum += Density(a+float64(i)*h, pc, sigma)
	}
	return h * sum * 100, nil
}
