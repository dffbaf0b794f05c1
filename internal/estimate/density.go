package estimate

import "math"

var sqrt2Pi = math.Sqrt(2 * math.Pi)

// Density evaluates the normal probability density with mean pc and standard
// deviation sigma at power p.
//
// Density does not check sigma. For sigma == 0 the IEEE arithmetic yields NaN,
// and a negative sigma yields the negated density; Integrate rejects both.
func Density(p, pc, sigma float64) float64 {
	d := p - pc
	return 1 / (sigma * sqrt2Pi) * math.Exp(-(d*d)/(2*sigma*sigma))
}
