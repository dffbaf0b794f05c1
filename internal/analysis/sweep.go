package analysis

import (
	"errors"
	"fmt"
	"math"

	"solar-imbalance/internal/estimate"
	"solar-imbalance/internal/model"
)

// SweepPoint is the result for one sigma in a sensitivity sweep.
type SweepPoint struct {
	StdDevMW float64
	Result   *model.CalculationResult
}

// Sweep evaluates calc for each sigma, keeping mean power and tariff from base.
// Points are returned in the order of sigmas.
func Sweep(calc estimate.Calculator, base model.PlantParams, sigmas []float64) ([]SweepPoint, error) {
	out := make([]SweepPoint, 0, len(sigmas))
	for i, sigma := range sigmas {
		in := base
		in.StdDevMW = sigma
		res, err := calc.Calculate(in)
		if err != nil {
			return nil, fmt.Errorf("sweep point %d (sigma=%g): %w", i, sigma, err)
		}
		out = append(out, SweepPoint{StdDevMW: sigma, Result: res})
	}
	return out, nil
}

// maxSweepPoints bounds SigmaRange so a tiny step cannot allocate without limit.
const maxSweepPoints = 10000

// SigmaRange returns from, from+step, ... up to and including to.
func SigmaRange(from, to, step float64) ([]float64, error) {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil, errors.New("step must be > 0")
	}
	if math.IsNaN(from) || math.IsNaN(to) || math.IsInf(from, 0) || math.IsInf(to, 0) {
		return nil, errors.New("from and to must be finite")
	}
	if from > to {
		return nil, errors.New("from must be <= to")
	}
	count := int(math.Floor((to-from)/step+1e-9)) + 1
	if count > maxSweepPoints {
		return nil, fmt.Errorf("range has %d points, limit is %d", count, maxSweepPoints)
	}
	out := make([]float64, count)
	for i := range out {
		// Multiply rather than accumulate to avoid drift.
		out[i] = from + float64(i)*step
	}
	return out, nil
}
