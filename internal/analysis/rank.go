package analysis

import (
	"fmt"
	"sort"

	"solar-imbalance/internal/estimate"
	"solar-imbalance/internal/model"
)

// Variation is a named set of inputs to compare.
type Variation struct {
	Name       string
	Calculator estimate.Calculator
	Params     model.PlantParams
}

type RankedResult struct {
	Name   string
	Result *model.CalculationResult
}

// RankByTotalProfit evaluates every variation and sorts descending by TotalProfit.
// Ties keep their input order.
func RankByTotalProfit(variations []Variation) ([]RankedResult, error) {
	out := make([]RankedResult, 0, len(variations))
	for _, v := range variations {
		res, err := v.Calculator.Calculate(v.Params)
		if err != nil {
			return nil, fmt.Errorf("variation %q: %w", v.Name, err)
		}
		out = append(out, RankedResult{Name: v.Name, Result: res})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Result.TotalProfit > out[j].Result.TotalProfit
	})
	return out, nil
}
