package estimate

import (
	"fmt"

	"solar-imbalance/internal/model"
)

// Calculator evaluates the baseline and improved generation scenarios.
// The zero value uses model.DefaultBand and model.DefaultImprovementFactor.
type Calculator struct {
	Band              model.Band
	ImprovementFactor float64
}

func New() Calculator {
	return Calculator{
		Band:              model.DefaultBand,
		ImprovementFactor: model.DefaultImprovementFactor,
	}
}

// Calculate runs the default calculator.
func Calculate(meanPower, stdDev, tariff float64) (*model.CalculationResult, error) {
	return New().Calculate(model.PlantParams{
		MeanPowerMW:  meanPower,
		StdDevMW:     stdDev,
		TariffPerMWh: tariff,
	})
}

// Resolved returns c with an unset band or improvement factor replaced by the defaults.
func (c Calculator) Resolved() Calculator {
	if c.Band.IsZero() {
		c.Band = model.DefaultBand
	}
	if c.ImprovementFactor == 0 {
		c.ImprovementFactor = model.DefaultImprovementFactor
	}
	return c
}

// Calculate computes energy volumes, revenue and penalty for both scenarios.
// Inputs are not range checked beyond what the integration requires; see
// model.PlantParams.Validate for the caller-side check.
func (c Calculator) Calculate(in model.PlantParams) (*model.CalculationResult, error) {
	c = c.Resolved()

	baseline, err := evaluateScenario(model.ScenarioBaseline, c.Band, in, in.StdDevMW)
	if err != nil {
		return nil, err
	}
	improved, err := evaluateScenario(model.ScenarioImproved, c.Band, in, in.StdDevMW*c.ImprovementFactor)
	if err != nil {
		return nil, err
	}

	return &model.CalculationResult{
		Inputs:      in,
		Baseline:    baseline,
		Improved:    improved,
		TotalProfit: improved.Revenue - improved.Penalty,
	}, nil
}

func evaluateScenario(s model.Scenario, band model.Band, in model.PlantParams, sigma float64) (model.ScenarioResult, error) {
	share, err := Integrate(band, in.MeanPowerMW, sigma)
	if err != nil {
		return model.ScenarioResult{}, fmt.Errorf("%s scenario: %w", s, err)
	}
	daily := in.DailyEnergyMWh()
	without := daily * share / 100
	with := daily * (1 - share/100)
	return model.ScenarioResult{
		Scenario:                    s,
		StdDevMW:                    sigma,
		EnergyShareWithoutImbalance: share,
		EnergyWithoutImbalanceMWh:   without,
		Revenue:                     without * in.TariffPerMWh,
		EnergyWithImbalanceMWh:      with,
		Penalty:                     with * in.TariffPerMWh,
	}, nil
}
