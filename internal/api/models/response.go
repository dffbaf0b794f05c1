package models

import (
	"solar-imbalance/internal/model"
	"solar-imbalance/internal/report"
)

// PlantInputs echoes the inputs a result was computed from.
type PlantInputs struct {
	MeanPowerMW  float64 `json:"mean_power_mw"`
	StdDevMW     float64 `json:"std_dev_mw"`
	TariffPerMWh float64 `json:"tariff_per_mwh"`
}

// ScenarioSummary contains the figures for one scenario.
type ScenarioSummary struct {
	StdDevMW                    float64 `json:"std_dev_mw"`
	EnergyShareWithoutImbalance float64 `json:"energy_share_without_imbalance_pct"`
	EnergyWithoutImbalanceMWh   float64 `json:"energy_without_imbalance_mwh"`
	Revenue                     float64 `json:"revenue"`
	EnergyWithImbalanceMWh      float64 `json:"energy_with_imbalance_mwh"`
	Penalty                     float64 `json:"penalty"`
}

// CalculateResponse represents the response from a calculation
type CalculateResponse struct {
	ID          string          `json:"id"`
	Inputs      PlantInputs     `json:"inputs"`
	Baseline    ScenarioSummary `json:"baseline"`
	Improved    ScenarioSummary `json:"improved"`
	TotalProfit float64         `json:"total_profit"`
	Display     report.Display  `json:"display"`
}

// NewCalculateResponse converts a result to its API form.
func NewCalculateResponse(id string, res *model.CalculationResult) CalculateResponse {
	return CalculateResponse{
		ID: id,
		Inputs: PlantInputs{
			MeanPowerMW:  res.Inputs.MeanPowerMW,
			StdDevMW:     res.Inputs.StdDevMW,
			TariffPerMWh: res.Inputs.TariffPerMWh,
		},
		Baseline:    newScenarioSummary(res.Baseline),
		Improved:    newScenarioSummary(res.Improved),
		TotalProfit: res.TotalProfit,
		Display:     report.Format(res),
	}
}

func newScenarioSummary(s model.ScenarioResult) ScenarioSummary {
	return ScenarioSummary{
		StdDevMW:                    s.StdDevMW,
		EnergyShareWithoutImbalance: s.EnergyShareWithoutImbalance,
		EnergyWithoutImbalanceMWh:   s.EnergyWithoutImbalanceMWh,
		Revenue:                     s.Revenue,
		EnergyWithImbalanceMWh:      s.EnergyWithImbalanceMWh,
		Penalty:                     s.Penalty,
	}
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Rank   int               `json:"rank"`
	Name   string            `json:"name"`
	Result CalculateResponse `json:"result"`
}

// SweepResponse lists one point per sigma.
type SweepResponse struct {
	Points []SweepPoint `json:"points"`
}

type SweepPoint struct {
	StdDevMW          float64 `json:"std_dev_mw"`
	BaselineShare     float64 `json:"baseline_share_pct"`
	ImprovedShare     float64 `json:"improved_share_pct"`
	BaselineNetProfit float64 `json:"baseline_net_profit"`
	TotalProfit       float64 `json:"total_profit"`
}

// DefaultsResponse carries the pre-filled form values and the tolerance band.
type DefaultsResponse struct {
	Inputs            PlantInputs `json:"inputs"`
	Band              BandInfo    `json:"band"`
	ImprovementFactor float64     `json:"improvement_factor"`
}

type BandInfo struct {
	LowerMW      float64 `json:"lower_mw"`
	UpperMW      float64 `json:"upper_mw"`
	Subdivisions int     `json:"subdivisions"`
}

// PlantInfo represents a plant preset
type PlantInfo struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	File   string      `json:"file"`
	Inputs PlantInputs `json:"inputs"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
