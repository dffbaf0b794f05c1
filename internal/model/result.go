package model

// Scenario names a generation scenario.
// Keep these values stable; they are used in CSV output.
type Scenario string

const (
	ScenarioBaseline Scenario = "baseline"
	ScenarioImproved Scenario = "improved"
)

// ScenarioResult holds the derived figures for one scenario.
type ScenarioResult struct {
	Scenario Scenario
	// StdDevMW is the sigma the scenario was evaluated with.
	StdDevMW float64

	// EnergyShareWithoutImbalance is a percentage (nominally 0..100, not clamped).
	EnergyShareWithoutImbalance float64
	EnergyWithoutImbalanceMWh   float64
	Revenue                     float64
	EnergyWithImbalanceMWh      float64
	Penalty                     float64
}

// NetProfit is revenue minus penalty for this scenario alone.
func (s ScenarioResult) NetProfit() float64 {
	return s.Revenue - s.Penalty
}

// CalculationResult is the full output of one estimate.
type CalculationResult struct {
	Inputs   PlantParams
	Baseline ScenarioResult
	Improved ScenarioResult

	// TotalProfit is the improved scenario's revenue minus its penalty.
	// The baseline net is intentionally not part of it.
	TotalProfit float64
}
