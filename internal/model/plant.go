package model

import (
	"errors"
	"math"
)

// PlantParams are the three inputs entered for a solar plant.
// Units:
// - MeanPowerMW: MW (daily mean output)
// - StdDevMW: MW (standard deviation of output)
// - TariffPerMWh: thousand UAH/MWh
type PlantParams struct {
	MeanPowerMW  float64
	StdDevMW     float64
	TariffPerMWh float64
}

// DailyEnergyMWh is the energy the plant would deliver over one day at MeanPowerMW.
func (p PlantParams) DailyEnergyMWh() float64 {
	return p.MeanPowerMW * HoursPerDay
}

// Validate is the range check applied by callers before handing inputs to the estimator.
// The estimator itself only rejects what its arithmetic cannot handle.
func (p PlantParams) Validate() error {
	if !isFinite(p.MeanPowerMW) || !isFinite(p.StdDevMW) || !isFinite(p.TariffPerMWh) {
		return errors.New("plant parameters must be finite numbers")
	}
	if p.MeanPowerMW <= 0 {
		return errors.New("MeanPowerMW must be > 0")
	}
	if p.StdDevMW <= 0 {
		return errors.New("StdDevMW must be > 0")
	}
	if p.TariffPerMWh < 0 {
		return errors.New("TariffPerMWh must be >= 0")
	}
	daily := p.DailyEnergyMWh()
	if !isFinite(daily) || !isFinite(daily*p.TariffPerMWh) {
		return errors.New("daily energy or revenue overflows")
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
