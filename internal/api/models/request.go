package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Number accepts a JSON number or the raw text of a form field ("5.0").
// Empty strings and null leave it unset.
type Number struct {
	Value float64
	Set   bool
}

// NumberError reports form text that does not parse as a number.
type NumberError struct {
	Text string
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("%q is not a number", e.Text)
}

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = Number{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
		if s == "" {
			*n = Number{}
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return &NumberError{Text: s}
	}
	*n = Number{Value: v, Set: true}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// CalculateRequest is the body of POST /api/v1/calculate.
// Unset fields fall back to the preset named by PlantID, or to the form defaults.
type CalculateRequest struct {
	PlantID      string `json:"plant_id,omitempty"`
	MeanPowerMW  Number `json:"mean_power_mw"`
	StdDevMW     Number `json:"std_dev_mw"`
	TariffPerMWh Number `json:"tariff_per_mwh"`
}

// CompareRequest is the body of POST /api/v1/calculate/compare.
type CompareRequest struct {
	Base       CalculateRequest   `json:"base"`
	Variations []VariationRequest `json:"variations" binding:"required,min=1,dive"`
}

// VariationRequest overrides fields of the base request.
type VariationRequest struct {
	Name string `json:"name" binding:"required"`
	CalculateRequest
}

// SweepRequest is the query of GET /api/v1/sweep.
type SweepRequest struct {
	PlantID      string  `form:"plant_id"`
	MeanPowerMW  float64 `form:"mean_power_mw"`
	TariffPerMWh float64 `form:"tariff_per_mwh"`
	From         float64 `form:"from"`
	To           float64 `form:"to"`
	Step         float64 `form:"step"`
}
