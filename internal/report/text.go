package report

import (
	"fmt"
	"io"
	"math"

	"solar-imbalance/internal/model"

	"github.com/shopspring/decimal"
)

const (
	UnitPercent  = "%"
	UnitMWh      = "MWh"
	UnitCurrency = "thousand UAH"
)

// Line is one labelled display value.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

func (l Line) String() string {
	if l.Unit == UnitPercent {
		return fmt.Sprintf("%s: %s%s", l.Label, l.Value, l.Unit)
	}
	return fmt.Sprintf("%s: %s %s", l.Label, l.Value, l.Unit)
}

// Section groups the lines of one scenario.
type Section struct {
	Title string `json:"title"`
	Lines []Line `json:"lines"`
}

// Display is the rendered form of a result.
type Display struct {
	Sections    []Section `json:"sections"`
	TotalProfit Line      `json:"total_profit"`
}

// OneDecimal rounds x half away from zero to one decimal place.
// NaN and infinities are spelled out.
func OneDecimal(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "+Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	}
	return decimal.NewFromFloat(x).StringFixed(1)
}

func Format(res *model.CalculationResult) Display {
	return Display{
		Sections: []Section{
			scenarioSection("Baseline system", res.Baseline),
			scenarioSection("Improved system", res.Improved),
		},
		TotalProfit: Line{Label: "Total profit", Value: OneDecimal(res.TotalProfit), Unit: UnitCurrency},
	}
}

func scenarioSection(title string, s model.ScenarioResult) Section {
	return Section{
		Title: title,
		Lines: []Line{
			{Label: "Energy share without imbalance", Value: OneDecimal(s.EnergyShareWithoutImbalance), Unit: UnitPercent},
			{Label: "Energy without imbalance", Value: OneDecimal(s.EnergyWithoutImbalanceMWh), Unit: UnitMWh},
			{Label: "Revenue", Value: OneDecimal(s.Revenue), Unit: UnitCurrency},
			{Label: "Energy with imbalance", Value: OneDecimal(s.EnergyWithImbalanceMWh), Unit: UnitMWh},
			{Label: "Penalty", Value: OneDecimal(s.Penalty), Unit: UnitCurrency},
		},
	}
}

// WriteText prints the display block.
func WriteText(w io.Writer, res *model.CalculationResult) error {
	d := Format(res)
	for i, s := range d.Sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s:\n", s.Title); err != nil {
			return err
		}
		for _, l := range s.Lines {
			if _, err := fmt.Fprintf(w, "  %s\n", l); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "\n%s\n", d.TotalProfit)
	return err
}
