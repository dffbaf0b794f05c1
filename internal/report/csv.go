package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"solar-imbalance/internal/analysis"
	"solar-imbalance/internal/model"
)

var resultHeader = []string{
	"scenario",
	"std_dev_mw",
	"share_pct",
	"energy_without_imbalance_mwh",
	"revenue",
	"energy_with_imbalance_mwh",
	"penalty",
	"net_profit",
}

func WriteCSV(path string, res *model.CalculationResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := EncodeCSV(f, res); err != nil {
		return err
	}
	return f.Close()
}

// EncodeCSV writes one row per scenario followed by a total row.
func EncodeCSV(out io.Writer, res *model.CalculationResult) error {
	w := csv.NewWriter(out)
	if err := w.Write(resultHeader); err != nil {
		return err
	}
	for _, s := range []model.ScenarioResult{res.Baseline, res.Improved} {
		row := []string{
			string(s.Scenario),
			fmtFloat(s.StdDevMW),
			fmtFloat(s.EnergyShareWithoutImbalance),
			fmtFloat(s.EnergyWithoutImbalanceMWh),
			fmtFloat(s.Revenue),
			fmtFloat(s.EnergyWithImbalanceMWh),
			fmtFloat(s.Penalty),
			fmtFloat(s.NetProfit()),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	total := []string{"total", "", "", "", "", "", "", fmtFloat(res.TotalProfit)}
	if err := w.Write(total); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func WriteSweepCSV(path string, points []analysis.SweepPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := EncodeSweepCSV(f, points); err != nil {
		return err
	}
	return f.Close()
}

func EncodeSweepCSV(out io.Writer, points []analysis.SweepPoint) error {
	w := csv.NewWriter(out)
	header := []string{
		"std_dev_mw",
		"baseline_share_pct",
		"improved_share_pct",
		"baseline_net_profit",
		"total_profit",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, p := range points {
		r := p.Result
		row := []string{
			fmtFloat(p.StdDevMW),
			fmtFloat(r.Baseline.EnergyShareWithoutImbalance),
			fmtFloat(r.Improved.EnergyShareWithoutImbalance),
			fmtFloat(r.Baseline.NetProfit()),
			fmtFloat(r.TotalProfit),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
