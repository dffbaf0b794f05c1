package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"solar-imbalance/internal/analysis"
	"solar-imbalance/internal/config"
	"solar-imbalance/internal/report"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "calculate":
		err = cmdCalculate(os.Args[2:])
	case "compare":
		err = cmdCompare(os.Args[2:])
	case "sweep":
		err = cmdSweep(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	var ue usageError
	switch {
	case errors.As(err, &ue):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	case err != nil:
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli calculate [--config examples/config.yaml] [--mean 5.0 --sigma 0.25 --tariff 7.0] [--out results/result.csv]")
	fmt.Println("  cli compare --config a.yaml,b.yaml")
	fmt.Println("  cli sweep [--config examples/config.yaml] --from 0.05 --to 1.0 --step 0.05 [--out results/sweep.csv]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - values are per day; revenue and penalty are in thousand UAH")
	fmt.Println("  - total profit is the improved system's revenue minus its penalty")
}

// usageError marks bad command-line input (exit status 2).
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func cmdCalculate(args []string) error {
	fs := flag.NewFlagSet("calculate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	mean := fs.String("mean", "", "Mean output power, MW")
	sigma := fs.String("sigma", "", "Standard deviation of output, MW")
	tariff := fs.String("tariff", "", "Tariff, thousand UAH/MWh")
	outPath := fs.String("out", "", "Optional CSV output path")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	if err := applyFlag(&cfg.Plant.MeanPowerMW, "mean", *mean); err != nil {
		return err
	}
	if err := applyFlag(&cfg.Plant.StdDevMW, "sigma", *sigma); err != nil {
		return err
	}
	if err := applyFlag(&cfg.Plant.TariffPerMWh, "tariff", *tariff); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return usageError{msg: err.Error()}
	}

	res, err := cfg.Calculator().Calculate(cfg.Plant.ToModelParams())
	if err != nil {
		return err
	}
	if err := report.WriteText(os.Stdout, res); err != nil {
		return err
	}

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			return err
		}
		if err := report.WriteCSV(*outPath, res); err != nil {
			return err
		}
		fmt.Printf("\nWrote %s\n", *outPath)
	}
	return nil
}

func cmdCompare(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	cfgPaths := fs.String("config", "", "Comma-separated YAML config paths")
	_ = fs.Parse(args)

	paths := splitPaths(*cfgPaths)
	if len(paths) == 0 {
		return usageError{msg: "--config is required"}
	}

	variations := make([]analysis.Variation, 0, len(paths))
	for _, p := range paths {
		cfg, err := config.Load(p)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		name := cfg.Plant.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		}
		variations = append(variations, analysis.Variation{
			Name:       name,
			Calculator: cfg.Calculator(),
			Params:     cfg.Plant.ToModelParams(),
		})
	}

	ranked, err := analysis.RankByTotalProfit(variations)
	if err != nil {
		return err
	}

	fmt.Printf("%-4s %-24s %-8s %-8s %-10s %-10s %-12s\n", "rank", "name", "mean", "sigma", "share%", "imp.share%", "total")
	for i, r := range ranked {
		res := r.Result
		fmt.Printf("%-4d %-24s %-8s %-8s %-10s %-10s %-12s\n",
			i+1,
			r.Name,
			report.OneDecimal(res.Inputs.MeanPowerMW),
			strconv.FormatFloat(res.Inputs.StdDevMW, 'g', -1, 64),
			report.OneDecimal(res.Baseline.EnergyShareWithoutImbalance),
			report.OneDecimal(res.Improved.EnergyShareWithoutImbalance),
			report.OneDecimal(res.TotalProfit),
		)
	}
	return nil
}

func cmdSweep(args []string) error {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	from := fs.Float64("from", 0.05, "First sigma, MW")
	to := fs.Float64("to", 1.0, "Last sigma, MW")
	step := fs.Float64("step", 0.05, "Sigma step, MW")
	outPath := fs.String("out", "", "Optional CSV output path")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	sigmas, err := analysis.SigmaRange(*from, *to, *step)
	if err != nil {
		return usageError{msg: err.Error()}
	}
	points, err := analysis.Sweep(cfg.Calculator(), cfg.Plant.ToModelParams(), sigmas)
	if err != nil {
		return err
	}

	fmt.Printf("%-8s %-10s %-10s %-12s %-12s\n", "sigma", "share%", "imp.share%", "base.net", "total")
	for _, p := range points {
		fmt.Printf("%-8s %-10s %-10s %-12s %-12s\n",
			strconv.FormatFloat(p.StdDevMW, 'f', 3, 64),
			report.OneDecimal(p.Result.Baseline.EnergyShareWithoutImbalance),
			report.OneDecimal(p.Result.Improved.EnergyShareWithoutImbalance),
			report.OneDecimal(p.Result.Baseline.NetProfit()),
			report.OneDecimal(p.Result.TotalProfit),
		)
	}

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			return err
		}
		if err := report.WriteSweepCSV(*outPath, points); err != nil {
			return err
		}
		fmt.Printf("\nWrote %d rows to %s\n", len(points), *outPath)
	}
	return nil
}

// loadConfig loads path, or returns the form defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := &config.Config{Plant: config.DefaultPlant()}
		cfg.ApplyDefaults()
		return cfg, nil
	}
	return config.Load(path)
}

// applyFlag parses text the way the input form does; empty text keeps dst.
func applyFlag(dst *float64, name, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return usageError{msg: fmt.Sprintf("--%s: %q is not a number", name, text)}
	}
	*dst = v
	return nil
}

func splitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
