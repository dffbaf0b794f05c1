package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"solar-imbalance/internal/estimate"
	"solar-imbalance/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load plant parameters from a preset (e.g. examples/plants/*.yaml).
	// If both PlantFile and Plant are provided, Plant overrides PlantFile.
	PlantFile         string      `yaml:"plant_file"`
	Plant             PlantConfig `yaml:"plant"`
	Band              BandConfig  `yaml:"band"`
	ImprovementFactor float64     `yaml:"improvement_factor"`
}

type PlantConfig struct {
	Name         string  `yaml:"name"`
	MeanPowerMW  float64 `yaml:"mean_power_mw"`
	StdDevMW     float64 `yaml:"std_dev_mw"`
	TariffPerMWh float64 `yaml:"tariff_per_mwh"`
}

type BandConfig struct {
	LowerMW      float64 `yaml:"lower_mw"`
	UpperMW      float64 `yaml:"upper_mw"`
	Subdivisions int     `yaml:"subdivisions"`
}

// DefaultPlant returns the values the input form is pre-filled with.
func DefaultPlant() PlantConfig {
	return PlantConfig{
		Name:         "default",
		MeanPowerMW:  5.0,
		StdDevMW:     0.25,
		TariffPerMWh: 7.0,
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.PlantFile != "" {
		plantPath := c.PlantFile
		if !filepath.IsAbs(plantPath) {
			// Relative to the config file first, then to cwd.
			cand := filepath.Join(filepath.Dir(path), plantPath)
			if _, err := os.Stat(cand); err == nil {
				plantPath = cand
			}
		}
		loaded, err := LoadPlantFile(plantPath)
		if err != nil {
			return nil, err
		}
		c.Plant = MergePlant(loaded, c.Plant)
	}
	return &c, nil
}

// ApplyDefaults fills an unset band and improvement factor with the nominal values.
func (c *Config) ApplyDefaults() {
	if c.Band == (BandConfig{}) {
		c.Band = BandConfig{
			LowerMW:      model.NominalBandLower,
			UpperMW:      model.NominalBandUpper,
			Subdivisions: model.DefaultSubdivisions,
		}
	}
	if c.Band.Subdivisions == 0 {
		c.Band.Subdivisions = model.DefaultSubdivisions
	}
	if c.ImprovementFactor == 0 {
		c.ImprovementFactor = model.DefaultImprovementFactor
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Plant.ToModelParams().Validate(); err != nil {
		return fmt.Errorf("plant config invalid: %w", err)
	}
	if c.Band.Subdivisions <= 0 {
		return errors.New("band.subdivisions must be > 0")
	}
	if c.Band.UpperMW <= c.Band.LowerMW {
		return errors.New("band.upper_mw must be greater than band.lower_mw")
	}
	if c.ImprovementFactor <= 0 || c.ImprovementFactor > 1 {
		return errors.New("improvement_factor must be in (0, 1]")
	}
	return nil
}

// Calculator builds the estimator described by the config.
func (c *Config) Calculator() estimate.Calculator {
	return estimate.Calculator{
		Band:              c.Band.ToModelBand(),
		ImprovementFactor: c.ImprovementFactor,
	}
}

func (p PlantConfig) ToModelParams() model.PlantParams {
	return model.PlantParams{
		MeanPowerMW:  p.MeanPowerMW,
		StdDevMW:     p.StdDevMW,
		TariffPerMWh: p.TariffPerMWh,
	}
}

func (b BandConfig) ToModelBand() model.Band {
	return model.Band{
		Lower:        b.LowerMW,
		Upper:        b.UpperMW,
		Subdivisions: b.Subdivisions,
	}
}

type plantFileWrapper struct {
	Plant PlantConfig `yaml:"plant"`
}

// LoadPlantFile reads a preset of the form `plant: {...}`.
func LoadPlantFile(path string) (PlantConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PlantConfig{}, err
	}
	var w plantFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return PlantConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Plant, nil
}

// MergePlant overlays non-zero fields from override onto base.
// Used when loading a preset and then applying overrides from a config or request.
func MergePlant(base, override PlantConfig) PlantConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.MeanPowerMW != 0 {
		out.MeanPowerMW = override.MeanPowerMW
	}
	if override.StdDevMW != 0 {
		out.StdDevMW = override.StdDevMW
	}
	// A zero tariff cannot be expressed as an override; presets that need it set it directly.
	if override.TariffPerMWh != 0 {
		out.TariffPerMWh = override.TariffPerMWh
	}
	return out
}
