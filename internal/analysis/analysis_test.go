package analysis

import (
	"math"
	"testing"

	"solar-imbalance/internal/estimate"
	"solar-imbalance/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigmaRange(t *testing.T) {
	t.Run("inclusive", func(t *testing.T) {
		got, err := SigmaRange(0.1, 0.5, 0.1)
		require.NoError(t, err)
		require.Len(t, got, 5)
		assert.InDelta(t, 0.1, got[0], 1e-12)
		assert.InDelta(t, 0.5, got[4], 1e-12)
	})

	t.Run("single point", func(t *testing.T) {
		got, err := SigmaRange(0.25, 0.25, 0.1)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.25}, got)
	})

	t.Run("bad step", func(t *testing.T) {
		_, err := SigmaRange(0.1, 0.5, 0)
		assert.Error(t, err)
	})

	t.Run("reversed", func(t *testing.T) {
		_, err := SigmaRange(0.5, 0.1, 0.1)
		assert.Error(t, err)
	})

	t.Run("infinite bound", func(t *testing.T) {
		_, err := SigmaRange(0.1, math.Inf(1), 0.1)
		assert.Error(t, err)
	})

	t.Run("too many points", func(t *testing.T) {
		_, err := SigmaRange(0.1, 100, 0.0001)
		assert.Error(t, err)
	})
}

func TestSweep_ShareFallsAsSigmaGrows(t *testing.T) {
	sigmas, err := SigmaRange(0.1, 1.0, 0.1)
	require.NoError(t, err)

	base := model.PlantParams{MeanPowerMW: 5, TariffPerMWh: 7}
	points, err := Sweep(estimate.New(), base, sigmas)
	require.NoError(t, err)
	require.Len(t, points, len(sigmas))

	for i := 1; i < len(points); i++ {
		assert.Equal(t, sigmas[i], points[i].StdDevMW)
		assert.Less(t, points[i].Result.Baseline.EnergyShareWithoutImbalance,
			points[i-1].Result.Baseline.EnergyShareWithoutImbalance)
		assert.Less(t, points[i].Result.TotalProfit, points[i-1].Result.TotalProfit)
	}
}

func TestSweep_FailsOnZeroSigma(t *testing.T) {
	base := model.PlantParams{MeanPowerMW: 5, TariffPerMWh: 7}
	_, err := Sweep(estimate.New(), base, []float64{0.25, 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, estimate.ErrInvalidSigma)
	assert.Contains(t, err.Error(), "sweep point 1")
}

func TestRankByTotalProfit(t *testing.T) {
	calc := estimate.New()
	vars := []Variation{
		{Name: "wide", Calculator: calc, Params: model.PlantParams{MeanPowerMW: 5, StdDevMW: 1, TariffPerMWh: 7}},
		{Name: "tight", Calculator: calc, Params: model.PlantParams{MeanPowerMW: 5, StdDevMW: 0.1, TariffPerMWh: 7}},
		{Name: "default", Calculator: calc, Params: model.PlantParams{MeanPowerMW: 5, StdDevMW: 0.25, TariffPerMWh: 7}},
	}
	ranked, err := RankByTotalProfit(vars)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "tight", ranked[0].Name)
	assert.Equal(t, "default", ranked[1].Name)
	assert.Equal(t, "wide", ranked[2].Name)
}

func TestRankByTotalProfit_StableOnTies(t *testing.T) {
	p := model.PlantParams{MeanPowerMW: 5, StdDevMW: 0.25, TariffPerMWh: 7}
	ranked, err := RankByTotalProfit([]Variation{
		{Name: "a", Params: p},
		{Name: "b", Params: p},
	})
	require.NoError(t, err)
	assert.Equal(t, "a", ranked[0].Name)
	assert.Equal(t, "b", ranked[1].Name)
}

func TestRankByTotalProfit_Error(t *testing.T) {
	_, err := RankByTotalProfit([]Variation{{Name: "broken", Params: model.PlantParams{MeanPowerMW: 5}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"broken"`)
}
