package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"solar-imbalance/internal/analysis"
	"solar-imbalance/internal/api/metrics"
	"solar-imbalance/internal/api/models"
	"solar-imbalance/internal/config"
	"solar-imbalance/internal/estimate"
	"solar-imbalance/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CalculateHandler handles calculation requests
type CalculateHandler struct {
	calc    estimate.Calculator
	plants  *PlantHandler
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewCalculateHandler creates a new calculate handler
func NewCalculateHandler(calc estimate.Calculator, plants *PlantHandler, m *metrics.Metrics, log *zap.Logger) *CalculateHandler {
	return &CalculateHandler{calc: calc, plants: plants, metrics: m, log: log}
}

// Defaults handles GET /api/v1/defaults
func (h *CalculateHandler) Defaults(c *gin.Context) {
	p := config.DefaultPlant()
	calc := h.calc.Resolved()
	c.JSON(http.StatusOK, models.DefaultsResponse{
		Inputs: models.PlantInputs{
			MeanPowerMW:  p.MeanPowerMW,
			StdDevMW:     p.StdDevMW,
			TariffPerMWh: p.TariffPerMWh,
		},
		Band: models.BandInfo{
			LowerMW:      calc.Band.Lower,
			UpperMW:      calc.Band.Upper,
			Subdivisions: calc.Band.Subdivisions,
		},
		ImprovementFactor: calc.ImprovementFactor,
	})
}

// Calculate handles POST /api/v1/calculate
func (h *CalculateHandler) Calculate(c *gin.Context) {
	var req models.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.Observe(metrics.OutcomeInvalidInput, 0)
		respondBindError(c, err)
		return
	}

	params, err := h.resolve(config.PlantConfig{}, req)
	if err != nil {
		h.metrics.Observe(metrics.OutcomeInvalidInput, 0)
		respondResolveError(c, err)
		return
	}

	start := time.Now()
	res, err := h.calc.Calculate(params)
	if err != nil {
		h.metrics.Observe(metrics.OutcomeFailed, 0)
		h.log.Warn("calculation failed", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "CALCULATION_FAILED",
				Message: err.Error(),
			},
		})
		return
	}
	h.metrics.Observe(metrics.OutcomeOK, time.Since(start))

	c.JSON(http.StatusOK, models.NewCalculateResponse(uuid.NewString(), res))
}

// Compare handles POST /api/v1/calculate/compare
func (h *CalculateHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	base, err := h.resolvePlant(config.PlantConfig{}, req.Base)
	if err != nil {
		respondResolveError(c, err)
		return
	}

	variations := make([]analysis.Variation, 0, len(req.Variations))
	for _, v := range req.Variations {
		params, err := h.resolve(base, v.CalculateRequest)
		if err != nil {
			respondResolveError(c, fmt.Errorf("variation %q: %w", v.Name, err))
			return
		}
		variations = append(variations, analysis.Variation{Name: v.Name, Calculator: h.calc, Params: params})
	}

	ranked, err := analysis.RankByTotalProfit(variations)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "CALCULATION_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	out := make([]models.ComparisonResult, len(ranked))
	for i, r := range ranked {
		out[i] = models.ComparisonResult{
			Rank:   i + 1,
			Name:   r.Name,
			Result: models.NewCalculateResponse(uuid.NewString(), r.Result),
		}
	}
	c.JSON(http.StatusOK, models.CompareResponse{Comparison: out})
}

// Sweep handles GET /api/v1/sweep
func (h *CalculateHandler) Sweep(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	base := config.DefaultPlant()
	if req.PlantID != "" {
		p, err := h.lookupPlant(req.PlantID)
		if err != nil {
			respondResolveError(c, err)
			return
		}
		base = p
	}
	if req.MeanPowerMW != 0 {
		base.MeanPowerMW = req.MeanPowerMW
	}
	if req.TariffPerMWh != 0 {
		base.TariffPerMWh = req.TariffPerMWh
	}
	from, to, step := req.From, req.To, req.Step
	if from == 0 {
		from = 0.05
	}
	if to == 0 {
		to = 1.0
	}
	if step == 0 {
		step = 0.05
	}

	// Sigma is swept, so only mean power and tariff are checked here.
	params := base.ToModelParams()
	params.StdDevMW = config.DefaultPlant().StdDevMW
	if err := params.Validate(); err != nil {
		respondInvalidInput(c, err)
		return
	}
	sigmas, err := analysis.SigmaRange(from, to, step)
	if err != nil {
		respondInvalidInput(c, err)
		return
	}
	points, err := analysis.Sweep(h.calc, base.ToModelParams(), sigmas)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "CALCULATION_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	out := make([]models.SweepPoint, len(points))
	for i, p := range points {
		out[i] = models.SweepPoint{
			StdDevMW:          p.StdDevMW,
			BaselineShare:     p.Result.Baseline.EnergyShareWithoutImbalance,
			ImprovedShare:     p.Result.Improved.EnergyShareWithoutImbalance,
			BaselineNetProfit: p.Result.Baseline.NetProfit(),
			TotalProfit:       p.Result.TotalProfit,
		}
	}
	c.JSON(http.StatusOK, models.SweepResponse{Points: out})
}

// resolve layers an optional preset and the request fields over base (the form
// defaults when base is empty), then range checks the result.
func (h *CalculateHandler) resolve(base config.PlantConfig, req models.CalculateRequest) (model.PlantParams, error) {
	p, err := h.resolvePlant(base, req)
	if err != nil {
		return model.PlantParams{}, err
	}
	params := p.ToModelParams()
	if err := params.Validate(); err != nil {
		return model.PlantParams{}, err
	}
	return params, nil
}

func (h *CalculateHandler) resolvePlant(base config.PlantConfig, req models.CalculateRequest) (config.PlantConfig, error) {
	p := base
	if p == (config.PlantConfig{}) {
		p = config.DefaultPlant()
	}
	if req.PlantID != "" {
		preset, err := h.lookupPlant(req.PlantID)
		if err != nil {
			return config.PlantConfig{}, err
		}
		// The preset replaces the base; merging would drop its zero fields.
		p = preset
	}
	// Set fields override unconditionally so an explicit zero reaches validation.
	if req.MeanPowerMW.Set {
		p.MeanPowerMW = req.MeanPowerMW.Value
	}
	if req.StdDevMW.Set {
		p.StdDevMW = req.StdDevMW.Value
	}
	if req.TariffPerMWh.Set {
		p.TariffPerMWh = req.TariffPerMWh.Value
	}
	return p, nil
}

func (h *CalculateHandler) lookupPlant(id string) (config.PlantConfig, error) {
	if h.plants == nil {
		return config.PlantConfig{}, errUnknownPlant
	}
	return h.plants.Lookup(id)
}

func respondBindError(c *gin.Context, err error) {
	var numErr *models.NumberError
	if errors.As(err, &numErr) {
		respondInvalidInput(c, err)
		return
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}

func respondResolveError(c *gin.Context, err error) {
	if errors.Is(err, errUnknownPlant) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: err.Error(),
			},
		})
		return
	}
	respondInvalidInput(c, err)
}

func respondInvalidInput(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_INPUT",
			Message: err.Error(),
		},
	})
}
