package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"solar-imbalance/internal/api/models"
	"solar-imbalance/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errUnknownPlant = errors.New("unknown plant")

// PlantHandler serves the plant presets stored as YAML files in a directory.
type PlantHandler struct {
	plantDir string
	log      *zap.Logger
}

// NewPlantHandler creates a new plant handler
func NewPlantHandler(dir string, log *zap.Logger) *PlantHandler {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	log.Info("using plant directory", zap.String("dir", dir))
	return &PlantHandler{plantDir: dir, log: log}
}

// PlantDir returns the preset directory path.
func (h *PlantHandler) PlantDir() string {
	return h.plantDir
}

// ListPlants handles GET /api/v1/plants
func (h *PlantHandler) ListPlants(c *gin.Context) {
	plants := []models.PlantInfo{}

	entries, err := os.ReadDir(h.plantDir)
	if err != nil {
		h.log.Warn("cannot read plant directory", zap.String("dir", h.plantDir), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"plants": plants})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".yaml")
		path := filepath.Join(h.plantDir, entry.Name())
		p, err := config.LoadPlantFile(path)
		if err != nil {
			h.log.Warn("skipping invalid plant file", zap.String("path", path), zap.Error(err))
			continue
		}
		name := p.Name
		if name == "" {
			name = id
		}
		plants = append(plants, models.PlantInfo{
			ID:   id,
			Name: name,
			File: path,
			Inputs: models.PlantInputs{
				MeanPowerMW:  p.MeanPowerMW,
				StdDevMW:     p.StdDevMW,
				TariffPerMWh: p.TariffPerMWh,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{"plants": plants})
}

// Lookup loads the preset with the given ID (file name without .yaml).
func (h *PlantHandler) Lookup(id string) (config.PlantConfig, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return config.PlantConfig{}, errUnknownPlant
	}
	p, err := config.LoadPlantFile(filepath.Join(h.plantDir, id+".yaml"))
	if errors.Is(err, os.ErrNotExist) {
		return config.PlantConfig{}, errUnknownPlant
	}
	return p, err
}
