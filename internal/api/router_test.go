package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"solar-imbalance/internal/api/models"
	"solar-imbalance/internal/config"
	"solar-imbalance/internal/estimate"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wide.yaml"), []byte(`
plant:
  name: Wide
  mean_power_mw: 5
  std_dev_mw: 1
  tariff_per_mwh: 7
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "free.yaml"), []byte(`
plant:
  name: Free
  mean_power_mw: 5
  std_dev_mw: 0.25
  tariff_per_mwh: 0
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	srv := config.Server{PlantDir: dir, StaticDir: filepath.Join(dir, "missing")}
	return NewRouter(srv, estimate.New(), zap.NewNop(), prometheus.NewRegistry())
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCalculate(t *testing.T) {
	r := newTestRouter(t)

	t.Run("numbers as text", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/calculate",
			`{"mean_power_mw":"5.0","std_dev_mw":"0.25","tariff_per_mwh":"7.0"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[models.CalculateResponse](t, w)
		assert.NotEmpty(t, resp.ID)
		assert.InDelta(t, 68.2689, resp.Baseline.EnergyShareWithoutImbalance, 1e-3)
		assert.InDelta(t, 763.56, resp.TotalProfit, 1e-2)
		assert.Equal(t, "763.6", resp.Display.TotalProfit.Value)
	})

	t.Run("json numbers", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/calculate",
			`{"mean_power_mw":5,"std_dev_mw":0.25,"tariff_per_mwh":7}`)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty body uses defaults", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/calculate", `{}`)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[models.CalculateResponse](t, w)
		assert.Equal(t, 0.25, resp.Inputs.StdDevMW)
	})

	t.Run("preset with override", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/calculate", `{"plant_id":"wide","tariff_per_mwh":"2"}`)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[models.CalculateResponse](t, w)
		assert.Equal(t, 1.0, resp.Inputs.StdDevMW)
		assert.Equal(t, 2.0, resp.Inputs.TariffPerMWh)
	})

	t.Run("unparsable text", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/calculate", `{"std_dev_mw":"abc"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[models.ErrorResponse](t, w)
		assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	})

	t.Run("zero sigma", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/calculate", `{"std_dev_mw":0}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[models.ErrorResponse](t, w)
		assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/calculate", `{"std_dev_mw":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[models.ErrorResponse](t, w)
		assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
	})

	t.Run("unknown plant", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/calculate", `{"plant_id":"../etc/passwd"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("zero tariff preset is kept", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/calculate", `{"plant_id":"free"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[models.CalculateResponse](t, w)
		assert.Equal(t, 0.0, resp.Inputs.TariffPerMWh)
		assert.Equal(t, 0.0, resp.TotalProfit)
	})

	t.Run("overflowing mean power", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/calculate", `{"mean_power_mw":1e308}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[models.ErrorResponse](t, w)
		assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	})
}

func TestCompare(t *testing.T) {
	r := newTestRouter(t)
	body := `{
		"base": {"mean_power_mw": 5, "tariff_per_mwh": 7},
		"variations": [
			{"name": "wide", "std_dev_mw": 1},
			{"name": "tight", "std_dev_mw": 0.1},
			{"name": "preset", "plant_id": "wide", "std_dev_mw": 0.5}
		]
	}`
	w := do(t, r, http.MethodPost, "/api/v1/calculate/compare", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.CompareResponse](t, w)
	require.Len(t, resp.Comparison, 3)
	assert.Equal(t, "tight", resp.Comparison[0].Name)
	assert.Equal(t, 1, resp.Comparison[0].Rank)
	assert.Equal(t, "preset", resp.Comparison[1].Name)
	assert.Equal(t, "wide", resp.Comparison[2].Name)

	t.Run("no variations", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/calculate/compare", `{"variations": []}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSweep(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/sweep?from=0.1&to=0.5&step=0.1", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.SweepResponse](t, w)
	require.Len(t, resp.Points, 5)
	for i := 1; i < len(resp.Points); i++ {
		assert.Less(t, resp.Points[i].BaselineShare, resp.Points[i-1].BaselineShare)
	}

	w = do(t, r, http.MethodGet, "/api/v1/sweep?from=0.5&to=0.1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSweep_RejectsInvalidPlant(t *testing.T) {
	r := newTestRouter(t)
	for _, mean := range []string{"-5", "NaN", "1e308"} {
		w := do(t, r, http.MethodGet, "/api/v1/sweep?from=0.25&to=0.25&mean_power_mw="+mean, "")
		require.Equal(t, http.StatusBadRequest, w.Code, "mean=%s", mean)
		resp := decode[models.ErrorResponse](t, w)
		assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	}
}

func TestSweep_ZeroTariffPreset(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/api/v1/sweep?plant_id=free&from=0.25&to=0.5&step=0.25", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.SweepResponse](t, w)
	require.Len(t, resp.Points, 2)
	for _, p := range resp.Points {
		assert.Equal(t, 0.0, p.TotalProfit)
		assert.Equal(t, 0.0, p.BaselineNetProfit)
	}
}

func TestDefaults(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/api/v1/defaults", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.DefaultsResponse](t, w)
	assert.Equal(t, 5.0, resp.Inputs.MeanPowerMW)
	assert.Equal(t, 4.75, resp.Band.LowerMW)
	assert.Equal(t, 5.25, resp.Band.UpperMW)
	assert.Equal(t, 1000, resp.Band.Subdivisions)
	assert.Equal(t, 0.5, resp.ImprovementFactor)
}

func TestListPlants(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/api/v1/plants", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		Plants []models.PlantInfo `json:"plants"`
	}](t, w)
	require.Len(t, resp.Plants, 2)
	assert.Equal(t, "free", resp.Plants[0].ID)
	assert.Equal(t, "wide", resp.Plants[1].ID)
	assert.Equal(t, "Wide", resp.Plants[1].Name)
}

func TestMetrics(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodPost, "/api/v1/calculate", `{}`)
	do(t, r, http.MethodPost, "/api/v1/calculate", `{"std_dev_mw":"x"}`)

	w := do(t, r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `solar_calculations_total{outcome="ok"} 1`)
	assert.Contains(t, w.Body.String(), `solar_calculations_total{outcome="invalid_input"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/calculate", bytes.NewReader(nil))
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
