package api

import (
	"net/http"
	"os"
	"strings"

	"solar-imbalance/internal/api/handlers"
	"solar-imbalance/internal/api/metrics"
	"solar-imbalance/internal/api/middleware"
	"solar-imbalance/internal/api/models"
	"solar-imbalance/internal/config"
	"solar-imbalance/internal/estimate"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires middleware, handlers and routes.
func NewRouter(srv config.Server, calc estimate.Calculator, log *zap.Logger, reg *prometheus.Registry) *gin.Engine {
	router := gin.New()
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log))

	plantHandler := handlers.NewPlantHandler(srv.PlantDir, log)
	calcHandler := handlers.NewCalculateHandler(calc, plantHandler, metrics.New(reg), log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")
	{
		api.GET("/defaults", calcHandler.Defaults)
		api.POST("/calculate", calcHandler.Calculate)
		api.POST("/calculate/compare", calcHandler.Compare)
		api.GET("/sweep", calcHandler.Sweep)
		api.GET("/plants", plantHandler.ListPlants)
	}

	// Serve the form from StaticDir if it was built.
	if _, err := os.Stat(srv.StaticDir); err == nil {
		router.Static("/assets", srv.StaticDir+"/assets")
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, models.ErrorResponse{
					Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "Not found"},
				})
				return
			}
			c.File(srv.StaticDir + "/index.html")
		})
		log.Info("serving static files", zap.String("dir", srv.StaticDir))
	} else {
		log.Info("static directory not found, skipping static file serving", zap.String("dir", srv.StaticDir))
	}

	return router
}
