package main

import (
	"fmt"

	"solar-imbalance/internal/api"
	"solar-imbalance/internal/config"
	"solar-imbalance/internal/estimate"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	srv := config.LoadServer()

	var log *zap.Logger
	var err error
	if srv.Production() {
		gin.SetMode(gin.ReleaseMode)
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := api.NewRouter(srv, estimate.New(), log, reg)

	addr := fmt.Sprintf(":%s", srv.Port)
	log.Info("starting API server", zap.String("addr", addr), zap.String("env", srv.Env))
	if err := router.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
