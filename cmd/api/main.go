package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iwsanren/comp47360-team9/config"
	"github.com/iwsanren/comp47360-team9/dataset"
	"github.com/iwsanren/comp47360-team9/handlers"
	"github.com/iwsanren/comp47360-team9/logging"
	"github.com/iwsanren/comp47360-team9/middleware"
	"github.com/iwsanren/comp47360-team9/mlmodel"
	"github.com/iwsanren/comp47360-team9/services"
	"github.com/iwsanren/comp47360-team9/weather"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(cfg.Server.Environment, cfg.Server.LogLevel)

	// A missing reference dataset keeps the process alive but unhealthy:
	// /health reports 503 and the pipeline is never invoked.
	var pipeline *services.Pipeline
	store, err := dataset.Load(cfg.Data)
	if err != nil {
		logger.Error("reference data load failed, serving unhealthy", "error", err)
	} else {
		modelTimeout := time.Duration(cfg.Models.TimeoutSec) * time.Second
		taxi := mlmodel.NewHTTPPredictor(cfg.Models.TaxiURL, modelTimeout)
		subway := mlmodel.NewHTTPPredictor(cfg.Models.SubwayURL, modelTimeout)
		weatherClient := weather.NewClient(cfg.Weather)

		pipeline, err = services.NewPipeline(store, taxi, subway, weatherClient, logger)
		if err != nil {
			logger.Error("pipeline init failed, serving unhealthy", "error", err)
			pipeline = nil
		} else {
			logger.Info("reference data loaded",
				"zones", len(store.Zones),
				"stations", len(store.Stations),
				"taxi_bands", len(store.TaxiBands),
				"subway_bands", len(store.SubwayBands),
			)
		}
	}

	authService := services.NewAuthService(cfg.JWT)
	cache := services.NewCacheService(cfg.Redis, logger)
	defer cache.Close()

	if cfg.JWT.DevMode {
		logger.Warn("DEV_MODE enabled: token validation is OFF, do not run in production")
	}

	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SetupCORS(cfg.CORS))
	router.Use(middleware.RequestTracking(logger))

	healthHandler := handlers.NewHealthHandler(pipeline, cfg)
	predictHandler := handlers.NewPredictHandler(pipeline, cache)

	router.GET("/", handlers.Root)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/predict-all",
		middleware.RequireAuth(authService, cfg.JWT.DevMode),
		predictHandler.PredictAll,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
