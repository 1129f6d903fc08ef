package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cataloghttp "github.com/tiendita/ventas/internal/catalog/delivery/http"
	catalogrepo "github.com/tiendita/ventas/internal/catalog/repository"
	"github.com/tiendita/ventas/internal/config"
	saleshttp "github.com/tiendita/ventas/internal/sales/delivery/http"
	salesrepo "github.com/tiendita/ventas/internal/sales/repository"
	"github.com/tiendita/ventas/kafka"
	"github.com/tiendita/ventas/pkg/logger"
	"github.com/tiendita/ventas/pkg/storage"
	"github.com/tiendita/ventas/pkg/tracing"
)

const serviceName = "ventas"

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(serviceName, cfg.LogLevel, cfg.Development)

	tp, err := tracing.InitTracer(serviceName, cfg.JaegerEndpoint)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Tracing disabled")
	}

	var opts []storage.Option
	if cfg.SerializeWrites {
		opts = append(opts, storage.WithSerializedWrites())
	}
	store, err := storage.NewFileStore(cfg.DataDir, opts...)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Failed to open data directory")
	}

	productRepo := catalogrepo.NewTracingProductRepository(
		catalogrepo.NewFileProductRepository(store),
	)
	saleRepo := salesrepo.NewFileSaleRepository(store)

	var publisher *kafka.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Event publishing disabled")
			publisher = nil
		}
	}

	productHandler := cataloghttp.NewProductHandler(productRepo, cfg.JWTSecret)
	saleHandler := saleshttp.NewSaleHandler(productRepo, saleRepo, publisher)

	router := mux.NewRouter()
	productHandler.RegisterRoutes(router)
	saleHandler.RegisterRoutes(router)
	productHandler.RegisterHealthCheck(router)
	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: otelhttp.NewHandler(c.Handler(router), "http.server"),
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.Port).
			Str("data_dir", cfg.DataDir).
			Bool("serialized_writes", cfg.SerializeWrites).
			Msg("HTTP server starting")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Kafka publisher close failed")
		}
	}
	if tp != nil {
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
		}
	}
}
