package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ticketflow/booking-system/shared/telemetry"
	"github.com/ticketflow/booking-system/worker-service/config"
)

func main() {
	// Load configuration
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Printf("Starting %s in %s environment on port %s\n", cfg.ServiceName, cfg.Env, cfg.Port)

	// Initialize telemetry
	ctx := context.Background()
	tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx,
		telemetry.WorkerServiceConfig.WithOTLPEndpoint(cfg.Telemetry.OTLPEndpoint))
	if err != nil {
		log.Printf("Telemetry disabled: %v", err)
		tel = telemetry.NewTelemetry(telemetry.WorkerServiceConfig)
		telemetryShutdown = func() {}
	}
	defer telemetryShutdown()

	// Initialize dependencies
	deps, err := config.BuildDependencies(cfg)
	if err != nil {
		log.Fatalf("Failed to build dependencies: %v", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Printf("Error closing dependencies: %v", err)
		}
	}()

	// Start the job processing loop
	workCtx, stopWork := context.WithCancel(telemetry.WithTelemetry(context.Background(), tel))
	workDone := make(chan struct{})
	go func() {
		defer close(workDone)
		if err := deps.ProcessJobs.Run(workCtx); err != nil && err != context.Canceled {
			log.Printf("Job processing stopped: %v", err)
		}
	}()

	// Health and metrics server
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: setupRouter(tel),
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Printf("Shutting down %s...\n", cfg.ServiceName)

	// Stop pulling jobs, let in-flight ones finish
	stopWork()
	select {
	case <-workDone:
	case <-time.After(30 * time.Second):
		log.Printf("Job processing did not drain in time")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	fmt.Printf("%s stopped\n", cfg.ServiceName)
}

func setupRouter(tel *telemetry.Telemetry) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Telemetry middleware (inject telemetry into context)
	r.Use(telemetry.Middleware(tel))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics endpoint for Prometheus
	r.Handle("/metrics", promhttp.Handler())

	return r
}
