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

	"github.com/ticketflow/booking-system/coordinator-service/config"
	"github.com/ticketflow/booking-system/coordinator-service/handlers"
	"github.com/ticketflow/booking-system/shared/telemetry"
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
		telemetry.CoordinatorServiceConfig.WithOTLPEndpoint(cfg.Telemetry.OTLPEndpoint))
	if err != nil {
		log.Printf("Telemetry disabled: %v", err)
		tel = telemetry.NewTelemetry(telemetry.CoordinatorServiceConfig)
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

	// Start step result subscriber
	go func() {
		ctx := telemetry.WithTelemetry(context.Background(), tel)
		if err := deps.StepResultHandlers.Subscriber.Subscribe(ctx, "", deps.StepResultHandlers.Handler); err != nil {
			log.Printf("Error in step result subscriber: %v", err)
		}
	}()

	// Start reconcile sweep
	reconcileCtx, stopReconcile := context.WithCancel(telemetry.WithTelemetry(context.Background(), tel))
	go runReconciler(reconcileCtx, cfg, deps)

	// Setup HTTP router
	router := setupRouter(tel, deps)

	// Setup and start HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
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
	stopReconcile()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	fmt.Printf("%s stopped\n", cfg.ServiceName)
}

// runReconciler sweeps stalled sagas at the configured interval
func runReconciler(ctx context.Context, cfg *config.Config, deps *config.Dependencies) {
	ticker := time.NewTicker(cfg.ReconcileInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := deps.ReconcileTimeouts.Execute(ctx)
			if err != nil {
				log.Printf("Reconcile sweep failed: %v", err)
				continue
			}
			if report.Requeued > 0 || report.Failed > 0 {
				log.Printf("Reconcile sweep: requeued=%d failed=%d skipped=%d",
					report.Requeued, report.Failed, report.Skipped)
			}
		}
	}
}

func setupRouter(tel *telemetry.Telemetry, deps *config.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// Telemetry middleware (inject telemetry into context)
	r.Use(telemetry.Middleware(tel))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics endpoint for Prometheus
	r.Handle("/metrics", handlers.NewMetricsHandler())

	// Register booking routes
	deps.BookingHandlers.RegisterRoutes(r)

	return r
}
