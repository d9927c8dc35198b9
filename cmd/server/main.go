package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kevpy/clj-registration/internal/adapters/httpapi"
	"github.com/kevpy/clj-registration/internal/application"
	"github.com/kevpy/clj-registration/internal/config"
	"github.com/kevpy/clj-registration/internal/infrastructure/database"
	"github.com/kevpy/clj-registration/internal/infrastructure/i18n"
	"github.com/kevpy/clj-registration/pkg/clock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	attendeeRepo := database.NewAttendeeRepository(pool)
	eventRepo := database.NewEventRepository(pool)
	registrationRepo := database.NewRegistrationRepository(pool)

	translator := i18n.NewTranslator(cfg.DefaultLocale)
	clk := clock.System{}

	resolver := application.NewIdentityResolver(attendeeRepo)
	guard := application.NewCapacityGuard(eventRepo, registrationRepo)
	registrationSvc := application.NewRegistrationService(attendeeRepo, eventRepo, registrationRepo, resolver, guard, clk)
	importSvc := application.NewImportService(resolver, attendeeRepo, eventRepo, registrationRepo, clk, translator)
	eventSvc := application.NewEventService(eventRepo, registrationRepo)
	analyticsSvc := application.NewAnalyticsService(attendeeRepo, eventRepo, registrationRepo, clk)

	api := httpapi.New(registrationSvc, importSvc, eventSvc, analyticsSvc, translator)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      api.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	log.Println("server stopped")
}
