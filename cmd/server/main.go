package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codyseavey/sportscard-tracker/internal/api"
	"github.com/codyseavey/sportscard-tracker/internal/config"
	"github.com/codyseavey/sportscard-tracker/internal/database"
	"github.com/codyseavey/sportscard-tracker/internal/services"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.Open(cfg.Server.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	repo := database.NewRepository(db)

	// Initialize the price source client
	source := services.NewSportsCardsProService(
		cfg.API.Token,
		cfg.API.BaseURL,
		cfg.API.MaxRetries,
		time.Duration(cfg.API.RetryDelaySeconds)*time.Second,
	)

	// Initialize services
	calc := services.NewCalculator(
		cfg.Business.FeePercent,
		cfg.Business.TransactionFeeCents,
		cfg.Business.DefaultShippingCents,
	)
	tracker := services.NewPriceTracker(repo, source, cfg.Business.TrendWindowDays)
	dealFinder := services.NewDealFinder(
		repo,
		calc,
		cfg.Business.MinROIPercent,
		cfg.Business.DiscountAssumption,
		cfg.Business.TrendBuyThresholdPercent,
		cfg.Business.TrendWindowDays,
	)

	// Setup router
	router := api.SetupRouter(cfg, repo, tracker, dealFinder, calc)

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
