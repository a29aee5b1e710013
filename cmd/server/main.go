package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "rentflow-backend/internal/api/http"
	"rentflow-backend/internal/checkout"
	"rentflow-backend/internal/client"
	"rentflow-backend/internal/config"
	"rentflow-backend/internal/jobs"
	"rentflow-backend/internal/logger"
	"rentflow-backend/internal/pricing"
	"rentflow-backend/internal/repository/postgres"
	"rentflow-backend/internal/scheduler"
	"rentflow-backend/internal/security"
	"rentflow-backend/internal/service"
	"rentflow-backend/internal/session"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rentflow Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Collaborator configuration", "payment", cfg.Payment.BaseURL, "device_search", cfg.DeviceSearch.BaseURL)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenExpiry())

	// Initialize Pricing
	policy, err := pricing.NewPolicy(cfg.Pricing.Policy)
	if err != nil {
		logger.Error("Failed to initialize pricing policy", "policy", cfg.Pricing.Policy, "error", err)
		log.Fatalf("Failed to initialize pricing policy: %v", err)
	}

	// Initialize Managers
	sessions := session.NewManager(cfg.SessionTTL())
	checkouts := checkout.NewManager(policy)

	// Initialize Collaborator Clients
	paymentClient := client.NewPaymentClient(cfg.Payment.BaseURL, cfg.PaymentTimeout())
	deviceClient := client.NewDeviceSearchClient(cfg.DeviceSearch.BaseURL, cfg.DeviceSearchTimeout())

	// Initialize Services
	var receiptSvc service.ReceiptService
	if cfg.SendGrid.APIKey != "" {
		receiptSvc = service.NewReceiptService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		logger.Warn("SendGrid API key not configured, receipts disabled")
	}
	checkoutSvc := service.NewCheckoutService(checkouts, paymentClient, store.CheckoutRepository, receiptSvc)
	browseSvc := service.NewBrowseService(deviceClient)

	// Initialize HTTP router
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Tokens:    tokenManager,
		Sessions:  sessions,
		Checkouts: checkouts,
		Checkout:  checkoutSvc,
		Browse:    browseSvc,
	})

	// Start the in-process sweep scheduler
	jobRunner := jobs.NewJobRunner(checkouts, sessions, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
