package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rentflow-backend/internal/checkout"
	"rentflow-backend/internal/config"
	"rentflow-backend/internal/jobs"
	"rentflow-backend/internal/logger"
	"rentflow-backend/internal/pricing"
	"rentflow-backend/internal/scheduler"
	"rentflow-backend/internal/session"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'sweep-idle-checkouts', 'sweep-expired-sessions', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rentflow Cronjob Runner...", "log_level", cfg.Log.Level)

	policy, err := pricing.NewPolicy(cfg.Pricing.Policy)
	if err != nil {
		log.Fatalf("Failed to initialize pricing policy: %v", err)
	}

	// The standalone runner sweeps its own in-process state; it exists
	// for running one-off sweeps against a drained instance and as the
	// registration point when the sweeps move out of the server binary.
	sessions := session.NewManager(cfg.SessionTTL())
	checkouts := checkout.NewManager(policy)
	jobRunner := jobs.NewJobRunner(checkouts, sessions, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
}

func runJobOnce(jr *jobs.JobRunner, name string) {
	switch name {
	case "sweep-idle-checkouts":
		jr.SweepIdleCheckouts()
	case "sweep-expired-sessions":
		jr.SweepExpiredSessions()
	case "all":
		jr.RunAllSweeps()
	default:
		logger.Error("Unknown job name", "job", name)
	}
}
