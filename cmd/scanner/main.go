package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iamsohail/GmailFlightScanner/internal/infrastructure/config"
	"github.com/iamsohail/GmailFlightScanner/internal/infrastructure/oauth"
	gmailSvc "github.com/iamsohail/GmailFlightScanner/internal/interface/gmail"
	repo "github.com/iamsohail/GmailFlightScanner/internal/interface/repository"
	"github.com/iamsohail/GmailFlightScanner/internal/usecase"
	"github.com/iamsohail/GmailFlightScanner/pkg/logger"
	"github.com/iamsohail/GmailFlightScanner/pkg/metrics"
	"github.com/iamsohail/GmailFlightScanner/pkg/utils"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	outputFlag := flag.String("output", "", "output CSV path (overrides OUTPUT_FILE)")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	log.Info("Starting Gmail Flight Scanner", "version", cfg.AppVersion)

	outputFile := cfg.OutputFile
	if *outputFlag != "" {
		outputFile = *outputFlag
	}

	// Cancel the run on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Warn("Received signal, canceling run", "signal", sig)
		cancel()
	}()

	// Set up airline reference data
	airlineRepo := repo.NewStaticAirlineRepository()
	if cfg.AirlinesDSN != "" {
		log.Info("Connecting to airline reference database")
		gormDB, err := gorm.Open(postgres.Open(cfg.AirlinesDSN), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to airline database", "error", err)
		}
		airlineRepo = repo.NewGormAirlineRepository(gormDB)
	}

	// Set up Gmail OAuth
	gmailOAuth, err := oauth.NewGmailOAuth(cfg.CredentialsFile, cfg.TokenFile, log)
	if err != nil {
		log.Fatal("Failed to load credentials", "error", err)
	}

	tokenSource, err := gmailOAuth.TokenSource(ctx)
	if err != nil {
		log.Fatal("Authentication failed", "error", err)
	}

	// Set up Gmail service
	mailClient, err := gmailSvc.NewGmailService(ctx, tokenSource, cfg.GmailQPS, cfg.FetchRetries, log)
	if err != nil {
		log.Fatal("Failed to create Gmail service", "error", err)
	}

	// Optional metrics endpoint for the duration of the run
	var runMetrics *metrics.Metrics
	if cfg.MetricsPort != "" {
		runMetrics = metrics.NewMetrics("flight_scanner")

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Healthy"))
		})

		server := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: mux}
		go func() {
			log.Info("Serving metrics", "port", cfg.MetricsPort)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("Metrics server error", "error", err)
			}
		}()
		defer server.Shutdown(context.Background())
	}

	parser := utils.NewEmailParser(airlineRepo, log)
	reportRepo := repo.NewCSVReportRepository(log)
	processor := usecase.NewFlightProcessor(
		mailClient,
		parser,
		reportRepo,
		runMetrics,
		log,
		gmailSvc.SearchQueries,
		cfg.PassengerNames,
	)

	summary, err := processor.Run(ctx, outputFile)
	if err != nil {
		log.Fatal("Scan failed", "error", err)
	}

	fmt.Printf("\nResults saved to %s\n", outputFile)
	fmt.Printf("  Messages matched:       %d\n", summary.MessagesFound)
	fmt.Printf("  Messages fetched:       %d\n", summary.MessagesFetched)
	fmt.Printf("  Skipped (subject):      %d\n", summary.ExcludedSubject)
	fmt.Printf("  Skipped (no data):      %d\n", summary.NoSignal)
	fmt.Printf("  Skipped (no passenger): %d\n", summary.NoPassenger)
	fmt.Printf("  Skipped (duplicate):    %d\n", summary.Duplicates)
	fmt.Printf("  Flights exported:       %d\n", summary.Exported)
}
