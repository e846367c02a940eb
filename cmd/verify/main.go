package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/iamsohail/GmailFlightScanner/internal/infrastructure/config"
	"github.com/iamsohail/GmailFlightScanner/internal/infrastructure/oauth"
	gmailSvc "github.com/iamsohail/GmailFlightScanner/internal/interface/gmail"
	repo "github.com/iamsohail/GmailFlightScanner/internal/interface/repository"
	"github.com/iamsohail/GmailFlightScanner/internal/usecase"
	"github.com/iamsohail/GmailFlightScanner/pkg/logger"
)

// verify re-exports the emails behind an existing flights.csv so the
// extracted fields can be checked against the source messages. It needs a
// token from a previous scanner run; it never starts the consent flow.
func main() {
	inputFlag := flag.String("input", "", "flights CSV to verify (overrides OUTPUT_FILE)")
	outputFlag := flag.String("output", "", "verification report path (overrides REPORT_FILE)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLoggerWithLevel(cfg.LogLevel)

	inputFile := cfg.OutputFile
	if *inputFlag != "" {
		inputFile = *inputFlag
	}
	outputFile := cfg.ReportFile
	if *outputFlag != "" {
		outputFile = *outputFlag
	}

	ctx := context.Background()

	if _, err := os.Stat(cfg.TokenFile); err != nil {
		log.Fatal("No token file found, run the scanner first", "tokenFile", cfg.TokenFile)
	}

	gmailOAuth, err := oauth.NewGmailOAuth(cfg.CredentialsFile, cfg.TokenFile, log)
	if err != nil {
		log.Fatal("Failed to load credentials", "error", err)
	}

	tokenSource, err := gmailOAuth.TokenSource(ctx)
	if err != nil {
		log.Fatal("Authentication failed", "error", err)
	}

	mailClient, err := gmailSvc.NewGmailService(ctx, tokenSource, cfg.GmailQPS, cfg.FetchRetries, log)
	if err != nil {
		log.Fatal("Failed to create Gmail service", "error", err)
	}

	exporter := usecase.NewVerifyExporter(mailClient, repo.NewCSVReportRepository(log), log)
	if err := exporter.Run(ctx, inputFile, outputFile); err != nil {
		log.Fatal("Verification export failed", "error", err)
	}

	fmt.Printf("Done! Saved to %s\n", outputFile)
}
