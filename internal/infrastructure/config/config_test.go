package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Shield the asserted keys from the ambient environment. An empty
	// value reads as unset, and a set variable also stops godotenv from
	// loading a stray .env over it.
	for _, key := range []string{
		"CREDENTIALS_FILE", "TOKEN_FILE", "OUTPUT_FILE",
		"GMAIL_QPS", "FETCH_RETRIES", "PASSENGER_NAMES",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.CredentialsFile != "credentials.json" {
		t.Errorf("CredentialsFile = %q", cfg.CredentialsFile)
	}
	if cfg.TokenFile != "token.json" {
		t.Errorf("TokenFile = %q", cfg.TokenFile)
	}
	if cfg.OutputFile != "flights.csv" {
		t.Errorf("OutputFile = %q", cfg.OutputFile)
	}
	if cfg.GmailQPS != 5 {
		t.Errorf("GmailQPS = %v", cfg.GmailQPS)
	}
	if cfg.FetchRetries != 3 {
		t.Errorf("FetchRetries = %v", cfg.FetchRetries)
	}
	if cfg.PassengerNames != nil {
		t.Errorf("PassengerNames = %v, want nil", cfg.PassengerNames)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("OUTPUT_FILE", "out.csv")
	t.Setenv("GMAIL_QPS", "2.5")
	t.Setenv("FETCH_RETRIES", "5")
	t.Setenv("PASSENGER_NAMES", "Sohail Ahmad, Mohammad Sohail Ahmad ,")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.OutputFile != "out.csv" {
		t.Errorf("OutputFile = %q", cfg.OutputFile)
	}
	if cfg.GmailQPS != 2.5 {
		t.Errorf("GmailQPS = %v", cfg.GmailQPS)
	}
	if cfg.FetchRetries != 5 {
		t.Errorf("FetchRetries = %v", cfg.FetchRetries)
	}

	wantNames := []string{"sohail ahmad", "mohammad sohail ahmad"}
	if diff := cmp.Diff(wantNames, cfg.PassengerNames); diff != "" {
		t.Errorf("PassengerNames mismatch (-want +got):\n%s", diff)
	}
}
