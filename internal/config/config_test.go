package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.SubmitTimeoutSeconds != 30 {
		t.Fatalf("expected default submit timeout 30s, got %d", cfg.SubmitTimeoutSeconds)
	}
	if cfg.LedgerConfigured() {
		t.Fatalf("expected ledger unconfigured by default")
	}
}

func TestLedgerConfigured(t *testing.T) {
	t.Setenv("RPC_URL", "http://127.0.0.1:8545")
	t.Setenv("ORACLE_ADDRESS", "0x5FbDB2315678afecb367f032d93F642f64180aa3")
	t.Setenv("PRIVATE_KEY", "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	t.Setenv("CHAIN_ID", "31337")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cfg.LedgerConfigured() {
		t.Fatalf("expected ledger configured")
	}
	if cfg.ChainID != 31337 {
		t.Fatalf("expected chain id 31337, got %d", cfg.ChainID)
	}
}
