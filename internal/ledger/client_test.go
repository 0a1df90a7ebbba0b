package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDisabledClientIsDisconnected(t *testing.T) {
	client := NewDisabledClient("ledger not configured - stub mode")

	if client.Connected() {
		t.Fatalf("disabled client must report disconnected")
	}
	if client.OracleAddress() != "" {
		t.Fatalf("disabled client must have no oracle address")
	}
}

func TestDisabledClientSubmitFails(t *testing.T) {
	client := NewDisabledClient("ledger not configured")

	_, err := client.SubmitScore(context.Background(), "0x742d35Cc6634C0532925a3b844Bc9e7595f0Ab01", 80)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "ledger not configured") {
		t.Fatalf("expected reason in error, got %v", err)
	}
}

func TestNewEthClientRejectsBadOracleAddress(t *testing.T) {
	_, err := NewEthClient(context.Background(), nil, "http://127.0.0.1:8545", "not-an-address", "ab", 0, 0)
	if !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
}

func TestNewEthClientRejectsBadPrivateKey(t *testing.T) {
	_, err := NewEthClient(
		context.Background(),
		nil,
		"http://127.0.0.1:8545",
		"0x5FbDB2315678afecb367f032d93F642f64180aa3",
		"zzzz",
		0,
		0,
	)
	if err == nil || errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected key parse error before dialing, got %v", err)
	}
}

func TestIsRevertError(t *testing.T) {
	if !isRevertError(errors.New("execution reverted: score too high")) {
		t.Fatalf("expected revert detection")
	}
	if isRevertError(errors.New("connection refused")) {
		t.Fatalf("transport errors are not reverts")
	}
	if isRevertError(nil) {
		t.Fatalf("nil is not a revert")
	}
}
