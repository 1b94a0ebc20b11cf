//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "eiliyabill-api"
	ConsumerName = "pos-terminal"

	StateOwnerExists   = "store owner pact-owner exists"
	StateCatalogSeeded = "pact-owner has a product in the catalog"
	StateNoSession     = "the caller has no session"
)

const (
	OwnerID       = "pact-owner"
	OwnerEmail    = "owner@pact.example"
	OwnerPassword = "pact-password"
	StoreName     = "Pact Corner Cafe"

	// SessionToken is accepted by the provider's contract session resolver.
	SessionToken = "pact-session-token"

	SeedProductID    = "pact-chai"
	SeedProductName  = "Masala Chai"
	SeedProductPrice = 25.0
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the terminal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleCommitPayload is a one-line cart for the seeded product.
func ExampleCommitPayload() map[string]any {
	return map[string]any{
		"items": []map[string]any{{
			"product":       map[string]any{"id": SeedProductID, "name": SeedProductName, "price": SeedProductPrice},
			"quantity":      2,
			"paymentMethod": "cash",
		}},
		"total":  2 * SeedProductPrice,
		"status": "paid",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
