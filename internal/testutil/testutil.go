package testutil

import (
	"testing"

	"github.com/hcoles/tourneybank/internal/repository"
)

// NewTestStore creates a new in-memory store for testing.
// Each call creates a fresh database with all migrations applied.
func NewTestStore(t *testing.T) *repository.Repository {
	t.Helper()

	store, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})

	return store
}
