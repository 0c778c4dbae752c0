package testutil

import (
	"testing"

	"github.com/HerbHall/stinger/internal/store"
)

// NewStore creates an in-memory Store with the catalog schema applied.
// The store is closed when the test completes.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("testutil.NewStore: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.MigrateCatalog(t.Context()); err != nil {
		t.Fatalf("testutil.NewStore: %v", err)
	}
	return db
}
