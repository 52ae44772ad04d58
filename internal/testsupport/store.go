package testsupport

import (
	"context"
	"testing"

	"discauthor/internal/config"
	"discauthor/internal/history"
)

// MustOpenHistory opens a history.Store for tests and registers cleanup.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// RecordBuild inserts a build for tests.
func RecordBuild(t testing.TB, store *history.Store, b history.Build) *history.Build {
	t.Helper()

	recorded, err := store.Record(context.Background(), b)
	if err != nil {
		t.Fatalf("store.Record: %v", err)
	}
	return recorded
}
