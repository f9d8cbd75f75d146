package testsupport

import (
	"testing"

	"auraforge/internal/config"
	"auraforge/internal/runlog"
)

// MustOpenRunlog opens a runlog.Store for tests and registers cleanup.
func MustOpenRunlog(t testing.TB, cfg *config.Config) *runlog.Store {
	t.Helper()

	store, err := runlog.Open(cfg)
	if err != nil {
		t.Fatalf("runlog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
