package testsupport

import (
	"testing"

	"bookbind/internal/config"
	"bookbind/internal/sessions"
)

// MustOpenStore opens a session registry for tests and closes it on cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *sessions.Store {
	t.Helper()

	store, err := sessions.Open(cfg)
	if err != nil {
		t.Fatalf("open session store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
