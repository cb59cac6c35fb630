// Package testutil provides shared test helpers for building content
// directories and loaded stores.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/storage"
	"github.com/starford/ansuz/internal/store"
)

// Logger returns a quiet slog.Logger for tests.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// ContentDir writes files (name -> raw markdown) into a temp directory and
// returns it with a storage.Provider over it.
func ContentDir(t *testing.T, files map[string]string) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	provider, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, provider
}

// LoadStore builds a store from the given files, failing the test on any
// load error.
func LoadStore(t *testing.T, files map[string]string) *store.Store {
	t.Helper()
	_, provider := ContentDir(t, files)
	st, err := store.Load(provider, Logger(), time.Now)
	if err != nil {
		t.Fatal(err)
	}
	return st
}
