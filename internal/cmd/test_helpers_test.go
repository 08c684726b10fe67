package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/runger/trove/internal/model"
	"github.com/runger/trove/internal/storage"
)

// withTestDB points the CLI at a fresh database under a temp dir and
// returns a store for seeding it. Commands opened later via openStore
// resolve the same path through TROVE_DB_PATH.
func withTestDB(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "state.db")
	t.Setenv("TROVE_DB_PATH", dbPath)
	// Keep the real user config out of the test.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedThreads(t *testing.T, store *storage.SQLiteStore, threads []model.Thread) {
	t.Helper()
	if err := storage.SaveThreads(context.Background(), store, threads); err != nil {
		t.Fatalf("SaveThreads() error = %v", err)
	}
}

func loadThreads(t *testing.T, store *storage.SQLiteStore) []model.Thread {
	t.Helper()
	threads, err := storage.LoadThreads(context.Background(), store)
	if err != nil {
		t.Fatalf("LoadThreads() error = %v", err)
	}
	return threads
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() failed: %v", err)
	}
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()
	_ = w.Close()
	os.Stdout = old
	out := <-outC
	_ = r.Close()
	return out
}
