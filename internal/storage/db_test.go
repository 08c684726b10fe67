package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewSQLiteStore_CreatesDatabase(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestNewSQLiteStore_CreatesDirectory(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "subdir", "nested", "test.db")
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Error("Database directory was not created")
	}
}

func TestSQLiteStore_Migration_CreatesSchema(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	for _, table := range []string{"schema_meta", "blobs"} {
		_, err := store.db.ExecContext(ctx, "SELECT 1 FROM "+table+" LIMIT 1")
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestSQLiteStore_Migration_Idempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	if err := store.PutBlob(context.Background(), "k", []byte(`[]`)); err != nil {
		t.Fatalf("PutBlob() error = %v", err)
	}
	store.Close()

	// Reopening must not re-run migrations or lose data.
	store2, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer store2.Close()
	raw, err := store2.GetBlob(context.Background(), "k")
	if err != nil {
		t.Fatalf("GetBlob() error = %v", err)
	}
	if string(raw) != `[]` {
		t.Errorf("GetBlob() = %q", raw)
	}
}

func TestSQLiteStore_GetBlob_Missing(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	_, err := store.GetBlob(context.Background(), "never-written")
	if !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("GetBlob() error = %v, want ErrBlobNotFound", err)
	}
}

func TestSQLiteStore_PutBlob_Replaces(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.PutBlob(ctx, "k", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("PutBlob() error = %v", err)
	}
	if err := store.PutBlob(ctx, "k", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("PutBlob() error = %v", err)
	}
	raw, err := store.GetBlob(ctx, "k")
	if err != nil {
		t.Fatalf("GetBlob() error = %v", err)
	}
	if string(raw) != `{"v":2}` {
		t.Errorf("GetBlob() = %q, want replacement", raw)
	}
}

func TestSQLiteStore_DeleteBlob(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.PutBlob(ctx, "k", []byte(`[]`)); err != nil {
		t.Fatalf("PutBlob() error = %v", err)
	}
	if err := store.DeleteBlob(ctx, "k"); err != nil {
		t.Fatalf("DeleteBlob() error = %v", err)
	}
	if _, err := store.GetBlob(ctx, "k"); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("GetBlob() after delete error = %v, want ErrBlobNotFound", err)
	}

	// Deleting a missing key is not an error.
	if err := store.DeleteBlob(ctx, "k"); err != nil {
		t.Errorf("DeleteBlob() on missing key error = %v", err)
	}
}

func TestSQLiteStore_EmptyKeyRejected(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.GetBlob(ctx, ""); err == nil {
		t.Error("GetBlob(\"\") expected error")
	}
	if err := store.PutBlob(ctx, "", nil); err == nil {
		t.Error("PutBlob(\"\") expected error")
	}
	if err := store.DeleteBlob(ctx, ""); err == nil {
		t.Error("DeleteBlob(\"\") expected error")
	}
}

func TestSQLiteStore_Close_Idempotent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
