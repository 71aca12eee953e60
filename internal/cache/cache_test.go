package cache

import (
	"path/filepath"
	"testing"
)

func openStore(t *testing.T, dir string) *Store {
	t.Helper()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStorePutGet(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "cache"))

	if _, ok := store.Get("absent"); ok {
		t.Fatalf("expected miss for absent key")
	}

	store.Put("k", "first")
	if doc, ok := store.Get("k"); !ok || doc != "first" {
		t.Fatalf("expected first, got %q (ok=%v)", doc, ok)
	}
}

func TestStoreLastWriteWins(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "cache"))

	store.Put("k", "first")
	store.Put("k", "second")
	if doc, ok := store.Get("k"); !ok || doc != "second" {
		t.Fatalf("expected second, got %q (ok=%v)", doc, ok)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	store.Put("k", "durable")
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	reopened := openStore(t, dir)
	if doc, ok := reopened.Get("k"); !ok || doc != "durable" {
		t.Fatalf("expected entry to survive reopen, got %q (ok=%v)", doc, ok)
	}
}

func TestResetDiscardsEntries(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	store.Put("k", "doomed")
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	if err := Reset(dir); err != nil {
		t.Fatalf("failed to reset cache: %v", err)
	}
	if err := Reset(dir); err != nil {
		t.Fatalf("expected reset of missing store to be a no-op, got %v", err)
	}

	fresh := openStore(t, dir)
	if _, ok := fresh.Get("k"); ok {
		t.Fatalf("expected reset store to be empty")
	}
}

func TestNilStoreDegradesToMiss(t *testing.T) {
	var store *Store

	if _, ok := store.Get("k"); ok {
		t.Fatalf("expected nil store to miss")
	}
	store.Put("k", "ignored")
	if err := store.Close(); err != nil {
		t.Fatalf("expected nil store close to succeed, got %v", err)
	}
}
