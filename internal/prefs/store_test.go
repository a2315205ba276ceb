package prefs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	got, err := store.Get(ctx, LocaleNamespace, LocaleKey)
	if err != nil {
		t.Fatalf("Get on empty store error: %v", err)
	}
	if got != "" {
		t.Fatalf("Get on empty store = %q, want empty", got)
	}

	if err := store.Set(ctx, LocaleNamespace, LocaleKey, "fr"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := store.Set(ctx, "other", LocaleKey, "de"); err != nil {
		t.Fatalf("Set other namespace error: %v", err)
	}
	got, err = store.Get(ctx, LocaleNamespace, LocaleKey)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != "fr" {
		t.Fatalf("Get = %q, want fr", got)
	}

	if err := store.Set(ctx, LocaleNamespace, LocaleKey, "ja"); err != nil {
		t.Fatalf("overwrite error: %v", err)
	}
	if got, _ := store.Get(ctx, LocaleNamespace, LocaleKey); got != "ja" {
		t.Fatalf("Get after overwrite = %q, want ja", got)
	}

	if err := store.Set(ctx, LocaleNamespace, LocaleKey, ""); err != nil {
		t.Fatalf("clear error: %v", err)
	}
	if got, _ := store.Get(ctx, LocaleNamespace, LocaleKey); got != "" {
		t.Fatalf("Get after clear = %q, want empty", got)
	}
	if got, _ := store.Get(ctx, "other", LocaleKey); got != "de" {
		t.Fatalf("other namespace = %q, want de", got)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	store := NewFileStore(path)
	exerciseStore(t, store)

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind, stat err=%v", err)
	}
	if _, err := os.Stat(path + ".lock"); !os.IsNotExist(err) {
		t.Fatalf("lock file left behind, stat err=%v", err)
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	ctx := context.Background()
	if err := NewFileStore(path).Set(ctx, LocaleNamespace, LocaleKey, "es"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, err := NewFileStore(path).Get(ctx, LocaleNamespace, LocaleKey)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != "es" {
		t.Fatalf("Get = %q, want es", got)
	}
}

func TestFileStoreRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFileStore(path).Get(context.Background(), LocaleNamespace, LocaleKey); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("OpenSQLite error: %v", err)
	}
	defer func() { _ = store.Close() }()
	exerciseStore(t, store)
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("redis", filepath.Join(t.TempDir(), "x")); err == nil {
		t.Fatalf("expected unsupported backend error")
	}
}

func TestLocalePreferenceTrimsCode(t *testing.T) {
	ctx := context.Background()
	pref := NewLocalePreference(NewMemoryStore())
	if err := pref.Write(ctx, "  fr "); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	got, err := pref.Read(ctx)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if got != "fr" {
		t.Fatalf("Read = %q, want fr", got)
	}
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewFileStore(filepath.Join(t.TempDir(), "p.json")).Get(ctx, "a", "b"); err == nil {
		t.Fatalf("expected context error")
	}
}
