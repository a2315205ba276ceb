// Package prefs persists small namespaced string preferences.
package prefs

import (
	"context"
	"fmt"
	"strings"
)

const (
	// LocaleNamespace and LocaleKey address the debug locale override.
	LocaleNamespace = "com.blackpixel.debuglocale.injector.pref_debug_setting"
	LocaleKey       = "pref_debug_locale"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Store is a persisted namespace/key -> string mapping. Get returns "" for
// keys that were never written.
type Store interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Set(ctx context.Context, namespace, key, value string) error
	Close() error
}

// Open returns the Store for backend rooted at path.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendFile, "":
		return NewFileStore(path), nil
	case BackendSQLite:
		store, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported preferences backend %q", backend)
	}
}

// LocalePreference is the single locale override value.
type LocalePreference struct {
	store Store
}

func NewLocalePreference(store Store) *LocalePreference {
	return &LocalePreference{store: store}
}

// Read returns the stored locale code, or "" when no override is set.
func (p *LocalePreference) Read(ctx context.Context) (string, error) {
	v, err := p.store.Get(ctx, LocaleNamespace, LocaleKey)
	if err != nil {
		return "", fmt.Errorf("read locale preference: %w", err)
	}
	return strings.TrimSpace(v), nil
}

// Write persists code. An empty code clears the override.
func (p *LocalePreference) Write(ctx context.Context, code string) error {
	if err := p.store.Set(ctx, LocaleNamespace, LocaleKey, strings.TrimSpace(code)); err != nil {
		return fmt.Errorf("write locale preference: %w", err)
	}
	return nil
}
