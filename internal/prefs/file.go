package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"debuglocale/internal/lock"
)

const (
	schemaVersion = 1
	lockTimeout   = 5 * time.Second
)

type document struct {
	Version    int                          `json:"version"`
	Namespaces map[string]map[string]string `json:"namespaces"`
}

// FileStore keeps every namespace in one JSON document. Writes go through a
// temp file and rename, under an in-process mutex and a sibling lock file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(ctx context.Context, namespace, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", err
	}
	return doc.Namespaces[namespace][key], nil
}

func (s *FileStore) Set(ctx context.Context, namespace, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := lock.Acquire(ctx, s.path+".lock", lockTimeout)
	if err != nil {
		return err
	}
	defer func() {
		_ = l.Release()
	}()

	doc, err := s.load()
	if err != nil {
		return err
	}
	values, ok := doc.Namespaces[namespace]
	if !ok {
		values = map[string]string{}
		doc.Namespaces[namespace] = values
	}
	if value == "" {
		delete(values, key)
		if len(values) == 0 {
			delete(doc.Namespaces, namespace)
		}
	} else {
		values[key] = value
	}
	return s.save(doc)
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) load() (document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return document{Version: schemaVersion, Namespaces: map[string]map[string]string{}}, nil
		}
		return document{}, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, err
	}
	if doc.Version == 0 {
		doc.Version = schemaVersion
	}
	if doc.Namespaces == nil {
		doc.Namespaces = map[string]map[string]string{}
	}
	return doc, nil
}

func (s *FileStore) save(doc document) error {
	doc.Version = schemaVersion

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmpPath := s.path + ".tmp"

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
