package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	staleAfter   = 2 * time.Minute
	pollInterval = 40 * time.Millisecond
)

var ErrTimeout = errors.New("lock: timed out")

// File is an advisory lock held as an O_EXCL file next to the data it guards.
type File struct {
	path string
}

func Acquire(ctx context.Context, path string, timeout time.Duration) (*File, error) {
	if path == "" {
		return nil, errors.New("lock: path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	deadline := time.Now().Add(timeout)

	for {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			_, _ = fmt.Fprintf(f, "pid=%d\ncreated_unix=%d\n", os.Getpid(), time.Now().Unix())
			_ = f.Close()
			return &File{path: path}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, err
		}

		if stale, staleErr := isStale(path, staleAfter); staleErr == nil && stale {
			_ = os.Remove(path)
			continue
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w waiting for %s", ErrTimeout, path)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

func (l *File) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	err := os.Remove(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func isStale(path string, age time.Duration) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return time.Since(info.ModTime()) > age, nil
}
