// Package spill provides an append-only, gob-encoded temporary file that keeps
// large result sets out of memory until they are replayed.
package spill

import (
	"bufio"
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// ErrClosed is returned when a closed spill is used.
var ErrClosed = errors.New("spill closed")

// Spill stores items of type T on disk in append order. Every method is safe
// for concurrent use.
type Spill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	Range(fn func(index uint64, item T) error) error
	Close() error
}

type fileSpill[T any] struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	buf     *bufio.Writer
	encoder *gob.Encoder
	length  uint64
	closed  bool
}

// New creates a spill file in dir, or in the default temp directory when dir
// is empty. Close removes the file.
func New[T any](dir string) (Spill[T], error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			slog.Error("failed to create spill directory", "path", dir, "error", err)
			return nil, fmt.Errorf("create spill directory: %w", err)
		}
	}

	file, err := os.CreateTemp(dir, "fastcheck-spill-*.gob")
	if err != nil {
		slog.Error("failed to create spill file", "dir", dir, "error", err)
		return nil, fmt.Errorf("create spill file: %w", err)
	}

	buf := bufio.NewWriter(file)

	slog.Debug("created spill", "path", file.Name())

	return &fileSpill[T]{
		path:    file.Name(),
		file:    file,
		buf:     buf,
		encoder: gob.NewEncoder(buf),
	}, nil
}

// Append implements Spill.
func (f *fileSpill[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}

	if err := f.encoder.Encode(item); err != nil {
		slog.Error("failed to encode item", "path", f.path, "index", f.length, "error", err)
		return fmt.Errorf("encode item %d: %w", f.length, err)
	}

	f.length++

	return nil
}

// Len implements Spill.
func (f *fileSpill[T]) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

// Path implements Spill.
func (f *fileSpill[T]) Path() string {
	return f.path
}

// Range implements Spill. Appends block until fn has seen every item.
func (f *fileSpill[T]) Range(fn func(index uint64, item T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}

	if err := f.buf.Flush(); err != nil {
		return fmt.Errorf("flush spill: %w", err)
	}

	file, err := os.Open(f.path)
	if err != nil {
		slog.Error("failed to open spill for range", "path", f.path, "error", err)
		return fmt.Errorf("open spill: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close spill reader", "path", f.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(bufio.NewReader(file))

	for i := range f.length {
		var item T
		if err := decoder.Decode(&item); err != nil {
			slog.Error("failed to decode item during range", "path", f.path, "index", i, "error", err)
			return fmt.Errorf("decode item %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Close implements Spill.
func (f *fileSpill[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}

	f.closed = true

	err := f.file.Close()
	if rmErr := os.Remove(f.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		err = errors.Join(err, rmErr)
	}

	if err != nil {
		slog.Error("failed to close spill", "path", f.path, "error", err)
		return err
	}

	slog.Debug("closed spill", "path", f.path, "length", f.length)

	return nil
}
