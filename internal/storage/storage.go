// Package storage provides durable local key-value storage for client state.
// It is the localStorage analog: per-device, per-profile, surviving restarts
// but never shared across devices.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ecommerce-eks/storefront/internal/errs"
)

// Keys under which the client persists its state.
const (
	KeyCart      = "cart"
	KeyAuthToken = "authToken"
	KeyUserID    = "userId"
)

// Store is a small durable key-value store. Get returns errs.ErrNotFound for
// a missing key; Delete of a missing key is a no-op.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// File stores each key as a file inside a single directory.
type File struct {
	dir string
}

// DefaultDir resolves the per-profile config directory:
// $XDG_CONFIG_HOME/storefront, or ~/.config/storefront.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "storefront")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "storefront")
}

// NewFile creates the directory if needed and returns a file-backed store.
// An empty dir selects DefaultDir.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &File{dir: dir}, nil
}

// Dir reports the backing directory.
func (f *File) Dir() string { return f.dir }

func (f *File) path(key string) string {
	// keys are fixed identifiers, but keep them path-safe anyway
	return filepath.Join(f.dir, strings.ReplaceAll(key, string(filepath.Separator), "_"))
}

func (f *File) Get(key string) ([]byte, error) {
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (f *File) Set(key string, value []byte) error {
	return os.WriteFile(f.path(key), value, 0o600)
}

func (f *File) Delete(key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Mem is an in-memory Store for tests.
type Mem struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMem returns an empty in-memory store.
func NewMem() *Mem {
	return &Mem{data: map[string][]byte{}}
}

func (m *Mem) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Mem) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Mem) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
