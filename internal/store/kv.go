package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrUnavailable is returned by backends that cannot be used at all (disabled storage,
// read-only home, ...). Callers in the widget path never surface it.
var ErrUnavailable = errors.New("store: backend unavailable")

// KV is the small key/value surface the widget persists its preferences through.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Location describes where values live (for `checklist status`).
	Location() string
}

const (
	BackendSQLite   = "sqlite"
	BackendJSON     = "json"
	BackendMemory   = "memory"
	BackendDisabled = "none"
)

// OpenKV returns the backend named by backend, rooted at s.Dir. "none" turns persistence
// off: reads resolve to not dismissed and dismissals last for the session only.
func OpenKV(backend string, s Store) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		return SQLiteKV{Store: s}, nil
	case BackendJSON:
		return JSONFileKV{Store: s}, nil
	case BackendMemory:
		return NewMemoryKV(), nil
	case BackendDisabled, "disabled":
		return DisabledKV{}, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s (expected sqlite|json|none)", backend)
	}
}

// MemoryKV keeps values for the lifetime of the process only.
type MemoryKV struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemoryKV() *MemoryKV { return &MemoryKV{m: map[string]string{}} }

func (kv *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.m[key]
	return v, ok, nil
}

func (kv *MemoryKV) Set(_ context.Context, key, value string) error {
	kv.mu.Lock()
	kv.m[key] = value
	kv.mu.Unlock()
	return nil
}

func (kv *MemoryKV) Delete(_ context.Context, key string) error {
	kv.mu.Lock()
	delete(kv.m, key)
	kv.mu.Unlock()
	return nil
}

func (kv *MemoryKV) Location() string { return "memory" }

// DisabledKV behaves like storage that is switched off: every call fails.
type DisabledKV struct{}

func (DisabledKV) Get(context.Context, string) (string, bool, error) {
	return "", false, ErrUnavailable
}
func (DisabledKV) Set(context.Context, string, string) error { return ErrUnavailable }
func (DisabledKV) Delete(context.Context, string) error      { return ErrUnavailable }
func (DisabledKV) Location() string                          { return "disabled" }
