package internal

import (
	"fmt"
	"strings"
	"sync"
)

// KVStore is the small persistence capability the history store needs
type KVStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// MemoryKV keeps values in process memory. It is used when persistence is
// disabled or the configured backend cannot be opened.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryKV creates an empty in-memory store
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryKV) Close() error {
	return nil
}

// OpenKV opens the backend named by cfg.Driver
func OpenKV(cfg StoreConfig) (KVStore, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "sqlite":
		return OpenSQLiteKV(cfg.Path)
	case "redis":
		return OpenRedisKV(cfg.RedisURL, cfg.RedisPrefix)
	case "memory":
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s (supported: sqlite, redis, memory)", cfg.Driver)
	}
}

// OpenKVOrMemory opens the configured backend and falls back to memory when it
// is unavailable. History and theme are conveniences, so this never fails.
func OpenKVOrMemory(cfg StoreConfig) KVStore {
	kv, err := OpenKV(cfg)
	if err != nil {
		LogWarn("History store unavailable, using in-memory store: %v", err)
		return NewMemoryKV()
	}
	return kv
}
