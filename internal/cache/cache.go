package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/spacesedan/evalflow/internal/clients"
)

const keyPrefix = "evalflow"

// Key identifies a parsed data source by its name and content, so that a
// changed file never hits a stale entry.
func Key(source string, content []byte) string {
	sum := sha256.Sum256(content)
	return keyPrefix + ":" + source + ":" + hex.EncodeToString(sum[:])
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Invalidate(ctx context.Context, key string) error
}

// Memory is a process-local cache. Entries live until invalidated.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Invalidate(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Valkey stores entries in a shared valkey server with an optional TTL.
type Valkey struct {
	client *clients.ValkeyClient
	ttl    time.Duration
}

func NewValkey(client *clients.ValkeyClient, ttl time.Duration) *Valkey {
	return &Valkey{client: client, ttl: ttl}
}

func (v *Valkey) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return v.client.GetBytes(ctx, key)
}

func (v *Valkey) Set(ctx context.Context, key string, value []byte) error {
	return v.client.SetBytes(ctx, key, value, v.ttl)
}

func (v *Valkey) Invalidate(ctx context.Context, key string) error {
	return v.client.Delete(ctx, key)
}

// Nop never stores anything; every lookup misses.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Nop) Set(context.Context, string, []byte) error { return nil }

func (Nop) Invalidate(context.Context, string) error { return nil }
