// Package cache fronts the rendered homepage with a time-bounded byte cache.
//
// Entries live for a fixed TTL and are never invalidated on writes to the
// underlying store; serving stale bytes inside the window is the accepted
// policy. Clear wipes everything so the next request recomputes.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is injected into the server rather than held as package state so
// tests can isolate and clear it.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Clear()
}

// Memory is an in-process Cache. Safe for concurrent read and
// write-on-miss; last writer wins on a racing populate, which is fine
// because recomputation is idempotent.
type Memory struct {
	c *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{c: gocache.New(ttl, ttl)}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

func (m *Memory) Set(key string, value []byte) {
	m.c.SetDefault(key, value)
}

func (m *Memory) Clear() {
	m.c.Flush()
}
