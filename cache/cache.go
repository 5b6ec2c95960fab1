// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cache provides a sharded LRU cache used by the text system
// for shaped lines and rasterized glyph metadata.
package cache

import (
	"sync"
	"sync/atomic"
)

const (
	// shardCount must be a power of 2 for mask-based shard selection.
	shardCount = 16
	shardMask  = shardCount - 1

	// DefaultCapacity is the per-shard entry limit when none is given.
	DefaultCapacity = 256
)

// Hasher maps a key to a hash used for shard selection.
type Hasher[K any] func(K) uint64

// Uint64Hasher is the identity hash for uint64 keys.
func Uint64Hasher(u uint64) uint64 { return u }

// StringHasher is FNV-1a over the key bytes.
func StringHasher(s string) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}

// Stats reports cumulative hit/miss/eviction counts.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// LRU is a thread-safe sharded cache with per-shard LRU eviction.
// Keys hash to one of 16 shards, each with its own lock, so
// concurrent lookups from layout and raster paths rarely contend.
type LRU[K comparable, V any] struct {
	shards   [shardCount]shard[K, V]
	hasher   Hasher[K]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]*entry[K, V]
	head    *entry[K, V] // most recently used
	tail    *entry[K, V] // least recently used
}

type entry[K comparable, V any] struct {
	key   K
	value V
	prev  *entry[K, V]
	next  *entry[K, V]
}

// NewLRU creates a cache holding up to capacity entries per shard.
// If capacity <= 0, DefaultCapacity is used.
func NewLRU[K comparable, V any](capacity int, hasher Hasher[K]) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &LRU[K, V]{hasher: hasher, capacity: capacity}
	for i := range c.shards {
		c.shards[i].entries = make(map[K]*entry[K, V])
	}
	return c
}

func (c *LRU[K, V]) shardFor(key K) *shard[K, V] {
	return &c.shards[c.hasher(key)&shardMask]
}

// Get returns the cached value for key and refreshes its recency.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)

	s.mu.RLock()
	_, exists := s.entries[key]
	s.mu.RUnlock()
	if !exists {
		c.misses.Add(1)
		var zero V
		return zero, false
	}

	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		// Evicted between the two locks.
		s.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	s.moveToFront(e)
	v := e.value
	s.mu.Unlock()

	c.hits.Add(1)
	return v, true
}

// Set stores value under key, evicting the least recently used
// entries if the shard is at capacity.
func (c *LRU[K, V]) Set(key K, value V) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.value = value
		s.moveToFront(e)
		return
	}
	c.insertLocked(s, key, value)
}

// GetOrCreate returns the cached value for key, calling create under
// the shard lock when absent so concurrent callers compute it once.
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}

	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		s.moveToFront(e)
		return e.value
	}
	v := create()
	c.insertLocked(s, key, v)
	return v
}

// Delete removes key, reporting whether it was present.
func (c *LRU[K, V]) Delete(key K) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.unlink(e)
	delete(s.entries, key)
	return true
}

// Clear drops every entry.
func (c *LRU[K, V]) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		s.entries = make(map[K]*entry[K, V])
		s.head, s.tail = nil, nil
		s.mu.Unlock()
	}
}

// Len returns the total entry count across shards.
func (c *LRU[K, V]) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}

// Stats returns a snapshot of the hit/miss/eviction counters.
func (c *LRU[K, V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

func (c *LRU[K, V]) insertLocked(s *shard[K, V], key K, value V) {
	for len(s.entries) >= c.capacity && s.tail != nil {
		oldest := s.tail
		s.unlink(oldest)
		delete(s.entries, oldest.key)
		c.evictions.Add(1)
	}
	e := &entry[K, V]{key: key, value: value}
	e.next = s.head
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
	s.entries[key] = e
}

func (s *shard[K, V]) moveToFront(e *entry[K, V]) {
	if e == s.head {
		return
	}
	s.unlink(e)
	e.next = s.head
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *shard[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
	e.prev, e.next = nil, nil
}
