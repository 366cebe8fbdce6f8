// Package pool provides object pooling using sync.Pool.
package pool

import (
	"bytes"
	"sync"
	"sync/atomic"
)

// Pool is a generic object pool.
type Pool[T any] struct {
	pool    sync.Pool
	reset   func(*T)
	discard func(T) bool

	// Metrics
	gets     atomic.Int64
	puts     atomic.Int64
	news     atomic.Int64
	discards atomic.Int64
}

// NewPool creates a new object pool. discard, when set, reports objects that
// should be dropped instead of returned to the pool.
func NewPool[T any](newFunc func() T, resetFunc func(*T), discard func(T) bool) *Pool[T] {
	p := &Pool[T]{
		reset:   resetFunc,
		discard: discard,
	}
	p.pool.New = func() any {
		p.news.Add(1)
		return newFunc()
	}
	return p
}

// Get retrieves an object from the pool.
func (p *Pool[T]) Get() T {
	p.gets.Add(1)
	return p.pool.Get().(T)
}

// Put returns an object to the pool.
func (p *Pool[T]) Put(obj T) {
	p.puts.Add(1)
	if p.discard != nil && p.discard(obj) {
		p.discards.Add(1)
		return
	}
	if p.reset != nil {
		p.reset(&obj)
	}
	p.pool.Put(obj)
}

// Stats returns pool statistics.
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Gets:     p.gets.Load(),
		Puts:     p.puts.Load(),
		News:     p.news.Load(),
		Discards: p.discards.Load(),
	}
}

// Stats contains pool statistics.
type Stats struct {
	Gets     int64 `json:"gets"`
	Puts     int64 `json:"puts"`
	News     int64 `json:"news"`
	Discards int64 `json:"discards"`
}

// HitRate returns the share of Gets served without allocating.
func (s Stats) HitRate() float64 {
	if s.Gets == 0 {
		return 0
	}
	return float64(s.Gets-s.News) / float64(s.Gets)
}

// MaxPooledBufferBytes is the largest buffer BufferPool keeps.
const MaxPooledBufferBytes = 1 << 20

// NewBufferPool creates a pool of byte buffers that drops buffers grown past
// maxBytes.
func NewBufferPool(maxBytes int) *Pool[*bytes.Buffer] {
	return NewPool(
		func() *bytes.Buffer {
			return bytes.NewBuffer(make([]byte, 0, 4096))
		},
		func(b **bytes.Buffer) {
			(*b).Reset()
		},
		func(b *bytes.Buffer) bool {
			return b.Cap() > maxBytes
		},
	)
}

// BufferPool provides pooled encode buffers for file writes.
var BufferPool = NewBufferPool(MaxPooledBufferBytes)
