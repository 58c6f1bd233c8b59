// Package connection memoizes a single database handle per process.
package connection

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrClosed is returned by Acquire after Close.
var ErrClosed = errors.New("connection manager closed")

// Factory opens a new handle. It is called at most once per in-flight attempt.
type Factory[T any] func(ctx context.Context) (T, error)

// Closer releases a handle obtained from a Factory.
type Closer[T any] func(ctx context.Context, handle T) error

// Manager hands out one cached handle. Concurrent first callers share a single
// in-flight attempt; a failed attempt is forgotten so the next call retries.
type Manager[T any] struct {
	name    string
	factory Factory[T]
	closer  Closer[T]
	logger  *slog.Logger

	group  singleflight.Group
	mu     sync.RWMutex
	handle T
	ready  bool
	closed bool
}

// NewManager returns a Manager that opens handles with factory. closer may be nil.
func NewManager[T any](name string, factory Factory[T], closer Closer[T], logger *slog.Logger) *Manager[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager[T]{
		name:    name,
		factory: factory,
		closer:  closer,
		logger:  logger,
	}
}

// NewReady returns a Manager that already holds handle and never calls a factory.
func NewReady[T any](name string, handle T) *Manager[T] {
	return &Manager[T]{name: name, handle: handle, ready: true, logger: slog.Default()}
}

func (m *Manager[T]) cached() (T, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		var zero T
		return zero, false, ErrClosed
	}
	return m.handle, m.ready, nil
}

// Acquire returns the cached handle, opening it first if needed.
func (m *Manager[T]) Acquire(ctx context.Context) (T, error) {
	var zero T
	if h, ok, err := m.cached(); err != nil || ok {
		return h, err
	}

	v, err, _ := m.group.Do(m.name, func() (any, error) {
		if h, ok, err := m.cached(); err != nil || ok {
			return h, err
		}
		start := time.Now()
		h, err := m.factory(ctx)
		if err != nil {
			m.logger.WarnContext(ctx, "connect failed", "conn", m.name, "err", err)
			return nil, err
		}
		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			// Close ran while dialling; nobody else will release h.
			if m.closer != nil {
				if err := m.closer(ctx, h); err != nil {
					m.logger.WarnContext(ctx, "close after shutdown failed", "conn", m.name, "err", err)
				}
			}
			return nil, ErrClosed
		}
		m.handle = h
		m.ready = true
		m.mu.Unlock()
		m.logger.InfoContext(ctx, "connected", "conn", m.name, "duration_ms", time.Since(start).Milliseconds())
		return h, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// Close releases the cached handle, if any. Later Acquire calls fail with ErrClosed.
func (m *Manager[T]) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	if !m.ready || m.closer == nil {
		return nil
	}
	h := m.handle
	var zero T
	m.handle = zero
	m.ready = false
	return m.closer(ctx, h)
}
