package kv

import (
	"context"
	"sync"
)

// Memory is a map-backed Store for tests and ephemeral runs.
type Memory struct {
	mu     sync.Mutex
	data   map[string]string
	fail   map[string]error
	closed bool
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string), fail: make(map[string]error)}
}

// FailNext makes the next call of op ("get", "set" or "remove") return
// a StorageError wrapping err.
func (m *Memory) FailNext(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[op] = err
}

func (m *Memory) injected(op, key string) error {
	if m.closed {
		return &StorageError{Op: op, Key: key, Err: ErrClosed}
	}
	if err, ok := m.fail[op]; ok {
		delete(m.fail, op)
		return &StorageError{Op: op, Key: key, Err: err}
	}
	return nil
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("get", key); err != nil {
		return "", false, err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("set", key); err != nil {
		return err
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("remove", key); err != nil {
		return err
	}
	delete(m.data, key)
	return nil
}

// Close marks the store unusable.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
