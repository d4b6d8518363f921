package store

import (
	"context"
	"sync"
)

// Memory 内存文档存储，用于测试与 store.driver=memory
type Memory struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemory 创建内存存储
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), body...), nil
}

func (m *Memory) Save(_ context.Context, key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = append([]byte(nil), body...)
	return nil
}

func (m *Memory) Update(_ context.Context, key string, fn func([]byte) ([]byte, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next, err := fn(m.docs[key])
	if err != nil {
		return err
	}
	m.docs[key] = next
	return nil
}

func (m *Memory) Close() error { return nil }
