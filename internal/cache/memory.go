package cache

import (
	"context"
	"sync"
)

// Memory слот сессии в памяти процесса.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory создает пустой слот в памяти.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Load возвращает копию значения по ключу.
func (m *Memory) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), val...), true, nil
}

// Save сохраняет копию значения по ключу.
func (m *Memory) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}
