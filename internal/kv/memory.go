package kv

import (
	"context"
	"sync"
)

// MemoryStore guarda blobs em memória. Útil para testes e para rodar o portal
// sem backend externo, preservando o modelo processo-único do original.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore cria um store vazio.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Load devolve o blob da chave, se existir.
func (m *MemoryStore) Load(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok, nil
}

// Save sobrescreve o blob da chave.
func (m *MemoryStore) Save(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Remove apaga a chave.
func (m *MemoryStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
