package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/vladislavdragonenkov/bistrot/internal/storage"
)

// keyValueStoreInMemory — простая in-memory реализация KeyValueStore.
type keyValueStoreInMemory struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewKeyValueStore возвращает in-memory хранилище для локальной разработки и тестов.
func NewKeyValueStore() storage.KeyValueStore {
	return &keyValueStoreInMemory{
		items: make(map[string][]byte),
	}
}

// Get возвращает копию значения, чтобы избежать мутаций извне.
func (s *keyValueStoreInMemory) Get(_ context.Context, key string) ([]byte, bool, error) {
	key = strings.TrimSpace(key)

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Set перезаписывает значение целиком.
func (s *keyValueStoreInMemory) Set(_ context.Context, key string, value []byte) error {
	key = strings.TrimSpace(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = append([]byte(nil), value...)
	return nil
}

// Delete удаляет ключ; отсутствие ключа не является ошибкой.
func (s *keyValueStoreInMemory) Delete(_ context.Context, key string) error {
	key = strings.TrimSpace(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

var _ storage.KeyValueStore = (*keyValueStoreInMemory)(nil)
