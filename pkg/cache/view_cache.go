package cache

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const DefaultTTL = 30 * time.Minute

type cachedItem[V any] struct {
	Value     V
	Timestamp time.Time
}

// Store хранит открытые виды в памяти. Запись живёт ttl с последнего
// обращения, устаревшая запись считается отсутствующей.
type Store[V any] struct {
	mu    sync.Mutex
	items map[string]cachedItem[V]
	ttl   time.Duration
	now   func() time.Time
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store[V]{
		items: make(map[string]cachedItem[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get возвращает значение и продлевает ему жизнь
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	item, ok := s.items[key]
	if !ok {
		return zero, false
	}
	now := s.now()
	if now.Sub(item.Timestamp) > s.ttl {
		return zero, false
	}
	item.Timestamp = now
	s.items[key] = item
	return item.Value, true
}

func (s *Store[V]) Set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = cachedItem[V]{
		Value:     value,
		Timestamp: s.now(),
	}
	logrus.Infof("Вид сохранён в кэш: %s", key)
}

// Delete удаляет запись, в том числе устаревшую
func (s *Store[V]) Delete(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	delete(s.items, key)
	return item.Value, true
}

// Sweep удаляет устаревшие записи и возвращает их значения
func (s *Store[V]) Sweep() []V {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var expired []V
	for key, item := range s.items {
		if now.Sub(item.Timestamp) > s.ttl {
			expired = append(expired, item.Value)
			delete(s.items, key)
		}
	}
	if len(expired) > 0 {
		logrus.Infof("Удалено устаревших видов: %d", len(expired))
	}
	return expired
}

func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
