package cache

import (
	"errors"
	"sync"
	"time"
)

var ErrNotInteger = errors.New("value is not an integer")

// MemCache is a process-local key/value store backed by sync.Map. Items can
// carry a TTL; a background goroutine evicts expired items when
// NewMemCache is given a positive cleanupInterval.
type MemCache struct {
	items sync.Map
	stop  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

type item struct {
	mu         sync.Mutex
	value      any
	expiration int64 // unix nano; 0 means no expiration
}

func NewMemCache(cleanupInterval time.Duration) *MemCache {
	m := &MemCache{
		stop: make(chan struct{}),
	}
	if cleanupInterval > 0 {
		m.wg.Add(1)
		go func() {
			ticker := time.NewTicker(cleanupInterval)
			defer ticker.Stop()
			defer m.wg.Done()
			for {
				select {
				case <-ticker.C:
					m.cleanup()
				case <-m.stop:
					return
				}
			}
		}()
	}
	return m
}

func (m *MemCache) Set(key string, value any, ttl time.Duration) {
	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).UnixNano()
	}
	m.items.Store(key, &item{
		value:      value,
		expiration: exp,
	})
}

func (m *MemCache) Get(key string) (any, bool) {
	v, ok := m.items.Load(key)
	if !ok {
		return nil, false
	}
	it := v.(*item)
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.isExpired() {
		m.items.Delete(key)
		return nil, false
	}
	return it.value, true
}

// Int64 reads a counter written by Increment. Missing keys read as zero.
func (m *MemCache) Int64(key string) (int64, error) {
	v, ok := m.Get(key)
	if !ok {
		return 0, nil
	}
	n, ok := v.(int64)
	if !ok {
		return 0, ErrNotInteger
	}
	return n, nil
}

func (m *MemCache) Delete(key string) {
	m.items.Delete(key)
}

// Increment adds delta to the integer stored at key, creating it when
// missing, and returns the new value.
func (m *MemCache) Increment(key string, delta int64) (int64, error) {
	actual, _ := m.items.LoadOrStore(key, &item{
		value: int64(0),
	})
	it := actual.(*item)

	it.mu.Lock()
	defer it.mu.Unlock()

	if it.isExpired() {
		it.value = int64(0)
		it.expiration = 0
	}

	switch v := it.value.(type) {
	case int64:
		it.value = v + delta
		return v + delta, nil
	case int:
		it.value = int64(v) + delta
		return int64(v) + delta, nil
	case nil:
		it.value = delta
		return delta, nil
	default:
		return 0, ErrNotInteger
	}
}

func (m *MemCache) Close() {
	m.once.Do(func() {
		close(m.stop)
	})
	m.wg.Wait()
}

// isExpired must be called with it.mu held.
func (it *item) isExpired() bool {
	if it == nil || it.expiration == 0 {
		return false
	}
	return time.Now().UnixNano() > it.expiration
}

func (m *MemCache) cleanup() {
	now := time.Now().UnixNano()
	m.items.Range(func(k, v any) bool {
		it := v.(*item)
		it.mu.Lock()
		expired := it.expiration != 0 && now > it.expiration
		it.mu.Unlock()
		if expired {
			m.items.Delete(k)
		}
		return true
	})
}
