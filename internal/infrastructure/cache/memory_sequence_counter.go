package cache

import (
	"context"
	"sync"
)

// MemorySequenceCounter keeps counters in process memory. Numbers are
// only unique within one server instance; it is meant for development
// and tests.
type MemorySequenceCounter struct {
	mu     sync.Mutex
	values map[string]int64
}

// NewMemorySequenceCounter creates an empty counter
func NewMemorySequenceCounter() *MemorySequenceCounter {
	return &MemorySequenceCounter{values: make(map[string]int64)}
}

// Next increments the key and returns the new value. A missing key is
// first initialised to seed(); the seed runs under the lock.
func (c *MemorySequenceCounter) Next(ctx context.Context, key string, seed func(ctx context.Context) (int64, error)) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.values[key]; !ok {
		var initial int64
		if seed != nil {
			s, err := seed(ctx)
			if err != nil {
				return 0, err
			}
			initial = s
		}
		c.values[key] = initial
	}
	c.values[key]++
	return c.values[key], nil
}
