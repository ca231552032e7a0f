package identifier

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeJobStore is an in-memory JobLookup whose Count can be pinned to
// force collisions
type fakeJobStore struct {
	ids         map[string]bool
	pinnedCount *int64
}

func newFakeJobStore(ids ...string) *fakeJobStore {
	s := &fakeJobStore{ids: make(map[string]bool)}
	for _, id := range ids {
		s.ids[id] = true
	}
	return s
}

func (s *fakeJobStore) Count(context.Context) (int64, error) {
	if s.pinnedCount != nil {
		return *s.pinnedCount, nil
	}
	return int64(len(s.ids)), nil
}

func (s *fakeJobStore) ExistsByJobID(_ context.Context, id string) (bool, error) {
	return s.ids[id], nil
}

// fakeCounter mirrors the seeded counter semantics
type fakeCounter struct {
	mu     sync.Mutex
	values map[string]int64
	err    error
}

func (c *fakeCounter) Next(ctx context.Context, key string, seed func(context.Context) (int64, error)) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	if c.values == nil {
		c.values = make(map[string]int64)
	}
	if _, ok := c.values[key]; !ok {
		s, err := seed(ctx)
		if err != nil {
			return 0, err
		}
		c.values[key] = s
	}
	c.values[key]++
	return c.values[key], nil
}

type MockInvoiceLookup struct {
	mock.Mock
}

func (m *MockInvoiceLookup) CountByDay(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

var fixedNow = time.Date(2026, 3, 10, 14, 30, 0, 123_000_000, time.UTC)

func clock() time.Time { return fixedNow }

func TestAllocator_NextJobID(t *testing.T) {
	ctx := context.Background()

	t.Run("uses count plus one", func(t *testing.T) {
		a := NewAllocator(newFakeJobStore("JOB000001", "JOB000002"), nil)

		assert.Equal(t, "JOB000003", a.NextJobID(ctx))
	})

	t.Run("retries past taken ids", func(t *testing.T) {
		// two jobs remain after deletions but higher numbers are in use
		store := newFakeJobStore("JOB000003", "JOB000004")

		a := NewAllocator(store, nil)

		assert.Equal(t, "JOB000005", a.NextJobID(ctx))
	})

	t.Run("falls back to the clock after five collisions", func(t *testing.T) {
		store := newFakeJobStore("JOB000001", "JOB000002", "JOB000003", "JOB000004", "JOB000005")
		zero := int64(0)
		store.pinnedCount = &zero

		a := NewAllocator(store, nil, WithClock(clock))
		id := a.NextJobID(ctx)

		assert.Equal(t, FormatJobID(fixedNow.UnixMilli()%1_000_000), id)
	})

	t.Run("uses the atomic counter seeded from the count", func(t *testing.T) {
		store := newFakeJobStore("JOB000001", "JOB000002")
		a := NewAllocator(store, nil, WithCounter(&fakeCounter{}))

		assert.Equal(t, "JOB000003", a.NextJobID(ctx))
		assert.Equal(t, "JOB000004", a.NextJobID(ctx))
	})

	t.Run("counter failure degrades to the count", func(t *testing.T) {
		store := newFakeJobStore("JOB000001")
		a := NewAllocator(store, nil, WithCounter(&fakeCounter{err: errors.New("redis down")}))

		assert.Equal(t, "JOB000002", a.NextJobID(ctx))
	})
}

func TestAllocator_NextJobID_UniqueUnderCollisions(t *testing.T) {
	ctx := context.Background()
	store := newFakeJobStore()
	zero := int64(0)
	store.pinnedCount = &zero
	a := NewAllocator(store, nil, WithClock(clock))

	pattern := regexp.MustCompile(`^JOB\d{6}$`)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := a.NextJobID(ctx)
		require.Regexp(t, pattern, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		store.ids[id] = true
	}
	assert.Len(t, seen, 50)
}

func TestAllocator_NextInvoiceID(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("count of the day plus one", func(t *testing.T) {
		invoices := new(MockInvoiceLookup)
		invoices.On("CountByDay", mock.Anything, day).Return(int64(4), nil)
		a := NewAllocator(nil, invoices)

		id := a.NextInvoiceID(ctx, fixedNow)

		assert.Equal(t, "INV-20260310-005", id)
		assert.Regexp(t, `^INV-\d{8}-\d{3}$`, id)
		invoices.AssertExpectations(t)
	})

	t.Run("counter keeps increasing within the day", func(t *testing.T) {
		invoices := new(MockInvoiceLookup)
		invoices.On("CountByDay", mock.Anything, day).Return(int64(0), nil).Once()
		a := NewAllocator(nil, invoices, WithCounter(&fakeCounter{}))

		assert.Equal(t, "INV-20260310-001", a.NextInvoiceID(ctx, fixedNow))
		assert.Equal(t, "INV-20260310-002", a.NextInvoiceID(ctx, fixedNow))
		invoices.AssertExpectations(t)
	})

	t.Run("count failure still yields an id", func(t *testing.T) {
		invoices := new(MockInvoiceLookup)
		invoices.On("CountByDay", mock.Anything, day).Return(int64(0), errors.New("db down"))
		a := NewAllocator(nil, invoices)

		assert.Equal(t, "INV-20260310-001", a.NextInvoiceID(ctx, fixedNow))
	})
}
