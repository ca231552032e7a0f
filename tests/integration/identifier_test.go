package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/repairdesk/backend/internal/application/identifier"
	"github.com/repairdesk/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAllocator(tdb *TestDB) *identifier.Allocator {
	return identifier.NewAllocator(
		persistence.NewGormJobRepository(tdb.DB),
		persistence.NewGormInvoiceRepository(tdb.DB),
		identifier.WithCounter(persistence.NewGormSequenceCounter(tdb.DB)),
	)
}

func TestAllocator_ConcurrentJobIDsAreUnique(t *testing.T) {
	tdb := NewTestDB(t)
	ids := newAllocator(tdb)
	ctx := context.Background()

	const workers = 25
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		got = make(map[string]int, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := ids.NextJobID(ctx)
			mu.Lock()
			got[id]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, got, workers, "every allocation must be distinct")
	for n := 1; n <= workers; n++ {
		assert.Contains(t, got, fmt.Sprintf("JOB%06d", n))
	}
}

func TestAllocator_InvoiceIDsRestartEachDay(t *testing.T) {
	tdb := NewTestDB(t)
	ids := newAllocator(tdb)
	ctx := context.Background()

	day1 := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	assert.Equal(t, "INV-20260305-001", ids.NextInvoiceID(ctx, day1))
	assert.Equal(t, "INV-20260305-002", ids.NextInvoiceID(ctx, day1))
	assert.Equal(t, "INV-20260306-001", ids.NextInvoiceID(ctx, day2))
	assert.Equal(t, "INV-20260305-003", ids.NextInvoiceID(ctx, day1))
}
