package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSequenceCounter_Next(t *testing.T) {
	counter := NewGormSequenceCounter(newTestDB(t))
	ctx := context.Background()

	seeds := 0
	seed := func(context.Context) (int64, error) {
		seeds++
		return 41, nil
	}

	first, err := counter.Next(ctx, "job-2026", seed)
	require.NoError(t, err)
	second, err := counter.Next(ctx, "job-2026", seed)
	require.NoError(t, err)

	assert.EqualValues(t, 42, first)
	assert.EqualValues(t, 43, second)
	assert.Equal(t, 1, seeds, "seed runs only for a missing key")

	other, err := counter.Next(ctx, "invoice-20260310", nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, other, "keys count independently")
}

func TestGormSequenceCounter_SeedError(t *testing.T) {
	counter := NewGormSequenceCounter(newTestDB(t))
	boom := errors.New("count failed")

	_, err := counter.Next(context.Background(), "job-2026", func(context.Context) (int64, error) {
		return 0, boom
	})

	assert.ErrorIs(t, err, boom)
}
