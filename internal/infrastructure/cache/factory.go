package cache

import (
	"context"
	"fmt"

	"github.com/repairdesk/backend/internal/infrastructure/config"
	"github.com/repairdesk/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InvoiceKeyPrefix is the key prefix of per-day invoice counters
const InvoiceKeyPrefix = "invoice:"

// SequenceCounter hands out strictly increasing numbers per key
type SequenceCounter interface {
	Next(ctx context.Context, key string, seed func(ctx context.Context) (int64, error)) (int64, error)
}

// SequenceCounterFactory builds the counter selected by sequence.backend
type SequenceCounterFactory struct {
	sequence config.SequenceConfig
	redis    config.RedisConfig
	db       *gorm.DB
	logger   *zap.Logger
	fallback bool
}

// SequenceCounterFactoryOption configures the factory
type SequenceCounterFactoryOption func(*SequenceCounterFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SequenceCounterFactoryOption {
	return func(f *SequenceCounterFactory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithDatabaseFallback controls whether an unreachable Redis falls back
// to the database counter. Default is true.
func WithDatabaseFallback(allow bool) SequenceCounterFactoryOption {
	return func(f *SequenceCounterFactory) {
		f.fallback = allow
	}
}

// NewSequenceCounterFactory creates a new factory
func NewSequenceCounterFactory(seq config.SequenceConfig, redisCfg config.RedisConfig, db *gorm.DB, opts ...SequenceCounterFactoryOption) *SequenceCounterFactory {
	f := &SequenceCounterFactory{
		sequence: seq,
		redis:    redisCfg,
		db:       db,
		logger:   zap.NewNop(),
		fallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns the configured counter and a close function for any
// connection it opened
func (f *SequenceCounterFactory) Create(ctx context.Context) (SequenceCounter, func() error, error) {
	noop := func() error { return nil }

	switch f.sequence.Backend {
	case config.SequenceBackendMemory:
		f.logger.Warn("Using in-memory sequence counter; ids are unique to this instance only")
		return NewMemorySequenceCounter(), noop, nil

	case config.SequenceBackendRedis:
		client, err := NewRedisClient(ctx, f.redis)
		if err == nil {
			f.logger.Info("Using Redis sequence counter", zap.String("addr", f.redis.Addr()))
			counter := NewRedisSequenceCounter(client, f.sequence.KeyPrefix,
				WithKeyTTL(InvoiceKeyPrefix, f.sequence.DayTTL))
			return counter, client.Close, nil
		}
		if !f.fallback {
			return nil, nil, fmt.Errorf("redis sequence counter unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to database sequence counter", zap.Error(err))
		return persistence.NewGormSequenceCounter(f.db), noop, nil

	default:
		f.logger.Info("Using database sequence counter")
		return persistence.NewGormSequenceCounter(f.db), noop, nil
	}
}
