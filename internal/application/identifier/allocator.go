// Package identifier allocates the human-readable job and invoice numbers.
package identifier

import (
	"context"
	"fmt"
	"time"

	"github.com/repairdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const (
	// JobSequenceKey is the counter key for job numbers
	JobSequenceKey = "job"

	defaultMaxAttempts   = 5
	defaultFallbackProbe = 1000
)

// SequenceCounter hands out strictly increasing numbers per key. On the
// first use of a key the counter is initialised from seed and the first
// number returned is seed+1.
type SequenceCounter interface {
	Next(ctx context.Context, key string, seed func(ctx context.Context) (int64, error)) (int64, error)
}

// JobLookup is the read side of the job store the allocator needs
type JobLookup interface {
	Count(ctx context.Context) (int64, error)
	ExistsByJobID(ctx context.Context, jobID string) (bool, error)
}

// InvoiceLookup is the read side of the invoice store the allocator needs
type InvoiceLookup interface {
	CountByDay(ctx context.Context, day time.Time) (int64, error)
}

// Allocator generates JOB000001 and INV-YYYYMMDD-NNN identifiers.
// It never fails: storage errors degrade to count-based or
// timestamp-based numbers and are logged.
type Allocator struct {
	jobs          JobLookup
	invoices      InvoiceLookup
	counter       SequenceCounter
	logger        *zap.Logger
	now           func() time.Time
	maxAttempts   int
	fallbackProbe int
}

// Option configures an Allocator
type Option func(*Allocator)

// WithCounter sets the atomic sequence counter
func WithCounter(c SequenceCounter) Option {
	return func(a *Allocator) { a.counter = c }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(a *Allocator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(a *Allocator) { a.now = now }
}

// WithMaxAttempts sets how many sequential candidates are tried before
// falling back to a timestamp-based job id
func WithMaxAttempts(n int) Option {
	return func(a *Allocator) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

// NewAllocator creates an Allocator
func NewAllocator(jobs JobLookup, invoices InvoiceLookup, opts ...Option) *Allocator {
	a := &Allocator{
		jobs:          jobs,
		invoices:      invoices,
		logger:        zap.NewNop(),
		now:           time.Now,
		maxAttempts:   defaultMaxAttempts,
		fallbackProbe: defaultFallbackProbe,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FormatJobID formats a job sequence number
func FormatJobID(n int64) string {
	return fmt.Sprintf("JOB%06d", n)
}

// FormatInvoiceID formats an invoice number for a day
func FormatInvoiceID(day time.Time, n int64) string {
	return fmt.Sprintf("INV-%s-%03d", day.Format("20060102"), n)
}

// InvoiceSequenceKey returns the per-day counter key for invoices
func InvoiceSequenceKey(day time.Time) string {
	return "invoice:" + day.Format("20060102")
}

// NextJobID returns an unused job id
func (a *Allocator) NextJobID(ctx context.Context) string {
	ctx, span := telemetry.StartServiceSpan(ctx, "identifier", "next_job_id",
		telemetry.SpanSequenceKey.String(JobSequenceKey))
	defer span.End()

	id, fallback := a.nextJobID(ctx)
	span.SetAttributes(telemetry.SpanJobID.String(id), telemetry.SpanIDFallback.Bool(fallback))
	return id
}

func (a *Allocator) nextJobID(ctx context.Context) (string, bool) {
	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		n, err := a.jobSequence(ctx, attempt)
		if err != nil {
			a.logger.Warn("Job sequence unavailable, using timestamp fallback", zap.Error(err))
			break
		}
		candidate := FormatJobID(n)
		exists, err := a.jobs.ExistsByJobID(ctx, candidate)
		if err != nil {
			a.logger.Warn("Job id lookup failed, using timestamp fallback",
				zap.String("candidate", candidate), zap.Error(err))
			break
		}
		if !exists {
			return candidate, false
		}
		a.logger.Debug("Job id taken, retrying",
			zap.String("candidate", candidate), zap.Int("attempt", attempt+1))
	}
	return a.fallbackJobID(ctx), true
}

func (a *Allocator) jobSequence(ctx context.Context, attempt int) (int64, error) {
	if a.counter != nil {
		n, err := a.counter.Next(ctx, JobSequenceKey, a.jobs.Count)
		if err == nil {
			return n, nil
		}
		a.logger.Warn("Sequence counter failed, using job count", zap.Error(err))
	}
	count, err := a.jobs.Count(ctx)
	if err != nil {
		return 0, err
	}
	return count + 1 + int64(attempt), nil
}

// fallbackJobID uses the last six digits of the millisecond clock,
// probing forward until an unused id is found
func (a *Allocator) fallbackJobID(ctx context.Context) string {
	ms := a.now().UnixMilli()
	candidate := FormatJobID(ms % 1_000_000)
	for i := int64(0); i < int64(a.fallbackProbe); i++ {
		candidate = FormatJobID((ms + i) % 1_000_000)
		exists, err := a.jobs.ExistsByJobID(ctx, candidate)
		if err != nil || !exists {
			return candidate
		}
	}
	a.logger.Error("Timestamp fallback exhausted", zap.String("job_id", candidate))
	return candidate
}

// NextInvoiceID returns the next invoice id for the day of date
func (a *Allocator) NextInvoiceID(ctx context.Context, date time.Time) string {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	key := InvoiceSequenceKey(day)
	ctx, span := telemetry.StartServiceSpan(ctx, "identifier", "next_invoice_id",
		telemetry.SpanSequenceKey.String(key))
	defer span.End()

	seed := func(ctx context.Context) (int64, error) {
		return a.invoices.CountByDay(ctx, day)
	}

	fallback := false
	n := int64(0)
	if a.counter != nil {
		next, err := a.counter.Next(ctx, key, seed)
		if err == nil {
			n = next
		} else {
			a.logger.Warn("Sequence counter failed, using invoice count", zap.Error(err))
		}
	}
	if n == 0 {
		fallback = a.counter != nil
		count, err := seed(ctx)
		if err != nil {
			a.logger.Error("Invoice count failed", zap.Error(err))
			count = 0
		}
		n = count + 1
	}

	id := FormatInvoiceID(day, n)
	span.SetAttributes(telemetry.SpanInvoiceID.String(id), telemetry.SpanIDFallback.Bool(fallback))
	return id
}
