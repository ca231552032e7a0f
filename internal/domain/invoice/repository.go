package invoice

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for invoice persistence.
// All list queries return invoices ordered by date descending.
type Repository interface {
	// Create returns a conflict error when the invoice id is taken
	Create(ctx context.Context, invoice *Invoice) error
	Save(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByInvoiceID(ctx context.Context, invoiceID string) (*Invoice, error)
	List(ctx context.Context) ([]Invoice, error)
	FindByPhone(ctx context.Context, phone string) ([]Invoice, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]Invoice, error)
	FindByStatus(ctx context.Context, status Status) ([]Invoice, error)
	FindByPaymentMethod(ctx context.Context, method PaymentMethod) ([]Invoice, error)
	CountByDay(ctx context.Context, day time.Time) (int64, error)
	SumPaid(ctx context.Context, start, end time.Time) (Sales, error)
	DeleteByInvoiceID(ctx context.Context, invoiceID string) error
}
