package pettycash

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Filter defines exact-match filters on every field and a substring
// match on description. Zero values are ignored.
type Filter struct {
	shared.Filter
	Date          *time.Time
	Amount        *decimal.Decimal
	Type          *Type
	Category      string
	Description   string
	PaymentMethod string
	TransferType  string
	ReceiptNumber string
}

// Repository defines the interface for petty-cash persistence.
// Lists are ordered by date descending, newest first.
type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	Save(ctx context.Context, tx *Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindAll(ctx context.Context, filter Filter) ([]Transaction, int64, error)
	FindRecent(ctx context.Context, limit int) ([]Transaction, error)
	List(ctx context.Context) ([]Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
