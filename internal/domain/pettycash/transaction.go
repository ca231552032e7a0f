package pettycash

import (
	"strings"
	"time"

	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InternalCategory is the fixed category of transfers
const InternalCategory = "Internal"

// Type is the kind of cash movement
type Type string

const (
	TypeIncome   Type = "income"
	TypeExpense  Type = "expense"
	TypeTransfer Type = "transfer"
)

// IsValid checks if the type is a valid Type
func (t Type) IsValid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

// String returns the string representation of Type
func (t Type) String() string {
	return string(t)
}

// Transaction is a single petty-cash movement
type Transaction struct {
	shared.BaseEntity
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Type          Type            `json:"type"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	PaymentMethod string          `json:"payment_method"`
	TransferType  string          `json:"transfer_type"`
	ReceiptNumber string          `json:"receipt_number"`
}

// Details holds the caller-supplied fields of a transaction
type Details struct {
	Date          time.Time
	Amount        decimal.Decimal
	Type          Type
	Category      string
	Description   string
	PaymentMethod string
	TransferType  string
	ReceiptNumber string
}

// NewTransaction records a new movement. Transfers always carry the
// Internal category and a transfer type instead of a payment method.
func NewTransaction(d Details) (*Transaction, error) {
	tx := &Transaction{BaseEntity: shared.NewBaseEntity()}
	if err := tx.set(d); err != nil {
		return nil, err
	}
	if tx.Date.IsZero() {
		tx.Date = tx.CreatedAt
	}
	return tx, nil
}

// Update replaces the transaction's fields
func (t *Transaction) Update(d Details) error {
	date := t.Date
	if err := t.set(d); err != nil {
		return err
	}
	if t.Date.IsZero() {
		t.Date = date
	}
	t.Touch()
	return nil
}

func (t *Transaction) set(d Details) error {
	if !d.Type.IsValid() {
		return shared.NewValidationError("INVALID_TYPE", "Transaction type must be income, expense or transfer")
	}
	if !d.Amount.IsPositive() {
		return shared.NewValidationError("INVALID_AMOUNT", "Amount must be greater than 0")
	}
	if shared.HasSubCent(d.Amount) {
		return shared.NewValidationError("INVALID_AMOUNT", "Amount cannot have more than two decimal places")
	}
	if err := shared.RequireText("INVALID_DESCRIPTION", "Description", d.Description, 0, 500); err != nil {
		return err
	}
	category := strings.TrimSpace(d.Category)
	paymentMethod := strings.TrimSpace(d.PaymentMethod)
	transferType := strings.TrimSpace(d.TransferType)
	if d.Type == TypeTransfer {
		if transferType == "" {
			return shared.NewValidationError("INVALID_TRANSFER_TYPE", "Transfer type is required")
		}
		category = InternalCategory
		paymentMethod = ""
	} else {
		if category == "" {
			return shared.NewValidationError("INVALID_CATEGORY", "Category is required")
		}
		if paymentMethod == "" {
			return shared.NewValidationError("INVALID_PAYMENT_METHOD", "Payment method is required")
		}
		transferType = ""
	}

	t.Date = d.Date
	t.Amount = d.Amount
	t.Type = d.Type
	t.Category = category
	t.Description = strings.TrimSpace(d.Description)
	t.PaymentMethod = paymentMethod
	t.TransferType = transferType
	t.ReceiptNumber = strings.TrimSpace(d.ReceiptNumber)
	return nil
}
