package pettycash

import (
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/pettycash"
	"github.com/shopspring/decimal"
)

// TransactionResponse represents a petty-cash transaction in API responses
type TransactionResponse struct {
	ID            uuid.UUID        `json:"id"`
	Date          time.Time        `json:"date"`
	Amount        decimal.Decimal  `json:"amount"`
	Type          string           `json:"type"`
	Category      string           `json:"category"`
	Description   string           `json:"description"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	TransferType  string           `json:"transfer_type,omitempty"`
	ReceiptNumber string           `json:"receipt_number,omitempty"`
	Balance       *decimal.Decimal `json:"balance,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// TransactionListResponse is one page of transactions with the total count
type TransactionListResponse struct {
	Data  []TransactionResponse `json:"data"`
	Total int64                 `json:"total"`
}

// TransactionRequest creates or replaces a transaction
type TransactionRequest struct {
	Date          *time.Time      `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type" binding:"required,oneof=income expense transfer"`
	Category      string          `json:"category" binding:"max=100"`
	Description   string          `json:"description" binding:"required,max=500"`
	PaymentMethod string          `json:"payment_method" binding:"max=50"`
	TransferType  string          `json:"transfer_type" binding:"max=50"`
	ReceiptNumber string          `json:"receipt_number" binding:"max=100"`
}

// TransactionListFilter holds the list query parameters
type TransactionListFilter struct {
	Date          *time.Time `form:"date" time_format:"2006-01-02"`
	Amount        string     `form:"amount"`
	Type          string     `form:"type"`
	Category      string     `form:"category"`
	Description   string     `form:"description"`
	PaymentMethod string     `form:"payment_method"`
	TransferType  string     `form:"transfer_type"`
	ReceiptNumber string     `form:"receipt_number"`
	Page          int        `form:"page"`
	Limit         int        `form:"limit"`
}

// StatsResponse summarizes the ledger
type StatsResponse struct {
	Balance       decimal.Decimal `json:"balance"`
	TodayIncome   decimal.Decimal `json:"today_income"`
	TodayExpenses decimal.Decimal `json:"today_expenses"`
	NetCashFlow   decimal.Decimal `json:"net_cash_flow"`
}

// ToTransactionResponse converts a domain Transaction to TransactionResponse
func ToTransactionResponse(tx *pettycash.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            tx.ID,
		Date:          tx.Date,
		Amount:        tx.Amount,
		Type:          string(tx.Type),
		Category:      tx.Category,
		Description:   tx.Description,
		PaymentMethod: tx.PaymentMethod,
		TransferType:  tx.TransferType,
		ReceiptNumber: tx.ReceiptNumber,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}

func (r TransactionRequest) details() pettycash.Details {
	d := pettycash.Details{
		Amount:        r.Amount,
		Type:          pettycash.Type(r.Type),
		Category:      r.Category,
		Description:   r.Description,
		PaymentMethod: r.PaymentMethod,
		TransferType:  r.TransferType,
		ReceiptNumber: r.ReceiptNumber,
	}
	if r.Date != nil {
		d.Date = *r.Date
	}
	return d
}
