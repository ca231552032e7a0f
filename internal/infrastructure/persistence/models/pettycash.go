package models

import (
	"time"

	"github.com/repairdesk/backend/internal/domain/pettycash"
	"github.com/shopspring/decimal"
)

// PettyCashTransactionModel is the persistence model for petty-cash transactions.
type PettyCashTransactionModel struct {
	BaseModel
	Date          time.Time       `gorm:"not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Type          string          `gorm:"type:varchar(10);not null;index"`
	Category      string          `gorm:"type:varchar(100);not null"`
	Description   string          `gorm:"type:varchar(500);not null"`
	PaymentMethod string          `gorm:"type:varchar(50)"`
	TransferType  string          `gorm:"type:varchar(50)"`
	ReceiptNumber string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (PettyCashTransactionModel) TableName() string {
	return "petty_cash_transactions"
}

// ToDomain converts the persistence model to a domain Transaction entity
func (m *PettyCashTransactionModel) ToDomain() *pettycash.Transaction {
	return &pettycash.Transaction{
		BaseEntity:    m.BaseModel.ToDomain(),
		Date:          m.Date,
		Amount:        m.Amount,
		Type:          pettycash.Type(m.Type),
		Category:      m.Category,
		Description:   m.Description,
		PaymentMethod: m.PaymentMethod,
		TransferType:  m.TransferType,
		ReceiptNumber: m.ReceiptNumber,
	}
}

// FromDomain populates the persistence model from a domain Transaction entity
func (m *PettyCashTransactionModel) FromDomain(tx *pettycash.Transaction) {
	m.FromDomainBaseEntity(tx.BaseEntity)
	m.Date = tx.Date
	m.Amount = tx.Amount
	m.Type = string(tx.Type)
	m.Category = tx.Category
	m.Description = tx.Description
	m.PaymentMethod = tx.PaymentMethod
	m.TransferType = tx.TransferType
	m.ReceiptNumber = tx.ReceiptNumber
}

// PettyCashTransactionModelFromDomain creates a new persistence model from a domain Transaction entity
func PettyCashTransactionModelFromDomain(tx *pettycash.Transaction) *PettyCashTransactionModel {
	m := &PettyCashTransactionModel{}
	m.FromDomain(tx)
	return m
}
