package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice entity.
type InvoiceModel struct {
	BaseModel
	InvoiceID     string             `gorm:"column:invoice_id;type:varchar(50);not null;uniqueIndex"`
	Customer      string             `gorm:"type:varchar(100);not null"`
	Phone         string             `gorm:"type:varchar(30);not null;index"`
	Subtotal      decimal.Decimal    `gorm:"type:numeric(18,2);not null"`
	Tax           decimal.Decimal    `gorm:"type:numeric(18,2);not null"`
	Total         decimal.Decimal    `gorm:"type:numeric(18,2);not null"`
	PaymentMethod string             `gorm:"type:varchar(10);not null;index"`
	Status        string             `gorm:"type:varchar(10);not null;index"`
	Date          time.Time          `gorm:"not null;index"`
	Items         []InvoiceItemModel `gorm:"foreignKey:InvoiceRef;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceItemModel is one ordered line of an invoice.
type InvoiceItemModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceRef uuid.UUID       `gorm:"column:invoice_ref;type:uuid;not null;index"`
	Position   int             `gorm:"not null"`
	ItemID     string          `gorm:"type:varchar(50);not null"`
	ItemType   string          `gorm:"type:varchar(10);not null"`
	Name       string          `gorm:"type:varchar(300);not null"`
	Quantity   int             `gorm:"not null"`
	Price      decimal.Decimal `gorm:"type:numeric(18,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain Invoice entity.
// Items must already be ordered by position.
func (m *InvoiceModel) ToDomain() *invoice.Invoice {
	items := make([]invoice.LineItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = invoice.LineItem{
			ItemID:   it.ItemID,
			ItemType: invoice.ItemType(it.ItemType),
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		}
	}
	return &invoice.Invoice{
		BaseEntity:    m.BaseModel.ToDomain(),
		InvoiceID:     m.InvoiceID,
		Customer:      m.Customer,
		Phone:         m.Phone,
		Items:         items,
		Subtotal:      m.Subtotal,
		Tax:           m.Tax,
		Total:         m.Total,
		PaymentMethod: invoice.PaymentMethod(m.PaymentMethod),
		Status:        invoice.Status(m.Status),
		Date:          m.Date,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity
func (m *InvoiceModel) FromDomain(inv *invoice.Invoice) {
	m.FromDomainBaseEntity(inv.BaseEntity)
	m.InvoiceID = inv.InvoiceID
	m.Customer = inv.Customer
	m.Phone = inv.Phone
	m.Subtotal = inv.Subtotal
	m.Tax = inv.Tax
	m.Total = inv.Total
	m.PaymentMethod = string(inv.PaymentMethod)
	m.Status = string(inv.Status)
	m.Date = inv.Date
	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i, it := range inv.Items {
		m.Items[i] = InvoiceItemModel{
			ID:         uuid.New(),
			InvoiceRef: inv.ID,
			Position:   i,
			ItemID:     it.ItemID,
			ItemType:   string(it.ItemType),
			Name:       it.Name,
			Quantity:   it.Quantity,
			Price:      it.Price,
		}
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice entity
func InvoiceModelFromDomain(inv *invoice.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}
