package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

// LineItemDTO is an invoice line in requests and responses
type LineItemDTO struct {
	ItemID   string          `json:"item_id" binding:"required"`
	ItemType string          `json:"item_type" binding:"required,oneof=inventory job"`
	Name     string          `json:"name" binding:"required"`
	Quantity int             `json:"quantity" binding:"gte=1"`
	Price    decimal.Decimal `json:"price"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceID     string          `json:"invoice_id"`
	Customer      string          `json:"customer"`
	Phone         string          `json:"phone"`
	Items         []LineItemDTO   `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateInvoiceRequest represents a request to record a sale. Totals are
// optional; when sent they must equal the computed values.
type CreateInvoiceRequest struct {
	InvoiceID     string           `json:"invoice_id" binding:"omitempty,max=50"`
	Customer      string           `json:"customer" binding:"required,max=100"`
	Phone         string           `json:"phone" binding:"required,phone"`
	Items         []LineItemDTO    `json:"items" binding:"required,min=1,dive"`
	Subtotal      *decimal.Decimal `json:"subtotal"`
	Tax           *decimal.Decimal `json:"tax"`
	Total         *decimal.Decimal `json:"total"`
	PaymentMethod string           `json:"payment_method" binding:"omitempty,oneof=cash card mobile"`
	Status        string           `json:"status" binding:"omitempty,oneof=Paid Pending Cancelled Refunded"`
	Date          *time.Time       `json:"date"`
}

// Selection picks an inventory item or a job for the draft invoice
type Selection struct {
	ItemType string    `json:"item_type" binding:"required,oneof=inventory job"`
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"omitempty,gte=1"`
}

// ComposeInvoiceRequest merges new selections into a draft
type ComposeInvoiceRequest struct {
	Items      []LineItemDTO `json:"items" binding:"omitempty,dive"`
	Selections []Selection   `json:"selections" binding:"required,min=1,dive"`
}

// ComposeInvoiceResponse is the merged draft with its totals
type ComposeInvoiceResponse struct {
	Items    []LineItemDTO   `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// UpdateStatusRequest changes the payment status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Paid Pending Cancelled Refunded"`
}

// DateRangeFilter bounds a date range query
type DateRangeFilter struct {
	StartDate time.Time `form:"start_date" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `form:"end_date" binding:"required" time_format:"2006-01-02"`
}

// SalesResponse is the paid-invoice aggregate over a period
type SalesResponse struct {
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalInvoices int64           `json:"total_invoices"`
}

// ToInvoiceResponse converts a domain Invoice to InvoiceResponse
func ToInvoiceResponse(inv *invoice.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceID:     inv.InvoiceID,
		Customer:      inv.Customer,
		Phone:         inv.Phone,
		Items:         toLineItemDTOs(inv.Items),
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		PaymentMethod: string(inv.PaymentMethod),
		Status:        string(inv.Status),
		Date:          inv.Date,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// ToInvoiceResponses converts a slice of invoices
func ToInvoiceResponses(invoices []invoice.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToInvoiceResponse(&invoices[i])
	}
	return out
}

func toLineItemDTOs(items []invoice.LineItem) []LineItemDTO {
	out := make([]LineItemDTO, len(items))
	for i, it := range items {
		out[i] = LineItemDTO{
			ItemID:   it.ItemID,
			ItemType: string(it.ItemType),
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		}
	}
	return out
}

func toLineItems(items []LineItemDTO) []invoice.LineItem {
	out := make([]invoice.LineItem, len(items))
	for i, it := range items {
		out[i] = invoice.LineItem{
			ItemID:   it.ItemID,
			ItemType: invoice.ItemType(it.ItemType),
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		}
	}
	return out
}
