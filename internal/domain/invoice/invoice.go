package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TaxRate is the flat sales tax applied to every invoice
var TaxRate = decimal.New(1, -1)

// Status represents the payment state of an invoice
type Status string

const (
	StatusPaid      Status = "Paid"
	StatusPending   Status = "Pending"
	StatusCancelled Status = "Cancelled"
	StatusRefunded  Status = "Refunded"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPaid, StatusPending, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// PaymentMethod is how the customer paid
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

// IsValid checks if the payment method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobile:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Totals are the computed money amounts of an invoice
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals returns subtotal = Σ price × quantity, tax = 10% of the
// subtotal rounded to cents and total = subtotal + tax
func ComputeTotals(items []LineItem) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Amount())
	}
	tax := shared.RoundMoney(subtotal.Mul(TaxRate))
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal.Add(tax)}
}

// Invoice is a persisted sale
type Invoice struct {
	shared.BaseEntity
	InvoiceID     string          `json:"invoice_id"`
	Customer      string          `json:"customer"`
	Phone         string          `json:"phone"`
	Items         []LineItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Status        Status          `json:"status"`
	Date          time.Time       `json:"date"`
}

// Details holds the caller-supplied fields of a new invoice. Claimed
// totals are optional and must match the computed totals to the cent.
type Details struct {
	Customer      string
	Phone         string
	Items         []LineItem
	PaymentMethod PaymentMethod
	Status        Status
	Date          time.Time
	Subtotal      *decimal.Decimal
	Tax           *decimal.Decimal
	Total         *decimal.Decimal
}

// Validate checks the details without needing an invoice id, so callers
// can reject a request before allocating one.
func (d Details) Validate() error {
	if err := shared.RequireText("INVALID_CUSTOMER", "Customer", d.Customer, 0, 100); err != nil {
		return err
	}
	if strings.TrimSpace(d.Phone) == "" {
		return shared.NewValidationError("INVALID_PHONE", "Phone is required")
	}
	if !shared.IsValidPhone(d.Phone) {
		return shared.NewValidationError("INVALID_PHONE", "Please enter a valid phone number")
	}
	if len(d.Items) == 0 {
		return shared.NewValidationError("INVALID_ITEMS", "Invoice must contain at least one item")
	}
	for i := range d.Items {
		if err := d.Items[i].Validate(); err != nil {
			return err
		}
	}
	if d.PaymentMethod != "" && !d.PaymentMethod.IsValid() {
		return shared.NewValidationError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if d.Status != "" && !d.Status.IsValid() {
		return shared.NewValidationError("INVALID_STATUS", "Invoice status is not valid")
	}

	totals := ComputeTotals(d.Items)
	if err := checkClaimed("subtotal", d.Subtotal, totals.Subtotal); err != nil {
		return err
	}
	if err := checkClaimed("tax", d.Tax, totals.Tax); err != nil {
		return err
	}
	return checkClaimed("total", d.Total, totals.Total)
}

// NewInvoice builds an invoice, computing its totals from the items.
// Stored totals are always the computed ones.
func NewInvoice(invoiceID string, d Details) (*Invoice, error) {
	if strings.TrimSpace(invoiceID) == "" {
		return nil, shared.NewValidationError("INVALID_INVOICE_ID", "Invoice ID cannot be empty")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if d.PaymentMethod == "" {
		d.PaymentMethod = PaymentCash
	}
	if d.Status == "" {
		d.Status = StatusPaid
	}

	totals := ComputeTotals(d.Items)
	inv := &Invoice{
		BaseEntity:    shared.NewBaseEntity(),
		InvoiceID:     strings.TrimSpace(invoiceID),
		Customer:      strings.TrimSpace(d.Customer),
		Phone:         strings.TrimSpace(d.Phone),
		Items:         append([]LineItem(nil), d.Items...),
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: d.PaymentMethod,
		Status:        d.Status,
		Date:          d.Date,
	}
	if inv.Date.IsZero() {
		inv.Date = inv.CreatedAt
	}
	return inv, nil
}

// checkClaimed compares a caller-computed amount at cent precision, so
// float artifacts such as 3.3330000000000006 match a computed 3.33.
func checkClaimed(field string, claimed *decimal.Decimal, computed decimal.Decimal) error {
	if claimed == nil || shared.RoundMoney(*claimed).Equal(computed) {
		return nil
	}
	return shared.NewValidationError("TOTALS_MISMATCH",
		fmt.Sprintf("Invoice %s %s does not match computed %s", field, claimed.String(), computed.StringFixed(shared.MoneyPlaces)))
}

// ChangeStatus sets a new payment status
func (inv *Invoice) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("INVALID_STATUS", "Invoice status is not valid")
	}
	inv.Status = status
	inv.Touch()
	return nil
}

// Sales is the aggregate of paid invoices over a period
type Sales struct {
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalInvoices int64           `json:"total_invoices"`
}
