package invoice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/invoice"
	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/repairdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// IDAllocator hands out daily invoice numbers
type IDAllocator interface {
	NextInvoiceID(ctx context.Context, date time.Time) string
}

// InvoiceService records and queries sales
type InvoiceService struct {
	repo            invoice.Repository
	ids             IDAllocator
	stock           StockReader
	jobs            JobReader
	logger          *zap.Logger
	now             func() time.Time
	businessMetrics *telemetry.ShopMetrics
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(repo invoice.Repository, ids IDAllocator, stock StockReader, jobs JobReader, logger *zap.Logger) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		repo:   repo,
		ids:    ids,
		stock:  stock,
		jobs:   jobs,
		logger: logger,
		now:    time.Now,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *InvoiceService) SetBusinessMetrics(m *telemetry.ShopMetrics) {
	s.businessMetrics = m
}

// SetClock overrides the time source
func (s *InvoiceService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateInvoice stores a sale. The invoice id comes from the request or
// is allocated for the invoice date.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (_ *InvoiceResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "create",
		telemetry.SpanLineCount.Int(len(req.Items)),
		telemetry.SpanPaymentMethod.String(req.PaymentMethod))
	defer func() { telemetry.EndServiceSpan(span, err) }()

	details := invoice.Details{
		Customer:      req.Customer,
		Phone:         req.Phone,
		Items:         toLineItems(req.Items),
		PaymentMethod: invoice.PaymentMethod(req.PaymentMethod),
		Status:        invoice.Status(req.Status),
		Subtotal:      req.Subtotal,
		Tax:           req.Tax,
		Total:         req.Total,
	}
	if req.Date != nil {
		details.Date = *req.Date
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}
	day := details.Date
	if day.IsZero() {
		day = s.now()
	}

	invoiceID := strings.TrimSpace(req.InvoiceID)
	allocated := invoiceID == ""
	attempts := 1
	if allocated {
		attempts = 2
	}

	var inv *invoice.Invoice
	for attempt := 0; attempt < attempts; attempt++ {
		id := invoiceID
		if allocated {
			id = s.ids.NextInvoiceID(ctx, day)
		}
		candidate, err := invoice.NewInvoice(id, details)
		if err != nil {
			return nil, err
		}
		err = s.repo.Create(ctx, candidate)
		if err == nil {
			inv = candidate
			break
		}
		if shared.KindOf(err) != shared.KindConflict {
			return nil, err
		}
		if attempt == attempts-1 {
			return nil, shared.NewConflictError("INVOICE_EXISTS", "Invoice "+id+" already exists")
		}
		s.logger.Warn("Invoice id collided on insert, allocating again", zap.String("invoice_id", id))
	}

	span.SetAttributes(
		telemetry.SpanInvoiceID.String(inv.InvoiceID),
		telemetry.SpanAmount.String(inv.Total.StringFixed(2)))
	s.logger.Info("Invoice created",
		zap.String("invoice_id", inv.InvoiceID),
		zap.String("total", inv.Total.StringFixed(2)),
		zap.String("payment_method", string(inv.PaymentMethod)))
	if s.businessMetrics != nil {
		s.businessMetrics.RecordInvoice(ctx, string(inv.PaymentMethod), inv.Total)
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// GetAllInvoices returns every invoice, newest first
func (s *InvoiceService) GetAllInvoices(ctx context.Context) ([]InvoiceResponse, error) {
	return many(s.repo.List(ctx))
}

// GetInvoiceByID returns the invoice by storage id
func (s *InvoiceService) GetInvoiceByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	return single(s.repo.FindByID(ctx, id))
}

// GetInvoiceByInvoiceID returns the invoice by its business id
func (s *InvoiceService) GetInvoiceByInvoiceID(ctx context.Context, invoiceID string) (*InvoiceResponse, error) {
	return single(s.repo.FindByInvoiceID(ctx, strings.TrimSpace(invoiceID)))
}

// GetInvoicesByPhone returns the invoices for a phone number
func (s *InvoiceService) GetInvoicesByPhone(ctx context.Context, phone string) ([]InvoiceResponse, error) {
	return many(s.repo.FindByPhone(ctx, strings.TrimSpace(phone)))
}

// GetInvoicesByDateRange returns invoices dated within the inclusive range
func (s *InvoiceService) GetInvoicesByDateRange(ctx context.Context, start, end time.Time) ([]InvoiceResponse, error) {
	start, end, err := dayRange(start, end)
	if err != nil {
		return nil, err
	}
	return many(s.repo.FindByDateRange(ctx, start, end))
}

// GetInvoicesByStatus returns invoices with the status
func (s *InvoiceService) GetInvoicesByStatus(ctx context.Context, status string) ([]InvoiceResponse, error) {
	st := invoice.Status(status)
	if !st.IsValid() {
		return nil, shared.NewValidationError("INVALID_STATUS", "Invoice status is not valid")
	}
	return many(s.repo.FindByStatus(ctx, st))
}

// GetInvoicesByPaymentMethod returns invoices paid with the method
func (s *InvoiceService) GetInvoicesByPaymentMethod(ctx context.Context, method string) ([]InvoiceResponse, error) {
	m := invoice.PaymentMethod(method)
	if !m.IsValid() {
		return nil, shared.NewValidationError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	return many(s.repo.FindByPaymentMethod(ctx, m))
}

// UpdateInvoiceStatus changes the payment status
func (s *InvoiceService) UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status string) (*InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return single(nil, err)
	}
	if err := inv.ChangeStatus(invoice.Status(status)); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, inv); err != nil {
		return nil, err
	}
	s.logger.Info("Invoice status updated",
		zap.String("invoice_id", inv.InvoiceID),
		zap.String("status", status))
	return single(inv, nil)
}

// DeleteInvoice removes the invoice by business id and returns it
func (s *InvoiceService) DeleteInvoice(ctx context.Context, invoiceID string) (*InvoiceResponse, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	inv, err := s.repo.FindByInvoiceID(ctx, invoiceID)
	if err != nil {
		return single(nil, err)
	}
	if err := s.repo.DeleteByInvoiceID(ctx, invoiceID); err != nil {
		return single(nil, err)
	}
	s.logger.Info("Invoice deleted", zap.String("invoice_id", invoiceID))
	return single(inv, nil)
}

// GetTotalSales sums paid invoices dated within the inclusive range
func (s *InvoiceService) GetTotalSales(ctx context.Context, start, end time.Time) (*SalesResponse, error) {
	start, end, err := dayRange(start, end)
	if err != nil {
		return nil, err
	}
	sales, err := s.repo.SumPaid(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &SalesResponse{TotalSales: sales.TotalSales, TotalInvoices: sales.TotalInvoices}, nil
}

// dayRange widens a date-only end bound to the end of that day
func dayRange(start, end time.Time) (time.Time, time.Time, error) {
	if end.Before(start) {
		return start, end, shared.NewValidationError("INVALID_DATE_RANGE", "End date must not be before start date")
	}
	if end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 && end.Nanosecond() == 0 {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	return start, end, nil
}

func single(inv *invoice.Invoice, err error) (*InvoiceResponse, error) {
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Invoice")
		}
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

func many(invoices []invoice.Invoice, err error) ([]InvoiceResponse, error) {
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponses(invoices), nil
}
