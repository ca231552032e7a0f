package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/invoice"
	"github.com/repairdesk/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements invoice.Repository using GORM.
// Line items live in invoice_items ordered by position.
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Create inserts the invoice and its items; a taken invoice id is a conflict
func (r *GormInvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	model := models.InvoiceModelFromDomain(inv)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return err
		}
		return createInvoiceItems(tx, model.Items)
	})
	return translateError("create invoice", err)
}

// Save updates the invoice header and replaces its items
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *invoice.Invoice) error {
	model := models.InvoiceModelFromDomain(inv)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateRow("save invoice", tx, model); err != nil {
			return err
		}
		if err := tx.Where("invoice_ref = ?", model.ID).Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return err
		}
		return createInvoiceItems(tx, model.Items)
	})
	return translateError("save invoice", err)
}

func createInvoiceItems(tx *gorm.DB, items []models.InvoiceItemModel) error {
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

// FindByID finds an invoice by its storage id
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// FindByInvoiceID finds an invoice by its business id
func (r *GormInvoiceRepository) FindByInvoiceID(ctx context.Context, invoiceID string) (*invoice.Invoice, error) {
	return r.first(r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID))
}

// List returns every invoice, newest first
func (r *GormInvoiceRepository) List(ctx context.Context) ([]invoice.Invoice, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindByPhone returns the invoices for a phone number
func (r *GormInvoiceRepository) FindByPhone(ctx context.Context, phone string) ([]invoice.Invoice, error) {
	return r.find(r.db.WithContext(ctx).Where("phone = ?", phone))
}

// FindByDateRange returns invoices dated within [start, end]
func (r *GormInvoiceRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]invoice.Invoice, error) {
	return r.find(r.db.WithContext(ctx).Where("date >= ? AND date <= ?", start, end))
}

// FindByStatus returns invoices with the status
func (r *GormInvoiceRepository) FindByStatus(ctx context.Context, status invoice.Status) ([]invoice.Invoice, error) {
	return r.find(r.db.WithContext(ctx).Where("status = ?", string(status)))
}

// FindByPaymentMethod returns invoices paid with the method
func (r *GormInvoiceRepository) FindByPaymentMethod(ctx context.Context, method invoice.PaymentMethod) ([]invoice.Invoice, error) {
	return r.find(r.db.WithContext(ctx).Where("payment_method = ?", string(method)))
}

// CountByDay counts invoices dated on the calendar day of day, in its location
func (r *GormInvoiceRepository) CountByDay(ctx context.Context, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("date >= ? AND date < ?", start, start.AddDate(0, 0, 1)).
		Count(&count).Error; err != nil {
		return 0, translateError("count invoices", err)
	}
	return count, nil
}

// SumPaid totals the Paid invoices dated within [start, end]
func (r *GormInvoiceRepository) SumPaid(ctx context.Context, start, end time.Time) (invoice.Sales, error) {
	var row struct {
		TotalSales    decimal.NullDecimal
		TotalInvoices int64
	}
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Select("SUM(total) AS total_sales, COUNT(*) AS total_invoices").
		Where("status = ? AND date >= ? AND date <= ?", string(invoice.StatusPaid), start, end).
		Scan(&row).Error; err != nil {
		return invoice.Sales{}, translateError("sum invoices", err)
	}
	sales := invoice.Sales{TotalSales: decimal.Zero, TotalInvoices: row.TotalInvoices}
	if row.TotalSales.Valid {
		sales.TotalSales = row.TotalSales.Decimal
	}
	return sales, nil
}

// DeleteByInvoiceID removes the invoice and its items
func (r *GormInvoiceRepository) DeleteByInvoiceID(ctx context.Context, invoiceID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.InvoiceModel
		if err := tx.Select("id").Where("invoice_id = ?", invoiceID).First(&model).Error; err != nil {
			return translateError("delete invoice", err)
		}
		if err := tx.Where("invoice_ref = ?", model.ID).Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return translateError("delete invoice items", err)
		}
		return affected("delete invoice", tx.Delete(&models.InvoiceModel{}, "id = ?", model.ID))
	})
}

func (r *GormInvoiceRepository) withItems(query *gorm.DB) *gorm.DB {
	return query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (r *GormInvoiceRepository) first(query *gorm.DB) (*invoice.Invoice, error) {
	var model models.InvoiceModel
	if err := r.withItems(query).First(&model).Error; err != nil {
		return nil, translateError("find invoice", err)
	}
	return model.ToDomain(), nil
}

func (r *GormInvoiceRepository) find(query *gorm.DB) ([]invoice.Invoice, error) {
	var rows []models.InvoiceModel
	if err := r.withItems(query).Order("date DESC").Find(&rows).Error; err != nil {
		return nil, translateError("list invoices", err)
	}
	out := make([]invoice.Invoice, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

var _ invoice.Repository = (*GormInvoiceRepository)(nil)
