package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/pettycash"
	"github.com/repairdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPettyCashRepository implements pettycash.Repository using GORM
type GormPettyCashRepository struct {
	db *gorm.DB
}

// NewGormPettyCashRepository creates a new GormPettyCashRepository
func NewGormPettyCashRepository(db *gorm.DB) *GormPettyCashRepository {
	return &GormPettyCashRepository{db: db}
}

// Create inserts a transaction
func (r *GormPettyCashRepository) Create(ctx context.Context, tx *pettycash.Transaction) error {
	return translateError("create transaction", r.db.WithContext(ctx).Create(models.PettyCashTransactionModelFromDomain(tx)).Error)
}

// Save updates every column of an existing transaction
func (r *GormPettyCashRepository) Save(ctx context.Context, tx *pettycash.Transaction) error {
	return updateRow("save transaction", r.db.WithContext(ctx), models.PettyCashTransactionModelFromDomain(tx))
}

// FindByID finds a transaction by its ID
func (r *GormPettyCashRepository) FindByID(ctx context.Context, id uuid.UUID) (*pettycash.Transaction, error) {
	var model models.PettyCashTransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find transaction", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns one page of matching transactions and the total match count
func (r *GormPettyCashRepository) FindAll(ctx context.Context, filter pettycash.Filter) ([]pettycash.Transaction, int64, error) {
	scoped := func() *gorm.DB {
		return r.applyFilter(r.db.WithContext(ctx).Model(&models.PettyCashTransactionModel{}), filter)
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, translateError("count transactions", err)
	}

	query := scoped().Order(orderClause(filter.OrderBy, filter.OrderDir, PettyCashSortFields, "date"))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	txs, err := r.find(query)
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

// FindRecent returns the newest transactions
func (r *GormPettyCashRepository) FindRecent(ctx context.Context, limit int) ([]pettycash.Transaction, error) {
	return r.find(r.db.WithContext(ctx).Order("date DESC").Order("created_at DESC").Limit(limit))
}

// List returns every transaction, newest first
func (r *GormPettyCashRepository) List(ctx context.Context) ([]pettycash.Transaction, error) {
	return r.find(r.db.WithContext(ctx).Order("date DESC"))
}

// Delete hard-deletes a transaction
func (r *GormPettyCashRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected("delete transaction", r.db.WithContext(ctx).Delete(&models.PettyCashTransactionModel{}, "id = ?", id))
}

// applyFilter matches every field exactly except description, which is a
// case-insensitive substring. A date matches its whole calendar day.
func (r *GormPettyCashRepository) applyFilter(query *gorm.DB, filter pettycash.Filter) *gorm.DB {
	if filter.Date != nil {
		d := *filter.Date
		start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		query = query.Where("date >= ? AND date < ?", start, start.AddDate(0, 0, 1))
	}
	if filter.Amount != nil {
		query = query.Where("amount = ?", *filter.Amount)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Description != "" {
		query = query.Where("LOWER(description) LIKE LOWER(?) ESCAPE '\\'", likePattern(filter.Description))
	}
	if filter.PaymentMethod != "" {
		query = query.Where("payment_method = ?", filter.PaymentMethod)
	}
	if filter.TransferType != "" {
		query = query.Where("transfer_type = ?", filter.TransferType)
	}
	if filter.ReceiptNumber != "" {
		query = query.Where("receipt_number = ?", filter.ReceiptNumber)
	}
	return query
}

func (r *GormPettyCashRepository) find(query *gorm.DB) ([]pettycash.Transaction, error) {
	var rows []models.PettyCashTransactionModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, translateError("list transactions", err)
	}
	out := make([]pettycash.Transaction, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

var _ pettycash.Repository = (*GormPettyCashRepository)(nil)
