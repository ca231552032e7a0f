package persistence

import (
	"context"
	"errors"

	"github.com/repairdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSequenceCounter is a database-backed atomic counter. The increment
// runs as a single UPDATE inside a transaction, so the row lock serializes
// concurrent callers on the same key.
type GormSequenceCounter struct {
	db *gorm.DB
}

// NewGormSequenceCounter creates a new GormSequenceCounter
func NewGormSequenceCounter(db *gorm.DB) *GormSequenceCounter {
	return &GormSequenceCounter{db: db}
}

// Next increments the key and returns the new value. A missing key is
// first initialised to seed().
func (c *GormSequenceCounter) Next(ctx context.Context, key string, seed func(ctx context.Context) (int64, error)) (int64, error) {
	exists, err := c.exists(ctx, key)
	if err != nil {
		return 0, err
	}
	var initial int64
	if !exists && seed != nil {
		if initial, err = seed(ctx); err != nil {
			return 0, err
		}
	}

	var next models.SequenceModel
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !exists {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.SequenceModel{Name: key, Value: initial}).Error; err != nil {
				return err
			}
		}
		result := tx.Model(&models.SequenceModel{}).
			Where("name = ?", key).
			UpdateColumn("value", gorm.Expr("value + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("sequence row vanished")
		}
		return tx.Where("name = ?", key).Take(&next).Error
	})
	if err != nil {
		return 0, translateError("next sequence", err)
	}
	return next.Value, nil
}

func (c *GormSequenceCounter) exists(ctx context.Context, key string) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&models.SequenceModel{}).
		Where("name = ?", key).
		Count(&count).Error; err != nil {
		return false, translateError("check sequence", err)
	}
	return count > 0, nil
}
