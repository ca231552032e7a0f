package persistence

import (
	"errors"
	"strings"

	"github.com/repairdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// translateError maps GORM errors onto the domain error taxonomy.
// It relies on gorm.Config.TranslateError for duplicate keys. Errors
// already in the taxonomy pass through unchanged.
func translateError(op string, err error) error {
	var domainErr *shared.DomainError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &domainErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	default:
		return shared.NewStorageError(op, err)
	}
}

// affected turns a zero-row mutation into shared.ErrNotFound
func affected(op string, result *gorm.DB) error {
	if result.Error != nil {
		return translateError(op, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// updateRow writes every column of model to its existing row. Unlike
// gorm's Save it never inserts, so a row deleted meanwhile stays deleted
// and the caller sees shared.ErrNotFound.
func updateRow(op string, db *gorm.DB, model any) error {
	return affected(op, db.Model(model).Select("*").Omit(clause.Associations).Updates(model))
}

// likePattern wraps term for a case-insensitive substring match. Wildcards
// in term match literally; queries pair it with ESCAPE '\'.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
