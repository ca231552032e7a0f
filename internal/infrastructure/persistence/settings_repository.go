package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/settings"
	"github.com/repairdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTechnicianRepository implements settings.TechnicianRepository using GORM
type GormTechnicianRepository struct {
	db *gorm.DB
}

// NewGormTechnicianRepository creates a new GormTechnicianRepository
func NewGormTechnicianRepository(db *gorm.DB) *GormTechnicianRepository {
	return &GormTechnicianRepository{db: db}
}

// Create inserts a technician; a taken email is a conflict
func (r *GormTechnicianRepository) Create(ctx context.Context, t *settings.Technician) error {
	return translateError("create technician", r.db.WithContext(ctx).Create(models.TechnicianModelFromDomain(t)).Error)
}

// Save updates every column of an existing technician
func (r *GormTechnicianRepository) Save(ctx context.Context, t *settings.Technician) error {
	return updateRow("save technician", r.db.WithContext(ctx), models.TechnicianModelFromDomain(t))
}

// FindByID finds a technician by its ID
func (r *GormTechnicianRepository) FindByID(ctx context.Context, id uuid.UUID) (*settings.Technician, error) {
	var model models.TechnicianModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find technician", err)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds the technicians with the given IDs; missing ids are skipped
func (r *GormTechnicianRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]settings.Technician, error) {
	if len(ids) == 0 {
		return []settings.Technician{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("id IN ?", ids))
}

// List returns every technician, newest first
func (r *GormTechnicianRepository) List(ctx context.Context) ([]settings.Technician, error) {
	return r.find(r.db.WithContext(ctx).Order("created_at DESC"))
}

// FindActive returns active technicians by name
func (r *GormTechnicianRepository) FindActive(ctx context.Context) ([]settings.Technician, error) {
	return r.find(r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC"))
}

// FindBySpecialization returns active technicians holding the tag, most
// experienced first. The tag set is a JSON column, so membership is
// checked after loading the active roster.
func (r *GormTechnicianRepository) FindBySpecialization(ctx context.Context, spec settings.Specialization) ([]settings.Technician, error) {
	active, err := r.find(r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("experience DESC").
		Order("name ASC"))
	if err != nil {
		return nil, err
	}
	out := make([]settings.Technician, 0, len(active))
	for i := range active {
		if active[i].HasSpecialization(spec) {
			out = append(out, active[i])
		}
	}
	return out, nil
}

// Count returns the number of technicians
func (r *GormTechnicianRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TechnicianModel{}).Count(&count).Error; err != nil {
		return 0, translateError("count technicians", err)
	}
	return count, nil
}

// Delete hard-deletes a technician
func (r *GormTechnicianRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected("delete technician", r.db.WithContext(ctx).Delete(&models.TechnicianModel{}, "id = ?", id))
}

func (r *GormTechnicianRepository) find(query *gorm.DB) ([]settings.Technician, error) {
	var rows []models.TechnicianModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, translateError("list technicians", err)
	}
	out := make([]settings.Technician, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// GormReferenceRepository implements settings.ReferenceRepository using
// GORM over the brands and problem_categories tables
type GormReferenceRepository struct {
	db *gorm.DB
}

// NewGormReferenceRepository creates a new GormReferenceRepository
func NewGormReferenceRepository(db *gorm.DB) *GormReferenceRepository {
	return &GormReferenceRepository{db: db}
}

func (r *GormReferenceRepository) table(ctx context.Context, kind settings.ReferenceKind) *gorm.DB {
	return r.db.WithContext(ctx).Table(models.ReferenceTable(kind))
}

// Create inserts an entry; a taken name key is a conflict
func (r *GormReferenceRepository) Create(ctx context.Context, ref *settings.Reference) error {
	return translateError("create "+string(ref.Kind), r.table(ctx, ref.Kind).Create(models.ReferenceModelFromDomain(ref)).Error)
}

// Save updates an existing entry
func (r *GormReferenceRepository) Save(ctx context.Context, ref *settings.Reference) error {
	m := models.ReferenceModelFromDomain(ref)
	result := r.table(ctx, ref.Kind).Where("id = ?", m.ID).Updates(map[string]any{
		"name":        m.Name,
		"name_key":    m.NameKey,
		"description": m.Description,
		"updated_at":  m.UpdatedAt,
	})
	return affected("save "+string(ref.Kind), result)
}

// FindByID finds an entry by its ID
func (r *GormReferenceRepository) FindByID(ctx context.Context, kind settings.ReferenceKind, id uuid.UUID) (*settings.Reference, error) {
	var model models.ReferenceModel
	if err := r.table(ctx, kind).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translateError("find "+string(kind), err)
	}
	return model.ToDomain(kind), nil
}

// ExistsByNameKey checks for another entry with the folded name
func (r *GormReferenceRepository) ExistsByNameKey(ctx context.Context, kind settings.ReferenceKind, key string, exclude uuid.UUID) (bool, error) {
	var count int64
	query := r.table(ctx, kind).Where("name_key = ?", key)
	if exclude != uuid.Nil {
		query = query.Where("id <> ?", exclude)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, translateError("check "+string(kind), err)
	}
	return count > 0, nil
}

// List returns entries ordered by name
func (r *GormReferenceRepository) List(ctx context.Context, kind settings.ReferenceKind) ([]settings.Reference, error) {
	var rows []models.ReferenceModel
	if err := r.table(ctx, kind).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, translateError("list "+string(kind), err)
	}
	out := make([]settings.Reference, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain(kind)
	}
	return out, nil
}

// Count returns the number of entries
func (r *GormReferenceRepository) Count(ctx context.Context, kind settings.ReferenceKind) (int64, error) {
	var count int64
	if err := r.table(ctx, kind).Count(&count).Error; err != nil {
		return 0, translateError("count "+string(kind), err)
	}
	return count, nil
}

// Delete hard-deletes an entry
func (r *GormReferenceRepository) Delete(ctx context.Context, kind settings.ReferenceKind, id uuid.UUID) error {
	return affected("delete "+string(kind), r.table(ctx, kind).Where("id = ?", id).Delete(&models.ReferenceModel{}))
}

var (
	_ settings.TechnicianRepository = (*GormTechnicianRepository)(nil)
	_ settings.ReferenceRepository  = (*GormReferenceRepository)(nil)
)
