package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/job"
	"github.com/repairdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var finishedStatuses = []string{string(job.StatusCompleted), string(job.StatusDelivered)}

// GormJobRepository implements job.Repository using GORM
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GormJobRepository
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// Create inserts a job; a taken job_id is a conflict
func (r *GormJobRepository) Create(ctx context.Context, j *job.Job) error {
	return translateError("create job", r.db.WithContext(ctx).Create(models.JobModelFromDomain(j)).Error)
}

// Save updates every column of an existing job
func (r *GormJobRepository) Save(ctx context.Context, j *job.Job) error {
	return updateRow("save job", r.db.WithContext(ctx), models.JobModelFromDomain(j))
}

// FindByID finds a job by its storage id
func (r *GormJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	var model models.JobModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find job", err)
	}
	return model.ToDomain(), nil
}

// FindByJobID finds a job by its business id
func (r *GormJobRepository) FindByJobID(ctx context.Context, jobID string) (*job.Job, error) {
	var model models.JobModel
	if err := r.db.WithContext(ctx).Where("job_id = ?", jobID).First(&model).Error; err != nil {
		return nil, translateError("find job", err)
	}
	return model.ToDomain(), nil
}

// ExistsByJobID checks whether a job with the business id exists
func (r *GormJobRepository) ExistsByJobID(ctx context.Context, jobID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.JobModel{}).
		Where("job_id = ?", jobID).
		Count(&count).Error; err != nil {
		return false, translateError("check job id", err)
	}
	return count > 0, nil
}

// FindAll returns one page of jobs matching the filter and the total match count
func (r *GormJobRepository) FindAll(ctx context.Context, filter job.Filter) ([]job.Job, int64, error) {
	scoped := func() *gorm.DB {
		return r.applyFilter(r.db.WithContext(ctx).Model(&models.JobModel{}), filter)
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, translateError("count jobs", err)
	}

	query := scoped().Order(orderClause(filter.OrderBy, filter.OrderDir, JobSortFields, "created_at"))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var rows []models.JobModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, translateError("list jobs", err)
	}
	return toJobs(rows), total, nil
}

// List returns every job, newest first
func (r *GormJobRepository) List(ctx context.Context) ([]job.Job, error) {
	return r.find(ctx, r.db.WithContext(ctx).Order("created_at DESC"))
}

// Count returns the number of jobs
func (r *GormJobRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.JobModel{}).Count(&count).Error; err != nil {
		return 0, translateError("count jobs", err)
	}
	return count, nil
}

// Search matches the term as a case-insensitive substring of the
// identifying and descriptive columns
func (r *GormJobRepository) Search(ctx context.Context, term string) ([]job.Job, error) {
	pattern := likePattern(term)
	return r.find(ctx, r.db.WithContext(ctx).
		Where("LOWER(job_id) LIKE LOWER(?) ESCAPE '\\' OR LOWER(customer_name) LIKE LOWER(?) ESCAPE '\\' OR LOWER(phone_number) LIKE LOWER(?) ESCAPE '\\'"+
			" OR LOWER(email) LIKE LOWER(?) ESCAPE '\\' OR LOWER(brand) LIKE LOWER(?) ESCAPE '\\' OR LOWER(tv_model) LIKE LOWER(?) ESCAPE '\\'"+
			" OR LOWER(serial_number) LIKE LOWER(?) ESCAPE '\\' OR LOWER(problem_description) LIKE LOWER(?) ESCAPE '\\' OR LOWER(diagnosis) LIKE LOWER(?) ESCAPE '\\'",
			pattern, pattern, pattern, pattern, pattern, pattern, pattern, pattern, pattern).
		Order("created_at DESC"))
}

// FindOverdue returns unfinished jobs past their expected delivery date,
// earliest first
func (r *GormJobRepository) FindOverdue(ctx context.Context, now time.Time) ([]job.Job, error) {
	return r.find(ctx, r.db.WithContext(ctx).
		Where("expected_delivery_date < ? AND status NOT IN ?", now, finishedStatuses).
		Order("expected_delivery_date ASC"))
}

// FindByTechnician returns the technician's jobs, optionally narrowed to one status
func (r *GormJobRepository) FindByTechnician(ctx context.Context, technicianID uuid.UUID, status *job.Status) ([]job.Job, error) {
	query := r.db.WithContext(ctx).Where("technician_id = ?", technicianID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}
	return r.find(ctx, query.Order("created_at DESC"))
}

// FindRecent returns the newest jobs
func (r *GormJobRepository) FindRecent(ctx context.Context, limit int) ([]job.Job, error) {
	return r.find(ctx, r.db.WithContext(ctx).Order("created_at DESC").Limit(limit))
}

// FindByCreatedRange returns jobs created within [start, end]
func (r *GormJobRepository) FindByCreatedRange(ctx context.Context, start, end time.Time) ([]job.Job, error) {
	return r.find(ctx, r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at DESC"))
}

// FindByStatus returns jobs with the status
func (r *GormJobRepository) FindByStatus(ctx context.Context, status job.Status) ([]job.Job, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("status = ?", string(status)).Order("created_at DESC"))
}

// FindByPriority returns jobs with the priority
func (r *GormJobRepository) FindByPriority(ctx context.Context, priority job.Priority) ([]job.Job, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("priority = ?", string(priority)).Order("created_at DESC"))
}

// FindRequiringParts returns parts-ordered jobs with a stored parts list
func (r *GormJobRepository) FindRequiringParts(ctx context.Context) ([]job.Job, error) {
	return r.find(ctx, r.db.WithContext(ctx).
		Where("status = ?", string(job.StatusPartsOrdered)).
		Where("parts_required IS NOT NULL AND parts_required NOT IN ?", []string{"", "null", "[]"}).
		Order("created_at DESC"))
}

// FindByCustomer matches name and phone as case-insensitive substrings;
// an empty argument is ignored
func (r *GormJobRepository) FindByCustomer(ctx context.Context, name, phone string) ([]job.Job, error) {
	query := r.db.WithContext(ctx)
	if name != "" {
		query = query.Where("LOWER(customer_name) LIKE LOWER(?) ESCAPE '\\'", likePattern(name))
	}
	if phone != "" {
		query = query.Where("LOWER(phone_number) LIKE LOWER(?) ESCAPE '\\'", likePattern(phone))
	}
	return r.find(ctx, query.Order("created_at DESC"))
}

// Delete hard-deletes a job
func (r *GormJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected("delete job", r.db.WithContext(ctx).Delete(&models.JobModel{}, "id = ?", id))
}

func (r *GormJobRepository) find(ctx context.Context, query *gorm.DB) ([]job.Job, error) {
	var rows []models.JobModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, translateError("list jobs", err)
	}
	return toJobs(rows), nil
}

func (r *GormJobRepository) applyFilter(query *gorm.DB, filter job.Filter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", string(*filter.Priority))
	}
	if filter.Brand != nil {
		query = query.Where("brand = ?", string(*filter.Brand))
	}
	if filter.TechnicianID != nil {
		query = query.Where("technician_id = ?", *filter.TechnicianID)
	}
	if filter.CustomerName != "" {
		query = query.Where("LOWER(customer_name) LIKE LOWER(?) ESCAPE '\\'", likePattern(filter.CustomerName))
	}
	if filter.PhoneNumber != "" {
		query = query.Where("LOWER(phone_number) LIKE LOWER(?) ESCAPE '\\'", likePattern(filter.PhoneNumber))
	}
	if filter.JobID != "" {
		query = query.Where("LOWER(job_id) LIKE LOWER(?) ESCAPE '\\'", likePattern(filter.JobID))
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}
	if filter.Overdue != nil {
		now := filter.Now
		if now.IsZero() {
			now = time.Now()
		}
		if *filter.Overdue {
			query = query.Where("expected_delivery_date < ? AND status NOT IN ?", now, finishedStatuses)
		} else {
			query = query.Where("(expected_delivery_date IS NULL OR expected_delivery_date >= ? OR status IN ?)", now, finishedStatuses)
		}
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(job_id) LIKE LOWER(?) ESCAPE '\\' OR LOWER(customer_name) LIKE LOWER(?) ESCAPE '\\' OR LOWER(phone_number) LIKE LOWER(?) ESCAPE '\\'",
			pattern, pattern, pattern)
	}
	return query
}

func toJobs(rows []models.JobModel) []job.Job {
	out := make([]job.Job, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ job.Repository = (*GormJobRepository)(nil)
