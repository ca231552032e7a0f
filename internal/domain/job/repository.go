package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/shared"
)

// Filter defines filtering options for job queries
type Filter struct {
	shared.Filter
	Status       *Status
	Priority     *Priority
	Brand        *Brand
	TechnicianID *uuid.UUID
	CustomerName string     // case-insensitive substring
	PhoneNumber  string     // case-insensitive substring
	JobID        string     // case-insensitive substring
	DateFrom     *time.Time // created_at lower bound
	DateTo       *time.Time // created_at upper bound
	Overdue      *bool
	Now          time.Time // reference time for Overdue
}

// Repository defines the interface for job persistence
type Repository interface {
	Create(ctx context.Context, job *Job) error
	Save(ctx context.Context, job *Job) error

	// FindByID returns shared.ErrNotFound when no job has the storage id
	FindByID(ctx context.Context, id uuid.UUID) (*Job, error)
	FindByJobID(ctx context.Context, jobID string) (*Job, error)
	ExistsByJobID(ctx context.Context, jobID string) (bool, error)

	// FindAll returns one page of matching jobs and the total match count
	FindAll(ctx context.Context, filter Filter) ([]Job, int64, error)
	List(ctx context.Context) ([]Job, error)
	Count(ctx context.Context) (int64, error)

	Search(ctx context.Context, term string) ([]Job, error)
	FindOverdue(ctx context.Context, now time.Time) ([]Job, error)
	FindByTechnician(ctx context.Context, technicianID uuid.UUID, status *Status) ([]Job, error)
	FindRecent(ctx context.Context, limit int) ([]Job, error)
	FindByCreatedRange(ctx context.Context, start, end time.Time) ([]Job, error)
	FindByStatus(ctx context.Context, status Status) ([]Job, error)
	FindByPriority(ctx context.Context, priority Priority) ([]Job, error)
	FindRequiringParts(ctx context.Context) ([]Job, error)
	FindByCustomer(ctx context.Context, name, phone string) ([]Job, error)

	// Delete returns shared.ErrNotFound when no job has the storage id
	Delete(ctx context.Context, id uuid.UUID) error
}
