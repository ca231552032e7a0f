package settings

import (
	"context"

	"github.com/google/uuid"
)

// TechnicianRepository defines the interface for technician persistence
type TechnicianRepository interface {
	// Create returns a conflict error when the email is taken
	Create(ctx context.Context, t *Technician) error
	Save(ctx context.Context, t *Technician) error
	FindByID(ctx context.Context, id uuid.UUID) (*Technician, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Technician, error)
	List(ctx context.Context) ([]Technician, error)
	FindActive(ctx context.Context) ([]Technician, error)
	// FindBySpecialization returns active technicians ordered by experience desc
	FindBySpecialization(ctx context.Context, spec Specialization) ([]Technician, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReferenceRepository defines the interface for brand and problem
// category persistence; every call is scoped to one kind
type ReferenceRepository interface {
	Create(ctx context.Context, r *Reference) error
	Save(ctx context.Context, r *Reference) error
	FindByID(ctx context.Context, kind ReferenceKind, id uuid.UUID) (*Reference, error)
	ExistsByNameKey(ctx context.Context, kind ReferenceKind, key string, exclude uuid.UUID) (bool, error)
	// List returns entries ordered by name ascending
	List(ctx context.Context, kind ReferenceKind) ([]Reference, error)
	Count(ctx context.Context, kind ReferenceKind) (int64, error)
	Delete(ctx context.Context, kind ReferenceKind, id uuid.UUID) error
}
