package settings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/settings"
	"github.com/repairdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TechnicianService manages the technician roster
type TechnicianService struct {
	repo   settings.TechnicianRepository
	logger *zap.Logger
}

// NewTechnicianService creates a new TechnicianService
func NewTechnicianService(repo settings.TechnicianRepository, logger *zap.Logger) *TechnicianService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TechnicianService{repo: repo, logger: logger}
}

// Create adds a technician; a taken email is a conflict
func (s *TechnicianService) Create(ctx context.Context, req TechnicianRequest) (*TechnicianResponse, error) {
	t, err := settings.NewTechnician(req.details())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, emailConflict(err, t.Email)
	}
	s.logger.Info("Technician created", zap.String("id", t.ID.String()), zap.String("email", t.Email))
	resp := ToTechnicianResponse(t)
	return &resp, nil
}

// List returns every technician, newest first
func (s *TechnicianService) List(ctx context.Context) ([]TechnicianResponse, error) {
	return manyTechnicians(s.repo.List(ctx))
}

// ListActive returns the active technicians
func (s *TechnicianService) ListActive(ctx context.Context) ([]TechnicianResponse, error) {
	return manyTechnicians(s.repo.FindActive(ctx))
}

// ListBySpecialization returns active technicians holding the tag, most
// experienced first
func (s *TechnicianService) ListBySpecialization(ctx context.Context, spec string) ([]TechnicianResponse, error) {
	sp := settings.Specialization(spec)
	if !sp.IsValid() {
		return nil, shared.NewValidationError("INVALID_SPECIALIZATION", "Specialization "+spec+" is not valid")
	}
	return manyTechnicians(s.repo.FindBySpecialization(ctx, sp))
}

// GetByID returns the technician, or nil when missing
func (s *TechnicianService) GetByID(ctx context.Context, id uuid.UUID) (*TechnicianResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := ToTechnicianResponse(t)
	return &resp, nil
}

// Update replaces the technician's fields
func (s *TechnicianService) Update(ctx context.Context, id uuid.UUID, req TechnicianRequest) (*TechnicianResponse, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.Update(req.details()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, emailConflict(err, t.Email)
	}
	s.logger.Info("Technician updated", zap.String("id", id.String()))
	resp := ToTechnicianResponse(t)
	return &resp, nil
}

// Delete removes the technician. Jobs keep the dangling reference and
// resolve it as unassigned.
func (s *TechnicianService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewNotFoundError("Technician")
		}
		return err
	}
	s.logger.Info("Technician deleted", zap.String("id", id.String()))
	return nil
}

// Deactivate marks the technician inactive, or returns nil when missing
func (s *TechnicianService) Deactivate(ctx context.Context, id uuid.UUID) (*TechnicianResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	t.Deactivate()
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("Technician deactivated", zap.String("id", id.String()))
	resp := ToTechnicianResponse(t)
	return &resp, nil
}

func (s *TechnicianService) find(ctx context.Context, id uuid.UUID) (*settings.Technician, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Technician")
		}
		return nil, err
	}
	return t, nil
}

func emailConflict(err error, email string) error {
	if shared.KindOf(err) == shared.KindConflict {
		return shared.NewConflictError("TECHNICIAN_EMAIL_EXISTS", "A technician with email "+email+" already exists")
	}
	return err
}

func manyTechnicians(ts []settings.Technician, err error) ([]TechnicianResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]TechnicianResponse, len(ts))
	for i := range ts {
		out[i] = ToTechnicianResponse(&ts[i])
	}
	return out, nil
}

// Seed creates the given technicians when the roster is empty and
// returns how many were inserted
func (s *TechnicianService) Seed(ctx context.Context, reqs []TechnicianRequest) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil || n > 0 {
		return 0, err
	}
	for i, req := range reqs {
		if _, err := s.Create(ctx, req); err != nil {
			return i, err
		}
	}
	return len(reqs), nil
}
