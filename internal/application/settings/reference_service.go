package settings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/settings"
	"github.com/repairdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReferenceService manages one settings list (brands or problem categories)
type ReferenceService struct {
	kind   settings.ReferenceKind
	repo   settings.ReferenceRepository
	logger *zap.Logger
}

// NewReferenceService creates a ReferenceService bound to one kind
func NewReferenceService(kind settings.ReferenceKind, repo settings.ReferenceRepository, logger *zap.Logger) *ReferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceService{kind: kind, repo: repo, logger: logger}
}

// Create adds an entry; a name equal under case folding is a conflict
func (s *ReferenceService) Create(ctx context.Context, req ReferenceRequest) (*ReferenceResponse, error) {
	r, err := settings.NewReference(s.kind, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, r.NameKey, uuid.Nil, r.Name); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, s.nameConflict(err, r.Name)
	}
	s.logger.Info(s.kind.Label()+" created", zap.String("id", r.ID.String()), zap.String("name", r.Name))
	resp := ToReferenceResponse(r)
	return &resp, nil
}

// List returns every entry ordered by name
func (s *ReferenceService) List(ctx context.Context) ([]ReferenceResponse, error) {
	refs, err := s.repo.List(ctx, s.kind)
	if err != nil {
		return nil, err
	}
	out := make([]ReferenceResponse, len(refs))
	for i := range refs {
		out[i] = ToReferenceResponse(&refs[i])
	}
	return out, nil
}

// Update renames or re-describes an entry
func (s *ReferenceService) Update(ctx context.Context, id uuid.UUID, req ReferenceRequest) (*ReferenceResponse, error) {
	r, err := s.repo.FindByID(ctx, s.kind, id)
	if err != nil {
		return nil, s.notFound(err)
	}
	if err := r.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, r.NameKey, r.ID, r.Name); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, s.nameConflict(err, r.Name)
	}
	s.logger.Info(s.kind.Label()+" updated", zap.String("id", id.String()))
	resp := ToReferenceResponse(r)
	return &resp, nil
}

// Delete removes an entry
func (s *ReferenceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, s.kind, id); err != nil {
		return s.notFound(err)
	}
	s.logger.Info(s.kind.Label()+" deleted", zap.String("id", id.String()))
	return nil
}

func (s *ReferenceService) ensureUnique(ctx context.Context, key string, exclude uuid.UUID, name string) error {
	exists, err := s.repo.ExistsByNameKey(ctx, s.kind, key, exclude)
	if err != nil {
		return err
	}
	if exists {
		return s.nameConflict(shared.ErrAlreadyExists, name)
	}
	return nil
}

func (s *ReferenceService) nameConflict(err error, name string) error {
	if shared.KindOf(err) == shared.KindConflict {
		return shared.NewConflictError("NAME_EXISTS", s.kind.Label()+" "+name+" already exists")
	}
	return err
}

func (s *ReferenceService) notFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError(s.kind.Label())
	}
	return err
}

// Seed creates the given entries when the list is empty and returns how
// many were inserted
func (s *ReferenceService) Seed(ctx context.Context, reqs []ReferenceRequest) (int, error) {
	n, err := s.repo.Count(ctx, s.kind)
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
