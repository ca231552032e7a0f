package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/job"
	"github.com/repairdesk/backend/internal/domain/settings"
	"github.com/stretchr/testify/mock"
)

// MockJobRepository is a mock implementation of job.Repository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(ctx context.Context, j *job.Job) error {
	return m.Called(ctx, j).Error(0)
}

func (m *MockJobRepository) Save(ctx context.Context, j *job.Job) error {
	return m.Called(ctx, j).Error(0)
}

func (m *MockJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) FindByJobID(ctx context.Context, jobID string) (*job.Job, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) ExistsByJobID(ctx context.Context, jobID string) (bool, error) {
	args := m.Called(ctx, jobID)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobRepository) FindAll(ctx context.Context, filter job.Filter) ([]job.Job, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]job.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepository) List(ctx context.Context) ([]job.Job, error) {
	args := m.Called(ctx)
	return args.Get(0).([]job.Job), args.Error(1)
}

func (m *MockJobRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepository) Search(ctx context.Context, term string) ([]job.Job, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]job.Job), args.Error(1)
}

func (m *MockJobRepository) FindOverdue(ctx context.Context, now time.Time) ([]job.Job, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]job.Job), args.Error(1)
}

func (m *MockJobRepository) FindByTechnician(ctx context.Context, technicianID uuid.UUID, status *job.Status) ([]job.Job, error) {
	args := m.Called(ctx, technicianID, status)
	return args.Get(0).([]job.Job), args.Error(1)
}

func (m *MockJobRepository) FindRecent(ctx context.Context, limit int) ([]job.Job, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]job.Job), args.Error(1)
}

func (m *MockJobRepository) FindByCreatedRange(ctx context.Context, start, end time.Time) ([]job.Job, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]job.Job), args.Error(1)
}

func (m *MockJobRepository) FindByStatus(ctx context.Context, status job.Status) ([]job.Job, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]job.Job), args.Error(1)
}

func (m *MockJobRepository) FindByPriority(ctx context.Context, priority job.Priority) ([]job.Job, error) {
	args := m.Called(ctx, priority)
	return args.Get(0).([]job.Job), args.Error(1)
}

func (m *MockJobRepository) FindRequiringParts(ctx context.Context) ([]job.Job, error) {
	args := m.Called(ctx)
	return args.Get(0).([]job.Job), args.Error(1)
}

func (m *MockJobRepository) FindByCustomer(ctx context.Context, name, phone string) ([]job.Job, error) {
	args := m.Called(ctx, name, phone)
	return args.Get(0).([]job.Job), args.Error(1)
}

func (m *MockJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// stubAllocator returns ids from a fixed list
type stubAllocator struct {
	ids  []string
	next int
}

func (a *stubAllocator) NextJobID(context.Context) string {
	id := a.ids[a.next%len(a.ids)]
	a.next++
	return id
}

// stubDirectory returns technicians by id
type stubDirectory struct {
	techs map[uuid.UUID]settings.Technician
	err   error
}

func (d *stubDirectory) FindByIDs(_ context.Context, ids []uuid.UUID) ([]settings.Technician, error) {
	if d.err != nil {
		return nil, d.err
	}
	var out []settings.Technician
	for _, id := range ids {
		if t, ok := d.techs[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}
