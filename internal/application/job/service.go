package job

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/job"
	"github.com/repairdesk/backend/internal/domain/settings"
	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/repairdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const (
	defaultPage        = 1
	defaultLimit       = 100
	defaultRecentLimit = 10
	createAttempts     = 2
)

// IDAllocator hands out job numbers
type IDAllocator interface {
	NextJobID(ctx context.Context) string
}

// TechnicianDirectory resolves technician references on read
type TechnicianDirectory interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]settings.Technician, error)
}

// JobService provides the job lifecycle operations
type JobService struct {
	repo            job.Repository
	technicians     TechnicianDirectory
	ids             IDAllocator
	logger          *zap.Logger
	now             func() time.Time
	businessMetrics *telemetry.ShopMetrics
}

// NewJobService creates a new JobService
func NewJobService(repo job.Repository, technicians TechnicianDirectory, ids IDAllocator, logger *zap.Logger) *JobService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobService{
		repo:        repo,
		technicians: technicians,
		ids:         ids,
		logger:      logger,
		now:         time.Now,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *JobService) SetBusinessMetrics(m *telemetry.ShopMetrics) {
	s.businessMetrics = m
}

// SetClock overrides the time source used for derived fields
func (s *JobService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateJob validates the request, allocates a job id and stores the job
func (s *JobService) CreateJob(ctx context.Context, req CreateJobRequest) (_ *JobResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "job", "create")
	defer func() { telemetry.EndServiceSpan(span, err) }()

	details, err := detailsFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}

	var created *job.Job
	for attempt := 0; attempt < createAttempts; attempt++ {
		j, err := job.NewJob(s.ids.NextJobID(ctx), details)
		if err != nil {
			return nil, err
		}
		err = s.repo.Create(ctx, j)
		if err == nil {
			created = j
			break
		}
		if shared.KindOf(err) != shared.KindConflict || attempt == createAttempts-1 {
			return nil, err
		}
		s.logger.Warn("Job id collided on insert, allocating again", zap.String("job_id", j.JobID))
	}

	span.SetAttributes(telemetry.SpanJobID.String(created.JobID))
	s.logger.Info("Job created",
		zap.String("job_id", created.JobID),
		zap.String("brand", string(created.Brand)),
		zap.String("priority", string(created.Priority)))
	if s.businessMetrics != nil {
		s.businessMetrics.RecordJobCreated(ctx, string(created.Brand), string(created.Priority))
	}
	return s.toResponse(ctx, created)
}

// GetJobs returns one page of jobs matching the filter
func (s *JobService) GetJobs(ctx context.Context, req JobListFilter) (*JobListResponse, error) {
	filter, err := s.buildFilter(req)
	if err != nil {
		return nil, err
	}
	jobs, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := s.toResponses(ctx, jobs)
	if err != nil {
		return nil, err
	}
	return &JobListResponse{
		Jobs:       items,
		Total:      total,
		TotalPages: shared.TotalPages(total, filter.PageSize),
	}, nil
}

// GetJobByID returns the job, or nil when it does not exist
func (s *JobService) GetJobByID(ctx context.Context, id uuid.UUID) (*JobResponse, error) {
	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nilIfNotFound(err)
	}
	return s.toResponse(ctx, j)
}

// GetJobByJobID returns the job with the business id, or nil
func (s *JobService) GetJobByJobID(ctx context.Context, jobID string) (*JobResponse, error) {
	j, err := s.repo.FindByJobID(ctx, strings.TrimSpace(jobID))
	if err != nil {
		return nilIfNotFound(err)
	}
	return s.toResponse(ctx, j)
}

// UpdateJob applies a partial update, or returns nil when the job is missing
func (s *JobService) UpdateJob(ctx context.Context, id uuid.UUID, req UpdateJobRequest) (*JobResponse, error) {
	patch, err := patchFromRequest(req)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "update", func(j *job.Job, now time.Time) error {
		return j.Apply(patch, now)
	})
}

// UpdateJobStatus sets the status, stamping the delivery date when the
// job enters completed or delivered
func (s *JobService) UpdateJobStatus(ctx context.Context, id uuid.UUID, status string) (*JobResponse, error) {
	st, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "status", func(j *job.Job, now time.Time) error {
		return j.ChangeStatus(st, now)
	})
}

// UpdateJobDiagnosis records the diagnosis and, when given, the parts list
func (s *JobService) UpdateJobDiagnosis(ctx context.Context, id uuid.UUID, req UpdateDiagnosisRequest) (*JobResponse, error) {
	return s.mutate(ctx, id, "diagnosis", func(j *job.Job, now time.Time) error {
		return j.Apply(job.Patch{Diagnosis: &req.Diagnosis, PartsRequired: req.PartsRequired}, now)
	})
}

// UpdateJobWorkProgress records completed work and optional testing notes
func (s *JobService) UpdateJobWorkProgress(ctx context.Context, id uuid.UUID, req UpdateWorkProgressRequest) (*JobResponse, error) {
	return s.mutate(ctx, id, "progress", func(j *job.Job, now time.Time) error {
		return j.Apply(job.Patch{WorkCompleted: &req.WorkCompleted, TestingNotes: req.TestingNotes}, now)
	})
}

// UpdateJobCost sets the estimated and/or actual cost
func (s *JobService) UpdateJobCost(ctx context.Context, id uuid.UUID, req UpdateCostRequest) (*JobResponse, error) {
	if req.EstimatedCost == nil && req.ActualCost == nil {
		return nil, shared.NewValidationError("INVALID_COST", "Estimated or actual cost is required")
	}
	return s.mutate(ctx, id, "cost", func(j *job.Job, now time.Time) error {
		return j.Apply(job.Patch{EstimatedCost: req.EstimatedCost, ActualCost: req.ActualCost}, now)
	})
}

// AssignTechnician assigns the technician and moves the job to in-progress
func (s *JobService) AssignTechnician(ctx context.Context, id uuid.UUID, req AssignTechnicianRequest) (*JobResponse, error) {
	ref, err := job.ParseTechnicianRef(req.Technician)
	if err != nil {
		return nil, err
	}
	inProgress := job.StatusInProgress
	return s.mutate(ctx, id, "assign", func(j *job.Job, now time.Time) error {
		return j.Apply(job.Patch{Technician: &ref, Status: &inProgress}, now)
	})
}

// DeleteJob hard-deletes the job and reports whether it existed
func (s *JobService) DeleteJob(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		if shared.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	s.logger.Info("Job deleted", zap.String("id", id.String()))
	return true, nil
}

func (s *JobService) mutate(ctx context.Context, id uuid.UUID, op string, fn func(*job.Job, time.Time) error) (*JobResponse, error) {
	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nilIfNotFound(err)
	}
	before := j.Status
	if err := fn(j, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, j); err != nil {
		if shared.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	s.logger.Info("Job updated",
		zap.String("job_id", j.JobID),
		zap.String("operation", op),
		zap.String("status", string(j.Status)))
	if before != j.Status && s.businessMetrics != nil {
		s.businessMetrics.RecordJobStatusChange(ctx, string(before), string(j.Status))
	}
	return s.toResponse(ctx, j)
}

func (s *JobService) buildFilter(req JobListFilter) (job.Filter, error) {
	f := job.Filter{
		Filter: shared.Filter{
			Page:     req.Page,
			PageSize: req.Limit,
			OrderBy:  req.SortBy,
			OrderDir: req.SortOrder,
		},
		CustomerName: strings.TrimSpace(req.CustomerName),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		JobID:        strings.TrimSpace(req.JobID),
		DateFrom:     req.DateFrom,
		DateTo:       req.DateTo,
		Overdue:      req.IsOverdue,
		Now:          s.now(),
	}
	if f.Page < 1 {
		f.Page = defaultPage
	}
	if f.PageSize < 1 {
		f.PageSize = defaultLimit
	}
	if f.OrderBy == "" {
		f.OrderBy = "createdAt"
	}
	if f.OrderDir == "" {
		f.OrderDir = "desc"
	}
	if req.Status != "" {
		st, err := parseStatus(req.Status)
		if err != nil {
			return f, err
		}
		f.Status = &st
	}
	if req.Priority != "" {
		p, err := parsePriority(req.Priority)
		if err != nil {
			return f, err
		}
		f.Priority = &p
	}
	if req.Brand != "" {
		b, err := parseBrand(req.Brand)
		if err != nil {
			return f, err
		}
		f.Brand = &b
	}
	if req.Technician != "" {
		ref, err := job.ParseTechnicianID(req.Technician)
		if err != nil {
			return f, err
		}
		f.TechnicianID = ref.IDPtr()
	}
	return f, nil
}

func (s *JobService) toResponse(ctx context.Context, j *job.Job) (*JobResponse, error) {
	items, err := s.toResponses(ctx, []job.Job{*j})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// toResponses resolves technician references in one lookup. Missing or
// inactive technicians resolve to nil.
func (s *JobService) toResponses(ctx context.Context, jobs []job.Job) ([]JobResponse, error) {
	active := make(map[uuid.UUID]*settings.Technician)
	if s.technicians != nil {
		var ids []uuid.UUID
		seen := make(map[uuid.UUID]bool)
		for i := range jobs {
			if id := jobs[i].TechnicianID; id != nil && !seen[*id] {
				seen[*id] = true
				ids = append(ids, *id)
			}
		}
		if len(ids) > 0 {
			techs, err := s.technicians.FindByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			for i := range techs {
				if techs[i].IsActive {
					active[techs[i].ID] = &techs[i]
				}
			}
		}
	}

	now := s.now()
	out := make([]JobResponse, len(jobs))
	for i := range jobs {
		var tech *settings.Technician
		if id := jobs[i].TechnicianID; id != nil {
			tech = active[*id]
		}
		out[i] = ToJobResponse(&jobs[i], tech, now)
	}
	return out, nil
}

func nilIfNotFound(err error) (*JobResponse, error) {
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return nil, err
}
