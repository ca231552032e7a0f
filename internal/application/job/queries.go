package job

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/job"
	"github.com/repairdesk/backend/internal/domain/shared"
)

// SearchJobs matches the term case-insensitively across job id, customer,
// phone, email, brand, model, serial, problem description and diagnosis.
// Results are not paginated.
func (s *JobService) SearchJobs(ctx context.Context, term string) ([]JobResponse, error) {
	jobs, err := s.repo.Search(ctx, strings.TrimSpace(term))
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, jobs)
}

// GetJobStats aggregates the whole job book
func (s *JobService) GetJobStats(ctx context.Context) (*JobStatsResponse, error) {
	jobs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	st := job.ComputeStats(jobs, s.now())

	resp := &JobStatsResponse{
		Total:                 st.Total,
		Pending:               st.Pending,
		InProgress:            st.InProgress,
		Completed:             st.Completed,
		Overdue:               st.Overdue,
		ByStatus:              make(map[string]int, len(st.ByStatus)),
		ByPriority:            make(map[string]int, len(st.ByPriority)),
		ByBrand:               make(map[string]int, len(st.ByBrand)),
		AverageCompletionDays: st.AverageCompletionDays,
		TotalRevenue:          st.TotalRevenue,
	}
	for k, v := range st.ByStatus {
		resp.ByStatus[string(k)] = v
	}
	for k, v := range st.ByPriority {
		resp.ByPriority[string(k)] = v
	}
	for k, v := range st.ByBrand {
		resp.ByBrand[string(k)] = v
	}
	return resp, nil
}

// GetJobHistory counts recent intake
func (s *JobService) GetJobHistory(ctx context.Context) (*JobHistoryResponse, error) {
	now := s.now()
	jobs, err := s.repo.FindByCreatedRange(ctx, now.AddDate(0, 0, -31), now)
	if err != nil {
		return nil, err
	}
	h := job.ComputeHistory(jobs, now)
	return &JobHistoryResponse{
		Today:     h.Today,
		ThisWeek:  h.ThisWeek,
		ThisMonth: h.ThisMonth,
		Daily:     h.Daily,
	}, nil
}

// GetOverdueJobs returns overdue jobs, earliest expected date first
func (s *JobService) GetOverdueJobs(ctx context.Context) ([]JobResponse, error) {
	return s.list(ctx)(s.repo.FindOverdue(ctx, s.now()))
}

// GetJobsByTechnician returns the technician's jobs, optionally by status
func (s *JobService) GetJobsByTechnician(ctx context.Context, technicianID uuid.UUID, status string) ([]JobResponse, error) {
	var st *job.Status
	if status != "" {
		parsed, err := parseStatus(status)
		if err != nil {
			return nil, err
		}
		st = &parsed
	}
	return s.list(ctx)(s.repo.FindByTechnician(ctx, technicianID, st))
}

// GetRecentJobs returns the newest jobs; limit defaults to 10
func (s *JobService) GetRecentJobs(ctx context.Context, limit int) ([]JobResponse, error) {
	if limit < 1 {
		limit = defaultRecentLimit
	}
	return s.list(ctx)(s.repo.FindRecent(ctx, limit))
}

// GetJobsByDateRange returns jobs created within [start, end]
func (s *JobService) GetJobsByDateRange(ctx context.Context, start, end time.Time) ([]JobResponse, error) {
	if end.Before(start) {
		return nil, shared.NewValidationError("INVALID_DATE_RANGE", "End date must not be before start date")
	}
	return s.list(ctx)(s.repo.FindByCreatedRange(ctx, start, end))
}

// GetJobsByStatus returns jobs in one status
func (s *JobService) GetJobsByStatus(ctx context.Context, status string) ([]JobResponse, error) {
	st, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	return s.list(ctx)(s.repo.FindByStatus(ctx, st))
}

// GetJobsByPriority returns jobs with one priority
func (s *JobService) GetJobsByPriority(ctx context.Context, priority string) ([]JobResponse, error) {
	p, err := parsePriority(priority)
	if err != nil {
		return nil, err
	}
	return s.list(ctx)(s.repo.FindByPriority(ctx, p))
}

// GetJobsRequiringParts returns parts-ordered jobs with a parts list
func (s *JobService) GetJobsRequiringParts(ctx context.Context) ([]JobResponse, error) {
	jobs, err := s.repo.FindRequiringParts(ctx)
	if err != nil {
		return nil, err
	}
	waiting := jobs[:0]
	for _, j := range jobs {
		if j.RequiresParts() {
			waiting = append(waiting, j)
		}
	}
	return s.toResponses(ctx, waiting)
}

// GetJobsByCustomer matches name and/or phone as substrings
func (s *JobService) GetJobsByCustomer(ctx context.Context, name, phone string) ([]JobResponse, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" && phone == "" {
		return nil, shared.NewValidationError("INVALID_CUSTOMER", "Customer name or phone is required")
	}
	return s.list(ctx)(s.repo.FindByCustomer(ctx, name, phone))
}

func (s *JobService) list(ctx context.Context) func([]job.Job, error) ([]JobResponse, error) {
	return func(jobs []job.Job, err error) ([]JobResponse, error) {
		if err != nil {
			return nil, err
		}
		return s.toResponses(ctx, jobs)
	}
}
