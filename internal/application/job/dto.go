package job

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/job"
	"github.com/repairdesk/backend/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// TechnicianSummary is the resolved technician shown on a job.
// A nil summary renders as "Unassigned".
type TechnicianSummary struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Specialization []string  `json:"specialization"`
}

// JobResponse represents a job in API responses
type JobResponse struct {
	ID                   uuid.UUID          `json:"id"`
	JobID                string             `json:"job_id"`
	Status               string             `json:"status"`
	Priority             string             `json:"priority"`
	CustomerName         string             `json:"customer_name"`
	PhoneNumber          string             `json:"phone_number"`
	Email                string             `json:"email,omitempty"`
	Address              string             `json:"address,omitempty"`
	Brand                string             `json:"brand"`
	TVModel              string             `json:"tv_model,omitempty"`
	ScreenSize           string             `json:"screen_size,omitempty"`
	SerialNumber         string             `json:"serial_number,omitempty"`
	Accessories          string             `json:"accessories,omitempty"`
	ProblemCategory      string             `json:"problem_category"`
	ProblemDescription   string             `json:"problem_description"`
	TechnicianID         *uuid.UUID         `json:"technician_id"`
	Technician           *TechnicianSummary `json:"technician"`
	ExpectedDeliveryDate *time.Time         `json:"expected_delivery_date"`
	ActualDeliveryDate   *time.Time         `json:"actual_delivery_date"`
	EstimatedCost        *decimal.Decimal   `json:"estimated_cost"`
	ActualCost           *decimal.Decimal   `json:"actual_cost"`
	Diagnosis            string             `json:"diagnosis,omitempty"`
	PartsRequired        []string           `json:"parts_required"`
	WorkCompleted        string             `json:"work_completed,omitempty"`
	TestingNotes         string             `json:"testing_notes,omitempty"`
	IsOverdue            bool               `json:"is_overdue"`
	DaysUntilDelivery    *int               `json:"days_until_delivery"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// JobListResponse is one page of jobs
type JobListResponse struct {
	Jobs       []JobResponse `json:"jobs"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
}

// CreateJobRequest represents a request to open a job ticket.
// Technician accepts an id string, an object with "id", null or "unassigned".
type CreateJobRequest struct {
	Status               string           `json:"status" binding:"omitempty,oneof=pending in-progress diagnosis parts-ordered repairing testing completed delivered cancelled"`
	Priority             string           `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	CustomerName         string           `json:"customer_name" binding:"required,max=100"`
	PhoneNumber          string           `json:"phone_number" binding:"required,phone"`
	Email                string           `json:"email" binding:"omitempty,email"`
	Address              string           `json:"address" binding:"max=500"`
	Brand                string           `json:"brand" binding:"required,oneof=samsung lg sony panasonic sharp"`
	TVModel              string           `json:"tv_model" binding:"max=100"`
	ScreenSize           string           `json:"screen_size" binding:"omitempty,oneof=32 42 50 55 65"`
	SerialNumber         string           `json:"serial_number" binding:"max=100"`
	Accessories          string           `json:"accessories" binding:"max=200"`
	ProblemCategory      string           `json:"problem_category" binding:"required,oneof=no-power no-picture no-sound screen-damage connectivity"`
	ProblemDescription   string           `json:"problem_description" binding:"required,min=10,max=2000"`
	Technician           json.RawMessage  `json:"technician"`
	ExpectedDeliveryDate *time.Time       `json:"expected_delivery_date"`
	EstimatedCost        *decimal.Decimal `json:"estimated_cost"`
	ActualCost           *decimal.Decimal `json:"actual_cost"`
	Diagnosis            string           `json:"diagnosis" binding:"max=1000"`
	PartsRequired        []string         `json:"parts_required"`
	WorkCompleted        string           `json:"work_completed" binding:"max=2000"`
	TestingNotes         string           `json:"testing_notes" binding:"max=1000"`
}

// UpdateJobRequest represents a partial job update. Absent fields are
// left unchanged; job_id cannot be patched.
type UpdateJobRequest struct {
	Status               *string          `json:"status" binding:"omitempty,oneof=pending in-progress diagnosis parts-ordered repairing testing completed delivered cancelled"`
	Priority             *string          `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	CustomerName         *string          `json:"customer_name" binding:"omitempty,max=100"`
	PhoneNumber          *string          `json:"phone_number" binding:"omitempty,phone"`
	Email                *string          `json:"email" binding:"omitempty"`
	Address              *string          `json:"address" binding:"omitempty,max=500"`
	Brand                *string          `json:"brand" binding:"omitempty,oneof=samsung lg sony panasonic sharp"`
	TVModel              *string          `json:"tv_model" binding:"omitempty,max=100"`
	ScreenSize           *string          `json:"screen_size"`
	SerialNumber         *string          `json:"serial_number" binding:"omitempty,max=100"`
	Accessories          *string          `json:"accessories" binding:"omitempty,max=200"`
	ProblemCategory      *string          `json:"problem_category" binding:"omitempty,oneof=no-power no-picture no-sound screen-damage connectivity"`
	ProblemDescription   *string          `json:"problem_description" binding:"omitempty,min=10,max=2000"`
	Technician           json.RawMessage  `json:"technician"`
	ExpectedDeliveryDate *time.Time       `json:"expected_delivery_date"`
	ActualDeliveryDate   *time.Time       `json:"actual_delivery_date"`
	EstimatedCost        *decimal.Decimal `json:"estimated_cost"`
	ActualCost           *decimal.Decimal `json:"actual_cost"`
	Diagnosis            *string          `json:"diagnosis" binding:"omitempty,max=1000"`
	PartsRequired        []string         `json:"parts_required"`
	WorkCompleted        *string          `json:"work_completed" binding:"omitempty,max=2000"`
	TestingNotes         *string          `json:"testing_notes" binding:"omitempty,max=1000"`
}

// UpdateStatusRequest sets a job's status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in-progress diagnosis parts-ordered repairing testing completed delivered cancelled"`
}

// UpdateDiagnosisRequest records the diagnosis and optional parts list
type UpdateDiagnosisRequest struct {
	Diagnosis     string   `json:"diagnosis" binding:"required,max=1000"`
	PartsRequired []string `json:"parts_required"`
}

// UpdateWorkProgressRequest records completed work and testing notes
type UpdateWorkProgressRequest struct {
	WorkCompleted string  `json:"work_completed" binding:"required,max=2000"`
	TestingNotes  *string `json:"testing_notes" binding:"omitempty,max=1000"`
}

// UpdateCostRequest sets estimated and/or actual cost
type UpdateCostRequest struct {
	EstimatedCost *decimal.Decimal `json:"estimated_cost"`
	ActualCost    *decimal.Decimal `json:"actual_cost"`
}

// AssignTechnicianRequest assigns a technician; the job moves to in-progress
type AssignTechnicianRequest struct {
	Technician json.RawMessage `json:"technician_id" binding:"required"`
}

// JobListFilter defines filtering options for job list queries
type JobListFilter struct {
	Status       string     `form:"status"`
	Priority     string     `form:"priority"`
	Brand        string     `form:"brand"`
	Technician   string     `form:"technician"`
	CustomerName string     `form:"customer_name"`
	PhoneNumber  string     `form:"phone_number"`
	JobID        string     `form:"job_id"`
	DateFrom     *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo       *time.Time `form:"date_to" time_format:"2006-01-02"`
	IsOverdue    *bool      `form:"is_overdue"`
	Page         int        `form:"page"`
	Limit        int        `form:"limit"`
	SortBy       string     `form:"sort_by"`
	SortOrder    string     `form:"sort_order"`
}

// JobStatsResponse aggregates the job book
type JobStatsResponse struct {
	Total                 int             `json:"total"`
	Pending               int             `json:"pending"`
	InProgress            int             `json:"in_progress"`
	Completed             int             `json:"completed"`
	Overdue               int             `json:"overdue"`
	ByStatus              map[string]int  `json:"by_status"`
	ByPriority            map[string]int  `json:"by_priority"`
	ByBrand               map[string]int  `json:"by_brand"`
	AverageCompletionDays float64         `json:"average_completion_days"`
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
}

// JobHistoryResponse summarizes recent job intake
type JobHistoryResponse struct {
	Today     int              `json:"today"`
	ThisWeek  int              `json:"this_week"`
	ThisMonth int              `json:"this_month"`
	Daily     []job.DailyCount `json:"daily"`
}

// ToJobResponse converts a domain job to a response. tech is the resolved
// active technician, or nil.
func ToJobResponse(j *job.Job, tech *settings.Technician, now time.Time) JobResponse {
	parts := j.PartsRequired
	if parts == nil {
		parts = []string{}
	}
	resp := JobResponse{
		ID:                   j.ID,
		JobID:                j.JobID,
		Status:               string(j.Status),
		Priority:             string(j.Priority),
		CustomerName:         j.CustomerName,
		PhoneNumber:          j.PhoneNumber,
		Email:                j.Email,
		Address:              j.Address,
		Brand:                string(j.Brand),
		TVModel:              j.TVModel,
		ScreenSize:           string(j.ScreenSize),
		SerialNumber:         j.SerialNumber,
		Accessories:          j.Accessories,
		ProblemCategory:      string(j.ProblemCategory),
		ProblemDescription:   j.ProblemDescription,
		TechnicianID:         j.TechnicianID,
		ExpectedDeliveryDate: j.ExpectedDeliveryDate,
		ActualDeliveryDate:   j.ActualDeliveryDate,
		EstimatedCost:        j.EstimatedCost,
		ActualCost:           j.ActualCost,
		Diagnosis:            j.Diagnosis,
		PartsRequired:        parts,
		WorkCompleted:        j.WorkCompleted,
		TestingNotes:         j.TestingNotes,
		IsOverdue:            j.IsOverdue(now),
		DaysUntilDelivery:    j.DaysUntilDelivery(now),
		CreatedAt:            j.CreatedAt,
		UpdatedAt:            j.UpdatedAt,
	}
	if tech != nil {
		specs := make([]string, len(tech.Specialization))
		for i, s := range tech.Specialization {
			specs[i] = string(s)
		}
		resp.Technician = &TechnicianSummary{
			ID:             tech.ID,
			Name:           tech.Name,
			Email:          tech.Email,
			Specialization: specs,
		}
	}
	return resp
}
