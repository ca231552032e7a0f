package job

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// Job is a repair ticket for a single device
type Job struct {
	shared.BaseEntity
	JobID    string   `json:"job_id"`
	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`

	CustomerName string `json:"customer_name"`
	PhoneNumber  string `json:"phone_number"`
	Email        string `json:"email"`
	Address      string `json:"address"`

	Brand        Brand      `json:"brand"`
	TVModel      string     `json:"tv_model"`
	ScreenSize   ScreenSize `json:"screen_size"`
	SerialNumber string     `json:"serial_number"`
	Accessories  string     `json:"accessories"`

	ProblemCategory    ProblemCategory `json:"problem_category"`
	ProblemDescription string          `json:"problem_description"`

	TechnicianID *uuid.UUID `json:"technician_id"`

	ExpectedDeliveryDate *time.Time       `json:"expected_delivery_date"`
	ActualDeliveryDate   *time.Time       `json:"actual_delivery_date"`
	EstimatedCost        *decimal.Decimal `json:"estimated_cost"`
	ActualCost           *decimal.Decimal `json:"actual_cost"`

	Diagnosis     string   `json:"diagnosis"`
	PartsRequired []string `json:"parts_required"`
	WorkCompleted string   `json:"work_completed"`
	TestingNotes  string   `json:"testing_notes"`
}

// Details holds the caller-supplied fields of a new job
type Details struct {
	Status               Status
	Priority             Priority
	CustomerName         string
	PhoneNumber          string
	Email                string
	Address              string
	Brand                Brand
	TVModel              string
	ScreenSize           ScreenSize
	SerialNumber         string
	Accessories          string
	ProblemCategory      ProblemCategory
	ProblemDescription   string
	Technician           TechnicianRef
	ExpectedDeliveryDate *time.Time
	EstimatedCost        *decimal.Decimal
	ActualCost           *decimal.Decimal
	Diagnosis            string
	PartsRequired        []string
	WorkCompleted        string
	TestingNotes         string
}

// NewJob creates a job with an allocated job id.
// Status defaults to pending and priority to medium.
func NewJob(jobID string, d Details) (*Job, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, shared.NewValidationError("INVALID_JOB_ID", "Job ID cannot be empty")
	}
	j := d.build()
	j.JobID = jobID
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return j, nil
}

// Validate checks the details as NewJob would, before a job id exists
func (d Details) Validate() error {
	return d.build().Validate()
}

func (d Details) build() *Job {
	if d.Status == "" {
		d.Status = StatusPending
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}

	j := &Job{
		BaseEntity:           shared.NewBaseEntity(),
		Status:               d.Status,
		Priority:             d.Priority,
		CustomerName:         strings.TrimSpace(d.CustomerName),
		PhoneNumber:          strings.TrimSpace(d.PhoneNumber),
		Email:                strings.TrimSpace(d.Email),
		Address:              d.Address,
		Brand:                d.Brand,
		TVModel:              d.TVModel,
		ScreenSize:           d.ScreenSize,
		SerialNumber:         d.SerialNumber,
		Accessories:          d.Accessories,
		ProblemCategory:      d.ProblemCategory,
		ProblemDescription:   strings.TrimSpace(d.ProblemDescription),
		TechnicianID:         d.Technician.IDPtr(),
		ExpectedDeliveryDate: d.ExpectedDeliveryDate,
		EstimatedCost:        d.EstimatedCost,
		ActualCost:           d.ActualCost,
		Diagnosis:            d.Diagnosis,
		PartsRequired:        cleanParts(d.PartsRequired),
		WorkCompleted:        d.WorkCompleted,
		TestingNotes:         d.TestingNotes,
	}
	if j.Status.IsFinished() {
		now := j.CreatedAt
		j.ActualDeliveryDate = &now
	}
	return j
}

// Validate checks every field constraint of the job
func (j *Job) Validate() error {
	if !j.Status.IsValid() {
		return shared.NewValidationError("INVALID_STATUS", "Job status is not valid")
	}
	if !j.Priority.IsValid() {
		return shared.NewValidationError("INVALID_PRIORITY", "Job priority is not valid")
	}
	if err := shared.RequireText("INVALID_CUSTOMER_NAME", "Customer name", j.CustomerName, 0, 100); err != nil {
		return err
	}
	if strings.TrimSpace(j.PhoneNumber) == "" {
		return shared.NewValidationError("INVALID_PHONE", "Phone number is required")
	}
	if !shared.IsValidPhone(j.PhoneNumber) {
		return shared.NewValidationError("INVALID_PHONE", "Please enter a valid phone number")
	}
	if j.Email != "" && !shared.IsValidEmail(j.Email) {
		return shared.NewValidationError("INVALID_EMAIL", "Please enter a valid email address")
	}
	if err := shared.MaxText("INVALID_ADDRESS", "Address", j.Address, 500); err != nil {
		return err
	}
	if !j.Brand.IsValid() {
		return shared.NewValidationError("INVALID_BRAND", "Brand is not valid")
	}
	if err := shared.MaxText("INVALID_TV_MODEL", "TV model", j.TVModel, 100); err != nil {
		return err
	}
	if j.ScreenSize != "" && !j.ScreenSize.IsValid() {
		return shared.NewValidationError("INVALID_SCREEN_SIZE", "Screen size is not valid")
	}
	if err := shared.MaxText("INVALID_SERIAL_NUMBER", "Serial number", j.SerialNumber, 100); err != nil {
		return err
	}
	if err := shared.MaxText("INVALID_ACCESSORIES", "Accessories", j.Accessories, 200); err != nil {
		return err
	}
	if !j.ProblemCategory.IsValid() {
		return shared.NewValidationError("INVALID_PROBLEM_CATEGORY", "Problem category is not valid")
	}
	if err := shared.RequireText("INVALID_PROBLEM_DESCRIPTION", "Problem description", j.ProblemDescription, 10, 2000); err != nil {
		return err
	}
	if err := validateCost("INVALID_ESTIMATED_COST", "Estimated cost", j.EstimatedCost); err != nil {
		return err
	}
	if err := validateCost("INVALID_ACTUAL_COST", "Actual cost", j.ActualCost); err != nil {
		return err
	}
	if err := shared.MaxText("INVALID_DIAGNOSIS", "Diagnosis", j.Diagnosis, 1000); err != nil {
		return err
	}
	if err := shared.MaxText("INVALID_WORK_COMPLETED", "Work completed", j.WorkCompleted, 2000); err != nil {
		return err
	}
	return shared.MaxText("INVALID_TESTING_NOTES", "Testing notes", j.TestingNotes, 1000)
}

func validateCost(code, field string, v *decimal.Decimal) error {
	if v == nil {
		return nil
	}
	if v.IsNegative() {
		return shared.NewValidationError(code, field+" cannot be negative")
	}
	if shared.HasSubCent(*v) {
		return shared.NewValidationError(code, field+" cannot have more than two decimal places")
	}
	return nil
}

// Technician returns the technician assignment
func (j *Job) Technician() TechnicianRef {
	return RefFromID(j.TechnicianID)
}

// AssignTechnician sets the technician reference
func (j *Job) AssignTechnician(ref TechnicianRef) {
	j.TechnicianID = ref.IDPtr()
	j.Touch()
}

// ChangeStatus moves the job to a new status. Entering completed or
// delivered from another status stamps the actual delivery date.
func (j *Job) ChangeStatus(status Status, now time.Time) error {
	if !status.IsValid() {
		return shared.NewValidationError("INVALID_STATUS", "Job status is not valid")
	}
	if status != j.Status && status.IsFinished() {
		stamped := now
		j.ActualDeliveryDate = &stamped
	}
	j.Status = status
	j.UpdatedAt = now
	return nil
}

// IsOverdue reports whether the expected delivery date has passed for
// a job that is not yet completed or delivered
func (j *Job) IsOverdue(now time.Time) bool {
	if j.ExpectedDeliveryDate == nil || j.Status.IsFinished() {
		return false
	}
	return j.ExpectedDeliveryDate.Before(now)
}

// DaysUntilDelivery returns ceil((expected - now) / 1 day), or nil when
// no expected delivery date is set
func (j *Job) DaysUntilDelivery(now time.Time) *int {
	if j.ExpectedDeliveryDate == nil {
		return nil
	}
	days := int(math.Ceil(float64(j.ExpectedDeliveryDate.Sub(now)) / float64(day)))
	return &days
}

// CompletionDays returns the whole days between creation and delivery
// rounded up, and false when the job has no actual delivery date
func (j *Job) CompletionDays() (int, bool) {
	if j.ActualDeliveryDate == nil {
		return 0, false
	}
	return int(math.Ceil(float64(j.ActualDeliveryDate.Sub(j.CreatedAt)) / float64(day))), true
}

// RequiresParts reports whether the job is waiting on ordered parts
func (j *Job) RequiresParts() bool {
	return j.Status == StatusPartsOrdered && len(j.PartsRequired) > 0
}

func cleanParts(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
