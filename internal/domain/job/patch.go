package job

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Patch is a partial update of a job. Nil fields are left unchanged.
// The job id is not patchable.
type Patch struct {
	Status               *Status
	Priority             *Priority
	CustomerName         *string
	PhoneNumber          *string
	Email                *string
	Address              *string
	Brand                *Brand
	TVModel              *string
	ScreenSize           *ScreenSize
	SerialNumber         *string
	Accessories          *string
	ProblemCategory      *ProblemCategory
	ProblemDescription   *string
	Technician           *TechnicianRef
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time
	EstimatedCost        *decimal.Decimal
	ActualCost           *decimal.Decimal
	Diagnosis            *string
	PartsRequired        []string
	WorkCompleted        *string
	TestingNotes         *string
}

// Apply applies the patch and re-validates the job. An explicit actual
// delivery date wins over the stamp applied by a status change.
func (j *Job) Apply(p Patch, now time.Time) error {
	if p.Status != nil {
		if err := j.ChangeStatus(*p.Status, now); err != nil {
			return err
		}
	}
	if p.Priority != nil {
		j.Priority = *p.Priority
	}
	if p.CustomerName != nil {
		j.CustomerName = strings.TrimSpace(*p.CustomerName)
	}
	if p.PhoneNumber != nil {
		j.PhoneNumber = strings.TrimSpace(*p.PhoneNumber)
	}
	if p.Email != nil {
		j.Email = strings.TrimSpace(*p.Email)
	}
	if p.Address != nil {
		j.Address = *p.Address
	}
	if p.Brand != nil {
		j.Brand = *p.Brand
	}
	if p.TVModel != nil {
		j.TVModel = *p.TVModel
	}
	if p.ScreenSize != nil {
		j.ScreenSize = *p.ScreenSize
	}
	if p.SerialNumber != nil {
		j.SerialNumber = *p.SerialNumber
	}
	if p.Accessories != nil {
		j.Accessories = *p.Accessories
	}
	if p.ProblemCategory != nil {
		j.ProblemCategory = *p.ProblemCategory
	}
	if p.ProblemDescription != nil {
		j.ProblemDescription = strings.TrimSpace(*p.ProblemDescription)
	}
	if p.Technician != nil {
		j.TechnicianID = p.Technician.IDPtr()
	}
	if p.ExpectedDeliveryDate != nil {
		j.ExpectedDeliveryDate = p.ExpectedDeliveryDate
	}
	if p.ActualDeliveryDate != nil {
		j.ActualDeliveryDate = p.ActualDeliveryDate
	}
	if p.EstimatedCost != nil {
		j.EstimatedCost = p.EstimatedCost
	}
	if p.ActualCost != nil {
		j.ActualCost = p.ActualCost
	}
	if p.Diagnosis != nil {
		j.Diagnosis = *p.Diagnosis
	}
	if p.PartsRequired != nil {
		j.PartsRequired = cleanParts(p.PartsRequired)
	}
	if p.WorkCompleted != nil {
		j.WorkCompleted = *p.WorkCompleted
	}
	if p.TestingNotes != nil {
		j.TestingNotes = *p.TestingNotes
	}
	j.UpdatedAt = now
	return j.Validate()
}
