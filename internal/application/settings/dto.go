package settings

import (
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/settings"
)

// TechnicianResponse represents a technician in API responses
type TechnicianResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Specialization []string  `json:"specialization"`
	Experience     int       `json:"experience"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TechnicianRequest creates or replaces a technician
type TechnicianRequest struct {
	Name           string   `json:"name" binding:"required,max=100"`
	Email          string   `json:"email" binding:"required,email"`
	Phone          string   `json:"phone" binding:"required,phone"`
	Specialization []string `json:"specialization" binding:"required,min=1"`
	Experience     int      `json:"experience" binding:"gte=0,lte=50"`
	IsActive       *bool    `json:"is_active"`
}

// ReferenceResponse represents a brand or problem category in API responses
type ReferenceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReferenceRequest creates or renames a brand or problem category
type ReferenceRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// ToTechnicianResponse converts a domain Technician to TechnicianResponse
func ToTechnicianResponse(t *settings.Technician) TechnicianResponse {
	specs := make([]string, len(t.Specialization))
	for i, s := range t.Specialization {
		specs[i] = string(s)
	}
	return TechnicianResponse{
		ID:             t.ID,
		Name:           t.Name,
		Email:          t.Email,
		Phone:          t.Phone,
		Specialization: specs,
		Experience:     t.Experience,
		IsActive:       t.IsActive,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// ToReferenceResponse converts a domain Reference to ReferenceResponse
func ToReferenceResponse(r *settings.Reference) ReferenceResponse {
	return ReferenceResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r TechnicianRequest) details() settings.TechnicianDetails {
	specs := make([]settings.Specialization, len(r.Specialization))
	for i, s := range r.Specialization {
		specs[i] = settings.Specialization(s)
	}
	return settings.TechnicianDetails{
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Specialization: specs,
		Experience:     r.Experience,
		IsActive:       r.IsActive,
	}
}
