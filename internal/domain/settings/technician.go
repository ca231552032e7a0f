package settings

import (
	"strings"

	"github.com/repairdesk/backend/internal/domain/shared"
)

// Specialization is a repair skill a technician can hold
type Specialization string

const (
	SpecLEDTV          Specialization = "LED TV"
	SpecLCDTV          Specialization = "LCD TV"
	SpecPlasmaTV       Specialization = "Plasma TV"
	SpecSmartTV        Specialization = "Smart TV"
	SpecAudioSystems   Specialization = "Audio Systems"
	SpecDisplayPanels  Specialization = "Display Panels"
	SpecPowerSupply    Specialization = "Power Supply"
	SpecMotherboards   Specialization = "Motherboards"
	SpecRemoteControls Specialization = "Remote Controls"
)

// AllSpecializations lists the allowed specialization tags
var AllSpecializations = []Specialization{
	SpecLEDTV, SpecLCDTV, SpecPlasmaTV, SpecSmartTV, SpecAudioSystems,
	SpecDisplayPanels, SpecPowerSupply, SpecMotherboards, SpecRemoteControls,
}

// IsValid checks if the tag is an allowed Specialization
func (s Specialization) IsValid() bool {
	for _, v := range AllSpecializations {
		if s == v {
			return true
		}
	}
	return false
}

const maxExperience = 50

// Technician is a repair technician who can be assigned jobs
type Technician struct {
	shared.BaseEntity
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Specialization []Specialization `json:"specialization"`
	Experience     int              `json:"experience"`
	IsActive       bool             `json:"is_active"`
}

// TechnicianDetails holds the caller-supplied technician fields
type TechnicianDetails struct {
	Name           string
	Email          string
	Phone          string
	Specialization []Specialization
	Experience     int
	IsActive       *bool
}

// NewTechnician creates an active technician unless told otherwise
func NewTechnician(d TechnicianDetails) (*Technician, error) {
	t := &Technician{BaseEntity: shared.NewBaseEntity(), IsActive: true}
	if err := t.set(d); err != nil {
		return nil, err
	}
	return t, nil
}

// Update replaces the technician's fields
func (t *Technician) Update(d TechnicianDetails) error {
	if err := t.set(d); err != nil {
		return err
	}
	t.Touch()
	return nil
}

// Deactivate marks the technician inactive; jobs keep their reference
func (t *Technician) Deactivate() {
	t.IsActive = false
	t.Touch()
}

// HasSpecialization reports whether the technician holds the tag
func (t *Technician) HasSpecialization(s Specialization) bool {
	for _, v := range t.Specialization {
		if v == s {
			return true
		}
	}
	return false
}

func (t *Technician) set(d TechnicianDetails) error {
	if err := shared.RequireText("INVALID_NAME", "Name", d.Name, 0, 100); err != nil {
		return err
	}
	email := strings.ToLower(strings.TrimSpace(d.Email))
	if !shared.IsValidEmail(email) {
		return shared.NewValidationError("INVALID_EMAIL", "Please enter a valid email address")
	}
	phone := strings.TrimSpace(d.Phone)
	if phone == "" || !shared.IsValidPhone(phone) {
		return shared.NewValidationError("INVALID_PHONE", "Please enter a valid phone number")
	}
	if len(d.Specialization) == 0 {
		return shared.NewValidationError("INVALID_SPECIALIZATION", "At least one specialization is required")
	}
	specs := make([]Specialization, 0, len(d.Specialization))
	seen := make(map[Specialization]bool, len(d.Specialization))
	for _, s := range d.Specialization {
		if !s.IsValid() {
			return shared.NewValidationError("INVALID_SPECIALIZATION", "Specialization "+string(s)+" is not valid")
		}
		if !seen[s] {
			seen[s] = true
			specs = append(specs, s)
		}
	}
	if d.Experience < 0 || d.Experience > maxExperience {
		return shared.NewValidationError("INVALID_EXPERIENCE", "Experience must be between 0 and 50 years")
	}

	t.Name = strings.TrimSpace(d.Name)
	t.Email = email
	t.Phone = phone
	t.Specialization = specs
	t.Experience = d.Experience
	if d.IsActive != nil {
		t.IsActive = *d.IsActive
	}
	return nil
}
