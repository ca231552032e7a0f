package models

import (
	"github.com/repairdesk/backend/internal/domain/settings"
)

// TechnicianModel is the persistence model for the Technician entity.
type TechnicianModel struct {
	BaseModel
	Name           string   `gorm:"type:varchar(100);not null"`
	Email          string   `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone          string   `gorm:"type:varchar(30);not null"`
	Specialization []string `gorm:"type:text;serializer:json;not null"`
	Experience     int      `gorm:"not null;default:0;index"`
	IsActive       bool     `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (TechnicianModel) TableName() string {
	return "technicians"
}

// ToDomain converts the persistence model to a domain Technician entity
func (m *TechnicianModel) ToDomain() *settings.Technician {
	specs := make([]settings.Specialization, len(m.Specialization))
	for i, s := range m.Specialization {
		specs[i] = settings.Specialization(s)
	}
	return &settings.Technician{
		BaseEntity:     m.BaseModel.ToDomain(),
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		Specialization: specs,
		Experience:     m.Experience,
		IsActive:       m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Technician entity
func (m *TechnicianModel) FromDomain(t *settings.Technician) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Name = t.Name
	m.Email = t.Email
	m.Phone = t.Phone
	m.Specialization = make([]string, len(t.Specialization))
	for i, s := range t.Specialization {
		m.Specialization[i] = string(s)
	}
	m.Experience = t.Experience
	m.IsActive = t.IsActive
}

// TechnicianModelFromDomain creates a new persistence model from a domain Technician entity
func TechnicianModelFromDomain(t *settings.Technician) *TechnicianModel {
	m := &TechnicianModel{}
	m.FromDomain(t)
	return m
}

// ReferenceModel backs both the brands and problem_categories tables;
// ReferenceTable picks the table for a kind.
type ReferenceModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null"`
	NameKey     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(500)"`
}

// ReferenceTable returns the table holding entries of the kind
func ReferenceTable(kind settings.ReferenceKind) string {
	if kind == settings.KindBrand {
		return "brands"
	}
	return "problem_categories"
}

// ToDomain converts the persistence model to a domain Reference entity
func (m *ReferenceModel) ToDomain(kind settings.ReferenceKind) *settings.Reference {
	return &settings.Reference{
		BaseEntity:  m.BaseModel.ToDomain(),
		Kind:        kind,
		Name:        m.Name,
		NameKey:     m.NameKey,
		Description: m.Description,
	}
}

// ReferenceModelFromDomain creates a new persistence model from a domain Reference entity
func ReferenceModelFromDomain(r *settings.Reference) *ReferenceModel {
	m := &ReferenceModel{Name: r.Name, NameKey: r.NameKey, Description: r.Description}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// BrandModel maps ReferenceModel onto the brands table for migrations
type BrandModel struct {
	ReferenceModel
}

// TableName returns the table name for GORM
func (BrandModel) TableName() string {
	return "brands"
}

// ProblemCategoryModel maps ReferenceModel onto the problem_categories table for migrations
type ProblemCategoryModel struct {
	ReferenceModel
}

// TableName returns the table name for GORM
func (ProblemCategoryModel) TableName() string {
	return "problem_categories"
}
