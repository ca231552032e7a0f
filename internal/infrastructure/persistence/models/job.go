package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/job"
	"github.com/shopspring/decimal"
)

// JobModel is the persistence model for the Job entity.
type JobModel struct {
	BaseModel
	JobID                string           `gorm:"column:job_id;type:varchar(20);not null;uniqueIndex"`
	Status               string           `gorm:"type:varchar(20);not null;default:'pending';index"`
	Priority             string           `gorm:"type:varchar(10);not null;default:'medium';index"`
	CustomerName         string           `gorm:"type:varchar(100);not null"`
	PhoneNumber          string           `gorm:"type:varchar(30);not null;index"`
	Email                string           `gorm:"type:varchar(200)"`
	Address              string           `gorm:"type:varchar(500)"`
	Brand                string           `gorm:"type:varchar(20);not null"`
	TVModel              string           `gorm:"column:tv_model;type:varchar(100)"`
	ScreenSize           string           `gorm:"type:varchar(5)"`
	SerialNumber         string           `gorm:"type:varchar(100)"`
	Accessories          string           `gorm:"type:varchar(200)"`
	ProblemCategory      string           `gorm:"type:varchar(30);not null"`
	ProblemDescription   string           `gorm:"type:text;not null"`
	TechnicianID         *uuid.UUID       `gorm:"type:uuid;index"`
	ExpectedDeliveryDate *time.Time       `gorm:"index"`
	ActualDeliveryDate   *time.Time
	EstimatedCost        *decimal.Decimal `gorm:"type:numeric(18,2)"`
	ActualCost           *decimal.Decimal `gorm:"type:numeric(18,2)"`
	Diagnosis            string           `gorm:"type:text"`
	PartsRequired        []string         `gorm:"type:text;serializer:json"`
	WorkCompleted        string           `gorm:"type:text"`
	TestingNotes         string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (JobModel) TableName() string {
	return "jobs"
}

// ToDomain converts the persistence model to a domain Job entity
func (m *JobModel) ToDomain() *job.Job {
	return &job.Job{
		BaseEntity:           m.BaseModel.ToDomain(),
		JobID:                m.JobID,
		Status:               job.Status(m.Status),
		Priority:             job.Priority(m.Priority),
		CustomerName:         m.CustomerName,
		PhoneNumber:          m.PhoneNumber,
		Email:                m.Email,
		Address:              m.Address,
		Brand:                job.Brand(m.Brand),
		TVModel:              m.TVModel,
		ScreenSize:           job.ScreenSize(m.ScreenSize),
		SerialNumber:         m.SerialNumber,
		Accessories:          m.Accessories,
		ProblemCategory:      job.ProblemCategory(m.ProblemCategory),
		ProblemDescription:   m.ProblemDescription,
		TechnicianID:         m.TechnicianID,
		ExpectedDeliveryDate: m.ExpectedDeliveryDate,
		ActualDeliveryDate:   m.ActualDeliveryDate,
		EstimatedCost:        m.EstimatedCost,
		ActualCost:           m.ActualCost,
		Diagnosis:            m.Diagnosis,
		PartsRequired:        m.PartsRequired,
		WorkCompleted:        m.WorkCompleted,
		TestingNotes:         m.TestingNotes,
	}
}

// FromDomain populates the persistence model from a domain Job entity
func (m *JobModel) FromDomain(j *job.Job) {
	m.FromDomainBaseEntity(j.BaseEntity)
	m.JobID = j.JobID
	m.Status = string(j.Status)
	m.Priority = string(j.Priority)
	m.CustomerName = j.CustomerName
	m.PhoneNumber = j.PhoneNumber
	m.Email = j.Email
	m.Address = j.Address
	m.Brand = string(j.Brand)
	m.TVModel = j.TVModel
	m.ScreenSize = string(j.ScreenSize)
	m.SerialNumber = j.SerialNumber
	m.Accessories = j.Accessories
	m.ProblemCategory = string(j.ProblemCategory)
	m.ProblemDescription = j.ProblemDescription
	m.TechnicianID = j.TechnicianID
	m.ExpectedDeliveryDate = j.ExpectedDeliveryDate
	m.ActualDeliveryDate = j.ActualDeliveryDate
	m.EstimatedCost = j.EstimatedCost
	m.ActualCost = j.ActualCost
	m.Diagnosis = j.Diagnosis
	m.PartsRequired = j.PartsRequired
	m.WorkCompleted = j.WorkCompleted
	m.TestingNotes = j.TestingNotes
}

// JobModelFromDomain creates a new persistence model from a domain Job entity
func JobModelFromDomain(j *job.Job) *JobModel {
	m := &JobModel{}
	m.FromDomain(j)
	return m
}
