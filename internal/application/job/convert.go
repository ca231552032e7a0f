package job

import (
	"github.com/repairdesk/backend/internal/domain/job"
	"github.com/repairdesk/backend/internal/domain/shared"
)

func parseStatus(s string) (job.Status, error) {
	st := job.Status(s)
	if !st.IsValid() {
		return "", shared.NewValidationError("INVALID_STATUS", "Job status is not valid")
	}
	return st, nil
}

func parsePriority(s string) (job.Priority, error) {
	p := job.Priority(s)
	if !p.IsValid() {
		return "", shared.NewValidationError("INVALID_PRIORITY", "Job priority is not valid")
	}
	return p, nil
}

func parseBrand(s string) (job.Brand, error) {
	b := job.Brand(s)
	if !b.IsValid() {
		return "", shared.NewValidationError("INVALID_BRAND", "Brand is not valid")
	}
	return b, nil
}

func detailsFromRequest(req CreateJobRequest) (job.Details, error) {
	ref, err := job.ParseTechnicianRef(req.Technician)
	if err != nil {
		return job.Details{}, err
	}
	return job.Details{
		Status:               job.Status(req.Status),
		Priority:             job.Priority(req.Priority),
		CustomerName:         req.CustomerName,
		PhoneNumber:          req.PhoneNumber,
		Email:                req.Email,
		Address:              req.Address,
		Brand:                job.Brand(req.Brand),
		TVModel:              req.TVModel,
		ScreenSize:           job.ScreenSize(req.ScreenSize),
		SerialNumber:         req.SerialNumber,
		Accessories:          req.Accessories,
		ProblemCategory:      job.ProblemCategory(req.ProblemCategory),
		ProblemDescription:   req.ProblemDescription,
		Technician:           ref,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		EstimatedCost:        req.EstimatedCost,
		ActualCost:           req.ActualCost,
		Diagnosis:            req.Diagnosis,
		PartsRequired:        req.PartsRequired,
		WorkCompleted:        req.WorkCompleted,
		TestingNotes:         req.TestingNotes,
	}, nil
}

func patchFromRequest(req UpdateJobRequest) (job.Patch, error) {
	p := job.Patch{
		CustomerName:         req.CustomerName,
		PhoneNumber:          req.PhoneNumber,
		Email:                req.Email,
		Address:              req.Address,
		TVModel:              req.TVModel,
		SerialNumber:         req.SerialNumber,
		Accessories:          req.Accessories,
		ProblemDescription:   req.ProblemDescription,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		ActualDeliveryDate:   req.ActualDeliveryDate,
		EstimatedCost:        req.EstimatedCost,
		ActualCost:           req.ActualCost,
		Diagnosis:            req.Diagnosis,
		PartsRequired:        req.PartsRequired,
		WorkCompleted:        req.WorkCompleted,
		TestingNotes:         req.TestingNotes,
	}
	if req.Status != nil {
		st, err := parseStatus(*req.Status)
		if err != nil {
			return p, err
		}
		p.Status = &st
	}
	if req.Priority != nil {
		pr, err := parsePriority(*req.Priority)
		if err != nil {
			return p, err
		}
		p.Priority = &pr
	}
	if req.Brand != nil {
		b, err := parseBrand(*req.Brand)
		if err != nil {
			return p, err
		}
		p.Brand = &b
	}
	if req.ScreenSize != nil {
		size := job.ScreenSize(*req.ScreenSize)
		p.ScreenSize = &size
	}
	if req.ProblemCategory != nil {
		c := job.ProblemCategory(*req.ProblemCategory)
		p.ProblemCategory = &c
	}
	if len(req.Technician) > 0 {
		ref, err := job.ParseTechnicianRef(req.Technician)
		if err != nil {
			return p, err
		}
		p.Technician = &ref
	}
	return p, nil
}
