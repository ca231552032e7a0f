package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	jobapp "github.com/repairdesk/backend/internal/application/job"
	"github.com/repairdesk/backend/internal/interfaces/http/dto"
)

// JobHandler handles job ticket endpoints
type JobHandler struct {
	BaseHandler
	jobService *jobapp.JobService
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobService *jobapp.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// Create handles POST /jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req jobapp.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, job)
}

// List handles GET /jobs
func (h *JobHandler) List(c *gin.Context) {
	var filter jobapp.JobListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	jobs, err := h.jobService.GetJobs(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, jobs)
}

// GetByID handles GET /jobs/:id
func (h *JobHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	job, err := h.jobService.GetJobByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, job)
}

// GetByJobID handles GET /jobs/job-id/:jobId
func (h *JobHandler) GetByJobID(c *gin.Context) {
	job, err := h.jobService.GetJobByJobID(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, job)
}

// Update handles PUT /jobs/:id
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req jobapp.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, job)
}

// UpdateStatus handles PATCH /jobs/:id/status
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req jobapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	job, err := h.jobService.UpdateJobStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, job)
}

// UpdateDiagnosis handles PATCH /jobs/:id/diagnosis
func (h *JobHandler) UpdateDiagnosis(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req jobapp.UpdateDiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	job, err := h.jobService.UpdateJobDiagnosis(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, job)
}

// UpdateWorkProgress handles PATCH /jobs/:id/work-progress
func (h *JobHandler) UpdateWorkProgress(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req jobapp.UpdateWorkProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	job, err := h.jobService.UpdateJobWorkProgress(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, job)
}

// UpdateCost handles PATCH /jobs/:id/cost
func (h *JobHandler) UpdateCost(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req jobapp.UpdateCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	job, err := h.jobService.UpdateJobCost(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, job)
}

// AssignTechnician handles PATCH /jobs/:id/assign
func (h *JobHandler) AssignTechnician(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req jobapp.AssignTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	job, err := h.jobService.AssignTechnician(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, job)
}

// Delete handles DELETE /jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	deleted, err := h.jobService.DeleteJob(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.DeletedResponse{Deleted: deleted})
}

// Search handles GET /jobs/search?q=
func (h *JobHandler) Search(c *gin.Context) {
	jobs, err := h.jobService.SearchJobs(c.Request.Context(), c.Query("q"))
	h.respond(c, jobs, err)
}

// Stats handles GET /jobs/stats
func (h *JobHandler) Stats(c *gin.Context) {
	stats, err := h.jobService.GetJobStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// History handles GET /jobs/history
func (h *JobHandler) History(c *gin.Context) {
	history, err := h.jobService.GetJobHistory(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history)
}

// Overdue handles GET /jobs/overdue
func (h *JobHandler) Overdue(c *gin.Context) {
	jobs, err := h.jobService.GetOverdueJobs(c.Request.Context())
	h.respond(c, jobs, err)
}

// Recent handles GET /jobs/recent?limit=
func (h *JobHandler) Recent(c *gin.Context) {
	limit, ok := h.queryInt(c, "limit", 10)
	if !ok {
		return
	}
	jobs, err := h.jobService.GetRecentJobs(c.Request.Context(), limit)
	h.respond(c, jobs, err)
}

// DateRange handles GET /jobs/date-range?start_date=&end_date=
func (h *JobHandler) DateRange(c *gin.Context) {
	start, ok := h.queryDate(c, "start_date")
	if !ok {
		return
	}
	end, ok := h.queryRangeEnd(c, "end_date")
	if !ok {
		return
	}
	jobs, err := h.jobService.GetJobsByDateRange(c.Request.Context(), start, end)
	h.respond(c, jobs, err)
}

// ByStatus handles GET /jobs/status/:status
func (h *JobHandler) ByStatus(c *gin.Context) {
	jobs, err := h.jobService.GetJobsByStatus(c.Request.Context(), c.Param("status"))
	h.respond(c, jobs, err)
}

// ByPriority handles GET /jobs/priority/:priority
func (h *JobHandler) ByPriority(c *gin.Context) {
	jobs, err := h.jobService.GetJobsByPriority(c.Request.Context(), c.Param("priority"))
	h.respond(c, jobs, err)
}

// ByTechnician handles GET /jobs/technician/:technicianId?status=
func (h *JobHandler) ByTechnician(c *gin.Context) {
	techID, err := uuid.Parse(c.Param("technicianId"))
	if err != nil {
		h.BadRequest(c, dto.ErrCodeInvalidID, "Invalid technician id format")
		return
	}
	jobs, err := h.jobService.GetJobsByTechnician(c.Request.Context(), techID, c.Query("status"))
	h.respond(c, jobs, err)
}

// RequiringParts handles GET /jobs/requiring-parts
func (h *JobHandler) RequiringParts(c *gin.Context) {
	jobs, err := h.jobService.GetJobsRequiringParts(c.Request.Context())
	h.respond(c, jobs, err)
}

// ByCustomer handles GET /jobs/customer?name=&phone=
func (h *JobHandler) ByCustomer(c *gin.Context) {
	jobs, err := h.jobService.GetJobsByCustomer(c.Request.Context(), c.Query("name"), c.Query("phone"))
	h.respond(c, jobs, err)
}

func (h *JobHandler) respond(c *gin.Context, jobs []jobapp.JobResponse, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if jobs == nil {
		jobs = []jobapp.JobResponse{}
	}
	h.Success(c, jobs)
}
