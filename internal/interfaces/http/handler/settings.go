package handler

import (
	"github.com/gin-gonic/gin"
	settingsapp "github.com/repairdesk/backend/internal/application/settings"
	"github.com/repairdesk/backend/internal/interfaces/http/dto"
)

// TechnicianHandler handles technician settings endpoints
type TechnicianHandler struct {
	BaseHandler
	technicianService *settingsapp.TechnicianService
}

// NewTechnicianHandler creates a new TechnicianHandler
func NewTechnicianHandler(technicianService *settingsapp.TechnicianService) *TechnicianHandler {
	return &TechnicianHandler{technicianService: technicianService}
}

// Create handles POST /technicians
func (h *TechnicianHandler) Create(c *gin.Context) {
	var req settingsapp.TechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tech, err := h.technicianService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tech)
}

// List handles GET /technicians. ?active=true limits to active technicians
// and ?specialization= narrows by skill.
func (h *TechnicianHandler) List(c *gin.Context) {
	var (
		techs []settingsapp.TechnicianResponse
		err   error
	)
	ctx := c.Request.Context()
	switch {
	case c.Query("specialization") != "":
		techs, err = h.technicianService.ListBySpecialization(ctx, c.Query("specialization"))
	case c.Query("active") == "true":
		techs, err = h.technicianService.ListActive(ctx)
	default:
		techs, err = h.technicianService.List(ctx)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if techs == nil {
		techs = []settingsapp.TechnicianResponse{}
	}
	h.Success(c, techs)
}

// GetByID handles GET /technicians/:id
func (h *TechnicianHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	tech, err := h.technicianService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tech)
}

// Update handles PUT /technicians/:id
func (h *TechnicianHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req settingsapp.TechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tech, err := h.technicianService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tech)
}

// Deactivate handles PATCH /technicians/:id/deactivate
func (h *TechnicianHandler) Deactivate(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	tech, err := h.technicianService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tech)
}

// Delete handles DELETE /technicians/:id
func (h *TechnicianHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.technicianService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.DeletedResponse{Deleted: true})
}

// ReferenceHandler serves one settings list, brands or problem categories
type ReferenceHandler struct {
	BaseHandler
	referenceService *settingsapp.ReferenceService
}

// NewReferenceHandler creates a new ReferenceHandler
func NewReferenceHandler(referenceService *settingsapp.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

// Create handles POST on the list
func (h *ReferenceHandler) Create(c *gin.Context) {
	var req settingsapp.ReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	ref, err := h.referenceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ref)
}

// List handles GET on the list
func (h *ReferenceHandler) List(c *gin.Context) {
	refs, err := h.referenceService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if refs == nil {
		refs = []settingsapp.ReferenceResponse{}
	}
	h.Success(c, refs)
}

// Update handles PUT on an entry
func (h *ReferenceHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req settingsapp.ReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	ref, err := h.referenceService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ref)
}

// Delete handles DELETE on an entry
func (h *ReferenceHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.referenceService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.DeletedResponse{Deleted: true})
}
