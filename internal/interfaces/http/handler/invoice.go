package handler

import (
	"github.com/gin-gonic/gin"
	invoiceapp "github.com/repairdesk/backend/internal/application/invoice"
)

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *invoiceapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *invoiceapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles POST /invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req invoiceapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	inv, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, inv)
}

// Compose handles POST /invoices/compose. Nothing is persisted.
func (h *InvoiceHandler) Compose(c *gin.Context) {
	var req invoiceapp.ComposeInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	draft, err := h.invoiceService.ComposeInvoice(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// List handles GET /invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.invoiceService.GetAllInvoices(c.Request.Context())
	h.respond(c, invoices, err)
}

// GetByID handles GET /invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	inv, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inv)
}

// GetByInvoiceID handles GET /invoices/invoice-id/:invoiceId
func (h *InvoiceHandler) GetByInvoiceID(c *gin.Context) {
	inv, err := h.invoiceService.GetInvoiceByInvoiceID(c.Request.Context(), c.Param("invoiceId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inv)
}

// ByPhone handles GET /invoices/phone/:phone
func (h *InvoiceHandler) ByPhone(c *gin.Context) {
	invoices, err := h.invoiceService.GetInvoicesByPhone(c.Request.Context(), c.Param("phone"))
	h.respond(c, invoices, err)
}

// ByDateRange handles GET /invoices/date-range?start_date=&end_date=
func (h *InvoiceHandler) ByDateRange(c *gin.Context) {
	var filter invoiceapp.DateRangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}
	invoices, err := h.invoiceService.GetInvoicesByDateRange(c.Request.Context(), filter.StartDate, filter.EndDate)
	h.respond(c, invoices, err)
}

// ByStatus handles GET /invoices/status/:status
func (h *InvoiceHandler) ByStatus(c *gin.Context) {
	invoices, err := h.invoiceService.GetInvoicesByStatus(c.Request.Context(), c.Param("status"))
	h.respond(c, invoices, err)
}

// ByPaymentMethod handles GET /invoices/payment-method/:method
func (h *InvoiceHandler) ByPaymentMethod(c *gin.Context) {
	invoices, err := h.invoiceService.GetInvoicesByPaymentMethod(c.Request.Context(), c.Param("method"))
	h.respond(c, invoices, err)
}

// UpdateStatus handles PATCH /invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req invoiceapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	inv, err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inv)
}

// Delete handles DELETE /invoices/invoice-id/:invoiceId
func (h *InvoiceHandler) Delete(c *gin.Context) {
	inv, err := h.invoiceService.DeleteInvoice(c.Request.Context(), c.Param("invoiceId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inv)
}

// TotalSales handles GET /invoices/sales?start_date=&end_date=
func (h *InvoiceHandler) TotalSales(c *gin.Context) {
	var filter invoiceapp.DateRangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}
	sales, err := h.invoiceService.GetTotalSales(c.Request.Context(), filter.StartDate, filter.EndDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sales)
}

func (h *InvoiceHandler) respond(c *gin.Context, invoices []invoiceapp.InvoiceResponse, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if invoices == nil {
		invoices = []invoiceapp.InvoiceResponse{}
	}
	h.Success(c, invoices)
}
