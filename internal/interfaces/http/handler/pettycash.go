package handler

import (
	"github.com/gin-gonic/gin"
	pettycashapp "github.com/repairdesk/backend/internal/application/pettycash"
)

// PettyCashHandler handles petty-cash ledger endpoints
type PettyCashHandler struct {
	BaseHandler
	pettyCashService *pettycashapp.PettyCashService
}

// NewPettyCashHandler creates a new PettyCashHandler
func NewPettyCashHandler(pettyCashService *pettycashapp.PettyCashService) *PettyCashHandler {
	return &PettyCashHandler{pettyCashService: pettyCashService}
}

// Create handles POST /petty-cash/transactions
func (h *PettyCashHandler) Create(c *gin.Context) {
	var req pettycashapp.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tx, err := h.pettyCashService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// List handles GET /petty-cash/transactions
func (h *PettyCashHandler) List(c *gin.Context) {
	var filter pettycashapp.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.pettyCashService.GetAllTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// GetByID handles GET /petty-cash/transactions/:id
func (h *PettyCashHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	tx, err := h.pettyCashService.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// Update handles PUT /petty-cash/transactions/:id
func (h *PettyCashHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req pettycashapp.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tx, err := h.pettyCashService.UpdateTransaction(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// Delete handles DELETE /petty-cash/transactions/:id
func (h *PettyCashHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	tx, err := h.pettyCashService.DeleteTransaction(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// Recent handles GET /petty-cash/recent?limit=
func (h *PettyCashHandler) Recent(c *gin.Context) {
	limit, ok := h.queryInt(c, "limit", 0)
	if !ok {
		return
	}
	txs, err := h.pettyCashService.GetRecentTransactions(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if txs == nil {
		txs = []pettycashapp.TransactionResponse{}
	}
	h.Success(c, txs)
}

// Stats handles GET /petty-cash/stats
func (h *PettyCashHandler) Stats(c *gin.Context) {
	stats, err := h.pettyCashService.GetStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
