package router

import (
	"github.com/repairdesk/backend/internal/interfaces/http/handler"
)

// Handlers bundles the HTTP handlers mounted under the API prefix
type Handlers struct {
	Jobs              *handler.JobHandler
	Inventory         *handler.InventoryHandler
	Invoices          *handler.InvoiceHandler
	PettyCash         *handler.PettyCashHandler
	Technicians       *handler.TechnicianHandler
	Brands            *handler.ReferenceHandler
	ProblemCategories *handler.ReferenceHandler
	System            *handler.SystemHandler
}

// DomainGroups builds one group per resource
func DomainGroups(h Handlers) []*DomainGroup {
	return []*DomainGroup{
		jobRoutes(h.Jobs),
		inventoryRoutes(h.Inventory),
		invoiceRoutes(h.Invoices),
		pettyCashRoutes(h.PettyCash),
		technicianRoutes(h.Technicians),
		referenceRoutes("brands", "/brands", h.Brands),
		referenceRoutes("problem-categories", "/problem-categories", h.ProblemCategories),
		systemRoutes(h.System),
	}
}

// RegisterAPI mounts every domain group on r
func RegisterAPI(r *Router, h Handlers) {
	for _, g := range DomainGroups(h) {
		r.Register(g)
	}
}

func jobRoutes(h *handler.JobHandler) *DomainGroup {
	g := NewDomainGroup("jobs", "/jobs")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/search", h.Search)
	g.GET("/stats", h.Stats)
	g.GET("/history", h.History)
	g.GET("/overdue", h.Overdue)
	g.GET("/recent", h.Recent)
	g.GET("/date-range", h.DateRange)
	g.GET("/requiring-parts", h.RequiringParts)
	g.GET("/customer", h.ByCustomer)
	g.GET("/status/:status", h.ByStatus)
	g.GET("/priority/:priority", h.ByPriority)
	g.GET("/technician/:technicianId", h.ByTechnician)
	g.GET("/job-id/:jobId", h.GetByJobID)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id/status", h.UpdateStatus)
	g.PATCH("/:id/diagnosis", h.UpdateDiagnosis)
	g.PATCH("/:id/work-progress", h.UpdateWorkProgress)
	g.PATCH("/:id/cost", h.UpdateCost)
	g.PATCH("/:id/assign", h.AssignTechnician)
	g.DELETE("/:id", h.Delete)
	return g
}

func inventoryRoutes(h *handler.InventoryHandler) *DomainGroup {
	g := NewDomainGroup("inventory", "/inventory")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.PUT("/bulk", h.BulkUpdate)
	g.POST("/bulk-delete", h.BulkDelete)
	g.GET("/low-stock", h.LowStock)
	g.GET("/low-stock/count", h.LowStockCount)
	g.GET("/out-of-stock", h.OutOfStock)
	g.GET("/stats", h.Stats)
	g.GET("/search", h.Search)
	g.GET("/category/:category", h.ByCategory)
	g.GET("/brand/:brand", h.ByBrand)
	g.GET("/price-range", h.ByPriceRange)
	g.GET("/distinct/:field", h.Distinct)
	g.GET("/exists", h.Exists)
	g.GET("/total-value", h.TotalValue)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.PATCH("/:id/quantity", h.SetQuantity)
	g.PATCH("/:id/increase", h.IncreaseQuantity)
	g.PATCH("/:id/decrease", h.DecreaseQuantity)
	return g
}

func invoiceRoutes(h *handler.InvoiceHandler) *DomainGroup {
	g := NewDomainGroup("invoices", "/invoices")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.POST("/compose", h.Compose)
	g.GET("/sales", h.TotalSales)
	g.GET("/date-range", h.ByDateRange)
	g.GET("/phone/:phone", h.ByPhone)
	g.GET("/status/:status", h.ByStatus)
	g.GET("/payment-method/:method", h.ByPaymentMethod)
	g.GET("/invoice-id/:invoiceId", h.GetByInvoiceID)
	g.DELETE("/invoice-id/:invoiceId", h.Delete)
	g.GET("/:id", h.GetByID)
	g.PATCH("/:id/status", h.UpdateStatus)
	return g
}

func pettyCashRoutes(h *handler.PettyCashHandler) *DomainGroup {
	g := NewDomainGroup("petty-cash", "/petty-cash")
	g.GET("/recent", h.Recent)
	g.GET("/stats", h.Stats)

	tx := g.Group("petty-cash-transactions", "/transactions")
	tx.POST("", h.Create)
	tx.GET("", h.List)
	tx.GET("/:id", h.GetByID)
	tx.PUT("/:id", h.Update)
	tx.DELETE("/:id", h.Delete)
	return g
}

func technicianRoutes(h *handler.TechnicianHandler) *DomainGroup {
	g := NewDomainGroup("technicians", "/technicians")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id/deactivate", h.Deactivate)
	g.DELETE("/:id", h.Delete)
	return g
}

func referenceRoutes(name, prefix string, h *handler.ReferenceHandler) *DomainGroup {
	g := NewDomainGroup(name, prefix)
	g.POST("", h.Create)
	g.GET("", h.List)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return g
}

func systemRoutes(h *handler.SystemHandler) *DomainGroup {
	g := NewDomainGroup("system", "/system")
	g.GET("/info", h.GetSystemInfo)
	return g
}
