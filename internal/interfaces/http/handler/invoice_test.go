package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	inventoryapp "github.com/repairdesk/backend/internal/application/inventory"
	invoiceapp "github.com/repairdesk/backend/internal/application/invoice"
	"github.com/repairdesk/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvoiceRouter(t *testing.T) (*gin.Engine, testServices) {
	t.Helper()
	svc := newTestServices(t)
	h := NewInvoiceHandler(svc.invoices)

	r := gin.New()
	r.POST("/invoices", h.Create)
	r.GET("/invoices", h.List)
	r.POST("/invoices/compose", h.Compose)
	r.GET("/invoices/sales", h.TotalSales)
	r.GET("/invoices/date-range", h.ByDateRange)
	r.GET("/invoices/status/:status", h.ByStatus)
	r.GET("/invoices/payment-method/:method", h.ByPaymentMethod)
	r.GET("/invoices/invoice-id/:invoiceId", h.GetByInvoiceID)
	r.DELETE("/invoices/invoice-id/:invoiceId", h.Delete)
	r.GET("/invoices/:id", h.GetByID)
	r.PATCH("/invoices/:id/status", h.UpdateStatus)
	return r, svc
}

func sale(customer string) map[string]any {
	return map[string]any{
		"customer": customer,
		"phone":    "+94 77 123 4567",
		"date":     "2026-03-05T10:00:00Z",
		"items": []map[string]any{
			{"item_id": "svc-1", "item_type": "job", "name": "Panel replacement", "quantity": 2, "price": "100"},
		},
	}
}

func TestInvoiceHandler_Create(t *testing.T) {
	r, _ := newInvoiceRouter(t)

	w := doJSON(r, http.MethodPost, "/invoices", sale("Asha Perera"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	inv := decode[invoiceapp.InvoiceResponse](t, w).Data

	assert.Equal(t, "INV-20260305-001", inv.InvoiceID)
	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, inv.Tax.Equal(decimal.NewFromInt(20)))
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(220)))
	assert.Equal(t, "cash", inv.PaymentMethod)
	assert.Equal(t, "Paid", inv.Status)

	w = doJSON(r, http.MethodPost, "/invoices", sale("Nimal Silva"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "INV-20260305-002", decode[invoiceapp.InvoiceResponse](t, w).Data.InvoiceID)
}

func TestInvoiceHandler_CreateRejectsWrongTotals(t *testing.T) {
	r, _ := newInvoiceRouter(t)

	body := sale("Asha Perera")
	body["total"] = "999"
	w := doJSON(r, http.MethodPost, "/invoices", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "TOTALS_MISMATCH", decode[any](t, w).Error.Code)

	body = sale("Asha Perera")
	body["total"] = "220"
	w = doJSON(r, http.MethodPost, "/invoices", body)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestInvoiceHandler_Lookups(t *testing.T) {
	r, _ := newInvoiceRouter(t)
	w := doJSON(r, http.MethodPost, "/invoices", sale("Asha Perera"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	inv := decode[invoiceapp.InvoiceResponse](t, w).Data

	w = doJSON(r, http.MethodGet, "/invoices/invoice-id/"+inv.InvoiceID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, inv.ID, decode[invoiceapp.InvoiceResponse](t, w).Data.ID)

	w = doJSON(r, http.MethodGet, "/invoices/"+inv.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("unknown invoice is not found", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/invoices/invoice-id/INV-20260101-404", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, decode[any](t, w).Error.Code)
	})

	t.Run("filters", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/invoices/payment-method/cash", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]invoiceapp.InvoiceResponse](t, w).Data, 1)

		w = doJSON(r, http.MethodGet, "/invoices/payment-method/cheque", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_PAYMENT_METHOD", decode[any](t, w).Error.Code)

		w = doJSON(r, http.MethodGet, "/invoices/status/Pending", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"data":[]`)
	})
}

func TestInvoiceHandler_StatusAndDelete(t *testing.T) {
	r, _ := newInvoiceRouter(t)
	w := doJSON(r, http.MethodPost, "/invoices", sale("Asha Perera"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	inv := decode[invoiceapp.InvoiceResponse](t, w).Data

	w = doJSON(r, http.MethodPatch, "/invoices/"+inv.ID.String()+"/status", map[string]string{"status": "Refunded"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Refunded", decode[invoiceapp.InvoiceResponse](t, w).Data.Status)

	w = doJSON(r, http.MethodPatch, "/invoices/"+inv.ID.String()+"/status", map[string]string{"status": "Lost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodDelete, "/invoices/invoice-id/"+inv.InvoiceID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, inv.InvoiceID, decode[invoiceapp.InvoiceResponse](t, w).Data.InvoiceID)

	w = doJSON(r, http.MethodDelete, "/invoices/invoice-id/"+inv.InvoiceID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, decode[any](t, w).Error.Code)
}

func TestInvoiceHandler_Sales(t *testing.T) {
	r, _ := newInvoiceRouter(t)
	for _, name := range []string{"Asha Perera", "Nimal Silva"} {
		w := doJSON(r, http.MethodPost, "/invoices", sale(name))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := doJSON(r, http.MethodGet, "/invoices/sales?start_date=2026-03-05&end_date=2026-03-05", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sales := decode[invoiceapp.SalesResponse](t, w).Data
	assert.EqualValues(t, 2, sales.TotalInvoices)
	assert.True(t, sales.TotalSales.Equal(decimal.NewFromInt(440)), sales.TotalSales.String())

	w = doJSON(r, http.MethodGet, "/invoices/date-range?start_date=2026-03-05&end_date=2026-03-05", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]invoiceapp.InvoiceResponse](t, w).Data, 2)

	w = doJSON(r, http.MethodGet, "/invoices/sales?start_date=2026-03-05", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, decode[any](t, w).Error.Code)

	w = doJSON(r, http.MethodGet, "/invoices/sales?start_date=2026-03-06&end_date=2026-03-05", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DATE_RANGE", decode[any](t, w).Error.Code)
}

func TestInvoiceHandler_Compose(t *testing.T) {
	r, svc := newInvoiceRouter(t)
	item, err := svc.inventory.CreateItem(context.Background(), inventoryapp.CreateItemRequest{
		Name:      "Remote Control",
		Category:  "remotes",
		Brand:     "Sony",
		ModelName: "RMT-TX",
		Quantity:  5,
		Price:     decimal.NewFromInt(30),
		Threshold: 1,
		Supplier:  "Colombo Parts",
	})
	require.NoError(t, err)

	w := doJSON(r, http.MethodPost, "/invoices/compose", map[string]any{
		"items": []map[string]any{
			{"item_id": item.ID.String(), "item_type": "inventory", "name": "Remote Control", "quantity": 1, "price": "30"},
		},
		"selections": []map[string]any{
			{"item_type": "inventory", "item_id": item.ID, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	draft := decode[invoiceapp.ComposeInvoiceResponse](t, w).Data
	require.Len(t, draft.Items, 1, "selecting a line already in the draft merges it")
	assert.Equal(t, 3, draft.Items[0].Quantity)
	assert.True(t, draft.Total.Equal(decimal.NewFromInt(99)), draft.Total.String())

	t.Run("unknown selection is not found", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/invoices/compose", map[string]any{
			"selections": []map[string]any{
				{"item_type": "job", "item_id": "8f7a3c1e-1111-4a55-9c6e-2b0f5d0c9e01"},
			},
		})
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, decode[any](t, w).Error.Code)
	})
}
