package integration

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/repairdesk/backend/internal/application/identifier"
	inventoryapp "github.com/repairdesk/backend/internal/application/inventory"
	invoiceapp "github.com/repairdesk/backend/internal/application/invoice"
	jobapp "github.com/repairdesk/backend/internal/application/job"
	pettycashapp "github.com/repairdesk/backend/internal/application/pettycash"
	settingsapp "github.com/repairdesk/backend/internal/application/settings"
	"github.com/repairdesk/backend/internal/domain/settings"
	"github.com/repairdesk/backend/internal/infrastructure/persistence"
	"github.com/repairdesk/backend/internal/interfaces/http/handler"
	"github.com/repairdesk/backend/internal/interfaces/http/middleware"
	"github.com/repairdesk/backend/internal/interfaces/http/router"
	"github.com/repairdesk/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T, tdb *TestDB) *gin.Engine {
	t.Helper()
	require.NoError(t, middleware.SetupValidator())

	db := tdb.DB
	jobRepo := persistence.NewGormJobRepository(db)
	itemRepo := persistence.NewGormInventoryItemRepository(db)
	invoiceRepo := persistence.NewGormInvoiceRepository(db)
	techRepo := persistence.NewGormTechnicianRepository(db)
	refRepo := persistence.NewGormReferenceRepository(db)
	ids := identifier.NewAllocator(jobRepo, invoiceRepo,
		identifier.WithCounter(persistence.NewGormSequenceCounter(db)))

	return router.New(router.EngineConfig{}, router.Handlers{
		Jobs:              handler.NewJobHandler(jobapp.NewJobService(jobRepo, techRepo, ids, nil)),
		Inventory:         handler.NewInventoryHandler(inventoryapp.NewInventoryService(itemRepo, nil)),
		Invoices:          handler.NewInvoiceHandler(invoiceapp.NewInvoiceService(invoiceRepo, ids, itemRepo, jobRepo, nil)),
		PettyCash:         handler.NewPettyCashHandler(pettycashapp.NewPettyCashService(persistence.NewGormPettyCashRepository(db), decimal.NewFromInt(5000), nil)),
		Technicians:       handler.NewTechnicianHandler(settingsapp.NewTechnicianService(techRepo, nil)),
		Brands:            handler.NewReferenceHandler(settingsapp.NewReferenceService(settings.KindBrand, refRepo, nil)),
		ProblemCategories: handler.NewReferenceHandler(settingsapp.NewReferenceService(settings.KindProblemCategory, refRepo, nil)),
		System:            handler.NewSystemHandler(tdb.SqlDB, "integration"),
	})
}

// A television comes in, is repaired with a stocked part, billed and paid
// into the cash drawer.
func TestRepairToInvoiceFlow(t *testing.T) {
	tdb := NewTestDB(t)
	api := newAPI(t, tdb)

	health := testutil.Do(t, api, testutil.Request{Path: "/health"})
	require.Equal(t, http.StatusOK, health.Code, health.Body.String())

	tech := testutil.RequireData[settingsapp.TechnicianResponse](t, testutil.Do(t, api, testutil.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/technicians",
		Body: map[string]any{
			"name":           "Abul Kalam",
			"email":          "Abul.Kalam@Electronics.com",
			"phone":          "+880-1712-345678",
			"specialization": []string{"LED TV", "Smart TV"},
			"experience":     8,
		},
	}), http.StatusCreated)
	assert.Equal(t, "abul.kalam@electronics.com", tech.Email)

	job := testutil.RequireData[jobapp.JobResponse](t, testutil.Do(t, api, testutil.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/jobs",
		Body: map[string]any{
			"customer_name":       "Rina Akter",
			"phone_number":        "01711-000111",
			"brand":               "samsung",
			"tv_model":            "UA55",
			"screen_size":         "55",
			"problem_category":    "no-picture",
			"problem_description": "Backlight flickers then the screen goes dark",
			"estimated_cost":      "120",
		},
	}), http.StatusCreated)
	assert.Equal(t, "JOB000001", job.JobID)
	assert.Equal(t, "pending", job.Status)
	assert.Nil(t, job.Technician)

	jobPath := "/api/v1/jobs/" + job.ID.String()
	assigned := testutil.RequireData[jobapp.JobResponse](t, testutil.Do(t, api, testutil.Request{
		Method: http.MethodPatch,
		Path:   jobPath + "/assign",
		Body:   map[string]any{"technician_id": tech.ID},
	}), http.StatusOK)
	assert.Equal(t, "in-progress", assigned.Status)
	require.NotNil(t, assigned.Technician)
	assert.Equal(t, "Abul Kalam", assigned.Technician.Name)

	byTech := testutil.RequireData[[]jobapp.JobResponse](t, testutil.Do(t, api, testutil.Request{
		Path: "/api/v1/jobs/technician/" + tech.ID.String(),
	}), http.StatusOK)
	assert.Len(t, byTech, 1)

	part := testutil.RequireData[inventoryapp.ItemResponse](t, testutil.Do(t, api, testutil.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/inventory",
		Body: map[string]any{
			"name":       "LED Strip Set 55",
			"category":   "panels",
			"brand":      "Samsung",
			"model_name": "UA55-LED",
			"quantity":   4,
			"price":      "35",
			"threshold":  2,
			"supplier":   "Dhaka Parts House",
		},
	}), http.StatusCreated)

	done := testutil.RequireData[jobapp.JobResponse](t, testutil.Do(t, api, testutil.Request{
		Method: http.MethodPatch,
		Path:   jobPath + "/status",
		Body:   map[string]string{"status": "delivered"},
	}), http.StatusOK)
	assert.NotNil(t, done.ActualDeliveryDate, "delivery stamps the actual date")

	draft := testutil.RequireData[invoiceapp.ComposeInvoiceResponse](t, testutil.Do(t, api, testutil.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/invoices/compose",
		Body: map[string]any{
			"selections": []map[string]any{
				{"item_type": "job", "item_id": job.ID},
				{"item_type": "inventory", "item_id": part.ID, "quantity": 2},
			},
		},
	}), http.StatusOK)
	require.Len(t, draft.Items, 2)
	assert.Equal(t, "Rina Akter - samsung UA55", draft.Items[0].Name)
	assert.True(t, draft.Subtotal.Equal(decimal.NewFromInt(190)), draft.Subtotal.String())
	assert.True(t, draft.Total.Equal(decimal.NewFromInt(209)), draft.Total.String())

	inv := testutil.RequireData[invoiceapp.InvoiceResponse](t, testutil.Do(t, api, testutil.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/invoices",
		Body: map[string]any{
			"customer": "Rina Akter",
			"phone":    "01711-000111",
			"items":    draft.Items,
			"total":    draft.Total,
			"date":     "2026-03-05T10:00:00Z",
		},
	}), http.StatusCreated)
	assert.Equal(t, "INV-20260305-001", inv.InvoiceID)
	assert.Equal(t, "Paid", inv.Status)

	left := testutil.RequireData[inventoryapp.ItemResponse](t, testutil.Do(t, api, testutil.Request{
		Method: http.MethodPatch,
		Path:   "/api/v1/inventory/" + part.ID.String() + "/decrease",
		Body:   map[string]int{"quantity": 2},
	}), http.StatusOK)
	assert.Equal(t, 2, left.Quantity)
	assert.True(t, left.IsLowStock)

	sales := testutil.RequireData[invoiceapp.SalesResponse](t, testutil.Do(t, api, testutil.Request{
		Path: "/api/v1/invoices/sales?start_date=2026-03-05&end_date=2026-03-05",
	}), http.StatusOK)
	assert.EqualValues(t, 1, sales.TotalInvoices)
	assert.True(t, sales.TotalSales.Equal(decimal.NewFromInt(209)), sales.TotalSales.String())

	testutil.RequireData[pettycashapp.TransactionResponse](t, testutil.Do(t, api, testutil.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/petty-cash/transactions",
		Body: map[string]any{
			"date":           "2026-03-05T10:05:00Z",
			"amount":         "209",
			"type":           "income",
			"category":       "repairs",
			"description":    "Payment for " + inv.InvoiceID,
			"payment_method": "cash",
		},
	}), http.StatusCreated)

	stats := testutil.RequireData[pettycashapp.StatsResponse](t, testutil.Do(t, api, testutil.Request{
		Path: "/api/v1/petty-cash/stats",
	}), http.StatusOK)
	assert.True(t, stats.Balance.Equal(decimal.NewFromInt(209)), stats.Balance.String())
}

func TestConflictsSurfaceFromPostgres(t *testing.T) {
	tdb := NewTestDB(t)
	api := newAPI(t, tdb)

	brand := map[string]string{"name": "Walton"}
	testutil.RequireData[settingsapp.ReferenceResponse](t, testutil.Do(t, api, testutil.Request{
		Method: http.MethodPost, Path: "/api/v1/brands", Body: brand,
	}), http.StatusCreated)

	w := testutil.Do(t, api, testutil.Request{
		Method:  http.MethodPost,
		Path:    "/api/v1/brands",
		Body:    map[string]string{"name": "WALTON"},
		Headers: map[string]string{"X-Request-ID": "dup-1"},
	})
	testutil.AssertErrorResponse(t, w, http.StatusConflict, "NAME_EXISTS")
	assert.Equal(t, "dup-1", testutil.DecodeEnvelope[any](t, w).Error.RequestID)

	// The same name is free in the other reference list.
	testutil.RequireData[settingsapp.ReferenceResponse](t, testutil.Do(t, api, testutil.Request{
		Method: http.MethodPost, Path: "/api/v1/problem-categories", Body: brand,
	}), http.StatusCreated)
}
