package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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
	"github.com/repairdesk/backend/internal/infrastructure/persistence/models"
	"github.com/repairdesk/backend/internal/interfaces/http/dto"
	"github.com/repairdesk/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// envelope mirrors dto.Response with a typed payload
type envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := persistence.Open(sqlite.Open("file::memory:"), nil)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

type testServices struct {
	jobs        *jobapp.JobService
	inventory   *inventoryapp.InventoryService
	invoices    *invoiceapp.InvoiceService
	pettyCash   *pettycashapp.PettyCashService
	technicians *settingsapp.TechnicianService
	brands      *settingsapp.ReferenceService
}

// newTestServices wires every service over one in-memory database the way
// the server does
func newTestServices(t *testing.T) testServices {
	t.Helper()
	require.NoError(t, middleware.SetupValidator())

	db := newTestDB(t)
	jobRepo := persistence.NewGormJobRepository(db)
	itemRepo := persistence.NewGormInventoryItemRepository(db)
	invoiceRepo := persistence.NewGormInvoiceRepository(db)
	techRepo := persistence.NewGormTechnicianRepository(db)
	refRepo := persistence.NewGormReferenceRepository(db)
	ids := identifier.NewAllocator(jobRepo, invoiceRepo,
		identifier.WithCounter(persistence.NewGormSequenceCounter(db)))

	return testServices{
		jobs:        jobapp.NewJobService(jobRepo, techRepo, ids, nil),
		inventory:   inventoryapp.NewInventoryService(itemRepo, nil),
		invoices:    invoiceapp.NewInvoiceService(invoiceRepo, ids, itemRepo, jobRepo, nil),
		pettyCash:   pettycashapp.NewPettyCashService(persistence.NewGormPettyCashRepository(db), decimal.NewFromInt(27500), nil),
		technicians: settingsapp.NewTechnicianService(techRepo, nil),
		brands:      settingsapp.NewReferenceService(settings.KindBrand, refRepo, nil),
	}
}

func doJSON(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

// isNullData reports whether the body carries "data": null
func isNullData(t *testing.T, w *httptest.ResponseRecorder) bool {
	t.Helper()
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	data, ok := raw["data"]
	return ok && string(data) == "null"
}
