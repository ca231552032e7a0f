package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/invoice"
	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(t *testing.T, invoiceID string, hour int, mutate ...func(*invoice.Details)) *invoice.Invoice {
	t.Helper()
	d := invoice.Details{
		Customer: "Asha Perera",
		Phone:    "0771234567",
		Items: []invoice.LineItem{
			{ItemID: "JOB-2026-00001", ItemType: invoice.ItemTypeJob, Name: "Power board repair", Quantity: 1, Price: decimal.NewFromInt(4500)},
			{ItemID: uuid.NewString(), ItemType: invoice.ItemTypeInventory, Name: "Fuse", Quantity: 2, Price: decimal.NewFromInt(250)},
		},
		Date: at(hour),
	}
	for _, m := range mutate {
		m(&d)
	}
	inv, err := invoice.NewInvoice(invoiceID, d)
	require.NoError(t, err)
	return inv
}

func invoiceIDs(invs []invoice.Invoice) []string {
	out := make([]string, len(invs))
	for i := range invs {
		out[i] = invs[i].InvoiceID
	}
	return out
}

func TestInvoiceRepository_CreateAndFind(t *testing.T) {
	repo := NewGormInvoiceRepository(newTestDB(t))
	ctx := context.Background()
	inv := newTestInvoice(t, "INV-20260310-001", 0)
	require.NoError(t, repo.Create(ctx, inv))

	got, err := repo.FindByInvoiceID(ctx, "INV-20260310-001")
	require.NoError(t, err)
	assert.Equal(t, inv.ID, got.ID)
	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(5000)))
	assert.True(t, got.Tax.Equal(decimal.NewFromInt(500)))
	assert.True(t, got.Total.Equal(decimal.NewFromInt(5500)))
	assert.Equal(t, invoice.StatusPaid, got.Status)
	assert.Equal(t, invoice.PaymentCash, got.PaymentMethod)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Power board repair", got.Items[0].Name)
	assert.Equal(t, "Fuse", got.Items[1].Name)
	assert.Equal(t, 2, got.Items[1].Quantity)

	byID, err := repo.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-20260310-001", byID.InvoiceID)

	_, err = repo.FindByInvoiceID(ctx, "INV-missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Create(ctx, newTestInvoice(t, "INV-20260310-001", 1))
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestInvoiceRepository_SaveReplacesItems(t *testing.T) {
	repo := NewGormInvoiceRepository(newTestDB(t))
	ctx := context.Background()
	inv := newTestInvoice(t, "INV-20260310-001", 0)
	require.NoError(t, repo.Create(ctx, inv))

	inv.Items = []invoice.LineItem{
		{ItemID: "JOB-2026-00009", ItemType: invoice.ItemTypeJob, Name: "Panel replacement", Quantity: 1, Price: decimal.NewFromInt(30000)},
	}
	totals := invoice.ComputeTotals(inv.Items)
	inv.Subtotal, inv.Tax, inv.Total = totals.Subtotal, totals.Tax, totals.Total
	require.NoError(t, inv.ChangeStatus(invoice.StatusRefunded))
	require.NoError(t, repo.Save(ctx, inv))

	got, err := repo.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Panel replacement", got.Items[0].Name)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(33000)))
	assert.Equal(t, invoice.StatusRefunded, got.Status)

	require.NoError(t, repo.DeleteByInvoiceID(ctx, inv.InvoiceID))
	assert.ErrorIs(t, repo.Save(ctx, inv), shared.ErrNotFound)
	_, err = repo.FindByID(ctx, inv.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInvoiceRepository_Queries(t *testing.T) {
	repo := NewGormInvoiceRepository(newTestDB(t))
	ctx := context.Background()
	for _, inv := range []*invoice.Invoice{
		newTestInvoice(t, "INV-A", 0),
		newTestInvoice(t, "INV-B", 2, func(d *invoice.Details) {
			d.Phone = "0112345678"
			d.PaymentMethod = invoice.PaymentCard
		}),
		newTestInvoice(t, "INV-C", 30, func(d *invoice.Details) { d.Status = invoice.StatusPending }),
	} {
		require.NoError(t, repo.Create(ctx, inv))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-C", "INV-B", "INV-A"}, invoiceIDs(all))

	byPhone, err := repo.FindByPhone(ctx, "0112345678")
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-B"}, invoiceIDs(byPhone))

	inRange, err := repo.FindByDateRange(ctx, at(0), at(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-B", "INV-A"}, invoiceIDs(inRange))

	pending, err := repo.FindByStatus(ctx, invoice.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-C"}, invoiceIDs(pending))

	card, err := repo.FindByPaymentMethod(ctx, invoice.PaymentCard)
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-B"}, invoiceIDs(card))

	count, err := repo.CountByDay(ctx, at(5))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	sales, err := repo.SumPaid(ctx, at(-1), at(48))
	require.NoError(t, err)
	assert.EqualValues(t, 2, sales.TotalInvoices)
	assert.True(t, sales.TotalSales.Equal(decimal.NewFromInt(11000)), sales.TotalSales.String())

	none, err := repo.SumPaid(ctx, at(100), at(200))
	require.NoError(t, err)
	assert.Zero(t, none.TotalInvoices)
	assert.True(t, none.TotalSales.IsZero())
}

func TestInvoiceRepository_DeleteByInvoiceID(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newTestInvoice(t, "INV-A", 0)))

	require.NoError(t, repo.DeleteByInvoiceID(ctx, "INV-A"))
	assert.ErrorIs(t, repo.DeleteByInvoiceID(ctx, "INV-A"), shared.ErrNotFound)

	var items int64
	require.NoError(t, db.Table("invoice_items").Count(&items).Error)
	assert.Zero(t, items)
}
