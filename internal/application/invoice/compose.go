package invoice

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/inventory"
	"github.com/repairdesk/backend/internal/domain/invoice"
	"github.com/repairdesk/backend/internal/domain/job"
	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/repairdesk/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// StockReader loads inventory items for snapshotting
type StockReader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]inventory.Item, error)
}

// JobReader loads a job for snapshotting
type JobReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*job.Job, error)
}

// ComposeInvoice snapshots the selected inventory items and jobs and
// merges them into the draft. Stock and jobs are read only.
func (s *InvoiceService) ComposeInvoice(ctx context.Context, req ComposeInvoiceRequest) (_ *ComposeInvoiceResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "compose",
		telemetry.SpanLineCount.Int(len(req.Items)+len(req.Selections)))
	defer func() { telemetry.EndServiceSpan(span, err) }()

	incoming, err := s.snapshot(ctx, req.Selections)
	if err != nil {
		return nil, err
	}
	existing := toLineItems(req.Items)
	for _, it := range existing {
		if err := it.Validate(); err != nil {
			return nil, err
		}
	}
	merged := invoice.MergeLineItems(existing, incoming)
	totals := invoice.ComputeTotals(merged)
	return &ComposeInvoiceResponse{
		Items:    toLineItemDTOs(merged),
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Total:    totals.Total,
	}, nil
}

func (s *InvoiceService) snapshot(ctx context.Context, selections []Selection) ([]invoice.LineItem, error) {
	var stockIDs []uuid.UUID
	for _, sel := range selections {
		if invoice.ItemType(sel.ItemType) == invoice.ItemTypeInventory {
			stockIDs = append(stockIDs, sel.ItemID)
		}
	}
	stock := make(map[uuid.UUID]inventory.Item, len(stockIDs))
	if len(stockIDs) > 0 {
		items, err := s.stock.FindByIDs(ctx, stockIDs)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			stock[it.ID] = it
		}
	}

	out := make([]invoice.LineItem, 0, len(selections))
	for _, sel := range selections {
		switch invoice.ItemType(sel.ItemType) {
		case invoice.ItemTypeInventory:
			it, ok := stock[sel.ItemID]
			if !ok {
				return nil, shared.NewNotFoundError("Inventory item " + sel.ItemID.String())
			}
			qty := sel.Quantity
			if qty < 1 {
				qty = 1
			}
			out = append(out, invoice.LineItem{
				ItemID:   it.ID.String(),
				ItemType: invoice.ItemTypeInventory,
				Name:     it.Name,
				Quantity: qty,
				Price:    it.Price,
			})
		case invoice.ItemTypeJob:
			j, err := s.jobs.FindByID(ctx, sel.ItemID)
			if err != nil {
				if shared.IsNotFound(err) {
					return nil, shared.NewNotFoundError("Job " + sel.ItemID.String())
				}
				return nil, err
			}
			out = append(out, JobLineItem(j))
		default:
			return nil, shared.NewValidationError("INVALID_ITEM", "Item type must be inventory or job")
		}
	}
	return out, nil
}

// JobLineItem snapshots a job as a single-quantity service line named
// "<customer> - <brand>[ <model>]" and priced at the estimated cost,
// else the actual cost, else zero. A zero estimate counts as unset.
func JobLineItem(j *job.Job) invoice.LineItem {
	name := j.CustomerName + " - " + string(j.Brand)
	if model := strings.TrimSpace(j.TVModel); model != "" {
		name += " " + model
	}
	price := decimal.Zero
	switch {
	case j.EstimatedCost != nil && !j.EstimatedCost.IsZero():
		price = *j.EstimatedCost
	case j.ActualCost != nil:
		price = *j.ActualCost
	}
	return invoice.LineItem{
		ItemID:   j.ID.String(),
		ItemType: invoice.ItemTypeJob,
		Name:     name,
		Quantity: 1,
		Price:    price,
	}
}
