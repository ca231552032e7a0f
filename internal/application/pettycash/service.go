package pettycash

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/pettycash"
	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/repairdesk/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultPage        = 1
	defaultLimit       = 20
	defaultRecentLimit = 5
)

// PettyCashService manages the petty-cash register
type PettyCashService struct {
	repo            pettycash.Repository
	opening         decimal.Decimal
	logger          *zap.Logger
	now             func() time.Time
	businessMetrics *telemetry.ShopMetrics
}

// NewPettyCashService creates a new PettyCashService. The opening balance
// seeds the running balance of recent transactions.
func NewPettyCashService(repo pettycash.Repository, opening decimal.Decimal, logger *zap.Logger) *PettyCashService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PettyCashService{repo: repo, opening: opening, logger: logger, now: time.Now}
}

// SetBusinessMetrics sets the business metrics collector
func (s *PettyCashService) SetBusinessMetrics(m *telemetry.ShopMetrics) {
	s.businessMetrics = m
}

// SetClock overrides the time source
func (s *PettyCashService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateTransaction records a movement
func (s *PettyCashService) CreateTransaction(ctx context.Context, req TransactionRequest) (_ *TransactionResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "petty_cash", "create_transaction",
		telemetry.SpanTxType.String(req.Type),
		telemetry.SpanAmount.String(req.Amount.StringFixed(2)))
	defer func() { telemetry.EndServiceSpan(span, err) }()

	tx, err := pettycash.NewTransaction(req.details())
	if err != nil {
		return nil, err
	}
	if err = s.repo.Create(ctx, tx); err != nil {
		return nil, err
	}
	s.logger.Info("Petty cash transaction created",
		zap.String("id", tx.ID.String()),
		zap.String("type", string(tx.Type)),
		zap.String("amount", tx.Amount.StringFixed(2)))
	if s.businessMetrics != nil {
		s.businessMetrics.RecordTransaction(ctx, string(tx.Type), tx.Amount)
	}
	return single(tx, nil)
}

// GetAllTransactions returns one page of matching transactions, newest first
func (s *PettyCashService) GetAllTransactions(ctx context.Context, req TransactionListFilter) (*TransactionListResponse, error) {
	filter := pettycash.Filter{
		Filter: shared.Filter{
			Page:     req.Page,
			PageSize: req.Limit,
			OrderBy:  "date",
			OrderDir: "desc",
		},
		Date:          req.Date,
		Category:      strings.TrimSpace(req.Category),
		Description:   strings.TrimSpace(req.Description),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		TransferType:  strings.TrimSpace(req.TransferType),
		ReceiptNumber: strings.TrimSpace(req.ReceiptNumber),
	}
	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultLimit
	}
	if req.Type != "" {
		t := pettycash.Type(req.Type)
		if !t.IsValid() {
			return nil, shared.NewValidationError("INVALID_TYPE", "Transaction type must be income, expense or transfer")
		}
		filter.Type = &t
	}
	if raw := strings.TrimSpace(req.Amount); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, shared.NewValidationError("INVALID_AMOUNT", "Amount must be a number")
		}
		filter.Amount = &amount
	}

	txs, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]TransactionResponse, len(txs))
	for i := range txs {
		data[i] = ToTransactionResponse(&txs[i])
	}
	return &TransactionListResponse{Data: data, Total: total}, nil
}

// GetTransactionByID returns the transaction, or nil when missing
func (s *PettyCashService) GetTransactionByID(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	return single(s.repo.FindByID(ctx, id))
}

// UpdateTransaction replaces the transaction's fields, or returns nil when missing
func (s *PettyCashService) UpdateTransaction(ctx context.Context, id uuid.UUID, req TransactionRequest) (*TransactionResponse, error) {
	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return single(nil, err)
	}
	if err := tx.Update(req.details()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, tx); err != nil {
		return single(nil, err)
	}
	s.logger.Info("Petty cash transaction updated", zap.String("id", id.String()))
	return single(tx, nil)
}

// DeleteTransaction removes the transaction and returns it, or nil when missing
func (s *PettyCashService) DeleteTransaction(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return single(nil, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return single(nil, err)
	}
	s.logger.Info("Petty cash transaction deleted", zap.String("id", id.String()))
	return single(tx, nil)
}

// GetRecentTransactions returns the newest transactions with the running
// balance after each, starting from the opening balance
func (s *PettyCashService) GetRecentTransactions(ctx context.Context, limit int) ([]TransactionResponse, error) {
	if limit < 1 {
		limit = defaultRecentLimit
	}
	txs, err := s.repo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	balances := pettycash.RunningBalances(txs, s.opening)
	out := make([]TransactionResponse, len(txs))
	for i := range txs {
		out[i] = ToTransactionResponse(&txs[i])
		b := balances[txs[i].ID]
		out[i].Balance = &b
	}
	return out, nil
}

// GetStats returns the balance and today's cash flow
func (s *PettyCashService) GetStats(ctx context.Context) (*StatsResponse, error) {
	txs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	st := pettycash.ComputeStats(txs, s.now())
	return &StatsResponse{
		Balance:       st.Balance,
		TodayIncome:   st.TodayIncome,
		TodayExpenses: st.TodayExpenses,
		NetCashFlow:   st.NetCashFlow,
	}, nil
}

func single(tx *pettycash.Transaction, err error) (*TransactionResponse, error) {
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := ToTransactionResponse(tx)
	return &resp, nil
}
