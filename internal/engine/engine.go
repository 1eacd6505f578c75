package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"fee_calculator/internal/domain"
	"fee_calculator/internal/history"
	"fee_calculator/internal/rules"

	"github.com/shopspring/decimal"
)

// ErrNoApplicableRules is the fixed message reported when no active rule
// fires for a transaction. A business outcome, not a system error.
const ErrNoApplicableRules = "No applicable fee rules found"

// RuleSource provides the active rule set for a calculation. *Catalog is the
// production implementation.
type RuleSource interface {
	Active() ([]rules.Processor, error)
}

// Engine runs a transaction through the staged rule pipeline. CalculateFee
// never returns an error to its caller; every failure is captured on the
// result.
type Engine struct {
	source  RuleSource
	history *history.Store
	logger  *slog.Logger
}

func NewEngine(source RuleSource, historyStore *history.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		source:  source,
		history: historyStore,
		logger:  logger,
	}
}

func (e *Engine) CalculateFee(ctx context.Context, req *domain.TransactionRequest) *domain.FeeResult {
	result := &domain.FeeResult{
		TransactionID: req.TransactionID,
		Currency:      req.Currency,
		Fee:           decimal.Zero,
		IsSuccess:     true,
		CalculatedAt:  time.Now().UTC(),
	}

	active, err := e.source.Active()
	if err != nil {
		e.logger.ErrorContext(ctx, "Failed to load active rules",
			slog.String("transaction_id", req.TransactionID),
			slog.String("error", err.Error()))
		result.IsSuccess = false
		result.ErrorMessage = fmt.Sprintf("Unexpected error: %v", err)
		return result
	}

	applicable := make([]rules.Processor, 0, len(active))
	for _, p := range active {
		if p.IsApplicable(req) {
			applicable = append(applicable, p)
		}
	}

	if len(applicable) == 0 {
		e.logger.WarnContext(ctx, "No applicable rules for transaction",
			slog.String("transaction_id", req.TransactionID),
			slog.String("transaction_type", string(req.TransactionType)))
		result.IsSuccess = false
		result.ErrorMessage = ErrNoApplicableRules
		return result
	}

	// Stage first (BASE, DISCOUNT, then everything else), priority within a
	// stage. The stable sort keeps registration order for equal priorities.
	slices.SortStableFunc(applicable, func(a, b rules.Processor) int {
		if s := a.RuleType().Stage() - b.RuleType().Stage(); s != 0 {
			return s
		}
		return a.Priority() - b.Priority()
	})

	currentFee := decimal.Zero
	applied := make([]domain.AppliedRule, 0, len(applicable))

	for _, p := range applicable {
		previousFee := currentFee
		newFee, err := p.CalculateFee(req, currentFee)
		if err != nil {
			e.logger.ErrorContext(ctx, "Rule execution failed",
				slog.String("rule_name", p.RuleName()),
				slog.String("transaction_id", req.TransactionID),
				slog.String("error", err.Error()))
			result.IsSuccess = false
			result.ErrorMessage = fmt.Sprintf("Error applying rule %s: %v", p.RuleName(), err)
			result.AppliedRules = applied
			return result
		}

		currentFee = newFee
		applied = append(applied, domain.AppliedRule{
			RuleID:      p.RuleID(),
			RuleName:    p.RuleName(),
			Description: p.Description(),
			FeeDelta:    currentFee.Sub(previousFee),
			RuleType:    p.RuleType(),
			Parameters:  p.Parameters(),
		})
	}

	// Discounts may overshoot; only the published fee is clamped.
	if currentFee.IsNegative() {
		currentFee = decimal.Zero
	}

	result.Fee = currentFee
	result.AppliedRules = applied

	e.recordHistory(ctx, req, result)

	e.logger.InfoContext(ctx, "Calculated fee",
		slog.String("transaction_id", req.TransactionID),
		slog.String("fee", result.Fee.String()),
		slog.Int("rules_applied", len(applied)))

	return result
}

// recordHistory appends the calculation snapshot. A history failure is logged
// and swallowed; it must never fail the calculation.
func (e *Engine) recordHistory(ctx context.Context, req *domain.TransactionRequest, result *domain.FeeResult) {
	if e.history == nil {
		return
	}

	reqJSON, err := json.Marshal(req)
	if err != nil {
		e.logger.ErrorContext(ctx, "Failed to snapshot request for history",
			slog.String("transaction_id", req.TransactionID),
			slog.String("error", err.Error()))
		return
	}
	resJSON, err := json.Marshal(result)
	if err != nil {
		e.logger.ErrorContext(ctx, "Failed to snapshot result for history",
			slog.String("transaction_id", req.TransactionID),
			slog.String("error", err.Error()))
		return
	}

	e.history.Append(domain.HistoryEntry{
		TransactionID: req.TransactionID,
		Request:       reqJSON,
		Result:        resJSON,
		CalculatedAt:  result.CalculatedAt,
	})
}

// GetHistory returns past calculations, most recent first.
func (e *Engine) GetHistory(skip, take int) []domain.HistoryEntry {
	if e.history == nil {
		return nil
	}
	return e.history.Query(skip, take)
}
