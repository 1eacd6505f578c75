package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppliedRule records one rule's contribution to a calculation. FeeDelta is
// the change this rule made to the running fee, so discount deltas are
// negative.
type AppliedRule struct {
	RuleID      int                    `json:"rule_id"`
	RuleName    string                 `json:"rule_name"`
	Description string                 `json:"description"`
	FeeDelta    decimal.Decimal        `json:"fee_delta"`
	RuleType    RuleType               `json:"rule_type"`
	Parameters  map[string]interface{} `json:"parameters"`
}

type FeeResult struct {
	TransactionID string          `json:"transaction_id"`
	Currency      string          `json:"currency"`
	Fee           decimal.Decimal `json:"fee"`
	AppliedRules  []AppliedRule   `json:"applied_rules,omitempty"`
	IsSuccess     bool            `json:"is_success"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	CalculatedAt  time.Time       `json:"calculated_at"`
}

type BatchFeeResult struct {
	BatchID                string        `json:"batch_id"`
	Results                []FeeResult   `json:"results"`
	TotalTransactions      int           `json:"total_transactions"`
	SuccessfulCalculations int           `json:"successful_calculations"`
	FailedCalculations     int           `json:"failed_calculations"`
	ProcessingTime         time.Duration `json:"processing_time_ns"`
	ProcessedAt            time.Time     `json:"processed_at"`
}
