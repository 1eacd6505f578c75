package rules

import (
	"strings"

	"fee_calculator/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	defaultPOSFixedFee   = decimal.RequireFromString("0.20")
	defaultPOSThreshold  = decimal.NewFromInt(100)
	defaultPOSPercentage = decimal.RequireFromString("0.002")
)

// POSProcessor charges a fixed fee for POS transactions up to the threshold
// amount and a percentage of the amount above it.
type POSProcessor struct {
	descriptor
}

func NewPOSProcessor(overrides Params) *POSProcessor {
	defaults := Params{
		"fixed_fee":        defaultPOSFixedFee,
		"threshold_amount": defaultPOSThreshold,
		"percentage_fee":   defaultPOSPercentage,
	}

	p := &POSProcessor{
		descriptor: descriptor{
			id:          1,
			name:        "POS Transaction Fee",
			description: "Fixed fee of 0.20 for POS transactions up to 100; 0.2% of the amount above that",
			ruleType:    domain.RuleTypeBase,
			priority:    10,
			params:      merged(defaults, overrides),
		},
	}
	p.active.Store(true)
	return p
}

func (p *POSProcessor) IsApplicable(req *domain.TransactionRequest) bool {
	return p.Active() && strings.EqualFold(string(req.TransactionType), string(domain.TypePOS))
}

func (p *POSProcessor) CalculateFee(req *domain.TransactionRequest, currentFee decimal.Decimal) (decimal.Decimal, error) {
	fixedFee := p.params.Decimal("fixed_fee", defaultPOSFixedFee)
	threshold := p.params.Decimal("threshold_amount", defaultPOSThreshold)
	percentage := p.params.Decimal("percentage_fee", defaultPOSPercentage)

	if req.Amount.LessThanOrEqual(threshold) {
		return fixedFee, nil
	}
	return req.Amount.Mul(percentage), nil
}
