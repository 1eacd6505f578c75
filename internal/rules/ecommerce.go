package rules

import (
	"strings"

	"fee_calculator/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	defaultECommercePercentage = decimal.RequireFromString("0.018")
	defaultECommerceFixedFee   = decimal.RequireFromString("0.15")
	defaultECommerceMaxFee     = decimal.NewFromInt(120)
)

// ECommerceProcessor charges a percentage of the amount plus a fixed fee for
// e-commerce transactions, capped at a maximum.
type ECommerceProcessor struct {
	descriptor
}

func NewECommerceProcessor(overrides Params) *ECommerceProcessor {
	defaults := Params{
		"percentage_fee": defaultECommercePercentage,
		"fixed_fee":      defaultECommerceFixedFee,
		"max_fee":        defaultECommerceMaxFee,
	}

	p := &ECommerceProcessor{
		descriptor: descriptor{
			id:          2,
			name:        "E-Commerce Transaction Fee",
			description: "1.8% of the amount plus 0.15, capped at 120, for e-commerce transactions",
			ruleType:    domain.RuleTypeBase,
			priority:    10,
			params:      merged(defaults, overrides),
		},
	}
	p.active.Store(true)
	return p
}

func (p *ECommerceProcessor) IsApplicable(req *domain.TransactionRequest) bool {
	return p.Active() && strings.EqualFold(string(req.TransactionType), string(domain.TypeECommerce))
}

func (p *ECommerceProcessor) CalculateFee(req *domain.TransactionRequest, currentFee decimal.Decimal) (decimal.Decimal, error) {
	percentage := p.params.Decimal("percentage_fee", defaultECommercePercentage)
	fixedFee := p.params.Decimal("fixed_fee", defaultECommerceFixedFee)
	maxFee := p.params.Decimal("max_fee", defaultECommerceMaxFee)

	fee := req.Amount.Mul(percentage).Add(fixedFee)
	if fee.GreaterThan(maxFee) {
		return maxFee, nil
	}
	return fee, nil
}
