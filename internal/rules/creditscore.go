package rules

import (
	"fee_calculator/internal/domain"

	"github.com/shopspring/decimal"
)

var defaultCreditScoreDiscount = decimal.RequireFromString("0.01")

const defaultMinCreditScore = 400

// CreditScoreDiscountProcessor takes a percentage off the running fee for
// clients with a credit score above the threshold. It applies to every
// transaction type and stacks with any base rule.
type CreditScoreDiscountProcessor struct {
	descriptor
}

func NewCreditScoreDiscountProcessor(overrides Params) *CreditScoreDiscountProcessor {
	defaults := Params{
		"min_credit_score":    defaultMinCreditScore,
		"discount_percentage": defaultCreditScoreDiscount,
	}

	p := &CreditScoreDiscountProcessor{
		descriptor: descriptor{
			id:          3,
			name:        "High Credit Score Discount",
			description: "1% discount on the calculated fee for clients with credit score above 400",
			ruleType:    domain.RuleTypeDiscount,
			priority:    50,
			params:      merged(defaults, overrides),
		},
	}
	p.active.Store(true)
	return p
}

func (p *CreditScoreDiscountProcessor) IsApplicable(req *domain.TransactionRequest) bool {
	minScore := p.params.Int("min_credit_score", defaultMinCreditScore)
	return p.Active() && req.Client.CreditScore != nil && *req.Client.CreditScore > minScore
}

func (p *CreditScoreDiscountProcessor) CalculateFee(req *domain.TransactionRequest, currentFee decimal.Decimal) (decimal.Decimal, error) {
	percentage := p.params.Decimal("discount_percentage", defaultCreditScoreDiscount)
	discount := currentFee.Mul(percentage)
	return currentFee.Sub(discount), nil
}
