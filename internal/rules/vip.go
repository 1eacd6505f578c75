package rules

import (
	"strings"

	"fee_calculator/internal/domain"

	"github.com/shopspring/decimal"
)

var defaultVIPDiscount = decimal.RequireFromString("0.05")

// VIPDiscountProcessor takes a percentage off the running fee for VIP-segment
// clients. Registered but inactive until toggled on.
type VIPDiscountProcessor struct {
	descriptor
}

func NewVIPDiscountProcessor(overrides Params) *VIPDiscountProcessor {
	defaults := Params{
		"discount_percentage": defaultVIPDiscount,
	}

	// Registered inactive; enabled through the catalog when the product
	// decides to turn it on.
	return &VIPDiscountProcessor{
		descriptor: descriptor{
			id:          4,
			name:        "VIP Client Discount",
			description: "5% discount on the calculated fee for VIP clients",
			ruleType:    domain.RuleTypeDiscount,
			priority:    60,
			params:      merged(defaults, overrides),
		},
	}
}

func (p *VIPDiscountProcessor) IsApplicable(req *domain.TransactionRequest) bool {
	return p.Active() && strings.EqualFold(string(req.Client.ClientSegment), string(domain.SegmentVIP))
}

func (p *VIPDiscountProcessor) CalculateFee(req *domain.TransactionRequest, currentFee decimal.Decimal) (decimal.Decimal, error) {
	percentage := p.params.Decimal("discount_percentage", defaultVIPDiscount)
	discount := currentFee.Mul(percentage)
	return currentFee.Sub(discount), nil
}
