package rules

import (
	"sync/atomic"

	"fee_calculator/internal/domain"

	"github.com/shopspring/decimal"
)

// Processor is one fee rule: an applicability predicate plus a transform of
// the running fee. Implementations must be pure over the request and the
// current fee; the active flag is the only mutable state and is toggled
// through the catalog.
type Processor interface {
	RuleID() int
	RuleName() string
	Description() string
	RuleType() domain.RuleType
	Priority() int

	Active() bool
	SetActive(active bool)

	// IsApplicable reports whether the rule fires for this request. It must
	// return false while the processor is inactive.
	IsApplicable(req *domain.TransactionRequest) bool

	// CalculateFee maps the fee accumulated so far to a new fee. Base rules
	// typically ignore currentFee; discounts and surcharges transform it.
	CalculateFee(req *domain.TransactionRequest, currentFee decimal.Decimal) (decimal.Decimal, error)

	// Parameters returns a snapshot of the rule's tunable parameters.
	Parameters() map[string]interface{}
}

// descriptor carries the identity shared by all shipped processors. The
// active flag is atomic so a toggle never races a concurrent calculation.
// Must not be copied once the flag has been stored.
type descriptor struct {
	id          int
	name        string
	description string
	ruleType    domain.RuleType
	priority    int
	active      atomic.Bool
	params      Params
}

func (d *descriptor) RuleID() int               { return d.id }
func (d *descriptor) RuleName() string          { return d.name }
func (d *descriptor) Description() string       { return d.description }
func (d *descriptor) RuleType() domain.RuleType { return d.ruleType }
func (d *descriptor) Priority() int             { return d.priority }
func (d *descriptor) Active() bool              { return d.active.Load() }
func (d *descriptor) SetActive(active bool)     { d.active.Store(active) }

func (d *descriptor) Parameters() map[string]interface{} {
	return d.params.Snapshot()
}

// DefaultProcessors returns the shipped rule catalog in registration order.
func DefaultProcessors() []Processor {
	return []Processor{
		NewPOSProcessor(nil),
		NewECommerceProcessor(nil),
		NewCreditScoreDiscountProcessor(nil),
		NewVIPDiscountProcessor(nil),
	}
}
