package domain

type RuleType string

const (
	RuleTypeBase      RuleType = "BASE"
	RuleTypeDiscount  RuleType = "DISCOUNT"
	RuleTypeSurcharge RuleType = "SURCHARGE"
	RuleTypeCap       RuleType = "CAP"
)

// Stage returns the evaluation phase for a rule type. Base fees are folded
// first, discounts second, every other type (surcharges, caps, future types)
// last. Priority only orders rules inside one stage.
func (t RuleType) Stage() int {
	switch t {
	case RuleTypeBase:
		return 0
	case RuleTypeDiscount:
		return 1
	default:
		return 2
	}
}

// RuleDescriptor is the management view of a registered rule processor.
// ID, type and priority are fixed at registration; only IsActive changes.
type RuleDescriptor struct {
	ID          int                    `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Type        RuleType               `json:"type"`
	Priority    int                    `json:"priority"`
	IsActive    bool                   `json:"is_active"`
	Parameters  map[string]interface{} `json:"parameters"`
}
