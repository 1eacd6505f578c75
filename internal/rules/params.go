package rules

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Params holds a processor's tunable parameters as typed values. Accessors
// coerce across the numeric kinds a config source may hand us and fall back
// to the caller's default on a miss or a mismatch, never returning an error.
type Params map[string]interface{}

func (p Params) Decimal(key string, def decimal.Decimal) decimal.Decimal {
	value, ok := p[key]
	if !ok {
		return def
	}

	switch v := value.(type) {
	case decimal.Decimal:
		return v
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		if parsed, err := decimal.NewFromString(v); err == nil {
			return parsed
		}
	}
	return def
}

func (p Params) Int(key string, def int) int {
	value, ok := p[key]
	if !ok {
		return def
	}

	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case decimal.Decimal:
		return int(v.IntPart())
	case string:
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

func (p Params) String(key string, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// Snapshot returns a copy safe to hand out on results and descriptors.
// A nil receiver degrades to an empty map rather than failing.
func (p Params) Snapshot() map[string]interface{} {
	out := make(map[string]interface{}, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// merged overlays overrides on top of defaults without mutating either.
func merged(defaults, overrides Params) Params {
	out := make(Params, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
