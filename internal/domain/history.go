package domain

import (
	"encoding/json"
	"time"
)

// HistoryEntry is an immutable snapshot of one past calculation. The sequence
// id is assigned by the history store and increases monotonically.
type HistoryEntry struct {
	ID            int64           `json:"id"`
	TransactionID string          `json:"transaction_id"`
	Request       json.RawMessage `json:"request"`
	Result        json.RawMessage `json:"result"`
	CalculatedAt  time.Time       `json:"calculated_at"`
}
