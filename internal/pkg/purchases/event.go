package purchases

import (
	"encoding/json"
	"strconv"
)

// Event is one checkout transaction granting access to one or more products.
// Events are supplied read-only by the store; nothing in this package or its
// consumers mutates them.
type Event struct {
	ID         string
	CreatedAt  int64 // epoch seconds
	ProductIDs []int

	// PeriodEnds maps a lookup key (product id or provider product id) to a
	// subscription period end; sibling "<key>_paused"/"<key>_canceled" keys
	// flag pause/cancel state by mere presence.
	PeriodEnds PeriodEndMap

	// Session is the provider checkout-session document as stored at
	// purchase time. Shape is provider-controlled and never trusted.
	Session map[string]any
}

// PeriodEndMap is the per-event period/flag mapping from provider metadata.
type PeriodEndMap map[string]any

// End returns the numeric period end stored under key, if any. Values
// arrive as whatever the JSON decoder produced, so numbers, json.Number
// and numeric strings are all accepted.
func (m PeriodEndMap) End(key string) (int64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	return toEpoch(v)
}

// Paused reports whether the pause flag sibling exists for key. The flag's
// value is irrelevant, presence is the signal.
func (m PeriodEndMap) Paused(key string) bool {
	_, ok := m[key+"_paused"]
	return ok
}

// Canceled reports whether the cancel flag sibling exists for key.
func (m PeriodEndMap) Canceled(key string) bool {
	_, ok := m[key+"_canceled"]
	return ok
}

// HasKey reports whether the map says anything at all about key: an end
// value, a pause flag or a cancel flag.
func (m PeriodEndMap) HasKey(key string) bool {
	if _, ok := m[key]; ok {
		return true
	}
	return m.Paused(key) || m.Canceled(key)
}

func toEpoch(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, false
			}
			return int64(f), true
		}
		return i, true
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return int64(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}
