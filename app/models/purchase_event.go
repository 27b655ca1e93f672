package models

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"
)

// PurchaseEvent is one stored checkout transaction as delivered by the
// payment provider. The metadata columns hold provider-shaped JSON exactly
// as received; decoding is tolerant because the shape is not ours.
type PurchaseEvent struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	ExternalID     string    `gorm:"type:varchar(191);uniqueIndex" json:"external_id"`
	ProductIDsJSON string    `gorm:"column:product_ids_json;type:longtext" json:"-"`
	PeriodEndJSON  string    `gorm:"type:longtext" json:"-"`
	SessionJSON    string    `gorm:"type:longtext" json:"-"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ProductIDList decodes the granted product ids. Entries may reference
// products that were deleted from the catalog since; that is expected.
func (e *PurchaseEvent) ProductIDList() []int {
	if strings.TrimSpace(e.ProductIDsJSON) == "" {
		return nil
	}
	var raw []json.Number
	if err := json.Unmarshal([]byte(e.ProductIDsJSON), &raw); err != nil {
		return nil
	}
	ids := make([]int, 0, len(raw))
	for _, n := range raw {
		if i, err := n.Int64(); err == nil {
			ids = append(ids, int(i))
		}
	}
	return ids
}

// PeriodEndMap decodes the period/flag map. Malformed JSON yields an empty
// map.
func (e *PurchaseEvent) PeriodEndMap() map[string]any {
	return decodeDocument(e.PeriodEndJSON)
}

// ProviderSession decodes the stored checkout-session document. Malformed
// JSON yields nil.
func (e *PurchaseEvent) ProviderSession() map[string]any {
	return decodeDocument(e.SessionJSON)
}

func decodeDocument(raw string) map[string]any {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil
	}
	return doc
}

// FindPurchaseEventsByUser returns a user's full purchase history, oldest
// first. An empty history is a valid result, not an error.
func FindPurchaseEventsByUser(db *gorm.DB, userID uint) ([]PurchaseEvent, error) {
	var events []PurchaseEvent
	err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&events).Error
	return events, err
}
