package entitlements

import (
	"time"

	"github.com/framelessmedia/payportal/internal/pkg/purchases"
)

// StatusKey is the access status of one purchased product.
type StatusKey string

const (
	StatusActive      StatusKey = "active"       // perpetual / one-time purchase
	StatusActiveUntil StatusKey = "active_until" // subscription with future period end
	StatusExpiredOn   StatusKey = "expired_on"   // subscription with past period end
	StatusPaused      StatusKey = "paused"
	StatusCanceled    StatusKey = "canceled"
)

// CategoryUncataloged labels rows whose product no longer exists in the
// catalog (orphan purchases).
const CategoryUncataloged = "uncataloged"

// CatalogProduct is what the catalog knows about a purchasable product.
// AccessURL is only set for access-gated products.
type CatalogProduct struct {
	ID        int
	Title     string
	AccessURL string
	Category  string
	ThumbURL  string
}

// ProductCatalog supplies catalog entries in one batch. Unknown ids are
// simply absent from the result map. An error is tolerated by the resolver
// (it degrades every row to the orphan path) so implementations may report
// backend failures without aborting a resolution.
type ProductCatalog interface {
	BatchFetch(ids []int) (map[int]CatalogProduct, error)
}

// Row is one (purchase event × product) entitlement. Rows are value types
// created once by Resolve and never mutated afterwards.
type Row struct {
	PurchaseTS   int64     `json:"purchase_ts"`
	PurchaseDate string    `json:"purchase_date"`
	ProductID    int       `json:"product_id"`
	ProductTitle string    `json:"product_title"`
	ProductURL   string    `json:"product_url"`
	ThumbURL     string    `json:"thumb_url"`
	Category     string    `json:"category"`
	StatusKey    StatusKey `json:"status_key"`
	StatusUntil  *int64    `json:"status_until"`
	IsActive     bool      `json:"is_active"`
}

// classify derives status fields for one lookup key with strict precedence:
// canceled > paused > numeric period end > perpetual active.
func classify(m purchases.PeriodEndMap, key string, now time.Time) (StatusKey, *int64, bool) {
	end, hasEnd := m.End(key)

	switch {
	case m.Canceled(key):
		// Cancellation always means "not active now", even when the period
		// end is still in the future. Callers needing grace-period handling
		// must look at StatusUntil themselves.
		if hasEnd {
			return StatusCanceled, &end, false
		}
		return StatusCanceled, nil, false
	case m.Paused(key):
		return StatusPaused, nil, false
	case hasEnd:
		if end >= now.Unix() {
			return StatusActiveUntil, &end, true
		}
		return StatusExpiredOn, &end, false
	default:
		// No restriction known: timeless access (one-time/lifetime purchase).
		return StatusActive, nil, true
	}
}

func formatPurchaseDate(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).Format("2006-01-02 15:04")
}
