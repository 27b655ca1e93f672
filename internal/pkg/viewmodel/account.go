package viewmodel

import (
	"fmt"
	"time"

	"github.com/framelessmedia/payportal/internal/pkg/entitlements"
	"github.com/framelessmedia/payportal/internal/pkg/i18n"
)

// AccountRow is one table line on the account page.
type AccountRow struct {
	PurchaseDate string
	ProductID    int
	Title        string
	URL          string
	StatusLabel  string
	IsActive     bool
	BillingURL   string
}

// AccountCard is one product card in the grid views. Grayed cards are
// gated products the customer does not currently own.
type AccountCard struct {
	ProductID int
	Title     string
	URL       string
	ThumbURL  string
	Badge     string
	Grayed    bool
}

// Account is the full account page view model.
type Account struct {
	Layout
	View      string
	Title     string
	HeadDate  string
	HeadName  string
	HeadState string
	Empty     string
	Rows      []AccountRow
	Cards     []AccountCard
}

// BuildAccountRows converts resolver output into table rows.
func BuildAccountRows(rows []entitlements.Row, tr *i18n.Translations) []AccountRow {
	out := make([]AccountRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, AccountRow{
			PurchaseDate: r.PurchaseDate,
			ProductID:    r.ProductID,
			Title:        r.ProductTitle,
			URL:          r.ProductURL,
			StatusLabel:  StatusLabel(tr, r),
			IsActive:     r.IsActive,
			BillingURL:   fmt.Sprintf("/account/billing/%d", r.ProductID),
		})
	}
	return out
}

// BuildOwnedCards converts owned rows into grid cards. Only subscriptions
// with a running period get a badge; one-time purchases render bare.
func BuildOwnedCards(rows []entitlements.Row, tr *i18n.Translations) []AccountCard {
	out := make([]AccountCard, 0, len(rows))
	for _, r := range rows {
		badge := ""
		if r.StatusKey == entitlements.StatusActiveUntil && r.StatusUntil != nil {
			badge = tr.Fmt("status.active_until", map[string]string{"{date}": formatDate(*r.StatusUntil)})
		}
		out = append(out, AccountCard{
			ProductID: r.ProductID,
			Title:     r.ProductTitle,
			URL:       r.ProductURL,
			ThumbURL:  r.ThumbURL,
			Badge:     badge,
		})
	}
	return out
}

// StatusLabel renders the localized status text for one row.
func StatusLabel(tr *i18n.Translations, r entitlements.Row) string {
	switch {
	case r.StatusKey == entitlements.StatusActiveUntil && r.StatusUntil != nil:
		return tr.Fmt("status.active_until", map[string]string{"{date}": formatDate(*r.StatusUntil)})
	case r.StatusKey == entitlements.StatusExpiredOn && r.StatusUntil != nil:
		return tr.Fmt("status.expired_on", map[string]string{"{date}": formatDate(*r.StatusUntil)})
	case r.StatusKey == entitlements.StatusCanceled && r.StatusUntil != nil:
		return tr.Fmt("status.canceled_until", map[string]string{"{date}": formatDate(*r.StatusUntil)})
	default:
		return tr.T("status." + string(r.StatusKey))
	}
}

func formatDate(ts int64) string {
	return time.Unix(ts, 0).Format("2006-01-02")
}
