package billing

import (
	"sort"

	"github.com/framelessmedia/payportal/internal/pkg/purchases"
)

// ResolveCustomerID finds the billing-provider customer record to use for a
// billing-portal link on the given product. A user may have bought the same
// product under different customer records (re-registration with another
// email), so the match is scoped to events containing that product and the
// most recent purchase wins. Events are only read, never modified.
//
// Returns ("", false) when no event contains the product or none of the
// qualifying events carries an extractable customer reference.
func ResolveCustomerID(events []purchases.Event, productID int) (string, bool) {
	qualifying := make([]purchases.Event, 0, len(events))
	for _, ev := range events {
		if containsProduct(ev, productID) {
			qualifying = append(qualifying, ev)
		}
	}
	if len(qualifying) == 0 {
		return "", false
	}

	sort.SliceStable(qualifying, func(i, j int) bool {
		return qualifying[i].CreatedAt > qualifying[j].CreatedAt
	})

	for _, ev := range qualifying {
		if id, ok := purchases.CustomerID(ev); ok {
			return id, true
		}
	}
	return "", false
}

func containsProduct(ev purchases.Event, productID int) bool {
	for _, pid := range ev.ProductIDs {
		if pid == productID {
			return true
		}
	}
	return false
}
