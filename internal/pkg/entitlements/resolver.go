package entitlements

import (
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/framelessmedia/payportal/internal/pkg/purchases"
)

// Resolve turns a user's purchase events into one entitlement row per
// (event × product id), newest purchase first. It issues exactly one batch
// catalog fetch per call and is a pure function of its inputs: identical
// events, catalog content and now yield identical row lists.
func Resolve(events []purchases.Event, cat ProductCatalog, now time.Time) []Row {
	byID := fetchCatalog(events, cat)

	rows := make([]Row, 0, len(events))
	for _, ev := range events {
		date := formatPurchaseDate(ev.CreatedAt)

		for _, pid := range ev.ProductIDs {
			product, inCatalog := byID[pid]

			row := Row{
				PurchaseTS:   ev.CreatedAt,
				PurchaseDate: date,
				ProductID:    pid,
			}
			if inCatalog {
				row.ProductTitle = product.Title
				row.ProductURL = product.AccessURL
				row.ThumbURL = product.ThumbURL
				row.Category = product.Category
			} else {
				row.ProductTitle = purchases.DisplayName(ev, pid)
				row.Category = CategoryUncataloged
			}

			key := strconv.Itoa(pid)
			if !ev.PeriodEnds.HasKey(key) && !inCatalog {
				// Orphan product with a silent primary key: the provider
				// product id may still key the period map.
				if secondary, ok := purchases.ProviderProductID(ev); ok {
					key = secondary
				}
			}
			row.StatusKey, row.StatusUntil, row.IsActive = classify(ev.PeriodEnds, key, now)

			rows = append(rows, row)
		}
	}

	// Newest first; ties keep input (event, product) order.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].PurchaseTS > rows[j].PurchaseTS
	})
	return rows
}

// fetchCatalog collects the union of product ids across all events and
// fetches them in one batch. A catalog failure degrades to an empty map so
// resolution stays total; affected rows take the orphan path.
func fetchCatalog(events []purchases.Event, cat ProductCatalog) map[int]CatalogProduct {
	seen := make(map[int]struct{})
	ids := make([]int, 0)
	for _, ev := range events {
		for _, pid := range ev.ProductIDs {
			if _, ok := seen[pid]; ok {
				continue
			}
			seen[pid] = struct{}{}
			ids = append(ids, pid)
		}
	}
	if len(ids) == 0 || cat == nil {
		return map[int]CatalogProduct{}
	}

	byID, err := cat.BatchFetch(ids)
	if err != nil {
		log.Printf("entitlements: catalog batch fetch failed, treating %d products as uncataloged: %v", len(ids), err)
		return map[int]CatalogProduct{}
	}
	if byID == nil {
		return map[int]CatalogProduct{}
	}
	return byID
}
