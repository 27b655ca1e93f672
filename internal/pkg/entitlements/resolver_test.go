package entitlements

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/framelessmedia/payportal/internal/pkg/purchases"
)

type stubCatalog struct {
	products map[int]CatalogProduct
	err      error
	calls    int
	lastIDs  []int
}

func (s *stubCatalog) BatchFetch(ids []int) (map[int]CatalogProduct, error) {
	s.calls++
	s.lastIDs = append([]int(nil), ids...)
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

var testNow = time.Unix(1735689600, 0) // 2025-01-01 00:00:00 UTC

func catalogWith(ids ...int) *stubCatalog {
	products := make(map[int]CatalogProduct, len(ids))
	for _, id := range ids {
		products[id] = CatalogProduct{
			ID:        id,
			Title:     fmt.Sprintf("Product %d", id),
			AccessURL: "https://example.test/p",
			Category:  "courses",
		}
	}
	return &stubCatalog{products: products}
}

func event(ts int64, periodEnds purchases.PeriodEndMap, pids ...int) purchases.Event {
	return purchases.Event{
		ID:         "evt",
		CreatedAt:  ts,
		ProductIDs: pids,
		PeriodEnds: periodEnds,
	}
}

func singleRow(t *testing.T, ev purchases.Event, cat ProductCatalog) Row {
	t.Helper()
	rows := Resolve([]purchases.Event{ev}, cat, testNow)
	if len(rows) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(rows))
	}
	return rows[0]
}

func TestResolveStatusScenarios(t *testing.T) {
	future := testNow.Add(50 * 365 * 24 * time.Hour).Unix()
	past := time.Date(2000, 6, 1, 0, 0, 0, 0, time.UTC).Unix()

	tests := []struct {
		name       string
		periodEnds purchases.PeriodEndMap
		wantStatus StatusKey
		wantUntil  *int64
		wantActive bool
	}{
		{
			name:       "future period end is active_until",
			periodEnds: purchases.PeriodEndMap{"42": float64(future)},
			wantStatus: StatusActiveUntil,
			wantUntil:  &future,
			wantActive: true,
		},
		{
			name:       "past period end is expired_on",
			periodEnds: purchases.PeriodEndMap{"42": float64(past)},
			wantStatus: StatusExpiredOn,
			wantUntil:  &past,
			wantActive: false,
		},
		{
			name:       "canceled wins over future period end and forces inactive",
			periodEnds: purchases.PeriodEndMap{"42": float64(future), "42_canceled": 1},
			wantStatus: StatusCanceled,
			wantUntil:  &future,
			wantActive: false,
		},
		{
			name:       "paused without period end",
			periodEnds: purchases.PeriodEndMap{"42_paused": 1},
			wantStatus: StatusPaused,
			wantUntil:  nil,
			wantActive: false,
		},
		{
			name:       "empty map is perpetual active",
			periodEnds: purchases.PeriodEndMap{},
			wantStatus: StatusActive,
			wantUntil:  nil,
			wantActive: true,
		},
		{
			name:       "canceled wins over paused",
			periodEnds: purchases.PeriodEndMap{"42_paused": 1, "42_canceled": 1},
			wantStatus: StatusCanceled,
			wantUntil:  nil,
			wantActive: false,
		},
	}

	for _, tt := range tests {
		row := singleRow(t, event(1700000000, tt.periodEnds, 42), catalogWith(42))
		if row.StatusKey != tt.wantStatus {
			t.Fatalf("%s: status = %q, want %q", tt.name, row.StatusKey, tt.wantStatus)
		}
		if row.IsActive != tt.wantActive {
			t.Fatalf("%s: isActive = %v, want %v", tt.name, row.IsActive, tt.wantActive)
		}
		switch {
		case tt.wantUntil == nil && row.StatusUntil != nil:
			t.Fatalf("%s: statusUntil = %d, want nil", tt.name, *row.StatusUntil)
		case tt.wantUntil != nil && (row.StatusUntil == nil || *row.StatusUntil != *tt.wantUntil):
			t.Fatalf("%s: statusUntil = %v, want %d", tt.name, row.StatusUntil, *tt.wantUntil)
		}
	}
}

func TestResolveCardinalityAndBatchLookup(t *testing.T) {
	cat := catalogWith(1, 2, 3)
	events := []purchases.Event{
		event(100, nil, 1, 2),
		event(200, nil, 2, 3, 99),
	}

	rows := Resolve(events, cat, testNow)
	if len(rows) != 5 {
		t.Fatalf("expected one row per (event, product) pair = 5, got %d", len(rows))
	}
	if cat.calls != 1 {
		t.Fatalf("expected exactly one batch fetch, got %d", cat.calls)
	}
	if !reflect.DeepEqual(cat.lastIDs, []int{1, 2, 99, 3}) && !reflect.DeepEqual(cat.lastIDs, []int{1, 2, 3, 99}) {
		t.Fatalf("expected deduplicated id union, got %v", cat.lastIDs)
	}
}

func TestResolveOrphanUsesSecondaryKey(t *testing.T) {
	future := testNow.Add(24 * time.Hour).Unix()
	ev := purchases.Event{
		CreatedAt:  1700000000,
		ProductIDs: []int{99},
		PeriodEnds: purchases.PeriodEndMap{"prod_ABC": float64(future)},
		Session: map[string]any{
			"line_items": map[string]any{"data": []any{
				map[string]any{
					"description": "Legacy Course",
					"price":       map[string]any{"product": map[string]any{"id": "prod_ABC"}},
				},
			}},
		},
	}

	row := singleRow(t, ev, &stubCatalog{products: map[int]CatalogProduct{}})
	if row.StatusKey != StatusActiveUntil || !row.IsActive {
		t.Fatalf("orphan with secondary key: got status=%q active=%v", row.StatusKey, row.IsActive)
	}
	if row.StatusUntil == nil || *row.StatusUntil != future {
		t.Fatalf("orphan with secondary key: statusUntil = %v, want %d", row.StatusUntil, future)
	}
	if row.ProductTitle != "Legacy Course" {
		t.Fatalf("orphan title = %q, want display name from line items", row.ProductTitle)
	}
	if row.Category != CategoryUncataloged || row.ProductURL != "" || row.ThumbURL != "" {
		t.Fatalf("orphan row carried catalog fields: %+v", row)
	}
}

func TestResolvePrimaryKeyWinsForCatalogedProducts(t *testing.T) {
	// The secondary key is only a fallback for orphans: a cataloged product
	// with a silent primary key stays perpetual even when a provider key
	// with an expired end exists.
	past := testNow.Add(-24 * time.Hour).Unix()
	ev := purchases.Event{
		CreatedAt:  1700000000,
		ProductIDs: []int{42},
		PeriodEnds: purchases.PeriodEndMap{"prod_ABC": float64(past)},
		Session: map[string]any{
			"line_items": []any{
				map[string]any{"price": map[string]any{"product": "prod_ABC"}},
			},
		},
	}

	row := singleRow(t, ev, catalogWith(42))
	if row.StatusKey != StatusActive || !row.IsActive {
		t.Fatalf("cataloged product must ignore secondary key: got %q active=%v", row.StatusKey, row.IsActive)
	}
}

func TestResolveSortsNewestFirstStable(t *testing.T) {
	events := []purchases.Event{
		event(100, nil, 1, 2),
		event(300, nil, 3),
		event(100, nil, 4),
	}
	rows := Resolve(events, catalogWith(1, 2, 3, 4), testNow)

	gotIDs := make([]int, len(rows))
	for i, r := range rows {
		gotIDs[i] = r.ProductID
	}
	want := []int{3, 1, 2, 4}
	if !reflect.DeepEqual(gotIDs, want) {
		t.Fatalf("row order = %v, want %v", gotIDs, want)
	}
}

func TestResolveCatalogFailureDegradesToOrphans(t *testing.T) {
	cat := &stubCatalog{err: errors.New("db gone")}
	row := singleRow(t, event(1700000000, nil, 42), cat)

	if row.Category != CategoryUncataloged {
		t.Fatalf("catalog failure should produce orphan rows, got category %q", row.Category)
	}
	if row.StatusKey != StatusActive {
		t.Fatalf("no period data should resolve to active, got %q", row.StatusKey)
	}
	if row.ProductTitle != "Product #42" {
		t.Fatalf("fallback title = %q", row.ProductTitle)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	future := testNow.Add(time.Hour).Unix()
	events := []purchases.Event{
		event(100, purchases.PeriodEndMap{"1": float64(future)}, 1),
		event(200, purchases.PeriodEndMap{"2_canceled": true}, 2),
	}
	cat := catalogWith(1, 2)

	first := Resolve(events, cat, testNow)
	second := Resolve(events, cat, testNow)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("resolve is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestResolveEmptyEvents(t *testing.T) {
	cat := catalogWith()
	rows := Resolve(nil, cat, testNow)
	if len(rows) != 0 {
		t.Fatalf("expected no rows for empty history, got %d", len(rows))
	}
	if cat.calls != 0 {
		t.Fatalf("no products means no catalog call, got %d", cat.calls)
	}
}

func TestResolvePurchaseDateFormat(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 30, 0, 0, time.Local).Unix()
	row := singleRow(t, event(ts, nil, 42), catalogWith(42))
	if row.PurchaseDate != "2024-03-05 14:30" {
		t.Fatalf("purchase date = %q", row.PurchaseDate)
	}
}
