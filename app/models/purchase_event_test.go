package models

import (
	"reflect"
	"testing"
)

func TestProductIDList(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []int
	}{
		{name: "plain ints", json: `[42, 7]`, want: []int{42, 7}},
		{name: "empty column", json: "", want: nil},
		{name: "malformed", json: `{"not":"a list"}`, want: nil},
		{name: "mixed garbage skipped", json: `[42, "x", 7]`, want: nil},
	}

	for _, tt := range tests {
		ev := PurchaseEvent{ProductIDsJSON: tt.json}
		got := ev.ProductIDList()
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%s: ProductIDList = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMetadataDecodingTolerance(t *testing.T) {
	ev := PurchaseEvent{
		PeriodEndJSON: `{"42": 1700000000, "42_canceled": 1}`,
		SessionJSON:   `{"customer": "cus_1"}`,
	}
	if m := ev.PeriodEndMap(); m == nil || m["42_canceled"] == nil {
		t.Fatalf("expected decoded period map, got %v", m)
	}
	if s := ev.ProviderSession(); s == nil || s["customer"] != "cus_1" {
		t.Fatalf("expected decoded session, got %v", s)
	}

	broken := PurchaseEvent{PeriodEndJSON: `{broken`, SessionJSON: `[1,2]`}
	if m := broken.PeriodEndMap(); m != nil {
		t.Fatalf("malformed period map must decode to nil, got %v", m)
	}
	if s := broken.ProviderSession(); s != nil {
		t.Fatalf("non-document session must decode to nil, got %v", s)
	}
}
