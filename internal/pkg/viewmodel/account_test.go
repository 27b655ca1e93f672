package viewmodel

import (
	"testing"
	"time"

	"github.com/framelessmedia/payportal/internal/pkg/entitlements"
	"github.com/framelessmedia/payportal/internal/pkg/i18n"
)

func TestStatusLabel(t *testing.T) {
	tr := i18n.New()
	until := time.Date(2030, 1, 2, 12, 0, 0, 0, time.Local).Unix()

	tests := []struct {
		name string
		row  entitlements.Row
		want string
	}{
		{name: "active", row: entitlements.Row{StatusKey: entitlements.StatusActive}, want: "Active"},
		{name: "active_until", row: entitlements.Row{StatusKey: entitlements.StatusActiveUntil, StatusUntil: &until}, want: "Active until 2030-01-02"},
		{name: "expired_on", row: entitlements.Row{StatusKey: entitlements.StatusExpiredOn, StatusUntil: &until}, want: "Expired on 2030-01-02"},
		{name: "paused", row: entitlements.Row{StatusKey: entitlements.StatusPaused}, want: "Paused"},
		{name: "canceled plain", row: entitlements.Row{StatusKey: entitlements.StatusCanceled}, want: "Canceled"},
		{name: "canceled with grace date", row: entitlements.Row{StatusKey: entitlements.StatusCanceled, StatusUntil: &until}, want: "Canceled (until 2030-01-02)"},
	}
	for _, tt := range tests {
		if got := StatusLabel(tr, tt.row); got != tt.want {
			t.Fatalf("%s: StatusLabel = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestBuildOwnedCardsBadgeOnlyForRunningSubscriptions(t *testing.T) {
	tr := i18n.New()
	until := time.Date(2030, 1, 2, 0, 0, 0, 0, time.Local).Unix()
	rows := []entitlements.Row{
		{ProductID: 1, StatusKey: entitlements.StatusActive, IsActive: true},
		{ProductID: 2, StatusKey: entitlements.StatusActiveUntil, IsActive: true, StatusUntil: &until},
	}

	cards := BuildOwnedCards(rows, tr)
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].Badge != "" {
		t.Fatalf("one-time purchase must not carry a badge, got %q", cards[0].Badge)
	}
	if cards[1].Badge != "Active until 2030-01-02" {
		t.Fatalf("subscription badge = %q", cards[1].Badge)
	}
}
