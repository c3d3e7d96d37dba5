package reporting

import (
	"context"
	"testing"
	"time"

	"restaurant-ops/internal/calllog"
)

func TestDailyOverview(t *testing.T) {
	repo := calllog.NewMemoryRepo()
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	today := func(h int) time.Time { return time.Date(2026, 3, 1, h, 0, 0, 0, time.UTC) }

	seed := []calllog.CallLog{
		{ID: "1", Timestamp: today(9), OrderSummary: "2x butter naan, 1x dal makhani, $18.50"},
		{ID: "2", Timestamp: today(11), OrderSummary: "2x butter naan, $9.00"},
		{ID: "3", Timestamp: today(13)}, // call without an order
		{ID: "4", Timestamp: time.Date(2026, 2, 28, 13, 0, 0, 0, time.UTC), OrderSummary: "1x samosa, $4.00"}, // yesterday
	}
	for _, l := range seed {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	s := NewService(repo)
	s.clock = func() time.Time { return now }

	ov, err := s.DailyOverview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.TotalCallsToday != 3 {
		t.Fatalf("expected 3 calls today, got %d", ov.TotalCallsToday)
	}
	if ov.TotalOrdersToday != 2 {
		t.Fatalf("expected 2 orders today, got %d", ov.TotalOrdersToday)
	}
	if ov.Revenue != 27.50 {
		t.Fatalf("expected revenue 27.50, got %v", ov.Revenue)
	}
	if ov.MostOrderedItem != "2x butter naan" {
		t.Fatalf("expected most ordered item, got %q", ov.MostOrderedItem)
	}
}

func TestDailyOverview_EmptyDay(t *testing.T) {
	s := NewService(calllog.NewMemoryRepo())
	ov, err := s.DailyOverview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.TotalCallsToday != 0 || ov.Revenue != 0 || ov.MostOrderedItem != "N/A" {
		t.Fatalf("unexpected empty overview %+v", ov)
	}
}

func TestExtractRevenue(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"2x naan, $18.50", 18.50},
		{"no total here", 0},
		{"$5 then $7.25", 7.25},
		{"", 0},
	}
	for _, c := range cases {
		if got := extractRevenue(c.in); got != c.want {
			t.Fatalf("extractRevenue(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
