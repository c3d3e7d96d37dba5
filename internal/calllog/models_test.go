package calllog

import (
	"context"
	"testing"
	"time"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		in   string
		want CallStatus
	}{
		{"Call Missed - no answer", StatusMissed},
		{"call failed: busy", StatusFailed},
		{"ok completed", StatusCompleted},
		{"done", StatusCompleted},
		{"MISSED", StatusMissed},
		{"", StatusCompleted},
	}
	for _, c := range cases {
		if got := ClassifyStatus(c.in); got != c.want {
			t.Fatalf("ClassifyStatus(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClassifyDirection(t *testing.T) {
	if ClassifyDirection("inbound") != DirectionInbound {
		t.Fatalf("expected inbound to classify INBOUND")
	}
	if ClassifyDirection("outbound") != DirectionOutbound {
		t.Fatalf("expected outbound to classify OUTBOUND")
	}
	// Only the exact literal counts as inbound post-normalization.
	if ClassifyDirection("Inbound") != DirectionOutbound {
		t.Fatalf("expected non-normalized value to classify OUTBOUND")
	}
}

func TestMemoryRepo_ListFiltersAndOrders(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seed := []CallLog{
		{ID: "1", Phone: "5551112222", Status: StatusCompleted, Direction: DirectionInbound, Timestamp: base},
		{ID: "2", Phone: "5553334444", Status: StatusMissed, Direction: DirectionInbound, Timestamp: base.Add(time.Hour)},
		{ID: "3", Phone: "5551119999", Status: StatusCompleted, Direction: DirectionOutbound, Timestamp: base.Add(2 * time.Hour)},
	}
	for _, l := range seed {
		if err := r.Create(ctx, l); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := r.List(ctx, ListFilter{PhoneContains: "111"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 phone matches, got %d", len(got))
	}
	if got[0].ID != "3" {
		t.Fatalf("expected newest first, got %q", got[0].ID)
	}

	got, _ = r.List(ctx, ListFilter{Status: StatusMissed, Direction: DirectionInbound})
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected only the missed inbound call, got %v", got)
	}

	got, _ = r.List(ctx, ListFilter{Since: base.Add(90 * time.Minute)})
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("expected only calls since cutoff, got %v", got)
	}
}
