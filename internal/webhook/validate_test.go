package webhook

import (
	"math"
	"strings"
	"testing"
	"time"
)

func validPayload() Payload {
	return Payload{
		"customer_name": String("Ann"),
		"phone":         String("5551112222"),
		"direction":     String("inbound"),
		"status":        String("completed"),
		"duration":      Number(45),
		"timestamp":     String("2026-03-01T12:00:00Z"),
		"transcription": String("hi"),
	}
}

func TestValidate_AcceptsMinimalValidPayload(t *testing.T) {
	ev, issues := Validate(validPayload())
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
	if ev.CustomerName != "Ann" || ev.Phone != "5551112222" {
		t.Fatalf("unexpected event %+v", ev)
	}
	if ev.Duration != 45 {
		t.Fatalf("expected duration 45, got %d", ev.Duration)
	}
	if !ev.Timestamp.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp %v", ev.Timestamp)
	}
	if ev.AIConfidence != nil {
		t.Fatalf("expected nil confidence when absent")
	}
}

func TestValidate_CollectsAllIssues(t *testing.T) {
	p := validPayload()
	p["duration"] = Number(-1)
	delete(p, "transcription")

	_, issues := Validate(p)
	if len(issues) != 2 {
		t.Fatalf("expected exactly 2 issues, got %d: %v", len(issues), issues)
	}
	paths := map[string]bool{}
	for _, i := range issues {
		paths[i.Path] = true
	}
	if !paths["duration"] || !paths["transcription"] {
		t.Fatalf("expected duration and transcription issues, got %v", issues)
	}
}

func TestValidate_DirectionIsClosedEnum(t *testing.T) {
	p := validPayload()
	p["direction"] = String("sideways")
	if _, issues := Validate(p); len(issues) != 1 || issues[0].Path != "direction" {
		t.Fatalf("expected direction issue, got %v", issues)
	}

	p["direction"] = Number(1)
	if _, issues := Validate(p); len(issues) != 1 || issues[0].Path != "direction" {
		t.Fatalf("expected direction issue for non-string, got %v", issues)
	}
}

func TestValidate_NoCoercion(t *testing.T) {
	// The validator never coerces: a numeric string duration that skipped
	// normalization is a type error, not a number.
	p := validPayload()
	p["duration"] = String("45")
	if _, issues := Validate(p); len(issues) != 1 || issues[0].Path != "duration" {
		t.Fatalf("expected string duration rejected, got %v", issues)
	}
}

func TestValidate_DurationBounds(t *testing.T) {
	p := validPayload()
	p["duration"] = Number(10800)
	if _, issues := Validate(p); len(issues) != 0 {
		t.Fatalf("10800 is inclusive, got %v", issues)
	}

	p["duration"] = Number(10801)
	if _, issues := Validate(p); len(issues) != 1 {
		t.Fatalf("expected 10801 rejected, got %v", issues)
	}

	p["duration"] = Number(4.5)
	if _, issues := Validate(p); len(issues) != 1 {
		t.Fatalf("expected fractional duration rejected, got %v", issues)
	}
}

func TestValidate_Timestamp(t *testing.T) {
	p := validPayload()
	p["timestamp"] = String("yesterday at noon")
	if _, issues := Validate(p); len(issues) != 1 || issues[0].Path != "timestamp" {
		t.Fatalf("expected timestamp issue, got %v", issues)
	}
}

func TestValidate_RecordingURL(t *testing.T) {
	p := validPayload()
	p["recording_url"] = String("https://cdn.example.com/rec/1.mp3")
	ev, issues := Validate(p)
	if len(issues) != 0 {
		t.Fatalf("expected valid url accepted, got %v", issues)
	}
	if ev.RecordingURL == "" {
		t.Fatalf("expected recording url set")
	}

	// Empty string is explicitly allowed.
	p["recording_url"] = String("")
	if _, issues := Validate(p); len(issues) != 0 {
		t.Fatalf("expected empty recording url accepted, got %v", issues)
	}

	p["recording_url"] = String("not a url")
	if _, issues := Validate(p); len(issues) != 1 || issues[0].Path != "recording_url" {
		t.Fatalf("expected recording_url issue, got %v", issues)
	}
}

func TestValidate_LengthLimits(t *testing.T) {
	p := validPayload()
	p["customer_name"] = String(strings.Repeat("a", 121))
	if _, issues := Validate(p); len(issues) != 1 || issues[0].Path != "customer_name" {
		t.Fatalf("expected customer_name issue, got %v", issues)
	}

	p = validPayload()
	p["phone"] = String("1234")
	if _, issues := Validate(p); len(issues) != 1 || issues[0].Path != "phone" {
		t.Fatalf("expected phone issue, got %v", issues)
	}

	p = validPayload()
	p["order_summary"] = String(strings.Repeat("x", 3001))
	if _, issues := Validate(p); len(issues) != 1 || issues[0].Path != "order_summary" {
		t.Fatalf("expected order_summary issue, got %v", issues)
	}
}

func TestValidate_Confidence(t *testing.T) {
	p := validPayload()
	p["ai_confidence"] = Number(0.93)
	ev, issues := Validate(p)
	if len(issues) != 0 || ev.AIConfidence == nil || *ev.AIConfidence != 0.93 {
		t.Fatalf("expected confidence accepted, got %v %v", ev.AIConfidence, issues)
	}

	p["ai_confidence"] = Number(1.01)
	if _, issues := Validate(p); len(issues) != 1 || issues[0].Path != "ai_confidence" {
		t.Fatalf("expected confidence range issue, got %v", issues)
	}
}

func TestValidate_ConfidenceRejectsNonFinite(t *testing.T) {
	// NaN satisfies no ordered comparison, so a plain range check would let
	// it through; a stored NaN later breaks JSON marshalling of the record.
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		p := validPayload()
		p["ai_confidence"] = Number(f)
		if _, issues := Validate(p); len(issues) != 1 || issues[0].Path != "ai_confidence" {
			t.Fatalf("expected ai_confidence issue for %v, got %v", f, issues)
		}
	}
}

func TestValidate_EmptyPayloadReportsEveryRequiredField(t *testing.T) {
	_, issues := Validate(Payload{})
	want := map[string]bool{
		"customer_name": true, "phone": true, "direction": true,
		"status": true, "duration": true, "timestamp": true, "transcription": true,
	}
	if len(issues) != len(want) {
		t.Fatalf("expected %d issues, got %d: %v", len(want), len(issues), issues)
	}
	for _, i := range issues {
		if !want[i.Path] {
			t.Fatalf("unexpected issue path %q", i.Path)
		}
	}
}
