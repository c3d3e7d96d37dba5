package webhook

import (
	"fmt"
	"math"
	"net/url"
	"time"
	"unicode/utf8"
)

// Issue is one field-level validation failure, reported with a dotted path
// so callers can render errors per field.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// CallEvent is the canonical, fully-typed call event. Every field has its
// final primitive type: Validate only checks, it never coerces.
type CallEvent struct {
	CustomerName string
	Phone        string
	Direction    string
	Status       string
	Duration     int
	Timestamp    time.Time

	RecordingURL  string
	Transcription string
	OrderSummary  string
	AIConfidence  *float64
}

// Validate checks the normalized payload against the canonical schema.
// All violations are collected; the caller reports them together.
func Validate(p Payload) (CallEvent, []Issue) {
	var ev CallEvent
	var issues []Issue

	fail := func(path, msg string) {
		issues = append(issues, Issue{Path: path, Message: msg})
	}

	ev.CustomerName = requireString(p, "customer_name", 1, 120, fail)
	ev.Phone = requireString(p, "phone", 5, 30, fail)

	if v, ok := p["direction"]; !ok {
		fail("direction", "required")
	} else if dir, isStr := v.AsString(); !isStr || (dir != "inbound" && dir != "outbound") {
		fail("direction", "must be inbound or outbound")
	} else {
		ev.Direction = dir
	}

	ev.Status = requireString(p, "status", 1, 40, fail)

	if v, ok := p["duration"]; !ok {
		fail("duration", "required")
	} else if n, isNum := v.AsNumber(); !isNum || n != math.Trunc(n) {
		fail("duration", "must be an integer")
	} else if n < 0 || n > 10800 {
		fail("duration", "must be between 0 and 10800")
	} else {
		ev.Duration = int(n)
	}

	if v, ok := p["timestamp"]; !ok {
		fail("timestamp", "required")
	} else if s, isStr := v.AsString(); !isStr {
		fail("timestamp", "must be an ISO-8601 date-time")
	} else if ts, err := time.Parse(time.RFC3339, s); err != nil {
		fail("timestamp", "must be an ISO-8601 date-time")
	} else {
		ev.Timestamp = ts
	}

	if v, ok := p["recording_url"]; ok {
		if s, isStr := v.AsString(); !isStr {
			fail("recording_url", "must be a string")
		} else if s != "" && !isAbsoluteURL(s) {
			fail("recording_url", "must be a valid URL")
		} else {
			ev.RecordingURL = s
		}
	}

	ev.Transcription = requireString(p, "transcription", 1, 30000, fail)

	if v, ok := p["order_summary"]; ok {
		if s, isStr := v.AsString(); !isStr {
			fail("order_summary", "must be a string")
		} else if utf8.RuneCountInString(s) > 3000 {
			fail("order_summary", "must be at most 3000 characters")
		} else {
			ev.OrderSummary = s
		}
	}

	if v, ok := p["ai_confidence"]; ok {
		if f, isNum := v.AsNumber(); !isNum {
			fail("ai_confidence", "must be a number")
		} else if math.IsNaN(f) || f < 0 || f > 1 {
			// NaN fails no ordered comparison, so it must be shut out
			// explicitly or it would pass the range check and poison
			// stored records that later refuse to marshal.
			fail("ai_confidence", "must be between 0 and 1")
		} else {
			ev.AIConfidence = &f
		}
	}

	if len(issues) > 0 {
		return CallEvent{}, issues
	}
	return ev, nil
}

func requireString(p Payload, key string, min, max int, fail func(path, msg string)) string {
	v, ok := p[key]
	if !ok {
		fail(key, "required")
		return ""
	}
	s, isStr := v.AsString()
	if !isStr {
		fail(key, "must be a string")
		return ""
	}
	if n := utf8.RuneCountInString(s); n < min || n > max {
		fail(key, fmt.Sprintf("must be between %d and %d characters", min, max))
		return ""
	}
	return s
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
