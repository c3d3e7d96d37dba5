package webhook

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// fieldAliases maps historical/alternate field names to canonical ones.
// An alias is applied only when the canonical key is absent, and aliases
// earlier in the list win (phone_number beats caller_phone).
var fieldAliases = []struct {
	alias, canonical string
}{
	{"customerName", "customer_name"},
	{"phone_number", "phone"},
	{"caller_phone", "phone"},
	{"transcript", "transcription"},
	{"orderSummary", "order_summary"},
}

// envelopeKeys are nested objects some platforms wrap the event in,
// checked in priority order.
var envelopeKeys = [...]string{"payload", "data", "body"}

// canonicalKeys are the field names of the canonical event shape. An object
// carrying any of them at the top level is the event itself, not an envelope.
var canonicalKeys = [...]string{
	"customer_name", "phone", "direction", "status", "duration",
	"timestamp", "recording_url", "transcription", "order_summary",
	"ai_confidence",
}

// Normalize reconciles a merged payload into the canonical field shape.
// It never fails: it applies its best effort and leaves anything it cannot
// fix for the validator to reject. Returns nil only for a nil input.
//
// Normalize is idempotent: running it on its own output changes nothing.
// All type coercion in the pipeline happens here, so the validator can be a
// pure type-and-range checker.
func Normalize(p Payload, now func() time.Time) Payload {
	if p == nil {
		return nil
	}

	p = unwrapEnvelope(p)

	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}

	for _, a := range fieldAliases {
		if _, ok := out[a.canonical]; ok {
			continue
		}
		if v, ok := out[a.alias]; ok {
			out[a.canonical] = v
			delete(out, a.alias)
		}
	}

	if v, ok := out["direction"]; ok {
		if s, isStr := v.AsString(); isStr {
			out["direction"] = String(normalizeDirection(s))
		}
	}

	if _, ok := out["timestamp"]; !ok {
		out["timestamp"] = String(now().UTC().Format(time.RFC3339))
	}

	if v, ok := out["duration"]; ok {
		if s, isStr := v.AsString(); isStr {
			if f, ok := parseFinite(s); ok {
				// Decimal strings truncate toward zero ("45.9" -> 45).
				out["duration"] = Number(math.Trunc(f))
			}
		}
	}

	if v, ok := out["ai_confidence"]; ok {
		if s, isStr := v.AsString(); isStr {
			if f, ok := parseFinite(s); ok {
				out["ai_confidence"] = Number(f)
			}
		}
	}

	return out
}

// parseFinite parses a numeric string, refusing NaN and infinities so they
// can never enter the payload as numbers ("NaN" stays a string for the
// validator to reject).
func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// unwrapEnvelope extracts a nested payload/data/body object as the working
// set, falling back to the top level when none is present.
//
// Unwrapping only happens when no canonical field sits at the top level:
// a payload that already carries event fields is the event, even if one of
// its own fields happens to be an object named payload/data/body. That guard
// also keeps Normalize idempotent (its output always has a top-level
// timestamp, so a second pass never unwraps again).
func unwrapEnvelope(p Payload) Payload {
	for _, key := range canonicalKeys {
		if _, ok := p[key]; ok {
			return p
		}
	}
	for _, key := range envelopeKeys {
		if v, ok := p[key]; ok {
			if inner, isObj := v.AsObject(); isObj {
				return inner
			}
		}
	}
	return p
}

// normalizeDirection lower-cases and coerces known synonyms; anything else is
// passed through (lower-cased) for the validator to reject.
func normalizeDirection(s string) string {
	v := strings.ToLower(s)
	switch {
	case strings.Contains(v, "inbound"), strings.Contains(v, "incoming"):
		return "inbound"
	case strings.Contains(v, "outbound"), strings.Contains(v, "outgoing"):
		return "outbound"
	default:
		return v
	}
}
