package webhook

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
)

// Payload is the loosely-typed key/value shape produced by the body reader.
// It is transient: the normalizer reconciles it and the validator turns it
// into a typed CallEvent, after which it is discarded.
type Payload map[string]Value

// Kind tags the union of value shapes a webhook field can carry.
type Kind uint8

const (
	// KindInvalid is the zero Value; lookups of absent keys yield it.
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
)

// Value is a tagged union over {string, number, bool, nested object}.
// Modeling inbound fields this way keeps the normalizer free of ad hoc type
// assertions: every access goes through an As* accessor that reports whether
// the value has that shape.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	obj  Payload
}

func String(s string) Value  { return Value{kind: KindString, str: s} }
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Object(p Payload) Value { return Value{kind: KindObject, obj: p} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}
func (v Value) AsBool() (bool, bool)      { return v.b, v.kind == KindBool }
func (v Value) AsObject() (Payload, bool) { return v.obj, v.kind == KindObject }

// parseJSONPayload decodes JSON bytes into a Payload. Numbers keep full
// precision via json.Number. Values outside the union (null, arrays) are
// dropped; the validator reports the resulting absences field by field.
// Returns nil when the bytes are not a JSON object.
func parseJSONPayload(data []byte) Payload {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		println("DBG decode err:", err.Error())
		return nil
	}
	return fromJSONMap(raw)
}

func fromJSONMap(raw map[string]any) Payload {
	p := make(Payload, len(raw))
	for k, v := range raw {
		if val, ok := fromJSONValue(v); ok {
			p[k] = val
		}
	}
	return p
}

func fromJSONValue(v any) (Value, bool) {
	switch t := v.(type) {
	case string:
		return String(t), true
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return Value{}, false
		}
		return Number(f), true
	case bool:
		return Bool(t), true
	case map[string]any:
		return Object(fromJSONMap(t)), true
	default:
		return Value{}, false
	}
}

// fromFormValues flattens url.Values into a Payload of strings, keeping the
// first value for repeated keys.
func fromFormValues(values url.Values) Payload {
	p := make(Payload, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			p[k] = String(vs[0])
		}
	}
	return p
}

// mergeFallback returns body with any keys it lacks filled from fallback.
// Body fields win; query-string fields only ever back-fill.
func mergeFallback(body, fallback Payload) Payload {
	if len(fallback) == 0 {
		return body
	}
	if body == nil {
		body = make(Payload, len(fallback))
	}
	for k, v := range fallback {
		if _, ok := body[k]; !ok {
			body[k] = v
		}
	}
	return body
}
