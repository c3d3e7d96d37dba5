package webhook

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestReadBody_JSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/webhooks/call-events",
		strings.NewReader(`{"phone":"5551112222","duration":45,"ok":true}`))
	r.Header.Set("Content-Type", "application/json")

	p := ReadBody(r)
	if s, ok := p["phone"].AsString(); !ok || s != "5551112222" {
		t.Fatalf("expected phone string, got %+v", p["phone"])
	}
	if n, ok := p["duration"].AsNumber(); !ok || n != 45 {
		t.Fatalf("expected duration number 45, got %+v", p["duration"])
	}
	if b, ok := p["ok"].AsBool(); !ok || !b {
		t.Fatalf("expected ok bool true")
	}
}

func TestReadBody_JSONContentTypeIsCaseInsensitive(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/webhooks/call-events",
		strings.NewReader(`{"phone":"5551112222"}`))
	r.Header.Set("Content-Type", "Application/JSON; charset=utf-8")

	p := ReadBody(r)
	if _, ok := p["phone"]; !ok {
		t.Fatalf("expected json parsed regardless of content-type case")
	}
}

func TestReadBody_MalformedJSONYieldsEmpty(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/webhooks/call-events",
		strings.NewReader(`{"phone":`))
	r.Header.Set("Content-Type", "application/json")

	p := ReadBody(r)
	if len(p) != 0 {
		t.Fatalf("expected empty payload for malformed json, got %v", p)
	}
}

func TestReadBody_FormEncoded(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/webhooks/call-events",
		strings.NewReader("phone=5551112222&duration=45"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	p := ReadBody(r)
	if s, ok := p["phone"].AsString(); !ok || s != "5551112222" {
		t.Fatalf("expected form phone, got %+v", p["phone"])
	}
	// Form fields are strings; coercion is the normalizer's job.
	if s, ok := p["duration"].AsString(); !ok || s != "45" {
		t.Fatalf("expected duration string, got %+v", p["duration"])
	}
}

func TestReadBody_Multipart(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("phone", "5551112222")
	_ = w.WriteField("customer_name", "Ann")
	_ = w.Close()

	r := httptest.NewRequest(http.MethodPost, "/webhooks/call-events", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())

	p := ReadBody(r)
	if s, ok := p["phone"].AsString(); !ok || s != "5551112222" {
		t.Fatalf("expected multipart phone, got %+v", p["phone"])
	}
	if s, ok := p["customer_name"].AsString(); !ok || s != "Ann" {
		t.Fatalf("expected multipart customer_name, got %+v", p["customer_name"])
	}
}

func TestReadBody_UnknownContentTypeTriesJSONThenQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/webhooks/call-events",
		strings.NewReader(`{"phone":"5551112222"}`))
	p := ReadBody(r)
	if s, ok := p["phone"].AsString(); !ok || s != "5551112222" {
		t.Fatalf("expected text body parsed as json, got %+v", p["phone"])
	}

	r = httptest.NewRequest(http.MethodPost, "/webhooks/call-events",
		strings.NewReader("phone=5551112222&status=completed"))
	r.Header.Set("Content-Type", "text/plain")
	p = ReadBody(r)
	if s, ok := p["status"].AsString(); !ok || s != "completed" {
		t.Fatalf("expected text body parsed as query string, got %+v", p["status"])
	}
}

func TestReadBody_QueryStringIsFallbackOnly(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost,
		"/webhooks/call-events?phone=999&status=from-query",
		strings.NewReader(`{"phone":"5551112222"}`))
	r.Header.Set("Content-Type", "application/json")

	p := ReadBody(r)
	if s, _ := p["phone"].AsString(); s != "5551112222" {
		t.Fatalf("body field must win over query, got %q", s)
	}
	if s, _ := p["status"].AsString(); s != "from-query" {
		t.Fatalf("query must back-fill missing fields, got %q", s)
	}
}

func TestReadBody_EmptyBodyUsesQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost,
		"/webhooks/call-events?phone=5551112222", strings.NewReader(""))

	p := ReadBody(r)
	if s, _ := p["phone"].AsString(); s != "5551112222" {
		t.Fatalf("expected query-only payload, got %q", s)
	}
}

func TestFromFormValues_KeepsFirstValue(t *testing.T) {
	p := fromFormValues(url.Values{"phone": {"111", "222"}})
	if s, _ := p["phone"].AsString(); s != "111" {
		t.Fatalf("expected first value kept, got %q", s)
	}
}
