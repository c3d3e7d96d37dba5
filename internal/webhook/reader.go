package webhook

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// multipartMaxMemory bounds in-memory buffering of multipart parts.
const multipartMaxMemory = 1 << 20

// ReadBody decodes the request body into a Payload based on the declared
// content type, then back-fills missing keys from the URL query string.
//
// Dispatch, case-insensitive on the content type:
//   - application/json: JSON object, or nil on parse failure
//   - application/x-www-form-urlencoded, multipart/form-data: flat form fields
//   - anything else (including no content type): raw text, tried as JSON
//     first and as a query string second
//
// A malformed body never errors out here: it yields a nil/empty payload that
// subsequently fails validation with field-level issues. That leniency is the
// documented contract of the endpoint.
func ReadBody(r *http.Request) Payload {
	body := readDeclaredBody(r)
	return mergeFallback(body, fromFormValues(r.URL.Query()))
}

func readDeclaredBody(r *http.Request) Payload {
	ct := strings.ToLower(r.Header.Get("Content-Type"))

	switch {
	case strings.Contains(ct, "application/json"):
		data, err := io.ReadAll(r.Body)
		println("DBG json branch err:", err != nil, "len:", len(data), "data:", string(data))
		if err != nil {
			return nil
		}
		return parseJSONPayload(data)

	case strings.Contains(ct, "application/x-www-form-urlencoded"):
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil
		}
		values, err := url.ParseQuery(string(data))
		if err != nil {
			return nil
		}
		return fromFormValues(values)

	case strings.Contains(ct, "multipart/form-data"):
		return readMultipart(r, ct)

	default:
		data, err := io.ReadAll(r.Body)
		if err != nil || len(data) == 0 {
			return nil
		}
		if p := parseJSONPayload(data); p != nil {
			return p
		}
		values, err := url.ParseQuery(string(data))
		if err != nil {
			return nil
		}
		return fromFormValues(values)
	}
}

func readMultipart(r *http.Request, ct string) Payload {
	_, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return nil
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil
	}

	mr := multipart.NewReader(r.Body, boundary)
	form, err := mr.ReadForm(multipartMaxMemory)
	if err != nil {
		return nil
	}
	defer form.RemoveAll()

	p := make(Payload, len(form.Value))
	for k, vs := range form.Value {
		if len(vs) > 0 {
			p[k] = String(vs[0])
		}
	}
	return p
}
