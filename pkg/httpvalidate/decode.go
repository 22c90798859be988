package httpvalidate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/rulekit/pkg/rules"
)

// DefaultMaxMemory bounds the in-memory part of parsed multipart forms.
const DefaultMaxMemory = 10 << 20

// Values collects the value bag of a request. Query parameters come first and
// body fields override them. Bodies are read according to Content-Type:
// JSON objects, urlencoded forms and multipart forms, whose files become
// rules.FileDescriptor values (a slice when a field carries several files).
func Values(r *http.Request, maxMemory int64) (map[string]any, error) {
	values := formValues(r.URL.Query())

	if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
		return values, nil
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return values, nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, contentType)
	}

	switch mediaType {
	case "application/json":
		body, err := decodeJSON(r.Body)
		if err != nil {
			return nil, err
		}
		for k, v := range body {
			values[k] = v
		}
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		for k, v := range formValues(r.PostForm) {
			values[k] = v
		}
	case "multipart/form-data":
		if maxMemory <= 0 {
			maxMemory = DefaultMaxMemory
		}
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		for k, v := range formValues(r.MultipartForm.Value) {
			values[k] = v
		}
		for k, headers := range r.MultipartForm.File {
			files := make([]rules.FileDescriptor, len(headers))
			for i, fh := range headers {
				files[i] = rules.DescribeHeader(fh)
			}
			if len(files) == 1 {
				values[k] = files[0]
			} else {
				values[k] = files
			}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
	return values, nil
}

func decodeJSON(body io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty body", ErrInvalidJSON)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// formValues flattens url.Values: single values stay strings, repeated keys
// become lists.
func formValues(form url.Values) map[string]any {
	out := make(map[string]any, len(form))
	for k, vs := range form {
		switch len(vs) {
		case 0:
		case 1:
			out[k] = vs[0]
		default:
			list := make([]any, len(vs))
			for i, v := range vs {
				list[i] = v
			}
			out[k] = list
		}
	}
	return out
}
