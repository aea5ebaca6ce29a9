package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

// Form holds the string fields of a request body
type Form map[string]string

// Get returns the trimmed value of key and whether it was present
func (f Form) Get(key string) (string, bool) {
	v, ok := f[key]
	return strings.TrimSpace(v), ok
}

// Value returns the trimmed value of key, or "" when absent
func (f Form) Value(key string) string {
	v, _ := f.Get(key)
	return v
}

// ReadForm reads a JSON object or a url-encoded/multipart form body into
// a Form. JSON numbers and booleans are kept in their textual form.
func ReadForm(w http.ResponseWriter, r *http.Request) (Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return readJSONForm(r)
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return nil, Malformed("Malformed request body")
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, Malformed("Malformed request body")
	}

	form := Form{}
	for key, values := range r.PostForm {
		if len(values) > 0 {
			form[key] = values[0]
		}
	}
	return form, nil
}

func readJSONForm(r *http.Request) (Form, error) {
	var raw map[string]interface{}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, Malformed("Malformed request body")
	}

	form := Form{}
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
		case string:
			form[key] = v
		case json.Number:
			form[key] = v.String()
		case bool:
			form[key] = strconv.FormatBool(v)
		default:
			form[key] = fmt.Sprint(v)
		}
	}
	return form, nil
}
