package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxJSONBody caps request bodies. Trip documents are small: an encrypted
// stop or message is a few kilobytes at most.
const MaxJSONBody = 1 << 20

// ErrEmptyBody is returned by ReadJSON for a request without a body.
var ErrEmptyBody = errors.New("empty request body")

// ReadJSON decodes the request body into v. Bodies over MaxJSONBody and
// trailing data after the first JSON value are rejected.
func ReadJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxJSONBody))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("decode request body: %w", err)
	}
	if dec.More() {
		return errors.New("decode request body: unexpected data after JSON value")
	}
	return nil
}

// WriteJSON writes data as a JSON response with the given status and returns
// the number of body bytes written. A value that cannot be marshaled turns
// into a 500 response.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, fmt.Errorf("marshal response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return w.Write(body)
}
