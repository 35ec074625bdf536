package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/trip-keeper/internal/app"
	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/go-resty/resty/v2"
)

// mapHTTPError turns a non-2xx response into a docstore sentinel error.
// Anything the client cannot act on more precisely is a rejected write.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", docstore.ErrPermissionDenied, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", docstore.ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", docstore.ErrAlreadyExists, body)
	case http.StatusBadRequest:
		if body == app.MsgInvalidPath {
			return fmt.Errorf("%w: %s", docstore.ErrInvalidPath, body)
		}
		return fmt.Errorf("%w: %s", docstore.ErrWriteRejected, body)
	default:
		return fmt.Errorf("%w: http %d: %s", docstore.ErrWriteRejected, resp.StatusCode(), body)
	}
}
