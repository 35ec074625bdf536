package fieldcodec

import "errors"

// ErrMissingKey is returned when a non-empty value would be written without
// a trip key.
var ErrMissingKey = errors.New("field key is missing")
