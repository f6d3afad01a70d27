package api

import (
	"errors"
	"fmt"
)

// ErrMissingData reports a 2xx envelope without a data field. Every
// read endpoint wraps its payload as {data: T}; a response lacking it
// is a contract violation, not a default.
var ErrMissingData = errors.New("response envelope has no data field")

// ServerError is a non-2xx response. Detail carries the
// server-supplied message when one was present in the body.
type ServerError struct {
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server returned HTTP %d", e.StatusCode)
}

// Message converts any failure from this package into a single
// human-readable string suitable for display. Server-supplied detail
// wins; transport failures fall back to the error text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var se *ServerError
	if errors.As(err, &se) {
		return se.Error()
	}
	return err.Error()
}
