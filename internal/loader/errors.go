package loader

import (
	"errors"
	"fmt"
)

// ErrNoRows is returned when a source yields no usable products or observations.
var ErrNoRows = errors.New("no usable rows")

// LoadError reports why a source could not produce a dataset. Callers treat
// any LoadError as a signal to fall back to sample data.
type LoadError struct {
	Source string
	Op     string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %s: %v", e.Source, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// StatusError is a non-2xx HTTP response for a data file.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}
