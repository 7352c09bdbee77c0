package models

import "github.com/pkg/errors"

var (
	// ErrInvalidState is returned when sampler operations arrive out of order.
	ErrInvalidState = errors.New("invalid state")
	// ErrDegenerateInput marks input too short to measure. Classifiers turn
	// it into a NoMatch result; only helpers with a non-empty precondition
	// return it.
	ErrDegenerateInput = errors.New("degenerate input")
	ErrConfiguration   = errors.New("configuration error")
)
