package driver

import "errors"

var (
	// ErrParse marks a file whose diagnostics contain errors. The pipeline
	// stops for that file; the diagnostics stay in the result's Bag.
	ErrParse = errors.New("parse failed")
	// ErrNamePoolExhausted is returned when normalization needs more
	// temporaries than the configured pool holds.
	ErrNamePoolExhausted = errors.New("name pool exhausted")
)
