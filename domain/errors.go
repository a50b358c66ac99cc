package domain

import "errors"

// ErrInvalidInput marks a request the calculators refuse to evaluate.
var ErrInvalidInput = errors.New("invalid input")
