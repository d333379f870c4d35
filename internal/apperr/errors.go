package apperr

import "errors"

// Invalid is returned when input fails domain validation.
var Invalid = errors.New("invalid input")

// Conflict signals a uniqueness violation in the store.
var Conflict = errors.New("conflict")

// NotFound signals that the requested row does not exist.
var NotFound = errors.New("not found")
