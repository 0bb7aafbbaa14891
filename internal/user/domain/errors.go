package domain

import "errors"

// Sentinel errors translated to HTTP status codes by the delivery layer
var (
	// ErrNotFound indicates a referenced user or subscription does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation, such as registering a
	// taken username or subscribing to the same author twice
	ErrConflict = errors.New("already exists")

	// ErrForbidden indicates the acting user is not allowed the operation
	ErrForbidden = errors.New("forbidden")
)
