package model

import "errors"

// Core error taxonomy. Store functions return these (possibly wrapped); the
// API layer maps them to status codes and nothing else crosses that boundary.
var (
	ErrUnauthenticated  = errors.New("not authenticated")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
)
