package domain

import "github.com/go-faster/errors"

// ErrNotFound is returned when the remote service has no such employee.
var ErrNotFound = errors.New("employee not found")
