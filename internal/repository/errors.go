package repository

import "errors"

// ErrNotFound is returned when the requested user does not exist.
var ErrNotFound = errors.New("not found")
