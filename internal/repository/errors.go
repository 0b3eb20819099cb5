package repository

import "errors"

// ErrNotFound is returned when a requested record is not found in the
// store. It abstracts the underlying storage implementation away from
// the service layer.
var ErrNotFound = errors.New("record not found")
