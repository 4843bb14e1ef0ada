package repositories

import "errors"

// ErrNotFound is returned when a record does not exist. Services translate
// it into their own error vocabulary.
var ErrNotFound = errors.New("record not found")
