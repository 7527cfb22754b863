package repository

import "errors"

// ErrNotFound is returned when an operation targets a record that does
// not exist. Updates and deletes detect it from zero affected rows.
var ErrNotFound = errors.New("record not found")
