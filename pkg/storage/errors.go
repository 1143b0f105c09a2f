package storage

import "errors"

// ErrTransactionNotFound is returned when no transaction exists for the given id.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrNoUpdatableFields is returned when a partial update sets no fields at all.
var ErrNoUpdatableFields = errors.New("no updatable fields provided")
