package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by single-record lookups that match nothing.
// Callers treat it as an empty result, not a failure.
var ErrNotFound = errors.New("record not found")

// StorageErrorKind categorizes storage-level failures.
type StorageErrorKind string

const (
	// KindUnavailable means the database could not be opened or prepared
	// (missing directory, denied permissions, exhausted quota). Bootstrap
	// recovers by running in-memory only.
	KindUnavailable StorageErrorKind = "STORAGE_UNAVAILABLE"

	// KindWriteFailed means an individual write was rejected after the
	// store had opened successfully.
	KindWriteFailed StorageErrorKind = "WRITE_FAILED"
)

// StorageError wraps a storage-engine failure with a kind callers can
// branch on.
type StorageError struct {
	Kind StorageErrorKind
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsUnavailable reports whether err is a storage-unavailable failure.
// Uses errors.As to handle wrapped errors.
func IsUnavailable(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Kind == KindUnavailable
}

// BatchError reports a failed transactional bulk write. The store guarantees
// no record of the batch was committed.
type BatchError struct {
	Table string
	Count int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch write to %s (%d records) failed, nothing committed: %v", e.Table, e.Count, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// IsBatchError reports whether err is a failed bulk write.
func IsBatchError(err error) bool {
	var be *BatchError
	return errors.As(err, &be)
}
