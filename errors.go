package dropzone

import (
	"errors"
	"fmt"
)

// Batch-level intake errors
var (
	ErrDisabled            = errors.New("dropzone is disabled")
	ErrMultipleNotAllowed  = errors.New("cannot accept multiple files")
	ErrStaleBatch          = errors.New("batch superseded by a newer intake")
	ErrNoSelector          = errors.New("no file selector configured")
	ErrSelectionInProgress = errors.New("file selection already in progress")
)

// BatchError reports an intake attempt that was refused as a whole.
// No per-file outcomes exist for such a batch.
type BatchError struct {
	BatchID string
	Count   int
	Err     error
}

// Error implements the error interface
func (e *BatchError) Error() string {
	return fmt.Sprintf("batch %s (%d files) rejected: %v", e.BatchID, e.Count, e.Err)
}

// Unwrap returns the underlying error
func (e *BatchError) Unwrap() error {
	return e.Err
}

// IsBatchRejected reports whether err refused a whole batch
func IsBatchRejected(err error) bool {
	var batchErr *BatchError
	return errors.As(err, &batchErr)
}

// IsDisabled reports whether an intake was refused because the dropzone is disabled
func IsDisabled(err error) bool {
	return errors.Is(err, ErrDisabled)
}
