package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrSubmission  = errors.New("scan submission failed")
	ErrScanFailed  = errors.New("scan failed")
	ErrScanTimeout = errors.New("scan timed out")
	ErrPersistence = errors.New("meal persistence failed")
	ErrUpload      = errors.New("image upload failed")
	ErrFetch       = errors.New("fetch failed")
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
)

// DefaultScanFailureReason is shown when the backend marks a scan failed
// without giving a reason.
const DefaultScanFailureReason = "The analysis could not be completed."

// ScanFailedError reports a scan the backend explicitly marked failed or
// cancelled. Reason is user-facing.
type ScanFailedError struct {
	ScanID string
	Reason string
}

func (e *ScanFailedError) Error() string {
	return fmt.Sprintf("scan %s failed: %s", e.ScanID, e.Reason)
}

func (e *ScanFailedError) Unwrap() error { return ErrScanFailed }

// NewScanFailedError builds a ScanFailedError, substituting the default
// reason when the server gave none.
func NewScanFailedError(scanID, reason string) *ScanFailedError {
	if strings.TrimSpace(reason) == "" {
		reason = DefaultScanFailureReason
	}
	return &ScanFailedError{ScanID: scanID, Reason: reason}
}

// UpdateMealError carries the exact user-facing message for a failed
// meal update, keyed by HTTP status. The UI shows Message verbatim.
type UpdateMealError struct {
	StatusCode int
	Message    string
}

func (e *UpdateMealError) Error() string {
	return fmt.Sprintf("update meal: status %d: %s", e.StatusCode, e.Message)
}

func (e *UpdateMealError) Unwrap() error { return ErrPersistence }
