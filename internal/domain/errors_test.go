package domain

import (
	"errors"
	"testing"
)

func TestScanFailedError_Unwrap(t *testing.T) {
	t.Parallel()

	err := NewScanFailedError("scan-1", "image too dark")
	if !errors.Is(err, ErrScanFailed) {
		t.Error("ScanFailedError should unwrap to ErrScanFailed")
	}
	if err.Reason != "image too dark" {
		t.Errorf("Reason = %q", err.Reason)
	}
}

func TestNewScanFailedError_DefaultReason(t *testing.T) {
	t.Parallel()

	for _, reason := range []string{"", "   "} {
		err := NewScanFailedError("scan-1", reason)
		if err.Reason != DefaultScanFailureReason {
			t.Errorf("reason %q: got %q, want default", reason, err.Reason)
		}
	}
}

func TestUpdateMealError_Unwrap(t *testing.T) {
	t.Parallel()

	err := &UpdateMealError{StatusCode: 404, Message: "gone"}
	if !errors.Is(err, ErrPersistence) {
		t.Error("UpdateMealError should unwrap to ErrPersistence")
	}

	var ume *UpdateMealError
	var wrapped error = err
	if !errors.As(wrapped, &ume) || ume.StatusCode != 404 {
		t.Error("errors.As should recover the typed error")
	}
}
