package errors

import (
	goerrors "errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidation("subject", "a subject named %q already exists", "Maths")
	if !IsValidation(err) {
		t.Error("IsValidation() = false, want true")
	}
	if IsPersistence(err) {
		t.Error("IsPersistence() = true for a validation error")
	}
	want := `subject: a subject named "Maths" already exists`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidationError_NoField(t *testing.T) {
	err := &ValidationError{Reason: "something is off"}
	if err.Error() != "something is off" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestPersistenceError(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewPersistence("add subject", cause)
	if !IsPersistence(err) {
		t.Error("IsPersistence() = false, want true")
	}
	if !goerrors.Is(err, cause) {
		t.Error("wrapped cause should survive errors.Is")
	}
}

func TestIs_WrappedDetection(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewValidation("date", "in the future"))
	if !IsValidation(wrapped) {
		t.Error("IsValidation() should see through wrapping")
	}

	notSupported := fmt.Errorf("%w: tray app is not running", ErrNotSupported)
	if !goerrors.Is(notSupported, ErrNotSupported) {
		t.Error("ErrNotSupported should survive wrapping")
	}
}

func TestLoadWarning(t *testing.T) {
	w := &LoadWarning{Record: "subject at index 2", Reason: "missing id or name"}
	if w.Error() != "dropped subject at index 2: missing id or name" {
		t.Errorf("Error() = %q", w.Error())
	}
}

func TestFormat(t *testing.T) {
	if Format(nil) != "" {
		t.Errorf("Format(nil) = %q, want empty", Format(nil))
	}
	if Format(fmt.Errorf("boom")) != "Error: boom" {
		t.Errorf("Format() = %q", Format(fmt.Errorf("boom")))
	}
}
