package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"relaychat/internal/pkg/errs"
)

func TestNewError_DefaultsStatus(t *testing.T) {
	err := errs.NewError(errs.ErrEmptyText)

	if err.Code != errs.ErrEmptyText {
		t.Errorf("Code = %d, want %d", err.Code, errs.ErrEmptyText)
	}
	if err.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", err.Status, http.StatusBadRequest)
	}
}

func TestNewError_FormatsDetails(t *testing.T) {
	err := errs.NewError(errs.ErrUnknownEvent, "typing")

	if err.Message != `Unknown event "typing".` {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestNewError_UnknownCodeFallsBack(t *testing.T) {
	err := errs.NewError(424242)

	if err.Code != errs.ErrUnknown {
		t.Errorf("Code = %d, want %d", err.Code, errs.ErrUnknown)
	}
	if err.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want %d", err.Status, http.StatusInternalServerError)
	}
}

func TestCustomError_IsMatchesCode(t *testing.T) {
	wrapped := fmt.Errorf("dropping event: %w", errs.NewError(errs.ErrTargetNotFound))

	if !errors.Is(wrapped, errs.NewError(errs.ErrTargetNotFound)) {
		t.Error("errors.Is did not match the same code")
	}
	if errors.Is(wrapped, errs.NewError(errs.ErrSenderNotJoined)) {
		t.Error("errors.Is matched a different code")
	}
	if errors.Is(errors.New("plain"), errs.NewError(errs.ErrTargetNotFound)) {
		t.Error("errors.Is matched a plain error")
	}
}
