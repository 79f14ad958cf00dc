package errors

import (
	stderrors "errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad format: %s", "gif")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %s", err.Code)
	}
	if err.Message != "bad format: gif" {
		t.Errorf("Message = %s", err.Message)
	}
	if err.Error() != "INVALID_INPUT: bad format: gif" {
		t.Errorf("Error() = %s", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStorage, cause, "save analysis")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if err.Error() != "STORAGE_ERROR: save analysis: disk full" {
		t.Errorf("Error() = %s", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeNotFound, "missing")

	if !Is(err, ErrCodeNotFound) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrCodeStorage) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("Is should not match a plain error")
	}

	// Codes are found through wrapping
	wrapped := Wrap(ErrCodeInternal, err, "outer")
	if !Is(wrapped, ErrCodeInternal) {
		t.Error("Is should match the outermost code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeRenderFailed, "x")); got != ErrCodeRenderFailed {
		t.Errorf("GetCode = %s", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode plain = %s, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodeRenderFailed, stderrors.New("layout oom"), "render svg")
	if got := UserMessage(err); got != "render svg" {
		t.Errorf("UserMessage = %s", got)
	}

	plain := stderrors.New("plain")
	if got := UserMessage(plain); got != "plain" {
		t.Errorf("UserMessage plain = %s", got)
	}
}
