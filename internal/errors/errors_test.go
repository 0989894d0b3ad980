package errors

import (
	"fmt"
	"testing"
)

func TestConstructors_CarryCodes(t *testing.T) {
	cases := []struct {
		err  *AppError
		code string
	}{
		{InvalidInput("bad upload"), CodeInvalidInput},
		{DecodeError("not text"), CodeDecodeError},
		{ProcessingError("stage failed", fmt.Errorf("boom")), CodeProcessingError},
		{ConfigInvalid("bad knob"), CodeConfigInvalid},
	}
	for _, c := range cases {
		if got := GetCode(c.err); got != c.code {
			t.Errorf("GetCode(%v) = %q, want %q", c.err, got, c.code)
		}
	}
}

func TestInvalidInput_MessageIsClientFacing(t *testing.T) {
	err := InvalidInput("Only CSV files are allowed")
	if err.Error() != "Only CSV files are allowed" {
		t.Errorf("Error() = %q, want the raw message", err.Error())
	}
	if err.Message != "Only CSV files are allowed" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestWrap_PreservesExistingCode(t *testing.T) {
	wrapped := Wrap(DecodeError("not text"), "failed to parse CSV")
	if got := GetCode(wrapped); got != CodeDecodeError {
		t.Errorf("GetCode = %q, want %q", got, CodeDecodeError)
	}
	if wrapped.Error() != "failed to parse CSV: not text" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

func TestWrap_DefaultsToInternal(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("boom"), "stage failed")
	if got := GetCode(wrapped); got != CodeInternalError {
		t.Errorf("GetCode = %q, want %q", got, CodeInternalError)
	}
	if Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should stay nil")
	}
}

func TestWithCode_Overrides(t *testing.T) {
	err := WithCode(CodeDecodeError, fmt.Errorf("bad bytes"))
	if got := GetCode(err); got != CodeDecodeError {
		t.Errorf("GetCode = %q, want %q", got, CodeDecodeError)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "UNKNOWN" {
		t.Errorf("GetCode(plain) = %q, want UNKNOWN", got)
	}
}
