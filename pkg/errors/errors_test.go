package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidParameter, "gp must be >= 2, got %d", 1)
	if err.Code != ErrCodeInvalidParameter {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidParameter)
	}
	if err.Message != "gp must be >= 2, got 1" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Error("New should not set a cause")
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "write %s", "coords.csv")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	want := "INTERNAL_ERROR: write coords.csv: disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeZeroRotation, "curved segment requires nonzero rotation")

	if !Is(err, ErrCodeZeroRotation) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is should not match plain errors")
	}

	// Code survives wrapping with fmt.Errorf.
	wrapped := fmt.Errorf("pipeline: %w", err)
	if !Is(wrapped, ErrCodeZeroRotation) {
		t.Error("Is should unwrap fmt.Errorf chains")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeShapeMismatch, "x")); got != ErrCodeShapeMismatch {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeShapeMismatch)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidRange, "lengths.low > lengths.high")
	if got := UserMessage(err); got != "lengths.low > lengths.high" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestValidateExporterName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"csv", false},
		{"ucd", false},
		{"geojson", false},
		{"", true},
		{"CSV", true},
		{"c/sv", true},
	}
	for _, tt := range tests {
		err := ValidateExporterName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateExporterName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidateSavePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"gen", false},
		{"out/rivers", false},
		{"", true},
		{"../escape", true},
		{"bad\x00path", true},
	}
	for _, tt := range tests {
		err := ValidateSavePath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSavePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}
