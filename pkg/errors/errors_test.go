package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeSchema, "no element labelled %q", "GBug")

	if err.Code != ErrCodeSchema {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeSchema)
	}

	if err.Message != `no element labelled "GBug"` {
		t.Errorf("Message = %v, want %v", err.Message, `no element labelled "GBug"`)
	}

	expected := `SCHEMA_VIOLATION: no element labelled "GBug"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrCodeRasterize, cause, "rsvg-convert failed")

	if err.Code != ErrCodeRasterize {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRasterize)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodePivotNotFound, "test"),
			code:     ErrCodePivotNotFound,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodePivotNotFound, "test"),
			code:     ErrCodeProtocol,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeSchema, New(ErrCodePivotNotFound, "inner"), "outer"),
			code:     ErrCodeSchema,
			expected: true,
		},
		{
			name:     "inner code of nested wrap",
			err:      Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidFormat, "gif"), "render.format"),
			code:     ErrCodeInvalidFormat,
			expected: true,
		},
		{
			name:     "behind fmt.Errorf",
			err:      fmt.Errorf("template beetle.svg: %w", New(ErrCodeMissingChild, "inner")),
			code:     ErrCodeMissingChild,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeSchema,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeSchema,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeMissingChild, "test"), ErrCodeMissingChild},
		{"outermost wins", Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidFormat, "gif"), "render.format"), ErrCodeInvalidConfig},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsSchema(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeSchema, "x"), true},
		{New(ErrCodePivotNotFound, "x"), true},
		{New(ErrCodeMissingChild, "x"), true},
		{New(ErrCodeRasterize, "x"), false},
		{errors.New("plain"), false},
	}

	for _, tt := range tests {
		if got := IsSchema(tt.err); got != tt.want {
			t.Errorf("IsSchema(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
