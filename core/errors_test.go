package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"exact", ErrNotFound, true},
		{"wrapped", fmt.Errorf("lookup /x: %w", ErrNotFound), true},
		{"different", errors.New("some other error"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.want {
				t.Errorf("IsNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestConstructionError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := fmt.Errorf("start: %w", &ConstructionError{Component: "page renderer", Err: cause})

	if !IsConstructionError(err) {
		t.Error("expected wrapped ConstructionError to be detected")
	}
	if !errors.Is(err, cause) {
		t.Error("expected the cause to be reachable through Unwrap")
	}
	if got, want := err.Error(), "start: blog: construct page renderer: unexpected EOF"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if IsConstructionError(cause) {
		t.Error("plain errors are not construction errors")
	}
}
