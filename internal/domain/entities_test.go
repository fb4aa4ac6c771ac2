package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorConstants(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"ErrInvalidArgument", ErrInvalidArgument, "invalid argument"},
		{"ErrNotFound", ErrNotFound, "not found"},
		{"ErrConflict", ErrConflict, "conflict"},
		{"ErrExtraction", ErrExtraction, "extraction failed"},
		{"ErrFeedbackGeneration", ErrFeedbackGeneration, "feedback generation failed"},
		{"ErrUpstreamTimeout", ErrUpstreamTimeout, "upstream timeout"},
		{"ErrInternal", ErrInternal, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Expected %s to be %q, got %q", tt.name, tt.expected, tt.err.Error())
			}
		})
	}
}

func TestErrorIs_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("op=feedback.Redeem: %w", ErrNotFound)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("expected wrapped error to match ErrNotFound")
	}
	if errors.Is(wrapped, ErrConflict) {
		t.Fatalf("wrapped ErrNotFound must not match ErrConflict")
	}
	if errors.Is(ErrExtraction, ErrFeedbackGeneration) {
		t.Fatalf("distinct sentinels must not match")
	}
}
