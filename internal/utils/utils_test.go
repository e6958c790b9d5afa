package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{name: "shorter than limit", input: "hello", limit: 10, expected: "hello"},
		{name: "exactly at limit", input: "hello", limit: 5, expected: "hello"},
		{name: "truncated with ellipsis", input: "hello world", limit: 5, expected: "hello..."},
		{name: "surrounding whitespace trimmed", input: "  hello  ", limit: 10, expected: "hello"},
		{name: "zero limit", input: "hello", limit: 0, expected: ""},
		{name: "negative limit", input: "hello", limit: -1, expected: ""},
		{name: "multibyte runes", input: "привет мир", limit: 6, expected: "привет..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expected {
				t.Fatalf("TruncateForLog(%q, %d) = %q, expected %q", tt.input, tt.limit, got, tt.expected)
			}
		})
	}
}

func TestWaitFor(t *testing.T) {
	t.Parallel()

	t.Run("zero duration returns immediately", func(t *testing.T) {
		t.Parallel()
		if err := WaitFor(context.Background(), 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("completes after the duration", func(t *testing.T) {
		t.Parallel()
		if err := WaitFor(context.Background(), time.Millisecond); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("canceled context interrupts the wait", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := WaitFor(ctx, time.Minute)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}
