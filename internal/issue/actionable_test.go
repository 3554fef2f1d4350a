// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "resolve handler"},
			expected: "failed to resolve handler",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "resolve handler", Resource: "video/mp4"},
			expected: "failed to resolve handler: video/mp4",
		},
		{
			name:     "full context",
			err:      &ActionableError{Operation: "set default", Resource: "mpv.desktop", Cause: errors.New("not installed")},
			expected: "failed to set default: mpv.desktop: not installed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	root := errors.New("permission denied")
	err := &ActionableError{
		Operation:   "save mimeapps.list",
		Suggestions: []string{"Check file permissions"},
		Cause:       fmt.Errorf("open: %w", root),
	}

	short := err.Format(false)
	if !strings.Contains(short, "  • Check file permissions") {
		t.Errorf("Format(false) missing suggestion:\n%s", short)
	}
	if strings.Contains(short, "Error chain") {
		t.Error("Format(false) should not include the error chain")
	}

	long := err.Format(true)
	for _, want := range []string{"Error chain:", "1. open: permission denied", "2. permission denied"} {
		if !strings.Contains(long, want) {
			t.Errorf("Format(true) missing %q:\n%s", want, long)
		}
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	ctx := NewErrorContext().
		WithOperation("launch handler").
		WithResource("mpv.desktop").
		WithSuggestion("one").
		WithSuggestion("two").
		WithIssue(LaunchFailedId).
		Wrap(cause)

	ae := ctx.Build()
	if ae.Operation != "launch handler" || ae.Resource != "mpv.desktop" || ae.Issue != LaunchFailedId {
		t.Errorf("Build() = %+v", ae)
	}
	if len(ae.Suggestions) != 2 {
		t.Errorf("Suggestions = %v", ae.Suggestions)
	}
	if !errors.Is(ae, cause) {
		t.Error("built error should wrap its cause")
	}

	ctx.WithSuggestion("three")
	if len(ae.Suggestions) != 2 {
		t.Error("builder mutations must not leak into built errors")
	}
}

func TestErrorContext_BuildError_NoOperation(t *testing.T) {
	t.Parallel()

	if err := NewErrorContext().Wrap(errors.New("x")).BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}
	err := WrapWithContext(errors.New("x"), "op", "res")
	if err.Error() != "failed to op: res: x" {
		t.Errorf("Error() = %q", err.Error())
	}
}
