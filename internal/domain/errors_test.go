package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"document", DocumentError("corrupt pdf", nil), KindDocument},
		{"page limit", PageLimitError("file too large", nil), KindPageLimit},
		{"unknown standard", UnknownStandardError("no such standard", nil), KindUnknownStandard},
		{"evaluation", EvaluationError("model call failed", errors.New("timeout")), KindEvaluation},
		{"config", ConfigError("missing api key", nil), KindConfig},
		{"storage", StorageError("insert failed", nil), KindStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !IsKind(tt.err, tt.kind) {
				t.Errorf("IsKind(%v, %s) = false, want true", tt.err, tt.kind)
			}
			if IsKind(tt.err, "other") {
				t.Errorf("IsKind(%v, other) = true, want false", tt.err)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := EvaluationError("request failed", cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should find the wrapped cause in %v", err)
	}

	wrapped := fmt.Errorf("run aborted: %w", err)
	if !IsKind(wrapped, KindEvaluation) {
		t.Errorf("IsKind should see through fmt.Errorf wrapping for %v", wrapped)
	}
}

func TestErrorMessage(t *testing.T) {
	err := DocumentError("not a PDF", errors.New("bad magic"))
	want := "document: not a PDF: bad magic"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	bare := PageLimitError("too many pages", nil)
	if bare.Error() != "page_limit: too many pages" {
		t.Errorf("Error() = %q", bare.Error())
	}
}
