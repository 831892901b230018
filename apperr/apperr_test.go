package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestError_MessageIncludesOpAndCause(t *testing.T) {
	err := Connection("Timeout occurred", context.DeadlineExceeded).WithOp("fetch")

	msg := err.Error()
	if !strings.HasPrefix(msg, "fetch: Timeout occurred") {
		t.Errorf("unexpected message prefix: %q", msg)
	}
	if !strings.Contains(msg, context.DeadlineExceeded.Error()) {
		t.Errorf("message should mention the cause, got %q", msg)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("errors.Is should see the wrapped cause")
	}
}

func TestIs_SeesThroughWrapping(t *testing.T) {
	base := NotFound("No garage was found with id - x")
	wrapped := fmt.Errorf("lookup: %w", base)

	if !Is(wrapped, KindNotFound) {
		t.Error("wrapped not found error should classify as KindNotFound")
	}
	if Is(wrapped, KindData) {
		t.Error("wrapped not found error should not classify as KindData")
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Error("plain errors should classify as KindUnknown")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindConnection, http.StatusBadGateway},
		{KindData, http.StatusBadGateway},
		{KindNotFound, http.StatusNotFound},
		{KindValidation, http.StatusBadRequest},
		{KindUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := New(tt.kind, "x").HTTPStatus(); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestWithDetails(t *testing.T) {
	details := map[string]string{"Content-Type": "text/html"}
	err := Data("Unexpected content type").WithDetails(details)

	got, ok := err.Details.(map[string]string)
	if !ok || got["Content-Type"] != "text/html" {
		t.Fatalf("details not preserved: %#v", err.Details)
	}
}
