package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "Unknown"},
		{KindInvalidArgument, "InvalidArgument"},
		{KindSourceOpen, "SourceOpenFailure"},
		{KindSourceStat, "SourceStatFailure"},
		{KindDestinationOpen, "DestinationOpenFailure"},
		{KindRead, "ReadFailure"},
		{KindWrite, "WriteFailure"},
		{KindVerify, "VerifyFailure"},
		{ErrorKind(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestCopyErrorWrapping(t *testing.T) {
	t.Parallel()

	underlying := errors.New("disk on fire")
	err := fmt.Errorf("outer: %w", newCopyError(KindWrite, "write", "/tmp/out", underlying))

	if KindOf(err) != KindWrite {
		t.Errorf("KindOf(wrapped) = %v, want %v", KindOf(err), KindWrite)
	}

	if !errors.Is(err, underlying) {
		t.Errorf("errors.Is did not reach the underlying error")
	}

	msg := err.Error()
	for _, part := range []string{"WriteFailure", "write", "/tmp/out", "disk on fire"} {
		if !strings.Contains(msg, part) {
			t.Errorf("error message %q missing %q", msg, part)
		}
	}

	if KindOf(errors.New("plain")) != KindUnknown {
		t.Errorf("KindOf(plain error) should be KindUnknown")
	}

	if KindOf(nil) != KindUnknown {
		t.Errorf("KindOf(nil) should be KindUnknown")
	}
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	handler := NewErrorHandler(2)
	if handler.HasErrors() {
		t.Fatal("new handler reports errors")
	}

	handler.AddError(nil)
	handler.AddError(newCopyError(KindRead, "read", "a", errors.New("x")))
	handler.AddError(newCopyError(KindWrite, "write", "b", errors.New("y")))
	handler.AddError(errors.New("untyped"))

	errs := handler.GetErrors()
	if len(errs) != 2 {
		t.Fatalf("GetErrors() returned %d errors, want 2 after eviction", len(errs))
	}

	if errs[0].Kind != KindWrite || errs[1].Kind != KindUnknown {
		t.Errorf("kinds = %v, %v, want WriteFailure then Unknown", errs[0].Kind, errs[1].Kind)
	}

	summary := handler.GetSummary()
	if summary[KindWrite] != 1 || summary[KindUnknown] != 1 || summary[KindRead] != 0 {
		t.Errorf("GetSummary() = %v", summary)
	}

	if NewErrorHandler(0).maxErrors != 1000 {
		t.Errorf("default maxErrors not applied")
	}
}
