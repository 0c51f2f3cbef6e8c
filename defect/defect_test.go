package defect

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("render: %w", New("layout", "page %d has no lines", 3))
	if !errors.Is(err, ErrStructural) {
		t.Fatalf("expected errors.Is to match ErrStructural")
	}
	if !Is(err) {
		t.Fatalf("expected Is to report a defect")
	}
	var de *Error
	if !errors.As(err, &de) {
		t.Fatalf("expected errors.As to find *Error")
	}
	if de.Location.Component != "layout" {
		t.Fatalf("component = %q", de.Location.Component)
	}
}

func TestErrorMessage(t *testing.T) {
	err := AtObject("serializer", 4, 120, "offset mismatch")
	msg := err.Error()
	for _, want := range []string{"structural defect", "serializer obj 4 @120", "offset mismatch"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing %q", msg, want)
		}
	}
	if Is(errors.New("other")) {
		t.Fatalf("plain error must not be a defect")
	}
}
