package common

import (
	"context"
	"testing"
)

func TestCorrelationID_RoundTrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "req-123")

	id, ok := CorrelationID(ctx)
	if !ok {
		t.Fatal("Expected correlation ID to be present")
	}
	if id != "req-123" {
		t.Errorf("CorrelationID = %q, want %q", id, "req-123")
	}
}

func TestCorrelationID_Absent(t *testing.T) {
	if id, ok := CorrelationID(context.Background()); ok {
		t.Errorf("Expected no correlation ID on a fresh context, got %q", id)
	}
}

func TestCorrelationID_ChildOverridesParent(t *testing.T) {
	parent := WithCorrelationID(context.Background(), "req-parent")
	child := WithCorrelationID(parent, "req-child")

	id, _ := CorrelationID(child)
	if id != "req-child" {
		t.Errorf("CorrelationID = %q, want the child's ID", id)
	}

	// The parent context keeps its own ID.
	id, _ = CorrelationID(parent)
	if id != "req-parent" {
		t.Errorf("CorrelationID = %q, want the parent's ID", id)
	}
}
