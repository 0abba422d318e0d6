package dnd

import (
	"context"
	"errors"
	"testing"
)

func errorsIs(err, target error) bool { return errors.Is(err, target) }

func TestMustFromContext_PanicsWithoutProvider(t *testing.T) {
	defer func() {
		if r := recover(); r != ErrNoProvider {
			t.Fatalf("expected ErrNoProvider, got %v", r)
		}
	}()
	MustFromContext(context.Background())
}

func TestFromContext_RoundTrip(t *testing.T) {
	s := NewSession()
	ctx := NewContext(context.Background(), s)
	got, ok := FromContext(ctx)
	if !ok || got != s {
		t.Fatalf("expected the provider session back")
	}
	if MustFromContext(ctx) != s {
		t.Fatalf("expected MustFromContext to return the session")
	}
}

func TestNewDraggable_NilSessionPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNoProvider) {
			t.Fatalf("expected ErrNoProvider panic, got %v", r)
		}
	}()
	NewDraggable(nil, nil, DraggableConfig{ID: "card"})
}

func TestPayload_FieldsAreCopied(t *testing.T) {
	fields := map[string]any{"listId": "list-1"}
	p := NewPayload("task-1", fields)
	fields["listId"] = "changed"
	if p.String("listId") != "list-1" {
		t.Fatalf("expected payload to be immutable, got %q", p.String("listId"))
	}
	if _, ok := p.Field("missing"); ok {
		t.Fatalf("expected missing field")
	}
}
