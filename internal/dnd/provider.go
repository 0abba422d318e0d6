package dnd

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoProvider means a drag-and-drop component was wired without a Session.
// It is raised as a panic: it is a structural bug, not a runtime condition.
var ErrNoProvider = errors.New("dnd: component used outside a drag-and-drop provider")

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s as the active provider.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// MustFromContext returns the provider session carried by ctx and panics with
// ErrNoProvider if there is none.
func MustFromContext(ctx context.Context) *Session {
	s, ok := FromContext(ctx)
	if !ok {
		panic(ErrNoProvider)
	}
	return s
}

func mustSession(s *Session, kind, id string) *Session {
	if s == nil {
		panic(fmt.Errorf("%s %q: %w", kind, id, ErrNoProvider))
	}
	return s
}
