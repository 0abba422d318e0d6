package dnd

import (
	"fmt"
	"time"

	"kanban-cli/internal/geom"
)

type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerMove
	PointerRelease
	// PointerCancel is reported when the host aborts the gesture (focus loss, the
	// pointer leaving the window). It ends a drag exactly like a release.
	PointerCancel
)

func (k PointerKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerMove:
		return "move"
	case PointerRelease:
		return "release"
	case PointerCancel:
		return "cancel"
	default:
		return fmt.Sprintf("pointer(%d)", int(k))
	}
}

// PointerEvent is one sample of the pointer stream in screen coordinates.
type PointerEvent struct {
	Kind PointerKind
	Pos  geom.Point
	At   time.Time
}

// Measurer reports the current on-screen bounds of a host element by id.
// ok is false while the element has not been laid out (or measured) yet.
type Measurer interface {
	Measure(id string) (r geom.Rect, ok bool)
}

type MeasureFunc func(id string) (geom.Rect, bool)

func (f MeasureFunc) Measure(id string) (geom.Rect, bool) { return f(id) }
