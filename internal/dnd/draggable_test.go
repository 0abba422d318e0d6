package dnd

import (
	"testing"
	"time"

	"kanban-cli/internal/geom"
)

var t0 = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

func ev(kind PointerKind, x, y float64, ms int) PointerEvent {
	return PointerEvent{Kind: kind, Pos: geom.Pt(x, y), At: at(ms)}
}

func staticMeasurer(rects map[string]geom.Rect) Measurer {
	return MeasureFunc(func(id string) (geom.Rect, bool) {
		r, ok := rects[id]
		return r, ok
	})
}

type dragLog struct {
	starts, ends int
	drags        []geom.Point
	drops        []string
}

func newTestDraggable(s *Session, m Measurer, cfg DraggableConfig, log *dragLog) *Draggable {
	cfg.OnDragStart = func(Payload) { log.starts++ }
	cfg.OnDragEnd = func(Payload) { log.ends++ }
	cfg.OnDrag = func(p geom.Point) { log.drags = append(log.drags, p) }
	cfg.OnDrop = func(_ Payload, target string) { log.drops = append(log.drops, target) }
	return NewDraggable(s, m, cfg)
}

func TestDraggable_LongPressThenMoveStartsDrag(t *testing.T) {
	s := NewSession()
	s.RegisterDroppable(Registration{ID: "list-b", Bounds: rectPtr(40, 0, 20, 20)})
	m := staticMeasurer(map[string]geom.Rect{"card": {X: 2, Y: 3, W: 10, H: 2}})
	log := &dragLog{}
	d := newTestDraggable(s, m, DraggableConfig{ID: "card", Payload: NewPayload("task-1", nil), Content: func() string { return "Task 1" }}, log)

	d.Handle(ev(PointerPress, 5, 4, 0))
	if d.State() != StateIdle {
		t.Fatalf("expected idle right after press, got %s", d.State())
	}
	if !d.Arm(at(250)) || d.State() != StatePressing {
		t.Fatalf("expected pressing after long press, got %s", d.State())
	}

	if !d.Handle(ev(PointerMove, 45, 6, 260)) {
		t.Fatalf("expected move to be consumed by the drag")
	}
	if d.State() != StateDragging || !s.Dragging() {
		t.Fatalf("expected dragging, got %s", d.State())
	}
	if log.starts != 1 {
		t.Fatalf("expected one drag start, got %d", log.starts)
	}
	if s.HoveredID() != "list-b" {
		t.Fatalf("expected hover on list-b, got %q", s.HoveredID())
	}
	ov, ok := s.Overlay()
	if !ok {
		t.Fatalf("expected overlay while dragging")
	}
	if ov.OriginX != 2 || ov.OriginY != 3 || ov.W != 10 || ov.H != 2 || ov.Content != "Task 1" {
		t.Fatalf("unexpected overlay seed %+v", ov)
	}
	if ov.TranslationX != 40 || ov.TranslationY != 2 {
		t.Fatalf("unexpected overlay translation %+v", ov)
	}

	if !d.Handle(ev(PointerRelease, 45, 6, 300)) {
		t.Fatalf("expected release to be consumed")
	}
	if d.State() != StateIdle || s.Dragging() {
		t.Fatalf("expected idle after release")
	}
	if log.ends != 1 || len(log.drops) != 1 || log.drops[0] != "list-b" {
		t.Fatalf("unexpected end/drop log %+v", log)
	}
	if _, ok := s.Overlay(); ok {
		t.Fatalf("expected overlay cleared")
	}
}

func TestDraggable_LazyArmOnLateMove(t *testing.T) {
	s := NewSession()
	log := &dragLog{}
	d := newTestDraggable(s, nil, DraggableConfig{ID: "card", Payload: NewPayload("1", nil)}, log)

	d.Handle(ev(PointerPress, 0, 0, 0))
	if !d.Handle(ev(PointerMove, 3, 0, 400)) {
		t.Fatalf("expected a late first move to start the drag")
	}
	if log.starts != 1 {
		t.Fatalf("expected drag start")
	}
}

func TestDraggable_EarlyMoveAbortsGesture(t *testing.T) {
	s := NewSession()
	log := &dragLog{}
	d := newTestDraggable(s, nil, DraggableConfig{ID: "card", Payload: NewPayload("1", nil)}, log)

	d.Handle(ev(PointerPress, 0, 0, 0))
	if d.Handle(ev(PointerMove, 3, 0, 50)) {
		t.Fatalf("expected an early move not to start a drag")
	}
	if d.Pending() || d.State() != StateIdle || s.Dragging() {
		t.Fatalf("expected gesture to be dropped")
	}
	// Later moves do not revive it.
	if d.Handle(ev(PointerMove, 4, 0, 500)) {
		t.Fatalf("expected no drag without a new press")
	}
	if log.starts != 0 {
		t.Fatalf("expected no drag start")
	}
}

func TestDraggable_ReleaseWhilePressingLeavesSessionAlone(t *testing.T) {
	s := NewSession()
	epoch := s.Epoch()
	log := &dragLog{}
	d := newTestDraggable(s, nil, DraggableConfig{ID: "card", Payload: NewPayload("1", nil)}, log)

	d.Handle(ev(PointerPress, 0, 0, 0))
	d.Arm(at(300))
	if d.Handle(ev(PointerCancel, 0, 0, 310)) {
		t.Fatalf("expected cancel while pressing not to be consumed")
	}
	if d.State() != StateIdle || s.Epoch() != epoch || log.starts+log.ends != 0 {
		t.Fatalf("expected no session interaction")
	}
}

func TestDraggable_CancelWhileDraggingStillDrops(t *testing.T) {
	rec := &recorder{}
	s := NewSession()
	s.RegisterDroppable(Registration{ID: "A", Bounds: rectPtr(0, 0, 50, 50), Callbacks: rec.callbacks("A")})
	log := &dragLog{}
	d := newTestDraggable(s, nil, DraggableConfig{ID: "card", Payload: NewPayload("1", nil)}, log)

	d.Handle(ev(PointerPress, 60, 60, 0))
	d.Handle(ev(PointerMove, 10, 10, 300))
	d.Handle(ev(PointerCancel, 10, 10, 320))

	if got := rec.withoutOver(); len(got) != 3 || got[1] != "A:drop" || got[2] != "A:leave" {
		t.Fatalf("expected cancel to drop like a release, got %v", got)
	}
}

func TestDraggable_AxisConstraint(t *testing.T) {
	for _, tc := range []struct {
		axis Axis
		want geom.Point
	}{
		{AxisBoth, geom.Pt(7, 4)},
		{AxisX, geom.Pt(7, 0)},
		{AxisY, geom.Pt(0, 4)},
	} {
		s := NewSession()
		log := &dragLog{}
		d := newTestDraggable(s, nil, DraggableConfig{ID: "c", Payload: NewPayload("1", nil), Axis: tc.axis}, log)
		d.Handle(ev(PointerPress, 10, 10, 0))
		d.Handle(ev(PointerMove, 17, 14, 300))
		if d.Translation() != tc.want {
			t.Fatalf("axis %d: translation=%v, want %v", tc.axis, d.Translation(), tc.want)
		}
		ov, _ := s.Overlay()
		if ov.TranslationX != tc.want.X || ov.TranslationY != tc.want.Y {
			t.Fatalf("axis %d: overlay translation=(%v,%v)", tc.axis, ov.TranslationX, ov.TranslationY)
		}
	}
}

func TestDraggable_ClampsToBoundsRegion(t *testing.T) {
	s := NewSession()
	entered := 0
	s.RegisterDroppable(Registration{
		ID:        "wall",
		Bounds:    rectPtr(30, 0, 100, 100),
		Callbacks: Callbacks{OnDragEnter: func(Payload) { entered++ }},
	})
	m := staticMeasurer(map[string]geom.Rect{"region": {X: 0, Y: 0, W: 20, H: 20}})
	log := &dragLog{}
	d := newTestDraggable(s, m, DraggableConfig{ID: "c", Payload: NewPayload("1", nil), BoundsID: "region"}, log)

	d.Handle(ev(PointerPress, 10, 10, 0))
	d.Handle(ev(PointerMove, 80, 15, 300))

	// Pointer clamped to x=20: translation 10 instead of 70.
	if d.Translation() != geom.Pt(10, 5) {
		t.Fatalf("translation=%v, want (10,5)", d.Translation())
	}
	if entered != 0 {
		t.Fatalf("expected clamped pointer not to reach targets outside the region")
	}
}

func TestDraggable_NoRegionNoClamp(t *testing.T) {
	s := NewSession()
	log := &dragLog{}
	d := newTestDraggable(s, nil, DraggableConfig{ID: "c", Payload: NewPayload("1", nil), BoundsID: "missing"}, log)
	d.Handle(ev(PointerPress, 0, 0, 0))
	d.Handle(ev(PointerMove, 500, -20, 300))
	if d.Translation() != geom.Pt(500, -20) {
		t.Fatalf("translation=%v", d.Translation())
	}
}

func TestDraggable_TapGuardAfterDrag(t *testing.T) {
	s := NewSession()
	log := &dragLog{}
	d := newTestDraggable(s, nil, DraggableConfig{ID: "c", Payload: NewPayload("1", nil)}, log)
	if d.SuppressTap(at(0)) {
		t.Fatalf("expected no suppression before any drag")
	}
	d.Handle(ev(PointerPress, 0, 0, 0))
	d.Handle(ev(PointerMove, 1, 1, 300))
	d.Handle(ev(PointerRelease, 1, 1, 400))

	if !d.SuppressTap(at(450)) {
		t.Fatalf("expected tap inside guard window to be suppressed")
	}
	if d.SuppressTap(at(520)) {
		t.Fatalf("expected tap after guard window to pass")
	}
}

func TestDraggable_SecondDragWhileActiveIsRejected(t *testing.T) {
	s := NewSession()
	logA, logB := &dragLog{}, &dragLog{}
	a := newTestDraggable(s, nil, DraggableConfig{ID: "a", Payload: NewPayload("a", nil)}, logA)
	b := newTestDraggable(s, nil, DraggableConfig{ID: "b", Payload: NewPayload("b", nil)}, logB)

	a.Handle(ev(PointerPress, 0, 0, 0))
	a.Handle(ev(PointerMove, 1, 1, 300))
	b.Handle(ev(PointerPress, 0, 0, 0))
	if b.Handle(ev(PointerMove, 1, 1, 300)) {
		t.Fatalf("expected second drag to be refused")
	}
	if p, _ := s.ActiveDrag(); p.ID != "a" || logB.starts != 0 {
		t.Fatalf("expected first drag to remain active")
	}
}

func TestDraggable_OverlayOriginRelativeToOffset(t *testing.T) {
	s := NewSession()
	s.SetOffset(geom.Pt(2, 1))
	m := staticMeasurer(map[string]geom.Rect{"c": {X: 10, Y: 10, W: 4, H: 1}})
	d := newTestDraggable(s, m, DraggableConfig{ID: "c", Payload: NewPayload("1", nil)}, &dragLog{})
	d.Handle(ev(PointerPress, 10, 10, 0))
	d.Handle(ev(PointerMove, 10, 10, 300))
	ov, _ := s.Overlay()
	if ov.OriginX != 8 || ov.OriginY != 9 {
		t.Fatalf("unexpected origin (%v,%v)", ov.OriginX, ov.OriginY)
	}
}
