package dnd

import (
	"testing"

	"kanban-cli/internal/geom"
)

// layoutHost is a Measurer whose answers can change between calls, like a real
// layout that is only known after rendering.
type layoutHost struct {
	rects map[string]geom.Rect
	calls int
}

func (h *layoutHost) Measure(id string) (geom.Rect, bool) {
	h.calls++
	r, ok := h.rects[id]
	return r, ok
}

func TestDroppable_MountBeforeMeasurementIsUnmeasured(t *testing.T) {
	s := NewSession()
	host := &layoutHost{rects: map[string]geom.Rect{}}
	d := NewDroppable(s, host, DroppableConfig{ID: "list-a"})
	d.Mount()

	reg, ok := s.Droppable("list-a")
	if !ok {
		t.Fatalf("expected registration on mount")
	}
	if reg.Bounds != nil {
		t.Fatalf("expected no bounds before layout, got %v", *reg.Bounds)
	}

	host.rects["list-a"] = geom.Rect{X: 0, Y: 0, W: 10, H: 10}
	if !d.Sync() {
		t.Fatalf("expected Sync to retry an unmeasured target")
	}
	reg, _ = s.Droppable("list-a")
	if reg.Bounds == nil {
		t.Fatalf("expected bounds after layout resolved")
	}
}

func TestDroppable_PaddingExpandsBounds(t *testing.T) {
	s := NewSession()
	host := &layoutHost{rects: map[string]geom.Rect{"z": {X: 10, Y: 10, W: 5, H: 5}}}
	d := NewDroppable(s, host, DroppableConfig{ID: "z", Padding: 2})
	d.Mount()

	got, ok := d.Bounds()
	if !ok || got != (geom.Rect{X: 8, Y: 8, W: 9, H: 9}) {
		t.Fatalf("bounds=%v ok=%v", got, ok)
	}
	s.StartDrag(NewPayload("1", nil))
	s.NotifyDragMove(geom.Pt(8, 8))
	if !d.Active() {
		t.Fatalf("expected padded edge to hover the target")
	}
}

func TestDroppable_EpochForcesRemeasure(t *testing.T) {
	s := NewSession()
	host := &layoutHost{rects: map[string]geom.Rect{"z": {X: 0, Y: 0, W: 5, H: 5}}}
	d := NewDroppable(s, host, DroppableConfig{ID: "z"})
	d.Mount()

	if d.Sync() {
		t.Fatalf("expected no re-measure without an epoch change")
	}

	// The zone scrolled without a layout event.
	host.rects["z"] = geom.Rect{X: 100, Y: 0, W: 5, H: 5}
	s.StartDrag(NewPayload("1", nil))
	if !d.Sync() {
		t.Fatalf("expected re-measure after drag start")
	}
	s.NotifyDragMove(geom.Pt(102, 2))
	if s.HoveredID() != "z" {
		t.Fatalf("expected hit on re-measured bounds")
	}
}

func TestDroppable_SetCallbacksKeepsBounds(t *testing.T) {
	s := NewSession()
	host := &layoutHost{rects: map[string]geom.Rect{"z": {X: 0, Y: 0, W: 5, H: 5}}}
	d := NewDroppable(s, host, DroppableConfig{ID: "z"})
	d.Mount()

	delete(host.rects, "z")
	dropped := ""
	d.SetCallbacks(Callbacks{OnDrop: func(p Payload) { dropped = p.ID }})

	s.StartDrag(NewPayload("task-9", nil))
	s.NotifyDragMove(geom.Pt(1, 1))
	s.EndDrag()
	if dropped != "task-9" {
		t.Fatalf("expected drop through refreshed callbacks, got %q", dropped)
	}
}

func TestDroppable_UnmountWhileHoveredLeaves(t *testing.T) {
	s := NewSession()
	host := &layoutHost{rects: map[string]geom.Rect{"z": {X: 0, Y: 0, W: 5, H: 5}}}
	left := 0
	d := NewDroppable(s, host, DroppableConfig{ID: "z", Callbacks: Callbacks{OnDragLeave: func(Payload) { left++ }}})
	d.Mount()
	s.StartDrag(NewPayload("1", nil))
	s.NotifyDragMove(geom.Pt(1, 1))

	d.Unmount()
	d.Unmount()
	if left != 1 || s.HoveredID() != "" || d.Mounted() {
		t.Fatalf("left=%d hover=%q mounted=%v", left, s.HoveredID(), d.Mounted())
	}
}

func TestDroppable_NilSessionPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errorsIs(err, ErrNoProvider) {
			t.Fatalf("expected ErrNoProvider panic, got %v", r)
		}
	}()
	NewDroppable(nil, nil, DroppableConfig{ID: "z"})
}
