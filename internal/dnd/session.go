package dnd

import (
	"kanban-cli/internal/geom"
)

// Callbacks are the drop-target notifications. Any of them may be nil.
type Callbacks struct {
	OnDragEnter func(Payload)
	OnDragLeave func(Payload)
	OnDrop      func(Payload)
	OnDragOver  func(Payload)
}

// Registration describes one drop target. Bounds is nil until the target has been
// measured; an unmeasured target never matches a hit test.
type Registration struct {
	ID        string
	Bounds    *geom.Rect
	Padding   float64
	Callbacks Callbacks
}

type EventKind int

const (
	EventDragStart EventKind = iota
	EventDragEnter
	EventDragLeave
	EventDrop
	EventDragEnd
)

func (k EventKind) String() string {
	switch k {
	case EventDragStart:
		return "start"
	case EventDragEnter:
		return "enter"
	case EventDragLeave:
		return "leave"
	case EventDrop:
		return "drop"
	case EventDragEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Event is reported to the session observer on every drag transition.
type Event struct {
	Kind    EventKind
	Target  string
	Payload Payload
}

type entry struct {
	reg Registration
	seq uint64
}

// Session is the drag-and-drop provider: a registry of drop targets plus the state of
// the (single) active drag. Create one per independent drag surface and hand it to the
// Draggable and Droppable controllers under it.
type Session struct {
	droppables map[string]*entry
	nextSeq    uint64

	active   Payload
	dragging bool
	hovered  string
	epoch    uint64

	overlay      *Overlay
	translationX float64
	translationY float64

	offset   geom.Point
	observer func(Event)
}

func NewSession() *Session {
	return &Session{droppables: map[string]*entry{}}
}

// SetObserver installs fn to be called on drag transitions. Pass nil to remove it.
func (s *Session) SetObserver(fn func(Event)) { s.observer = fn }

func (s *Session) emit(kind EventKind, target string, p Payload) {
	if s.observer != nil {
		s.observer(Event{Kind: kind, Target: target, Payload: p})
	}
}

// SetOffset records the provider's own screen position. Overlay origins are kept
// relative to it.
func (s *Session) SetOffset(p geom.Point) { s.offset = p }

func (s *Session) Offset() geom.Point { return s.offset }

// RegisterDroppable inserts reg or merges it into an existing entry with the same id.
// Bounds already known for the id survive a re-registration that carries none.
func (s *Session) RegisterDroppable(reg Registration) {
	if reg.Bounds != nil {
		b := *reg.Bounds
		reg.Bounds = &b
	}
	if e, ok := s.droppables[reg.ID]; ok {
		if reg.Bounds == nil {
			reg.Bounds = e.reg.Bounds
		}
		e.reg = reg
		return
	}
	s.droppables[reg.ID] = &entry{reg: reg, seq: s.bumpSeq()}
}

func (s *Session) bumpSeq() uint64 {
	s.nextSeq++
	return s.nextSeq
}

// UnregisterDroppable removes id. If it was the hovered target of an active drag it
// receives a final OnDragLeave so hover state never dangles. Unknown ids are ignored.
func (s *Session) UnregisterDroppable(id string) {
	e, ok := s.droppables[id]
	if !ok {
		return
	}
	delete(s.droppables, id)
	if s.hovered != id {
		return
	}
	s.hovered = ""
	if s.dragging {
		p := s.active
		s.emit(EventDragLeave, id, p)
		if fn := e.reg.Callbacks.OnDragLeave; fn != nil {
			fn(p)
		}
	}
}

// UpdateDroppableLayout sets the hit-test bounds for id. An unknown id gets a
// bounds-only placeholder, since measurement may resolve before registration does.
func (s *Session) UpdateDroppableLayout(id string, r geom.Rect) {
	if e, ok := s.droppables[id]; ok {
		e.reg.Bounds = &r
		return
	}
	s.droppables[id] = &entry{reg: Registration{ID: id, Bounds: &r}, seq: s.bumpSeq()}
}

// Droppable returns a copy of the registration for id.
func (s *Session) Droppable(id string) (Registration, bool) {
	e, ok := s.droppables[id]
	if !ok {
		return Registration{}, false
	}
	reg := e.reg
	if reg.Bounds != nil {
		b := *reg.Bounds
		reg.Bounds = &b
	}
	return reg, true
}

func (s *Session) DroppableCount() int { return len(s.droppables) }

// StartDrag makes p the active payload and advances the measurement epoch so every
// droppable re-measures. It reports false, and changes nothing, while another drag
// is still active.
func (s *Session) StartDrag(p Payload) bool {
	if s.dragging {
		return false
	}
	s.active = p
	s.dragging = true
	s.hovered = ""
	s.epoch++
	s.emit(EventDragStart, "", p)
	return true
}

func (s *Session) ActiveDrag() (Payload, bool) {
	return s.active, s.dragging
}

func (s *Session) Dragging() bool { return s.dragging }

// HoveredID returns the hovered drop target, or "" when there is none.
func (s *Session) HoveredID() string { return s.hovered }

func (s *Session) IsHovered(id string) bool {
	return s.dragging && id != "" && s.hovered == id
}

func (s *Session) Epoch() uint64 { return s.epoch }

// hitTest returns the droppable containing p. When targets overlap the one with the
// smallest area wins; equal areas go to the earliest registered.
func (s *Session) hitTest(p geom.Point) *entry {
	var best *entry
	for _, e := range s.droppables {
		if !geom.ContainsPoint(p, e.reg.Bounds) {
			continue
		}
		if best == nil {
			best = e
			continue
		}
		a, b := e.reg.Bounds.Area(), best.reg.Bounds.Area()
		if a < b || (a == b && e.seq < best.seq) {
			best = e
		}
	}
	return best
}

// NotifyDragMove hit-tests the pointer at p. On a hover change the old target gets
// OnDragLeave and the new one OnDragEnter, in that order. The target under the
// pointer gets OnDragOver on every call. Without an active drag this is a no-op.
func (s *Session) NotifyDragMove(p geom.Point) {
	if !s.dragging {
		return
	}
	payload := s.active
	target := s.hitTest(p)
	nextID := ""
	if target != nil {
		nextID = target.reg.ID
	}

	if nextID != s.hovered {
		if prev, ok := s.droppables[s.hovered]; ok && s.hovered != "" {
			s.emit(EventDragLeave, prev.reg.ID, payload)
			if fn := prev.reg.Callbacks.OnDragLeave; fn != nil {
				fn(payload)
			}
		}
		if target != nil {
			s.emit(EventDragEnter, nextID, payload)
			if fn := target.reg.Callbacks.OnDragEnter; fn != nil {
				fn(payload)
			}
		}
		// A callback may have unregistered the new target.
		if _, ok := s.droppables[nextID]; ok {
			s.hovered = nextID
		} else {
			s.hovered = ""
		}
	}

	if target != nil && s.hovered == nextID {
		if fn := target.reg.Callbacks.OnDragOver; fn != nil {
			fn(payload)
		}
	}
}

// EndDrag finishes the active drag. A hovered target receives OnDrop followed by
// OnDragLeave. Active payload and hover are cleared either way; the returned id is
// the target that received the drop ("" for none). Calling it with no active drag
// does nothing.
//
// State is cleared before the callbacks run, so a drop handler may freely change
// the registry (including unregistering its own target).
func (s *Session) EndDrag() string {
	if !s.dragging {
		return ""
	}
	p := s.active
	targetID := s.hovered
	target := s.droppables[targetID]

	s.active = Payload{}
	s.dragging = false
	s.hovered = ""

	if targetID != "" && target != nil {
		s.emit(EventDrop, targetID, p)
		if fn := target.reg.Callbacks.OnDrop; fn != nil {
			fn(p)
		}
		s.emit(EventDragLeave, targetID, p)
		if fn := target.reg.Callbacks.OnDragLeave; fn != nil {
			fn(p)
		}
	} else {
		targetID = ""
	}
	s.emit(EventDragEnd, targetID, p)
	return targetID
}

// SetDragOverlay replaces the overlay. nil removes it.
func (s *Session) SetDragOverlay(ov *Overlay) {
	if ov == nil {
		s.overlay = nil
		s.translationX, s.translationY = 0, 0
		return
	}
	cp := *ov
	s.overlay = &cp
	s.translationX, s.translationY = ov.TranslationX, ov.TranslationY
}

// UpdateDragOverlayTranslation moves the overlay without replacing it. It runs at
// pointer-move rate.
func (s *Session) UpdateDragOverlayTranslation(dx, dy float64) {
	s.translationX, s.translationY = dx, dy
}

// Overlay returns the current overlay with its live translation applied.
func (s *Session) Overlay() (Overlay, bool) {
	if s.overlay == nil {
		return Overlay{}, false
	}
	ov := *s.overlay
	ov.TranslationX, ov.TranslationY = s.translationX, s.translationY
	return ov, true
}
