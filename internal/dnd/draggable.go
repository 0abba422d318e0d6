package dnd

import (
	"time"

	"kanban-cli/internal/geom"
)

const (
	DefaultLongPress = 200 * time.Millisecond
	DefaultTapGuard  = 100 * time.Millisecond
)

type Axis int

const (
	AxisBoth Axis = iota
	AxisX
	AxisY
)

func ParseAxis(s string) Axis {
	switch s {
	case "x", "horizontal":
		return AxisX
	case "y", "vertical":
		return AxisY
	default:
		return AxisBoth
	}
}

type DragState int

const (
	StateIdle DragState = iota
	StatePressing
	StateDragging
)

func (s DragState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePressing:
		return "pressing"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

type DraggableConfig struct {
	// ID is the host element to measure when the drag starts.
	ID      string
	Payload Payload
	Axis    Axis
	// BoundsID optionally names a host element the pointer is clamped to.
	BoundsID string

	LongPress time.Duration
	TapGuard  time.Duration

	// Content renders the overlay proxy. It is called once per drag.
	Content func() string

	OnDragStart func(Payload)
	OnDrag      func(translation geom.Point)
	OnDragEnd   func(Payload)
	// OnDrop fires on the draggable side before the session finalizes, with the
	// hovered target id ("" when released over nothing).
	OnDrop func(p Payload, targetID string)
}

// Draggable turns a pointer stream into drag-session transitions for one item.
//
//	Idle --held >= LongPress--> Pressing --first move--> Dragging --release/cancel--> Idle
//
// A move before the press is armed aborts the gesture; so does a release while
// Pressing, without touching the session.
type Draggable struct {
	s   *Session
	m   Measurer
	cfg DraggableConfig

	state   DragState
	pressed bool
	pressAt time.Time
	start   geom.Point

	region      *geom.Rect
	translation geom.Point
	endedAt     time.Time
}

// NewDraggable binds a draggable to s. It panics with ErrNoProvider when s is nil.
func NewDraggable(s *Session, m Measurer, cfg DraggableConfig) *Draggable {
	mustSession(s, "draggable", cfg.ID)
	if cfg.LongPress <= 0 {
		cfg.LongPress = DefaultLongPress
	}
	if cfg.TapGuard <= 0 {
		cfg.TapGuard = DefaultTapGuard
	}
	if m == nil {
		m = MeasureFunc(func(string) (geom.Rect, bool) { return geom.Rect{}, false })
	}
	return &Draggable{s: s, m: m, cfg: cfg}
}

func (d *Draggable) ID() string { return d.cfg.ID }

func (d *Draggable) Payload() Payload { return d.cfg.Payload }

func (d *Draggable) State() DragState { return d.state }

func (d *Draggable) Dragging() bool { return d.state == StateDragging }

// Pending reports whether a press is being tracked (armed or not).
func (d *Draggable) Pending() bool { return d.pressed }

func (d *Draggable) Translation() geom.Point { return d.translation }

// Handle feeds one pointer sample. It reports true when the event belongs to an
// active drag and should not be handled as anything else by the host.
func (d *Draggable) Handle(ev PointerEvent) bool {
	switch ev.Kind {
	case PointerPress:
		if d.state == StateDragging {
			return true
		}
		d.pressed = true
		d.pressAt = ev.At
		d.start = ev.Pos
		d.state = StateIdle
		return false

	case PointerMove:
		if !d.pressed {
			return false
		}
		if d.state == StateIdle {
			if !d.Arm(ev.At) {
				d.reset()
				return false
			}
		}
		if d.state == StatePressing {
			if !d.begin() {
				d.reset()
				return false
			}
		}
		d.move(ev.Pos)
		return true

	case PointerRelease, PointerCancel:
		if d.state == StateDragging {
			d.finish(ev.At)
			return true
		}
		d.reset()
		return false
	}
	return false
}

// Arm moves a held press to Pressing once it has lasted LongPress. Hosts call it
// from a timer; Handle also calls it lazily when the next sample arrives.
func (d *Draggable) Arm(now time.Time) bool {
	if !d.pressed {
		return false
	}
	if d.state != StateIdle {
		return true
	}
	if now.Sub(d.pressAt) < d.cfg.LongPress {
		return false
	}
	d.state = StatePressing
	return true
}

// SuppressTap reports whether a tap at now is the tail of a drag that just ended.
func (d *Draggable) SuppressTap(now time.Time) bool {
	if d.endedAt.IsZero() {
		return false
	}
	return now.Sub(d.endedAt) < d.cfg.TapGuard
}

func (d *Draggable) begin() bool {
	origin, ok := d.m.Measure(d.cfg.ID)
	if !ok {
		origin = geom.Rect{X: d.start.X, Y: d.start.Y}
	}
	d.region = nil
	if d.cfg.BoundsID != "" {
		if r, ok := d.m.Measure(d.cfg.BoundsID); ok {
			d.region = &r
		}
	}

	if !d.s.StartDrag(d.cfg.Payload) {
		return false
	}
	d.state = StateDragging
	d.translation = geom.Point{}

	content := ""
	if d.cfg.Content != nil {
		content = d.cfg.Content()
	}
	off := d.s.Offset()
	d.s.SetDragOverlay(&Overlay{
		OriginX: origin.X - off.X,
		OriginY: origin.Y - off.Y,
		W:       origin.W,
		H:       origin.H,
		Content: content,
	})
	if d.cfg.OnDragStart != nil {
		d.cfg.OnDragStart(d.cfg.Payload)
	}
	return true
}

func (d *Draggable) move(pos geom.Point) {
	t := pos.Sub(d.start)
	abs := pos
	if d.region != nil {
		clamped := geom.ClampPoint(pos, *d.region)
		t = t.Add(clamped.Sub(pos))
		abs = clamped
	}
	switch d.cfg.Axis {
	case AxisX:
		t.Y = 0
	case AxisY:
		t.X = 0
	}
	d.translation = t

	d.s.NotifyDragMove(abs)
	d.s.UpdateDragOverlayTranslation(t.X, t.Y)
	if d.cfg.OnDrag != nil {
		d.cfg.OnDrag(t)
	}
}

func (d *Draggable) finish(at time.Time) {
	p := d.cfg.Payload
	if d.cfg.OnDrop != nil {
		d.cfg.OnDrop(p, d.s.HoveredID())
	}
	d.s.EndDrag()
	if d.cfg.OnDragEnd != nil {
		d.cfg.OnDragEnd(p)
	}
	d.s.SetDragOverlay(nil)
	d.reset()
	if at.IsZero() {
		at = time.Now()
	}
	d.endedAt = at
}

func (d *Draggable) reset() {
	d.state = StateIdle
	d.pressed = false
	d.region = nil
	d.translation = geom.Point{}
}
