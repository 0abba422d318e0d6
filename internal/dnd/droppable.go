package dnd

import "kanban-cli/internal/geom"

type DroppableConfig struct {
	ID string
	// Padding grows the measured bounds on every side for hit testing.
	Padding   float64
	Callbacks Callbacks
}

// Droppable keeps one drop target's registration and bounds current in a Session.
type Droppable struct {
	s   *Session
	m   Measurer
	cfg DroppableConfig

	mounted  bool
	bounds   *geom.Rect
	measured bool
	epoch    uint64
}

// NewDroppable binds a drop target to s. It panics with ErrNoProvider when s is nil.
func NewDroppable(s *Session, m Measurer, cfg DroppableConfig) *Droppable {
	mustSession(s, "droppable", cfg.ID)
	if cfg.Padding < 0 {
		cfg.Padding = 0
	}
	if m == nil {
		m = MeasureFunc(func(string) (geom.Rect, bool) { return geom.Rect{}, false })
	}
	return &Droppable{s: s, m: m, cfg: cfg}
}

func (d *Droppable) ID() string { return d.cfg.ID }

// Mount registers the target and tries a first measurement. Until one succeeds the
// target has no bounds and cannot be hovered.
func (d *Droppable) Mount() {
	d.register()
	d.mounted = true
	d.Measure()
}

func (d *Droppable) register() {
	d.s.RegisterDroppable(Registration{
		ID:        d.cfg.ID,
		Bounds:    d.bounds,
		Padding:   d.cfg.Padding,
		Callbacks: d.cfg.Callbacks,
	})
}

// SetCallbacks swaps the callbacks, re-registering if mounted. Measured bounds are kept.
func (d *Droppable) SetCallbacks(cb Callbacks) {
	d.cfg.Callbacks = cb
	if d.mounted {
		d.register()
	}
}

func (d *Droppable) Unmount() {
	if !d.mounted {
		return
	}
	d.mounted = false
	d.s.UnregisterDroppable(d.cfg.ID)
}

func (d *Droppable) Mounted() bool { return d.mounted }

// Measure re-reads the on-screen bounds, pads them and pushes them to the session.
// It reports false when the host has nothing for this id yet.
func (d *Droppable) Measure() bool {
	r, ok := d.m.Measure(d.cfg.ID)
	if !ok {
		return false
	}
	padded := geom.Expand(r, d.cfg.Padding)
	d.bounds = &padded
	d.measured = true
	d.epoch = d.s.Epoch()
	if d.mounted {
		d.s.UpdateDroppableLayout(d.cfg.ID, padded)
	}
	return true
}

// OnLayout is the host's layout-changed hook.
func (d *Droppable) OnLayout() bool { return d.Measure() }

// Sync re-measures when the session's measurement epoch has moved past the last
// successful measurement (a drag started) or when no measurement succeeded yet.
func (d *Droppable) Sync() bool {
	if d.measured && d.epoch == d.s.Epoch() {
		return false
	}
	return d.Measure()
}

func (d *Droppable) Bounds() (geom.Rect, bool) {
	if d.bounds == nil {
		return geom.Rect{}, false
	}
	return *d.bounds, true
}

// Active reports whether this target is hovered by the active drag.
func (d *Droppable) Active() bool { return d.s.IsHovered(d.cfg.ID) }
