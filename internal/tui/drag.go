package tui

import (
	"fmt"
	"strings"
	"time"

	"kanban-cli/internal/dnd"
	"kanban-cli/internal/geom"
	"kanban-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

type pendingMove struct {
	taskID string
	listID string
}

// armTickMsg fires once a press has been held for the long-press delay.
type armTickMsg struct {
	seq int
}

// dragState is shared by every copy of appModel: bubbletea passes the model by value
// but the session, its components and the drop queue must survive across updates.
type dragState struct {
	session *dnd.Session
	// raw measures zones; measure wraps it so off-screen zones read as unmeasured.
	raw     dnd.Measurer
	measure dnd.Measurer
	// hit is measure with the far edges on the last cell, for inclusive hit tests.
	hit     dnd.Measurer
	visible map[string]bool
	colW    int

	droppables map[string]*dnd.Droppable // by list id
	draggables map[string]*dnd.Draggable // by task id
	tasks      map[string]model.Task      // snapshot the draggables were built from

	pressed   *dnd.Draggable
	pressSeq  int
	lastEnded *dnd.Draggable

	layoutDirty bool
	drops       []pendingMove
	notes       []string
	status      string
}

func newDragState(s *dnd.Session, raw dnd.Measurer) *dragState {
	d := &dragState{
		session:     s,
		raw:         raw,
		visible:     map[string]bool{},
		droppables:  map[string]*dnd.Droppable{},
		draggables:  map[string]*dnd.Draggable{},
		tasks:       map[string]model.Task{},
		layoutDirty: true,
	}
	d.measure = dnd.MeasureFunc(func(id string) (geom.Rect, bool) {
		if !d.visible[id] {
			return geom.Rect{}, false
		}
		return d.raw.Measure(id)
	})
	d.hit = dnd.MeasureFunc(func(id string) (geom.Rect, bool) {
		r, ok := d.measure.Measure(id)
		if !ok {
			return geom.Rect{}, false
		}
		return cellBounds(r), true
	})
	return d
}

// cellBounds turns a zone of W×H cells into the rect whose inclusive edges are its
// first and last cells.
func cellBounds(r geom.Rect) geom.Rect {
	r.W = max(0, r.W-1)
	r.H = max(0, r.H-1)
	return r
}

func (d *dragState) draggingTaskID() string {
	if p, ok := d.session.ActiveDrag(); ok {
		return p.ID
	}
	return ""
}

func (d *dragState) listActive(listID string) bool {
	return d.session.IsHovered(listZoneID(listID))
}

func (m appModel) longPress() time.Duration {
	if v := m.opts.Config.LongPress(); v > 0 {
		return v
	}
	return dnd.DefaultLongPress
}

// mountDnD reconciles drop targets with the board's lists and draggables with its
// tasks. Components whose data did not change are kept so an in-flight gesture
// survives a reload.
func (m appModel) mountDnD() {
	d := m.drag
	if m.state == nil {
		return
	}
	s := dnd.MustFromContext(m.ctx)

	lists := map[string]bool{}
	for _, l := range m.state.Lists {
		lists[l.ID] = true
		if _, ok := d.droppables[l.ID]; ok {
			continue
		}
		listID := l.ID
		dr := dnd.NewDroppable(s, d.hit, dnd.DroppableConfig{
			ID:      listZoneID(listID),
			Padding: float64(m.opts.Config.Padding()),
			Callbacks: dnd.Callbacks{
				OnDrop: func(p dnd.Payload) {
					d.drops = append(d.drops, pendingMove{taskID: p.ID, listID: listID})
				},
			},
		})
		dr.Mount()
		d.droppables[listID] = dr
	}
	for id, dr := range d.droppables {
		if !lists[id] {
			dr.Unmount()
			delete(d.droppables, id)
		}
	}

	tasks := map[string]bool{}
	for _, t := range m.state.Tasks {
		tasks[t.ID] = true
		if old, ok := d.tasks[t.ID]; ok && sameCard(old, t) {
			continue
		}
		if cur := d.draggables[t.ID]; cur != nil && cur == d.pressed {
			continue
		}
		d.draggables[t.ID] = m.newTaskDraggable(t)
		d.tasks[t.ID] = t
	}
	for id := range d.draggables {
		if !tasks[id] && d.draggables[id] != d.pressed {
			delete(d.draggables, id)
			delete(d.tasks, id)
		}
	}
	d.layoutDirty = true
}

// sameCard reports whether a and b render and drop the same way.
func sameCard(a, b model.Task) bool {
	return a.ID == b.ID && a.ListID == b.ListID && a.Name == b.Name &&
		a.Description == b.Description && a.Finished == b.Finished
}

func (m appModel) newTaskDraggable(t model.Task) *dnd.Draggable {
	d := m.drag
	return dnd.NewDraggable(dnd.MustFromContext(m.ctx), d.measure, dnd.DraggableConfig{
		ID: taskZoneID(t.ID),
		Payload: dnd.NewPayload(t.ID, map[string]any{
			"listId": t.ListID,
			"name":   t.Name,
		}),
		BoundsID:  boardZoneID,
		LongPress: m.opts.Config.LongPress(),
		TapGuard:  m.opts.Config.TapGuard(),
		Content:   func() string { return renderCard(t, d.colW, cardProxy) },
		OnDragStart: func(p dnd.Payload) {
			d.status = fmt.Sprintf("moving %q: drop it on a list", p.String("name"))
		},
		OnDragEnd: func(dnd.Payload) {
			d.status = ""
		},
		OnDrop: func(p dnd.Payload, targetID string) {
			if targetID == "" {
				d.notes = append(d.notes, fmt.Sprintf("%q not moved: dropped outside a list", p.String("name")))
			}
		},
	})
}

// refreshVisible records which zones the next frame draws. Hidden columns and
// cards scrolled out of view must not be hit-tested against stale zones.
func (m appModel) refreshVisible() {
	d := m.drag
	lay := layoutBoard(m.board, m.sel, m.width, m.bodyHeight())
	vis := map[string]bool{boardZoneID: true}
	for ci := lay.first; ci < lay.last && ci < len(m.board.cols); ci++ {
		c := m.board.cols[ci]
		vis[listZoneID(c.list.ID)] = true
		win := lay.cards[ci]
		for ti := win[0]; ti < win[1]; ti++ {
			vis[taskZoneID(c.tasks[ti].ID)] = true
		}
	}
	if d.colW != lay.colW || !sameKeys(d.visible, vis) {
		d.layoutDirty = true
	}
	d.visible = vis
	d.colW = lay.colW
}

func sameKeys(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// remeasure refreshes every drop target and the provider offset from the last frame.
func (m appModel) remeasure() {
	d := m.drag
	for _, dr := range d.droppables {
		dr.OnLayout()
	}
	if r, ok := d.measure.Measure(boardZoneID); ok {
		d.session.SetOffset(r.Origin())
	}
	d.layoutDirty = false
}

func (m appModel) syncDroppables() {
	if m.drag.layoutDirty {
		m.remeasure()
		return
	}
	for _, dr := range m.drag.droppables {
		dr.Sync()
	}
}

// draggableAt returns the visible card under pos.
func (m appModel) draggableAt(pos geom.Point) (*dnd.Draggable, string) {
	for id, dr := range m.drag.draggables {
		r, ok := m.drag.hit.Measure(taskZoneID(id))
		if ok && geom.ContainsPoint(pos, &r) {
			return dr, id
		}
	}
	return nil, ""
}

func (m appModel) listAt(pos geom.Point) (string, bool) {
	for id := range m.drag.droppables {
		r, ok := m.drag.hit.Measure(listZoneID(id))
		if ok && geom.ContainsPoint(pos, &r) {
			return id, true
		}
	}
	return "", false
}

func pointerEvent(kind dnd.PointerKind, msg tea.MouseMsg, at time.Time) dnd.PointerEvent {
	return dnd.PointerEvent{Kind: kind, Pos: geom.Pt(float64(msg.X), float64(msg.Y)), At: at}
}

func (m appModel) handleMouse(msg tea.MouseMsg) (appModel, tea.Cmd) {
	d := m.drag
	now := m.now()
	pos := geom.Pt(float64(msg.X), float64(msg.Y))

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
		case tea.MouseButtonWheelUp:
			m.sel = m.board.moveSelection(m.sel, 0, -1)
			return m, nil
		case tea.MouseButtonWheelDown:
			m.sel = m.board.moveSelection(m.sel, 0, 1)
			return m, nil
		default:
			// Any other button aborts a drag in progress.
			if d.pressed != nil {
				p := d.pressed
				d.pressed = nil
				if p.Handle(pointerEvent(dnd.PointerCancel, msg, now)) {
					d.lastEnded = p
				}
			}
			return m, nil
		}

		// A press during a drag means its release never arrived: finish that drag
		// and consume the press.
		if d.pressed != nil && d.pressed.Dragging() {
			p := d.pressed
			d.pressed = nil
			p.Handle(pointerEvent(dnd.PointerCancel, msg, now))
			d.lastEnded = p
			m.log.logf("press during drag: ended %s", p.Payload().ID)
			return m, nil
		}

		m.remeasure()
		p, taskID := m.draggableAt(pos)
		d.pressSeq++
		d.pressed = p
		if p == nil {
			if listID, ok := m.listAt(pos); ok {
				if ci, ok := m.board.indexOfList(listID); ok && ci != m.sel.Col {
					m.sel = m.board.clamp(boardSelection{Col: ci})
				}
			}
			return m, nil
		}
		m.log.logf("press task=%s at=%s", taskID, pos)
		p.Handle(pointerEvent(dnd.PointerPress, msg, now))
		seq := d.pressSeq
		return m, m.after(m.longPress(), func(time.Time) tea.Msg { return armTickMsg{seq: seq} })

	case tea.MouseActionMotion:
		m.syncDroppables()
		if d.pressed == nil {
			return m, nil
		}
		if !d.pressed.Handle(pointerEvent(dnd.PointerMove, msg, now)) && !d.pressed.Pending() {
			d.pressed = nil
		}
		return m, nil

	case tea.MouseActionRelease:
		p := d.pressed
		d.pressed = nil
		if p == nil {
			return m, nil
		}
		if p.Handle(pointerEvent(dnd.PointerRelease, msg, now)) {
			d.lastEnded = p
			return m, nil
		}
		if p == d.lastEnded && p.SuppressTap(now) {
			return m, nil
		}
		// A tap selects the card.
		taskID := p.Payload().ID
		if ci, _, ok := m.board.indexOfTask(taskID); ok {
			m.sel = boardSelection{Col: ci, TaskID: taskID}
		}
	}
	return m, nil
}

func (m appModel) handleArmTick(msg armTickMsg) appModel {
	d := m.drag
	if d.pressed == nil || msg.seq != d.pressSeq {
		return m
	}
	if d.pressed.Arm(m.now()) && !d.pressed.Dragging() {
		m.minibufferText = "drag to move the card"
	}
	return m
}

// cancelDrag ends an active drag from the keyboard. Like a release, it still drops
// on the hovered list.
func (m appModel) cancelDrag() bool {
	d := m.drag
	if d.pressed == nil || !d.pressed.Dragging() {
		return false
	}
	p := d.pressed
	d.pressed = nil
	p.Handle(dnd.PointerEvent{Kind: dnd.PointerCancel, At: m.now()})
	d.lastEnded = p
	return true
}

// flushDrops applies queued drops to the local board and persists them.
func (m appModel) flushDrops() (appModel, tea.Cmd) {
	d := m.drag
	if len(d.notes) > 0 {
		m.minibufferText = strings.Join(d.notes, "; ")
		d.notes = nil
	}
	if len(d.drops) == 0 || m.state == nil {
		d.drops = nil
		return m, nil
	}
	var cmds []tea.Cmd
	for _, mv := range d.drops {
		t, ok := m.state.FindTask(mv.taskID)
		if !ok || t.ListID == mv.listID {
			continue
		}
		m.applyLocalMove(mv)
		if l, ok := m.state.FindList(mv.listID); ok {
			m.minibufferText = fmt.Sprintf("moved %q to %s", t.Name, l.Name)
		}
		m.log.logf("move task=%s from=%s to=%s", t.ID, t.ListID, mv.listID)
		cmds = append(cmds, m.moveTaskCmd(mv.taskID, mv.listID))
	}
	d.drops = nil
	m.rebuild()
	return m, tea.Batch(cmds...)
}

// applyLocalMove mirrors store.MoveTask on the in-memory board so the card lands
// before the write returns.
func (m appModel) applyLocalMove(mv pendingMove) {
	pos := 0
	for _, t := range m.state.Tasks {
		if t.ListID == mv.listID && t.Position >= pos {
			pos = t.Position + 1
		}
	}
	for i := range m.state.Tasks {
		if m.state.Tasks[i].ID == mv.taskID {
			m.state.Tasks[i].ListID = mv.listID
			m.state.Tasks[i].Position = pos
			// Keep Tasks in list order for TasksInList.
			moved := m.state.Tasks[i]
			m.state.Tasks = append(m.state.Tasks[:i], m.state.Tasks[i+1:]...)
			m.state.Tasks = append(m.state.Tasks, moved)
			return
		}
	}
}
