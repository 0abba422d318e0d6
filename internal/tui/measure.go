package tui

import (
	"kanban-cli/internal/dnd"
	"kanban-cli/internal/geom"

	zone "github.com/lrstanley/bubblezone"
)

// Zone ids for everything the drag layer measures.
const boardZoneID = "board"

func listZoneID(listID string) string { return "list:" + listID }
func taskZoneID(taskID string) string { return "task:" + taskID }

// zoneMeasurer reads bounds recorded by the last zone scan. Zones land a frame after
// they are rendered, so a missing zone is reported as unmeasured.
type zoneMeasurer struct {
	z *zone.Manager
}

var _ dnd.Measurer = zoneMeasurer{}

func (m zoneMeasurer) Measure(id string) (geom.Rect, bool) {
	if m.z == nil {
		return geom.Rect{}, false
	}
	zi := m.z.Get(id)
	if zi == nil || zi.IsZero() {
		return geom.Rect{}, false
	}
	return geom.Rect{
		X: float64(zi.StartX),
		Y: float64(zi.StartY),
		W: float64(zi.EndX - zi.StartX + 1),
		H: float64(zi.EndY - zi.StartY + 1),
	}, true
}
