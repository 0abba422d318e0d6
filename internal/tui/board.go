package tui

import (
	"fmt"
	"sort"
	"strings"

	"kanban-cli/internal/model"
	"kanban-cli/internal/store"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
)

const (
	columnGap     = 2
	minColumnW    = 18
	maxColumnW    = 36
	columnHeadH   = 2 // header + spacer
	maxTitleLines = 2
)

type boardSelection struct {
	Col int
	// TaskID is preferred over an index so selection survives re-sorts and drops.
	TaskID string
}

type boardColumn struct {
	list  model.List
	tasks []model.Task
	done  int
	total int
}

type boardView struct {
	cols []boardColumn
}

// buildBoard groups tasks by list, unfinished first. Progress counts every task in
// the list; keep (when non-nil) hides tasks not in the set.
func buildBoard(st *store.BoardState, keep map[string]bool) boardView {
	if st == nil {
		return boardView{}
	}
	cols := make([]boardColumn, 0, len(st.Lists))
	for _, l := range st.Lists {
		c := boardColumn{list: l}
		for _, t := range st.TasksInList(l.ID) {
			c.total++
			if t.Finished {
				c.done++
			}
			if keep != nil && !keep[t.ID] {
				continue
			}
			c.tasks = append(c.tasks, t)
		}
		sort.SliceStable(c.tasks, func(i, j int) bool {
			return !c.tasks[i].Finished && c.tasks[j].Finished
		})
		cols = append(cols, c)
	}
	return boardView{cols: cols}
}

func (b boardView) indexOfTask(taskID string) (int, int, bool) {
	if taskID == "" {
		return 0, 0, false
	}
	for ci := range b.cols {
		for ti := range b.cols[ci].tasks {
			if b.cols[ci].tasks[ti].ID == taskID {
				return ci, ti, true
			}
		}
	}
	return 0, 0, false
}

func (b boardView) indexOfList(listID string) (int, bool) {
	for i, c := range b.cols {
		if c.list.ID == listID {
			return i, true
		}
	}
	return 0, false
}

func (b boardView) clamp(sel boardSelection) boardSelection {
	if len(b.cols) == 0 {
		return boardSelection{}
	}
	if ci, _, ok := b.indexOfTask(sel.TaskID); ok {
		sel.Col = ci
		return sel
	}
	sel.TaskID = ""
	if sel.Col < 0 {
		sel.Col = 0
	}
	if sel.Col >= len(b.cols) {
		sel.Col = len(b.cols) - 1
	}
	if ts := b.cols[sel.Col].tasks; len(ts) > 0 {
		sel.TaskID = ts[0].ID
	}
	return sel
}

func (b boardView) selectedTask(sel boardSelection) (model.Task, bool) {
	sel = b.clamp(sel)
	ci, ti, ok := b.indexOfTask(sel.TaskID)
	if !ok {
		return model.Task{}, false
	}
	return b.cols[ci].tasks[ti], true
}

func (b boardView) selectedList(sel boardSelection) (model.List, bool) {
	sel = b.clamp(sel)
	if len(b.cols) == 0 {
		return model.List{}, false
	}
	return b.cols[sel.Col].list, true
}

// moveSelection steps the selection dCol columns and dRow tasks.
func (b boardView) moveSelection(sel boardSelection, dCol, dRow int) boardSelection {
	sel = b.clamp(sel)
	if len(b.cols) == 0 {
		return sel
	}
	if dCol != 0 {
		col := sel.Col + dCol
		if col < 0 || col >= len(b.cols) {
			return sel
		}
		_, row, _ := b.indexOfTask(sel.TaskID)
		sel.Col = col
		sel.TaskID = ""
		if ts := b.cols[col].tasks; len(ts) > 0 {
			if row >= len(ts) {
				row = len(ts) - 1
			}
			sel.TaskID = ts[row].ID
		}
		return sel
	}
	ts := b.cols[sel.Col].tasks
	_, row, ok := b.indexOfTask(sel.TaskID)
	if !ok || len(ts) == 0 {
		return sel
	}
	row += dRow
	if row < 0 {
		row = 0
	}
	if row >= len(ts) {
		row = len(ts) - 1
	}
	sel.TaskID = ts[row].ID
	return sel
}

// boardLayout is the part of rendering that the drag layer also needs: which
// columns and cards are on screen.
type boardLayout struct {
	colW  int
	first int
	last  int // exclusive
	// cards[col] is the [from, to) window of tasks drawn in that column.
	cards map[int][2]int
}

func layoutBoard(b boardView, sel boardSelection, width, height int) boardLayout {
	sel = b.clamp(sel)
	n := len(b.cols)
	lay := boardLayout{cards: map[int][2]int{}}
	if n == 0 || width <= 0 {
		return lay
	}

	fit := (width + columnGap) / (minColumnW + columnGap)
	if fit < 1 {
		fit = 1
	}
	if fit > n {
		fit = n
	}
	lay.colW = (width - columnGap*(fit-1)) / fit
	if lay.colW > maxColumnW {
		lay.colW = maxColumnW
	}
	lay.first = 0
	if sel.Col >= fit {
		lay.first = sel.Col - fit + 1
	}
	lay.last = lay.first + fit

	avail := height - columnHeadH
	for ci := lay.first; ci < lay.last; ci++ {
		selRow := -1
		if ci == sel.Col {
			_, selRow, _ = b.indexOfTask(sel.TaskID)
		}
		from, to := cardWindow(b.cols[ci].tasks, lay.colW, avail, selRow)
		lay.cards[ci] = [2]int{from, to}
	}
	return lay
}

// cardWindow returns the tasks that fit in avail lines, scrolled so that selRow (if
// >= 0) is visible. One line is kept for the "+N more" marker when not all fit.
func cardWindow(tasks []model.Task, colW, avail, selRow int) (int, int) {
	fits := func(from int) int {
		used := 0
		to := from
		for to < len(tasks) {
			h := cardHeight(tasks[to], colW)
			reserve := 0
			if to+1 < len(tasks) || from > 0 {
				reserve = 1
			}
			if used+h+reserve > avail {
				break
			}
			used += h
			to++
		}
		return to
	}
	from := 0
	to := fits(from)
	for selRow >= to && from < selRow {
		from++
		to = fits(from)
	}
	return from, to
}

func cardTitleLines(t model.Task, colW int) []string {
	title := strings.TrimSpace(t.Name)
	if title == "" {
		title = "(untitled)"
	}
	lines := wrapWords(title, cardInnerW(colW))
	if len(lines) > maxTitleLines {
		lines = lines[:maxTitleLines]
		last := lines[maxTitleLines-1]
		lines[maxTitleLines-1] = truncateText(last+" …", cardInnerW(colW))
	}
	return lines
}

// Cards are rounded boxes: 1 cell of border and 1 of padding on each side.
func cardInnerW(colW int) int {
	if colW < 6 {
		return 1
	}
	return colW - 4
}

func cardHeight(t model.Task, colW int) int {
	return len(cardTitleLines(t, colW)) + 2
}

type cardLook int

const (
	cardNormal cardLook = iota
	cardSelected
	// cardPlaceholder is the source card left behind while its proxy is dragged.
	cardPlaceholder
	cardProxy
)

func renderCard(t model.Task, colW int, look cardLook) string {
	st := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colors.CardBorder).
		Padding(0, 1).
		Width(colW - 2)

	title := lipgloss.NewStyle().Foreground(colors.SurfaceFg)
	if t.Finished {
		title = faintIfDark(lipgloss.NewStyle()).Foreground(colors.Muted).Strikethrough(true)
	}
	switch look {
	case cardSelected:
		st = st.BorderForeground(colors.CardSelected)
		title = title.Bold(true)
	case cardPlaceholder:
		st = st.BorderForeground(colors.Muted).BorderStyle(lipgloss.HiddenBorder())
		title = styleMuted()
	case cardProxy:
		st = st.BorderForeground(colors.Accent).BorderStyle(lipgloss.ThickBorder())
		title = title.Bold(true)
	}

	lines := cardTitleLines(t, colW)
	marker := ""
	if strings.TrimSpace(t.Description) != "" {
		marker = " ≡"
	}
	if n := len(lines) - 1; marker != "" && xansi.StringWidth(lines[n])+len([]rune(marker)) <= cardInnerW(colW) {
		lines[n] += marker
	}
	for i := range lines {
		lines[i] = title.Render(lines[i])
	}
	return st.Render(strings.Join(lines, "\n"))
}

type boardRender struct {
	width  int
	height int
	sel    boardSelection
	zones  *zone.Manager
	// draggingTaskID is the task whose proxy is being dragged.
	draggingTaskID string
	// activeList reports whether a list is the hovered drop target.
	activeList func(listID string) bool
}

func mark(z *zone.Manager, id, s string) string {
	if z == nil {
		return s
	}
	return z.Mark(id, s)
}

func renderBoard(b boardView, r boardRender) string {
	width, height := r.width, r.height
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if len(b.cols) == 0 {
		msg := styleMuted().Render("No lists yet. Press A to add one.")
		return mark(r.zones, boardZoneID, normalizePane(msg, width, height))
	}
	sel := b.clamp(r.sel)
	lay := layoutBoard(b, sel, width, height)

	rendered := make([]string, 0, lay.last-lay.first)
	for ci := lay.first; ci < lay.last; ci++ {
		c := b.cols[ci]
		active := r.activeList != nil && r.activeList(c.list.ID)
		col := renderColumn(c, lay, ci, sel, active, r)
		rendered = append(rendered, mark(r.zones, listZoneID(c.list.ID), col))
	}

	out := rendered[0]
	sep := strings.Repeat(" ", columnGap)
	for i := 1; i < len(rendered); i++ {
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, sep, rendered[i])
	}
	return mark(r.zones, boardZoneID, normalizePane(out, width, height))
}

func renderColumn(c boardColumn, lay boardLayout, ci int, sel boardSelection, active bool, r boardRender) string {
	colW := lay.colW

	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.list.Color)).Render("●")
	progress := fmt.Sprintf("%d/%d", c.done, c.total)
	nameW := colW - 2 - xansi.StringWidth(progress) - 1
	name := truncateText(strings.TrimSpace(c.list.Name), nameW)
	pad := colW - 2 - xansi.StringWidth(name) - xansi.StringWidth(progress)
	if pad < 1 {
		pad = 1
	}
	head := lipgloss.NewStyle().Bold(true).Foreground(colors.SurfaceFg).Background(colors.ControlBg)
	switch {
	case active:
		head = head.Foreground(colors.AccentFg).Background(colors.DropTarget)
	case ci == sel.Col:
		head = head.Foreground(colors.SelectedFg).Background(colors.SelectedBg)
	}
	lines := []string{
		dot + head.Render(" "+name+strings.Repeat(" ", pad)+progress),
		"",
	}

	win := lay.cards[ci]
	if len(c.tasks) == 0 {
		hint := "(empty)"
		if active {
			hint = "drop here"
		}
		lines = append(lines, styleMuted().Render(hint))
	}
	for ti := win[0]; ti < win[1]; ti++ {
		t := c.tasks[ti]
		look := cardNormal
		switch {
		case t.ID == r.draggingTaskID:
			look = cardPlaceholder
		case ci == sel.Col && t.ID == sel.TaskID:
			look = cardSelected
		}
		card := mark(r.zones, taskZoneID(t.ID), renderCard(t, colW, look))
		lines = append(lines, strings.Split(card, "\n")...)
	}
	if hidden := len(c.tasks) - (win[1] - win[0]); hidden > 0 {
		lines = append(lines, styleMuted().Render(fmt.Sprintf(" +%d more", hidden)))
	}
	return normalizePane(strings.Join(lines, "\n"), colW, r.height)
}
