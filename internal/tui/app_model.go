package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kanban-cli/internal/dnd"
	"kanban-cli/internal/model"
	"kanban-cli/internal/store"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// boardStore is the slice of *store.DB the board screen uses.
type boardStore interface {
	LoadBoard(ctx context.Context, boardID string) (*store.BoardState, error)
	MoveTask(ctx context.Context, taskID, listID string) (model.Task, error)
	CreateTask(ctx context.Context, listID, name, description string) (model.Task, error)
	SetTaskFinished(ctx context.Context, id string, finished bool) (model.Task, error)
	CreateList(ctx context.Context, boardID, name, color string) (model.List, error)
	RenameList(ctx context.Context, id, name string) (model.List, error)
	DeleteList(ctx context.Context, id string) error
}

type promptKind int

const (
	promptNone promptKind = iota
	promptAddTask
	promptAddList
	promptRenameList
	promptDeleteList
	promptMoveTask
)

const (
	titleH  = 2 // board title + spacer
	detailH = 8
)

type appModel struct {
	ctx     context.Context
	db      boardStore
	boardID string
	opts    Options

	state *store.BoardState
	board boardView
	sel   boardSelection

	width  int
	height int

	zones *zone.Manager
	drag  *dragState

	keys     keyMap
	help     help.Model
	showHelp bool

	showDetail bool

	searching bool
	search    textinput.Model
	query     string
	matches   map[string]bool

	prompt      promptKind
	promptTitle string
	input       textinput.Model
	// promptTarget is the list or task the open prompt acts on.
	promptTarget string

	// now and after are swapped out in tests.
	now   func() time.Time
	after func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

	log debugLog

	minibufferText string
}

func newAppModel(ctx context.Context, db boardStore, zones *zone.Manager, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	s := dnd.NewSession()
	m := appModel{
		ctx:     dnd.NewContext(ctx, s),
		db:      db,
		boardID: opts.BoardID,
		opts:    opts,
		zones:   zones,
		keys:    defaultKeyMap(),
		help:    help.New(),
		now:     time.Now,
		after:   tea.Tick,
		log:     debugLog{path: opts.DebugLogPath},
	}
	m.drag = newDragState(s, zoneMeasurer{z: zones})
	if m.log.enabled() {
		s.SetObserver(m.log.observe)
	}

	m.search = newInput("filter tasks", 80)
	m.search.Prompt = "/ "
	m.input = newInput("", 200)
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	// A blinking cursor would keep a tick running for as long as the prompt is open.
	_ = ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func (m appModel) Init() tea.Cmd {
	return m.loadBoardCmd()
}

func (m appModel) bodyHeight() int {
	h := m.height - titleH - m.footerHeight()
	if m.showDetail {
		h -= detailH
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m appModel) footerHeight() int {
	m.help.ShowAll = m.showHelp
	return 1 + lipgloss.Height(m.help.View(m.keys))
}

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading…"
	}

	parts := []string{m.renderTitle(), ""}
	parts = append(parts, renderBoard(m.board, boardRender{
		width:          m.width,
		height:         m.bodyHeight(),
		sel:            m.sel,
		zones:          m.zones,
		draggingTaskID: m.drag.draggingTaskID(),
		activeList:     m.drag.listActive,
	}))
	if m.showDetail {
		parts = append(parts, m.renderDetail())
	}
	parts = append(parts, m.renderFooter())
	frame := strings.Join(parts, "\n")

	if m.zones != nil {
		frame = m.zones.Scan(frame)
	}
	// Drawn after the scan so the proxy never becomes a mouse zone.
	if ov, ok := m.drag.session.Overlay(); ok {
		frame = dnd.RenderOverlay(frame, &ov, m.drag.session.Offset())
	}
	return frame
}

func (m appModel) renderTitle() string {
	if m.state == nil {
		return styleMuted().Render("loading board…")
	}
	name := lipgloss.NewStyle().Bold(true).Foreground(colors.SurfaceFg).Render(m.state.Board.Name)
	line := name
	if d := strings.TrimSpace(m.state.Board.Description); d != "" {
		line += "  " + styleMuted().Render(d)
	}
	if m.query != "" {
		line += "  " + lipgloss.NewStyle().Foreground(colors.Accent).Render(fmt.Sprintf("filter: %q (%d)", m.query, len(m.matches)))
	}
	return normalizePane(line, m.width, 1)
}

func (m appModel) renderDetail() string {
	sep := styleMuted().Render(strings.Repeat("─", max(0, m.width)))
	t, ok := m.board.selectedTask(m.sel)
	if !ok {
		return normalizePane(sep+"\n"+styleMuted().Render("No task selected."), m.width, detailH)
	}
	head := lipgloss.NewStyle().Bold(true).Render(t.Name) + "  " + styleMuted().Render(t.ID)
	body := renderMarkdown(t.Description, m.width-2)
	if body == "" {
		body = styleMuted().Render("(no description)")
	}
	return normalizePane(strings.Join([]string{sep, head, body}, "\n"), m.width, detailH)
}

func (m appModel) renderFooter() string {
	var line string
	switch {
	case m.prompt != promptNone && m.prompt != promptMoveTask && m.prompt != promptDeleteList:
		line = m.promptTitle + " " + m.input.View()
	case m.prompt != promptNone:
		line = m.promptTitle
	case m.searching:
		line = m.search.View()
	case m.drag.status != "":
		line = lipgloss.NewStyle().Foreground(colors.Accent).Render(m.drag.status)
	default:
		line = m.minibufferText
	}
	m.help.ShowAll = m.showHelp
	return normalizePane(line, m.width, 1) + "\n" + m.help.View(m.keys)
}
