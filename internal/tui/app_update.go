package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	// Drops queued by the session during this message are applied once the
	// gesture has fully unwound.
	m, dropCmd := m.flushDrops()
	m.refreshVisible()
	return m, tea.Batch(cmd, dropCmd)
}

func (m appModel) update(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuild()
		return m, nil

	case boardLoadedMsg:
		if msg.err != nil {
			m.minibufferText = "error: " + msg.err.Error()
			return m, nil
		}
		m.state = msg.state
		if m.query != "" {
			m.applyFilter(m.query)
		}
		m.rebuild()
		m.mountDnD()
		return m, nil

	case mutationMsg:
		switch {
		case msg.err != nil:
			m.minibufferText = "error: " + msg.err.Error()
		case msg.note != "":
			m.minibufferText = msg.note
		}
		if msg.err == nil && msg.selectTaskID != "" {
			m.sel.TaskID = msg.selectTaskID
		}
		return m, m.loadBoardCmd()

	case armTickMsg:
		return m.handleArmTick(msg), nil

	case tea.BlurMsg:
		// Losing focus mid-gesture never delivers the release.
		m.cancelDrag()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch {
		case m.prompt != promptNone:
			return m.updatePrompt(msg)
		case m.searching:
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// rebuild regroups the board after the state, filter or size changed.
func (m *appModel) rebuild() {
	var keep map[string]bool
	if m.query != "" {
		keep = m.matches
	}
	m.board = buildBoard(m.state, keep)
	m.sel = m.board.clamp(m.sel)
	m.refreshVisible()
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	m.minibufferText = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		switch {
		case m.cancelDrag():
		case m.query != "":
			m.applyFilter("")
		case m.showDetail:
			m.showDetail = false
		case m.showHelp:
			m.showHelp = false
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.sel = m.board.moveSelection(m.sel, -1, 0)
	case key.Matches(msg, m.keys.Right):
		m.sel = m.board.moveSelection(m.sel, 1, 0)
	case key.Matches(msg, m.keys.Up):
		m.sel = m.board.moveSelection(m.sel, 0, -1)
	case key.Matches(msg, m.keys.Down):
		m.sel = m.board.moveSelection(m.sel, 0, 1)

	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail

	case key.Matches(msg, m.keys.Reload):
		return m, m.loadBoardCmd()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		m.search.Focus()

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.board.selectedTask(m.sel); ok {
			return m, m.toggleTaskCmd(t)
		}

	case key.Matches(msg, m.keys.CopyID):
		if t, ok := m.board.selectedTask(m.sel); ok {
			if err := copyToClipboard(t.ID); err != nil {
				m.minibufferText = "copy failed: " + err.Error()
			} else {
				m.minibufferText = "copied " + t.ID
			}
		}

	case key.Matches(msg, m.keys.Move):
		t, ok := m.board.selectedTask(m.sel)
		if !ok || m.state == nil {
			return m, nil
		}
		var b strings.Builder
		b.WriteString("move to:")
		for i, l := range m.state.Lists {
			if i >= 9 {
				break
			}
			fmt.Fprintf(&b, "  %d %s", i+1, l.Name)
		}
		m.openPrompt(promptMoveTask, b.String(), t.ID, "")

	case key.Matches(msg, m.keys.AddTask):
		if l, ok := m.board.selectedList(m.sel); ok {
			m.openPrompt(promptAddTask, fmt.Sprintf("new task in %s:", l.Name), l.ID, "")
		}
	case key.Matches(msg, m.keys.AddList):
		if m.state != nil {
			m.openPrompt(promptAddList, "new list:", "", "")
		}
	case key.Matches(msg, m.keys.Rename):
		if l, ok := m.board.selectedList(m.sel); ok {
			m.openPrompt(promptRenameList, "rename list:", l.ID, l.Name)
		}
	case key.Matches(msg, m.keys.Delete):
		if l, ok := m.board.selectedList(m.sel); ok {
			n := len(m.state.TasksInList(l.ID))
			m.openPrompt(promptDeleteList, fmt.Sprintf("delete list %q and its %d tasks? (y/n)", l.Name, n), l.ID, "")
		}
	}
	return m, nil
}

func (m *appModel) openPrompt(kind promptKind, title, target, value string) {
	m.prompt = kind
	m.promptTitle = title
	m.promptTarget = target
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *appModel) closePrompt() {
	m.prompt = promptNone
	m.promptTitle = ""
	m.promptTarget = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m appModel) updatePrompt(msg tea.KeyMsg) (appModel, tea.Cmd) {
	target := m.promptTarget
	switch m.prompt {
	case promptMoveTask:
		n, err := strconv.Atoi(msg.String())
		m.closePrompt()
		if err != nil || m.state == nil || n < 1 || n > len(m.state.Lists) {
			return m, nil
		}
		// Same path as a drop so the card moves before the write lands.
		m.drag.drops = append(m.drag.drops, pendingMove{taskID: target, listID: m.state.Lists[n-1].ID})
		return m, nil

	case promptDeleteList:
		confirmed := msg.String() == "y"
		m.closePrompt()
		if !confirmed || m.state == nil {
			return m, nil
		}
		if l, ok := m.state.FindList(target); ok {
			return m, m.deleteListCmd(l)
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		kind := m.prompt
		val := strings.TrimSpace(m.input.Value())
		m.closePrompt()
		if val == "" {
			return m, nil
		}
		switch kind {
		case promptAddTask:
			return m, m.createTaskCmd(target, val)
		case promptAddList:
			return m, m.createListCmd(val)
		case promptRenameList:
			return m, m.renameListCmd(target, val)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateSearch(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.applyFilter("")
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter(m.search.Value())
	return m, cmd
}

// applyFilter narrows the board to tasks fuzzy-matching q on name and description.
func (m *appModel) applyFilter(q string) {
	m.query = strings.TrimSpace(q)
	m.matches = nil
	if m.query != "" && m.state != nil {
		src := make([]string, len(m.state.Tasks))
		for i, t := range m.state.Tasks {
			src[i] = t.Name + " " + t.Description
		}
		m.matches = map[string]bool{}
		for _, r := range fuzzy.Find(m.query, src) {
			m.matches[m.state.Tasks[r.Index].ID] = true
		}
	}
	m.rebuild()
}
