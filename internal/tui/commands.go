package tui

import (
	"fmt"

	"kanban-cli/internal/model"
	"kanban-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type boardLoadedMsg struct {
	state *store.BoardState
	err   error
}

// mutationMsg reports a finished write. The board is reloaded after every one.
type mutationMsg struct {
	note string
	err  error
	// selectTaskID moves the selection to a task the write created.
	selectTaskID string
}

func (m appModel) loadBoardCmd() tea.Cmd {
	ctx, db, id := m.ctx, m.db, m.boardID
	return func() tea.Msg {
		st, err := db.LoadBoard(ctx, id)
		return boardLoadedMsg{state: st, err: err}
	}
}

func (m appModel) moveTaskCmd(taskID, listID string) tea.Cmd {
	ctx, db := m.ctx, m.db
	return func() tea.Msg {
		_, err := db.MoveTask(ctx, taskID, listID)
		return mutationMsg{err: err}
	}
}

func (m appModel) toggleTaskCmd(t model.Task) tea.Cmd {
	ctx, db := m.ctx, m.db
	return func() tea.Msg {
		_, err := db.SetTaskFinished(ctx, t.ID, !t.Finished)
		note := fmt.Sprintf("done: %s", t.Name)
		if t.Finished {
			note = fmt.Sprintf("reopened: %s", t.Name)
		}
		return mutationMsg{note: note, err: err}
	}
}

func (m appModel) createTaskCmd(listID, name string) tea.Cmd {
	ctx, db := m.ctx, m.db
	return func() tea.Msg {
		t, err := db.CreateTask(ctx, listID, name, "")
		return mutationMsg{note: fmt.Sprintf("added %q", name), err: err, selectTaskID: t.ID}
	}
}

func (m appModel) createListCmd(name string) tea.Cmd {
	ctx, db, boardID := m.ctx, m.db, m.boardID
	return func() tea.Msg {
		_, err := db.CreateList(ctx, boardID, name, "")
		return mutationMsg{note: fmt.Sprintf("added list %q", name), err: err}
	}
}

func (m appModel) renameListCmd(listID, name string) tea.Cmd {
	ctx, db := m.ctx, m.db
	return func() tea.Msg {
		_, err := db.RenameList(ctx, listID, name)
		return mutationMsg{note: fmt.Sprintf("renamed to %q", name), err: err}
	}
}

func (m appModel) deleteListCmd(l model.List) tea.Cmd {
	ctx, db := m.ctx, m.db
	return func() tea.Msg {
		err := db.DeleteList(ctx, l.ID)
		return mutationMsg{note: fmt.Sprintf("deleted list %q", l.Name), err: err}
	}
}
