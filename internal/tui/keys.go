package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Detail  key.Binding
	Toggle  key.Binding
	Move    key.Binding
	AddTask key.Binding
	AddList key.Binding
	Rename  key.Binding
	Delete  key.Binding
	Search  key.Binding
	CopyID  key.Binding
	Reload  key.Binding
	Cancel  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev list")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next list")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Detail:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Toggle:  key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "done")),
		Move:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move to list")),
		AddTask: key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add task")),
		AddList: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add list")),
		Rename:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename list")),
		Delete:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete list")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		CopyID:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
		Reload:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddTask, k.Toggle, k.Move, k.Search, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Detail, k.Toggle, k.Move, k.CopyID},
		{k.AddTask, k.AddList, k.Rename, k.Delete},
		{k.Search, k.Reload, k.Cancel, k.Help, k.Quit},
	}
}
