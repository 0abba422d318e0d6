package tui

import (
	"context"

	"kanban-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

type Options struct {
	BoardID string
	// Config is the tui section of the global config; nil means defaults.
	Config *store.TUIConfig
	// DebugLogPath, when set, receives press/move/drop traces.
	DebugLogPath string
}

func Run(ctx context.Context, db *store.DB, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	profile := ""
	if opts.Config != nil {
		profile = opts.Config.Profile
	}
	applyAppearance(profile)

	z := zone.New()
	defer z.Close()

	m := newAppModel(ctx, db, z, opts)
	_, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	).Run()
	return err
}
