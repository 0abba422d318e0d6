package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"kanban-cli/internal/format"
	"kanban-cli/internal/store"
	"kanban-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Board      string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "kanban",
		Short:        "Terminal kanban boards with mouse drag-and-drop",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the current board (long-press a card, then drag it onto another list)
  kanban

  # Start a board from a template and make it current
  kanban boards create --name "Thesis" --template study --use

  # Scriptable commands
  kanban tasks list
  kanban tasks move task-abc --to list-xyz
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("KANBAN_DIR", ""), "Path to the data dir holding kanban.sqlite (default: ~/.kanban/data)")
	cmd.PersistentFlags().StringVar(&app.Board, "board", envOr("KANBAN_BOARD", ""), "Board id (default: currentBoard in config.json)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("KANBAN_FORMAT", "json"), "Output format (json|text)")

	cmd.AddCommand(newBoardsCmd(app))
	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newTemplatesCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	ctx := cmdContext(cmd)
	db, err := loadDB(ctx, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer db.Close()

	cfg, err := store.LoadConfig()
	if err != nil {
		return writeErr(cmd, err)
	}
	boardID, err := boardForTUI(ctx, app, db, cfg)
	if err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(ctx, db, tui.Options{
		BoardID:      boardID,
		Config:       cfg.TUI,
		DebugLogPath: os.Getenv("KANBAN_TUI_DEBUG_LOG"),
	})
}

// boardForTUI picks the board to open. A first run with no boards seeds one from the
// everyday template and makes it current.
func boardForTUI(ctx context.Context, app *App, db *store.DB, cfg *store.GlobalConfig) (string, error) {
	if id, err := currentBoardID(app); err == nil {
		if _, err := db.Board(ctx, id); err != nil {
			return "", err
		}
		return id, nil
	}
	boards, err := db.Boards(ctx)
	if err != nil {
		return "", err
	}
	if len(boards) > 0 {
		return boards[0].ID, nil
	}
	tmpl, _ := store.FindBoardTemplate("everyday")
	b, _, err := db.CreateBoardFromTemplate(ctx, "", "", tmpl)
	if err != nil {
		return "", err
	}
	cfg.CurrentBoard = b.ID
	if err := store.SaveConfig(cfg); err != nil {
		return "", err
	}
	return b.ID, nil
}

func loadDB(ctx context.Context, app *App) (*store.DB, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dir = d
		app.Dir = dir
	}
	return store.Store{Dir: dir}.Open(ctx)
}

// currentBoardID resolves --board, then currentBoard from config.json.
func currentBoardID(app *App) (string, error) {
	if id := strings.TrimSpace(app.Board); id != "" {
		return id, nil
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return "", err
	}
	if cfg.CurrentBoard != "" {
		return cfg.CurrentBoard, nil
	}
	return "", errNoBoard
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

// writeData wraps v in the {"data": ...} envelope for json and writes it bare for
// text, where Tabular payloads render as tables.
func writeData(cmd *cobra.Command, app *App, v any) error {
	if app.Format == "text" {
		return writeOut(cmd, app, v)
	}
	return writeOut(cmd, app, map[string]any{"data": v})
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
