package cli

import (
	"fmt"
	"strings"

	"kanban-cli/internal/model"
	"kanban-cli/internal/store"

	"github.com/spf13/cobra"
)

type boardRows []model.Board

func (b boardRows) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(b))
	for _, x := range b {
		rows = append(rows, []string{x.ID, x.Name, x.Description})
	}
	return []string{"ID", "NAME", "DESCRIPTION"}, rows
}

func newBoardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Board commands",
	}
	cmd.AddCommand(newBoardsCreateCmd(app))
	cmd.AddCommand(newBoardsListCmd(app))
	cmd.AddCommand(newBoardsUseCmd(app))
	cmd.AddCommand(newBoardsShowCmd(app))
	return cmd
}

func newBoardsCreateCmd(app *App) *cobra.Command {
	var name string
	var description string
	var templateID string
	var use bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a board (optionally seeded from a template)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			db, err := loadDB(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			var b model.Board
			var lists []model.List
			if strings.TrimSpace(templateID) != "" {
				tmpl, ok := store.FindBoardTemplate(templateID)
				if !ok {
					return writeErr(cmd, errNotFound("template", templateID))
				}
				b, lists, err = db.CreateBoardFromTemplate(ctx, name, description, tmpl)
			} else {
				if strings.TrimSpace(name) == "" {
					return writeErr(cmd, fmt.Errorf("--name is required without --template"))
				}
				b, err = db.CreateBoard(ctx, name, description)
				lists = []model.List{}
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			if use {
				if err := setCurrentBoard(b.ID); err != nil {
					return writeErr(cmd, err)
				}
			}
			if app.Format == "text" {
				return writeOut(cmd, app, boardRows{b})
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"board": b, "lists": lists}})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Board name (defaults to the template name)")
	cmd.Flags().StringVar(&description, "description", "", "Board description")
	cmd.Flags().StringVar(&templateID, "template", "", "Template id (see `kanban templates`)")
	cmd.Flags().BoolVar(&use, "use", false, "Make the new board current")
	return cmd
}

func newBoardsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			db, err := loadDB(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			boards, err := db.Boards(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, boardRows(boards))
		},
	}
	return cmd
}

func newBoardsUseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <board-id>",
		Short: "Set the current board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			db, err := loadDB(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			id := strings.TrimSpace(args[0])
			b, err := db.Board(ctx, id)
			if err != nil {
				return writeErr(cmd, storeErr("board", id, err))
			}
			if err := setCurrentBoard(b.ID); err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, boardRows{b})
		},
	}
	return cmd
}

func newBoardsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [board-id]",
		Short: "Show a board with its lists and tasks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			db, err := loadDB(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			id := ""
			if len(args) == 1 {
				id = strings.TrimSpace(args[0])
			} else if id, err = currentBoardID(app); err != nil {
				return writeErr(cmd, err)
			}
			st, err := db.LoadBoard(ctx, id)
			if err != nil {
				return writeErr(cmd, storeErr("board", id, err))
			}
			return writeData(cmd, app, boardSummary{st})
		},
	}
	return cmd
}

// boardSummary renders one row per list with its progress.
type boardSummary struct {
	*store.BoardState
}

func (b boardSummary) Table() ([]string, [][]string) {
	rows := [][]string{}
	for _, l := range b.Lists {
		done, total := 0, 0
		for _, t := range b.TasksInList(l.ID) {
			total++
			if t.Finished {
				done++
			}
		}
		rows = append(rows, []string{l.ID, l.Name, fmt.Sprintf("%d/%d", done, total)})
	}
	return []string{"LIST", "NAME", "DONE"}, rows
}

func setCurrentBoard(id string) error {
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}
	cfg.CurrentBoard = id
	return store.SaveConfig(cfg)
}
