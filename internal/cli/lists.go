package cli

import (
	"strings"

	"kanban-cli/internal/model"

	"github.com/spf13/cobra"
)

type listRows []model.List

func (l listRows) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(l))
	for _, x := range l {
		rows = append(rows, []string{x.ID, x.Name, x.Color})
	}
	return []string{"ID", "NAME", "COLOR"}, rows
}

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "List (board column) commands",
	}
	cmd.AddCommand(newListsCreateCmd(app))
	cmd.AddCommand(newListsListCmd(app))
	cmd.AddCommand(newListsRenameCmd(app))
	cmd.AddCommand(newListsDeleteCmd(app))
	return cmd
}

func newListsCreateCmd(app *App) *cobra.Command {
	var name string
	var color string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Append a list to the current board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			boardID, err := currentBoardID(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			db, err := loadDB(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			l, err := db.CreateList(ctx, boardID, name, color)
			if err != nil {
				return writeErr(cmd, storeErr("board", boardID, err))
			}
			return writeData(cmd, app, listRows{l})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "List name")
	cmd.Flags().StringVar(&color, "color", "", "List color (hex)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newListsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the lists of the current board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			boardID, err := currentBoardID(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			db, err := loadDB(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			if _, err := db.Board(ctx, boardID); err != nil {
				return writeErr(cmd, storeErr("board", boardID, err))
			}
			lists, err := db.ListsByBoard(ctx, boardID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, listRows(lists))
		},
	}
	return cmd
}

func newListsRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <list-id>",
		Short: "Rename a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			db, err := loadDB(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			id := strings.TrimSpace(args[0])
			l, err := db.RenameList(ctx, id, name)
			if err != nil {
				return writeErr(cmd, storeErr("list", id, err))
			}
			return writeData(cmd, app, listRows{l})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New list name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newListsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <list-id>",
		Short: "Delete a list and all of its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			db, err := loadDB(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			id := strings.TrimSpace(args[0])
			if err := db.DeleteList(ctx, id); err != nil {
				return writeErr(cmd, storeErr("list", id, err))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": true}})
		},
	}
	return cmd
}
