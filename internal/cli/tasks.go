package cli

import (
	"strings"

	"kanban-cli/internal/model"
	"kanban-cli/internal/store"

	"github.com/spf13/cobra"
)

type taskRows []model.Task

func (t taskRows) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(t))
	for _, x := range t {
		done := ""
		if x.Finished {
			done = "x"
		}
		rows = append(rows, []string{x.ID, x.ListID, done, x.Name})
	}
	return []string{"ID", "LIST", "DONE", "NAME"}, rows
}

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))
	cmd.AddCommand(newTasksDoneCmd(app))
	cmd.AddCommand(newTasksEditCmd(app))
	return cmd
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var listID string
	var name string
	var description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a task to a list",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			db, err := loadDB(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			t, err := db.CreateTask(ctx, strings.TrimSpace(listID), name, description)
			if err != nil {
				return writeErr(cmd, storeErr("list", listID, err))
			}
			return writeData(cmd, app, taskRows{t})
		},
	}

	cmd.Flags().StringVar(&listID, "list", "", "List id")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&description, "description", "", "Task description (markdown)")
	_ = cmd.MarkFlagRequired("list")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var listID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks of a list, or of the current board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			db, err := loadDB(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			var tasks []model.Task
			if id := strings.TrimSpace(listID); id != "" {
				if _, err := db.List(ctx, id); err != nil {
					return writeErr(cmd, storeErr("list", id, err))
				}
				tasks, err = db.TasksByList(ctx, id)
			} else {
				boardID, berr := currentBoardID(app)
				if berr != nil {
					return writeErr(cmd, berr)
				}
				if _, err := db.Board(ctx, boardID); err != nil {
					return writeErr(cmd, storeErr("board", boardID, err))
				}
				tasks, err = db.TasksByBoard(ctx, boardID)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, taskRows(tasks))
		},
	}

	cmd.Flags().StringVar(&listID, "list", "", "Only tasks of this list")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			db, err := loadDB(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			id := strings.TrimSpace(args[0])
			t, err := db.Task(ctx, id)
			if err != nil {
				return writeErr(cmd, storeErr("task", id, err))
			}
			return writeData(cmd, app, taskRows{t})
		},
	}
}

func newTasksMoveCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Move a task to the end of another list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			db, err := loadDB(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			t, err := db.MoveTask(ctx, strings.TrimSpace(args[0]), strings.TrimSpace(to))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, taskRows{t})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Target list id")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newTasksDoneCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task finished (or unfinished with --undo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			db, err := loadDB(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			id := strings.TrimSpace(args[0])
			t, err := db.SetTaskFinished(ctx, id, !undo)
			if err != nil {
				return writeErr(cmd, storeErr("task", id, err))
			}
			return writeData(cmd, app, taskRows{t})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark as not finished")
	return cmd
}

func newTasksEditCmd(app *App) *cobra.Command {
	var name string
	var description string

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Change a task's name or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			db, err := loadDB(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()

			var p store.TaskPatch
			if cmd.Flags().Changed("name") {
				p.Name = &name
			}
			if cmd.Flags().Changed("description") {
				p.Description = &description
			}
			id := strings.TrimSpace(args[0])
			t, err := db.UpdateTask(ctx, id, p)
			if err != nil {
				return writeErr(cmd, storeErr("task", id, err))
			}
			return writeData(cmd, app, taskRows{t})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description (markdown)")
	return cmd
}
