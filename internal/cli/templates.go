package cli

import (
	"strings"

	"kanban-cli/internal/model"
	"kanban-cli/internal/store"

	"github.com/spf13/cobra"
)

type templateRows []model.BoardTemplate

func (t templateRows) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(t))
	for _, x := range t {
		names := make([]string, 0, len(x.Lists))
		for _, l := range x.Lists {
			names = append(names, l.Name)
		}
		rows = append(rows, []string{x.ID, x.Name, strings.Join(names, " > ")})
	}
	return []string{"ID", "NAME", "LISTS"}, rows
}

func newTemplatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List board templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeData(cmd, app, templateRows(store.BoardTemplates()))
		},
	}
	return cmd
}
