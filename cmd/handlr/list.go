// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/handlr-go/handlr/internal/apps"

	"github.com/spf13/cobra"
)

// newListCommand creates the `handlr list` command.
func newListCommand(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List default handlers",
		Long: `List the default handlers from mimeapps.list.

With --all, added associations and the handlers advertised by installed
applications are listed as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.Store(cmd.Context())
			if err != nil {
				return err
			}

			if !all {
				fmt.Fprintln(app.stdout, rowsTable(store.Rows(apps.TierDefault)))
				return nil
			}

			fmt.Fprintln(app.stdout, TitleStyle.Render("Default Apps"))
			fmt.Fprintln(app.stdout, rowsTable(store.Rows(apps.TierDefault)))
			if added := store.Rows(apps.TierAdded); len(added) > 0 {
				fmt.Fprintln(app.stdout)
				fmt.Fprintln(app.stdout, TitleStyle.Render("Added Associations"))
				fmt.Fprintln(app.stdout, rowsTable(added))
			}
			fmt.Fprintln(app.stdout)
			fmt.Fprintln(app.stdout, TitleStyle.Render("System Apps"))
			fmt.Fprintln(app.stdout, rowsTable(store.Rows(apps.TierSystem)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "also list added associations and system applications")
	return cmd
}

func rowsTable(rows []apps.Row) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Mime.String(), r.Handlers.String()})
	}
	return renderTable([]string{"MIME TYPE", "HANDLERS"}, cells)
}
