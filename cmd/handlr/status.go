// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newStatusCommand creates the `handlr status` command.
func newStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:               "status <handler>",
		Short:             "Show the MIME types a handler is the default for",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeHandlerArg(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.Store(cmd.Context())
			if err != nil {
				return err
			}
			h, err := store.ResolveHandler(args[0])
			if err != nil {
				return err
			}

			ms := store.Status(h)
			if len(ms) == 0 {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render(h.String()+" is disabled"))
				return nil
			}
			rows := make([][]string, 0, len(ms))
			for _, m := range ms {
				rows = append(rows, []string{m.String(), h.String()})
			}
			fmt.Fprintln(app.stdout, renderTable([]string{"MIME TYPE", "HANDLER"}, rows))
			return nil
		},
	}
}
