// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/handlr-go/handlr/pkg/mimes"

	"github.com/spf13/cobra"
)

// handlerInfo is the --json output of `handlr get`.
type handlerInfo struct {
	Handler string `json:"handler"`
	Name    string `json:"name"`
	Cmd     string `json:"cmd"`
}

// newGetCommand creates the `handlr get` command.
func newGetCommand(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:               "get <mime|.ext>",
		Short:             "Show the handler of a MIME type",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeMimeArg(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := mimes.ParseArg(args[0])
			if err != nil {
				return err
			}
			store, err := app.Store(ctx)
			if err != nil {
				return err
			}
			h, err := store.Handler(ctx, m)
			if err != nil {
				return err
			}

			if !asJSON {
				fmt.Fprintln(app.stdout, h)
				return nil
			}

			entry, err := store.Entry(h)
			if err != nil {
				return err
			}
			line, err := entry.Command(nil)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(app.stdout)
			return enc.Encode(handlerInfo{Handler: h.String(), Name: entry.Name, Cmd: line})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print handler, name and command as JSON")
	return cmd
}
