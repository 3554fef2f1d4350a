// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/handlr-go/handlr/pkg/mimes"

	"github.com/spf13/cobra"
)

// mimeInfo is one --json record of `handlr mime`.
type mimeInfo struct {
	Path string `json:"path"`
	Mime string `json:"mime"`
}

// newMimeCommand creates the `handlr mime` command.
func newMimeCommand(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "mime <path|url>...",
		Short: "Show the MIME type of paths and URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := make([]mimeInfo, 0, len(args))
			for _, p := range args {
				m, err := mimes.FromPath(p)
				if err != nil {
					return err
				}
				infos = append(infos, mimeInfo{Path: p, Mime: m.String()})
			}

			if asJSON {
				return json.NewEncoder(app.stdout).Encode(infos)
			}
			rows := make([][]string, 0, len(infos))
			for _, i := range infos {
				rows = append(rows, []string{i.Path, i.Mime})
			}
			fmt.Fprintln(app.stdout, renderTable([]string{"PATH", "MIME TYPE"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
