// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/handlr-go/handlr/internal/apps"
	"github.com/handlr-go/handlr/internal/issue"
	"github.com/handlr-go/handlr/pkg/mimes"

	"github.com/spf13/cobra"
)

// openGroup is the set of paths sharing one handler.
type openGroup struct {
	handler apps.Handler
	paths   []string
}

// newOpenCommand creates the `handlr open` command.
func newOpenCommand(app *App) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "open <path|url>...",
		Short: "Open paths and URLs with their default handlers",
		Long: `Open each path or URL with the default handler of its MIME type.

Paths that resolve to the same handler are passed to a single launch of it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := app.Store(ctx)
			if err != nil {
				return err
			}

			groups, err := groupByHandler(cmd, store, args)
			if err != nil {
				return err
			}
			for _, g := range groups {
				entry, err := store.Entry(g.handler)
				if err != nil {
					return err
				}
				if err := app.launchEntry(ctx, store, entry, g.paths, wait); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait for the handlers to exit")
	return cmd
}

// groupByHandler resolves every path and groups them by handler, keeping the
// order in which handlers were first seen.
func groupByHandler(cmd *cobra.Command, store *apps.MimeApps, paths []string) ([]*openGroup, error) {
	var groups []*openGroup
	index := make(map[apps.Handler]*openGroup)

	for _, p := range paths {
		m, err := mimes.FromPath(p)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("detect mime type").
				WithResource(p).
				WithSuggestion("Check that the path exists").
				WithIssue(issue.InvalidMimeTypeId).
				Wrap(err).
				BuildError()
		}
		h, err := store.Handler(cmd.Context(), m)
		if err != nil {
			return nil, err
		}
		g, ok := index[h]
		if !ok {
			g = &openGroup{handler: h}
			index[h] = g
			groups = append(groups, g)
		}
		g.paths = append(g.paths, p)
	}
	return groups, nil
}
