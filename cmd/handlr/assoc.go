// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/handlr-go/handlr/internal/apps"
	"github.com/handlr-go/handlr/internal/issue"
	"github.com/handlr-go/handlr/pkg/mimes"

	"github.com/spf13/cobra"
)

// newSetCommand creates the `handlr set` command.
func newSetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <mime|.ext> <handler>",
		Short: "Set the default handler for a MIME type",
		Long: `Set the default handler for a MIME type, replacing any existing defaults.

The MIME type may be given as an extension such as .pdf. Wildcards such
as image/* apply to every subtype without a default of its own.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeMimeThenHandler(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editAssociation(cmd.Context(), app, "set default handler", args[0], args[1],
				func(store *apps.MimeApps, m mimes.MimeType, h apps.Handler) { store.SetHandler(m, h) })
		},
	}
}

// newAddCommand creates the `handlr add` command.
func newAddCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <mime|.ext> <handler>",
		Short: "Add a handler to the defaults of a MIME type",
		Long: `Append a handler to the default handlers of a MIME type. When more than
one default exists and the selector is enabled, handlr asks which to use.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeMimeThenHandler(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editAssociation(cmd.Context(), app, "add handler", args[0], args[1],
				func(store *apps.MimeApps, m mimes.MimeType, h apps.Handler) { store.AddHandler(m, h) })
		},
	}
}

// newUnsetCommand creates the `handlr unset` command.
func newUnsetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:               "unset <mime|.ext>",
		Short:             "Remove the default handlers of a MIME type",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeMimeArg(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mimes.ParseArg(args[0])
			if err != nil {
				return err
			}
			store, err := app.Store(cmd.Context())
			if err != nil {
				return err
			}
			return store.RemoveHandler(m)
		},
	}
}

// editAssociation validates mimeArg and handlerArg, applies mutate and saves.
func editAssociation(ctx context.Context, app *App, op, mimeArg, handlerArg string, mutate func(*apps.MimeApps, mimes.MimeType, apps.Handler)) error {
	m, err := mimes.ParseArg(mimeArg)
	if err != nil {
		return err
	}
	store, err := app.Store(ctx)
	if err != nil {
		return err
	}
	h, err := store.ResolveHandler(handlerArg)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation(op).
			WithResource(handlerArg).
			WithSuggestion("Run 'handlr list --all' to see installed handlers").
			WithIssue(issue.HandlerNotInstalledId).
			Wrap(err).
			BuildError()
	}

	mutate(store, m, h)
	if err := store.Save(); err != nil {
		return err
	}
	app.logger.Debug("saved association", "mime", m, "handler", h)
	return nil
}
