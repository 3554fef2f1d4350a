// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/handlr-go/handlr/internal/apps"
	"github.com/handlr-go/handlr/internal/desktop"
	"github.com/handlr-go/handlr/internal/issue"
	"github.com/handlr-go/handlr/pkg/mimes"
	"github.com/handlr-go/handlr/pkg/types"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/shell"
)

const terminalGuessMsg = "Guessed terminal emulator: %s.\n\nIf this is wrong, use `handlr set x-scheme-handler/terminal` to update it."

// newLaunchCommand creates the `handlr launch` command.
func newLaunchCommand(app *App) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "launch <mime|.ext> [args...]",
		Short: "Launch the default handler of a MIME type with arguments",
		Long: `Launch the default handler of a MIME type, passing the remaining
arguments to it verbatim.

` + SubtitleStyle.Render("Examples:") + `
  handlr launch x-scheme-handler/terminal -- htop
  handlr launch .txt notes.txt`,
		Args:              cobra.MinimumNArgs(1),
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
			entry, err := store.Entry(h)
			if err != nil {
				return err
			}
			return app.launchEntry(ctx, store, entry, args[1:], wait)
		},
	}

	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait for the handler to exit")
	return cmd
}

// launchEntry starts entry with args. Entries with Terminal=true run inside
// the preferred terminal emulator.
func (a *App) launchEntry(ctx context.Context, store *apps.MimeApps, entry *desktop.Entry, args []string, wait bool) error {
	opts := desktop.LaunchOptions{
		Wait:   wait,
		Stdin:  a.stdin,
		Stdout: a.stdout,
		Stderr: a.stderr,
	}
	if entry.Terminal {
		prefix, err := a.terminalPrefix(ctx, store)
		if err != nil {
			return err
		}
		opts.Terminal = prefix
	}

	a.logger.Debug("launching handler", "handler", entry.ID, "args", args, "wait", wait)
	if err := entry.Launch(ctx, args, opts); err != nil {
		launchErr := issue.NewErrorContext().
			WithOperation("launch handler").
			WithResource(entry.ID).
			WithSuggestion(fmt.Sprintf("Check the Exec line in %s", entry.Path)).
			WithIssue(issue.LaunchFailedId).
			Wrap(err).
			BuildError()
		// A waited-for handler passes its own exit status through.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: types.ExitCode(exitErr.ExitCode()), Err: launchErr}
		}
		return launchErr
	}
	return nil
}

// terminalPrefix returns the argv that wraps terminal applications, e.g.
// ["foot", "-e"]. A guessed emulator is reported through a notification.
func (a *App) terminalPrefix(ctx context.Context, store *apps.MimeApps) ([]string, error) {
	cfg, err := a.Settings(ctx)
	if err != nil {
		return nil, err
	}

	term, guessed, err := store.Terminal(ctx)
	if err != nil {
		if errors.Is(err, apps.ErrNoTerminal) {
			return nil, issue.NewErrorContext().
				WithOperation("find terminal emulator").
				WithSuggestion("Install a terminal emulator").
				WithSuggestion("Run 'handlr set x-scheme-handler/terminal <handler>'").
				WithIssue(issue.NoTerminalId).
				Wrap(err).
				BuildError()
		}
		return nil, err
	}
	if guessed {
		a.notify(ctx, "handlr", fmt.Sprintf(terminalGuessMsg, term.ID))
	}

	argvs, err := term.Argv(nil)
	if err != nil {
		return nil, err
	}
	extra, err := shell.Fields(cfg.TermExecArgs, nil)
	if err != nil {
		return nil, fmt.Errorf("parse term_exec_args: %w", err)
	}
	return append(argvs[0], extra...), nil
}
