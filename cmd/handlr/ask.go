// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/handlr-go/handlr/internal/config"
	"github.com/handlr-go/handlr/internal/selector"
	"github.com/handlr-go/handlr/pkg/mimes"

	"github.com/spf13/cobra"
)

// Selector modes accepted by `handlr ask --selector`.
const (
	selectorPlain   = "plain"
	selectorCommand = "command"
	selectorTUI     = "tui"
)

// newAskCommand creates the `handlr ask` command.
func newAskCommand(app *App) *cobra.Command {
	var (
		mode string
		wait bool
	)

	cmd := &cobra.Command{
		Use:   "ask <path|url>",
		Short: "Choose a handler interactively and open a path with it",
		Long: `Offer the handlers that can open a path, open it with the chosen one
and leave the defaults untouched.

The list starts with the current handler, then applications advertising
the MIME type, then handlers of related types sharing its extensions.

Selectors:
  plain     numbered list on the terminal
  command   the selector command from the configuration (rofi, fzf, ...)
  tui       interactive list
Without --selector, command is used when enable_selector is set, plain otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := app.Settings(ctx)
			if err != nil {
				return err
			}
			sel, err := app.selectorFor(mode, cfg)
			if err != nil {
				return err
			}

			m, err := mimes.FromPath(args[0])
			if err != nil {
				return err
			}
			store, err := app.Store(ctx)
			if err != nil {
				return err
			}
			entry, err := store.AskHandler(ctx, m, sel, nil)
			if err != nil {
				return err
			}
			return app.launchEntry(ctx, store, entry, args, wait)
		},
	}

	cmd.Flags().StringVarP(&mode, "selector", "s", "", "selector to use (plain, command, tui)")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait for the handler to exit")
	_ = cmd.RegisterFlagCompletionFunc("selector", cobra.FixedCompletions(
		[]string{selectorPlain, selectorCommand, selectorTUI}, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

// selectorFor returns the selector for mode, falling back to the configured default.
func (a *App) selectorFor(mode string, cfg *config.Config) (selector.Selector, error) {
	if mode == "" {
		mode = selectorPlain
		if cfg.EnableSelector {
			mode = selectorCommand
		}
	}
	switch mode {
	case selectorPlain:
		return &selector.Terminal{In: a.stdin, Out: a.stderr}, nil
	case selectorCommand:
		return &selector.Command{Line: cfg.Selector.String(), Err: a.stderr}, nil
	case selectorTUI:
		return &selector.TUI{Config: a.tuiConfig()}, nil
	}
	return nil, fmt.Errorf("unknown selector %q (want %s, %s or %s)", mode, selectorPlain, selectorCommand, selectorTUI)
}
