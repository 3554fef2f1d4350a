// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/handlr-go/handlr/internal/apps"
	"github.com/handlr-go/handlr/internal/desktop"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/shell"
)

const defaultEditor = "vim"

// newEditCommand creates the `handlr edit` command.
func newEditCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:               "edit <handler>",
		Short:             "Open a handler's desktop file in $EDITOR",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeHandlerArg(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.entryArg(cmd, args[0])
			if err != nil {
				return err
			}
			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = defaultEditor
			}
			argv, err := shell.Fields(editor, nil)
			if err != nil || len(argv) == 0 {
				return fmt.Errorf("invalid $EDITOR %q", editor)
			}

			c := exec.CommandContext(cmd.Context(), argv[0], append(argv[1:], entry.Path)...)
			c.Stdin, c.Stdout, c.Stderr = app.stdin, app.stdout, app.stderr
			if err := c.Run(); err != nil {
				return fmt.Errorf("run %s: %w", argv[0], err)
			}
			return nil
		},
	}
}

// newCatCommand creates the `handlr cat` command.
func newCatCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:               "cat <handler>",
		Short:             "Print a handler's desktop file",
		Long:              "Print a handler's desktop file, through bat when it is installed.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeHandlerArg(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.entryArg(cmd, args[0])
			if err != nil {
				return err
			}

			if bat, err := exec.LookPath("bat"); err == nil && isTerminal(app.stdout) {
				c := exec.CommandContext(cmd.Context(), bat, "--paging=never", entry.Path)
				c.Stdout, c.Stderr = app.stdout, app.stderr
				return c.Run()
			}

			f, err := os.Open(entry.Path)
			if err != nil {
				return err
			}
			defer f.Close()
			_, err = io.Copy(app.stdout, f)
			return err
		},
	}
}

// entryArg parses a handler argument and returns its desktop entry.
func (a *App) entryArg(cmd *cobra.Command, arg string) (*desktop.Entry, error) {
	h, err := apps.ParseHandler(arg)
	if err != nil {
		return nil, err
	}
	store, err := a.Store(cmd.Context())
	if err != nil {
		return nil, err
	}
	return store.Entry(h)
}
