// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/handlr-go/handlr/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the command tree around app.
func newRootCommand(app *App) *cobra.Command {
	var (
		verbose bool
		cfgFile string
	)

	root := &cobra.Command{
		Use:   "handlr",
		Short: "Manage default applications for MIME types",
		Long: TitleStyle.Render("handlr") + SubtitleStyle.Render(" - Manage default applications for MIME types") + `

handlr reads and writes the freedesktop mimeapps.list file and opens
paths and URLs with the application registered for their MIME type.

` + SubtitleStyle.Render("Examples:") + `
  handlr open ~/notes.md              Open a file with its default handler
  handlr set .pdf zathura.desktop     Make zathura the PDF viewer
  handlr get x-scheme-handler/https   Show the default browser
  handlr list --all                   Show every known association`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.setGlobalFlags(verbose, cfgFile)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/handlr/handlr.toml)")

	root.AddCommand(
		newOpenCommand(app),
		newSetCommand(app),
		newAddCommand(app),
		newUnsetCommand(app),
		newLaunchCommand(app),
		newGetCommand(app),
		newAskCommand(app),
		newListCommand(app),
		newStatusCommand(app),
		newMimeCommand(app),
		newEditCommand(app),
		newCatCommand(app),
		newConfigCommand(app),
		newCompletionCommand(app),
	)
	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs handlr with the process arguments and exits.
// This is called by main.main().
func Execute() {
	os.Exit(Run())
}

// Run runs handlr with the process arguments and returns the exit status.
func Run() int {
	return int(run(context.Background(), Dependencies{}, os.Args[1:]))
}

// run executes one command line against deps. Cancelled selections map to
// ExitCancelled; every other failure to ExitFailure.
func run(ctx context.Context, deps Dependencies, args []string) types.ExitCode {
	app, err := NewApp(deps)
	if err != nil {
		stderr := deps.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		fmt.Fprintln(stderr, "handlr:", err)
		return types.ExitFailure
	}

	root := newRootCommand(app)
	root.SetArgs(args)
	root.SetIn(app.stdin)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	err = fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	)
	return exitCodeFor(err)
}
