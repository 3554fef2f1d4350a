// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// newCompletionCommand creates the `handlr completion` command.
func newCompletionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for handlr.

` + SubtitleStyle.Render("Bash:") + `
  eval "$(handlr completion bash)"

` + SubtitleStyle.Render("Zsh:") + `
  handlr completion zsh > "${fpath[1]}/_handlr"

` + SubtitleStyle.Render("Fish:") + `
  handlr completion fish > ~/.config/fish/completions/handlr.fish

` + SubtitleStyle.Render("PowerShell:") + `
  handlr completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(app.stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(app.stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(app.stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(app.stdout)
			}
			return nil
		},
	}
}

type completionFunc = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// completeMimeArg completes the first argument with MIME types advertised by
// installed applications.
func completeMimeArg(app *App) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveDefault
		}
		return app.mimeCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// completeHandlerArg completes the first argument with installed handlers.
func completeHandlerArg(app *App) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return app.handlerCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// completeMimeThenHandler completes a MIME type followed by a handler.
func completeMimeThenHandler(app *App) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		switch len(args) {
		case 0:
			return app.mimeCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
		case 1:
			return app.handlerCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

func (a *App) mimeCompletions(cmd *cobra.Command, prefix string) []string {
	store, err := a.Store(cmd.Context())
	if err != nil {
		return nil
	}
	var out []string
	for _, m := range store.System().Mimes() {
		if strings.HasPrefix(m.String(), prefix) {
			out = append(out, m.String())
		}
	}
	return out
}

func (a *App) handlerCompletions(cmd *cobra.Command, prefix string) []string {
	store, err := a.Store(cmd.Context())
	if err != nil {
		return nil
	}
	var out []string
	for e := range store.System().All() {
		if strings.HasPrefix(e.ID, prefix) {
			out = append(out, e.ID+"\t"+e.Name)
		}
	}
	return out
}
