// Package completion provides the completion command.
package completion

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/leadmerge/internal/cmd/constants"
)

// NewCommand creates the completion command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for leadmerge on stdout.

Bash:

  $ source <(leadmerge completion bash)

Zsh:

  $ leadmerge completion zsh > "${fpath[1]}/_leadmerge"

Fish:

  $ leadmerge completion fish > ~/.config/fish/completions/leadmerge.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs: []string{
			constants.ShellBash,
			constants.ShellZsh,
			constants.ShellFish,
			constants.ShellPowerShell,
		},
		Args: cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			w := cmd.OutOrStdout()
			switch args[0] {
			case constants.ShellBash:
				return root.GenBashCompletionV2(w, true)
			case constants.ShellZsh:
				return root.GenZshCompletion(w)
			case constants.ShellFish:
				return root.GenFishCompletion(w, true)
			case constants.ShellPowerShell:
				return root.GenPowerShellCompletionWithDesc(w)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}
