package cli

import (
	"github.com/spf13/cobra"
)

// layoutExtensions are the file types offered when completing --in.
var layoutExtensions = []string{"json", "yaml", "yml"}

// completeLayoutFiles limits --in completion to layout documents.
func completeLayoutFiles(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("in", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return layoutExtensions, cobra.ShellCompDirectiveFilterFileExt
	})
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for kbgen.

Completions cover subcommands and flags; --in only offers .json, .yaml and
.yml layout files.

To load completions:

Bash:
  $ source <(kbgen completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ kbgen completion bash > /etc/bash_completion.d/kbgen
  # macOS:
  $ kbgen completion bash > $(brew --prefix)/etc/bash_completion.d/kbgen

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ kbgen completion zsh > "${fpath[1]}/_kbgen"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ kbgen completion fish | source

  # To load completions for each session, execute once:
  $ kbgen completion fish > ~/.config/fish/completions/kbgen.fish

PowerShell:
  PS> kbgen completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> kbgen completion powershell > kbgen.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}
