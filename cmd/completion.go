package cmd

import (
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generates shell completion scripts for findy-agent-hook",
	Long: `Generates the completion script of findy-agent-hook for the shell.

The script completes the commands and their flags, e.g. the topic names
of the watch command after --topic are found with the topics command.
To use the completions in every session, add the source line to your shell
configuration script, e.g. .bashrc or .zshrc.
`,
	Example: `  source <(findy-agent-hook completion bash)
  findy-agent-hook completion zsh > "${fpath[1]}/_findy-agent-hook"
  findy-agent-hook completion fish | source`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err, "completion %s", args[0])

		w := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			try.To(rootCmd.GenBashCompletionV2(w, true))
		case "zsh":
			try.To(rootCmd.GenZshCompletion(w))
		case "fish":
			try.To(rootCmd.GenFishCompletion(w, true))
		case "powershell":
			try.To(rootCmd.GenPowerShellCompletionWithDesc(w))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
