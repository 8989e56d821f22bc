package cmd

import (
	"fmt"
	"io"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree [command]",
	Short: "Prints the findy-agent-hook commands with their descriptions",
	Long: `Prints the findy-agent-hook commands as a tree. Each line has the
command name and its short description, e.g. which command listens to the
agent's webhooks and which one prints the events of the wallets.

Only the subtree of the given command is printed.
`,
	Example: `  findy-agent-hook tree
  findy-agent-hook tree watch
  findy-agent-hook tree -L 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err, "tree")

		root := rootCmd
		if len(args) > 0 {
			root, _ = try.To2(rootCmd.Find(args))
		}
		printTree(cmd.OutOrStdout(), root, "", 0, true)
		return nil
	},
}

var treeLevel int

func printTree(w io.Writer, c *cobra.Command, indent string, level int, last bool) {
	if treeLevel != 0 && level >= treeLevel {
		return
	}
	branch, next := "├── ", indent+"│   "
	if last {
		branch, next = "└── ", indent+"    "
	}
	fmt.Fprintf(w, "%s%s%-12s %s\n", indent, branch, c.Name(), c.Short)

	subs := c.Commands()
	for i, sub := range subs {
		printTree(w, sub, next, level+1, i == len(subs)-1)
	}
}

func init() {
	treeCmd.Flags().IntVarP(&treeLevel, "level", "L", 0, "levels to print, zero prints all")
	rootCmd.AddCommand(treeCmd)
}
