package cmd

import (
	"fmt"

	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Prints the known notification topics and their payload kinds",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) (err error) {
		defer err2.Handle(&err)

		for _, topic := range event.Topics() {
			kind, _ := event.Lookup(topic)
			try.To1(fmt.Printf("%-26s %s\n", topic, kind))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}
