package cmd

import (
	"os"
	"time"

	"github.com/findy-network/findy-agent-hook/cmds"
	"github.com/findy-network/findy-agent-hook/cmds/watch"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var watchEnvs = map[string]string{
	"ws-url":   "WS_URL",
	"api-key":  "API_KEY",
	"token":    "TOKEN",
	"wallet":   "WALLET",
	"topic":    "TOPIC",
	"count":    "COUNT",
	"max-idle": "MAX_IDLE",
	"capacity": "CAPACITY",
	"overflow": "OVERFLOW",
	"tenants":  "TENANTS",
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Command for printing the agent's events",
	Long: `
Connects to the agent's websocket and prints the received events, one per
line: <wallet> <topic> <payload JSON>. Events can be filtered by wallet ids and
by topics, see the topics command for the known topics.

Example
	findy-agent-hook watch \
		--ws-url ws://localhost:8031/ws \
		--wallet 3fa85f64-5717-4562-b3fc-2c963f66afa6 \
		--topic connections --topic issue_credential
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(watchEnvs, "WATCH")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		try.To(wCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To1(wCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var wCmd = watch.Cmd{}

func init() {
	flags := watchCmd.Flags()
	flags.StringVar(&wCmd.URL, "ws-url", "", flagInfo("agent's websocket URL", watchCmd.Name(), watchEnvs["ws-url"]))
	flags.StringVar(&wCmd.APIKey, "api-key", "", flagInfo("agent's admin API key", watchCmd.Name(), watchEnvs["api-key"]))
	flags.StringVar(&wCmd.Token, "token", "", flagInfo("bearer token for a multitenant agent", watchCmd.Name(), watchEnvs["token"]))
	flags.StringSliceVar(&wCmd.Tenants, "wallet", nil, flagInfo("wallet ids to watch, empty is all", watchCmd.Name(), watchEnvs["wallet"]))
	flags.StringSliceVar(&wCmd.Topics, "topic", nil, flagInfo("topics to watch, empty is all", watchCmd.Name(), watchEnvs["topic"]))
	flags.IntVar(&wCmd.Count, "count", 0, flagInfo("stop after this many events, zero is no limit", watchCmd.Name(), watchEnvs["count"]))
	flags.DurationVar(&wCmd.MaxIdle, "max-idle", 2*time.Minute, flagInfo("websocket silence before reconnect", watchCmd.Name(), watchEnvs["max-idle"]))
	addBusFlags(watchCmd, &wCmd.BusCmd, watchEnvs)

	rootCmd.AddCommand(watchCmd)
}

func addBusFlags(c *cobra.Command, bc *cmds.BusCmd, envs map[string]string) {
	flags := c.Flags()
	flags.IntVar(&bc.Capacity, "capacity", 0, flagInfo("event bus queue size, zero is the default", c.Name(), envs["capacity"]))
	flags.StringVar(&bc.Overflow, "overflow", "block", flagInfo("event bus overflow policy: block|drop-oldest", c.Name(), envs["overflow"]))
	flags.StringVar(&bc.TenantsFile, "tenants", "", flagInfo("YAML file of wallet names for logging", c.Name(), envs["tenants"]))
}
