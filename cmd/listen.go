package cmd

import (
	"os"

	"github.com/findy-network/findy-agent-hook/cmds/listen"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var listenEnvs = map[string]string{
	"service-name": "SERVICE_NAME",
	"server-port":  "SERVER_PORT",
	"grpc-port":    "GRPC_PORT",
	"ws-url":       "WS_URL",
	"api-key":      "API_KEY",
	"token":        "TOKEN",
	"max-idle":     "MAX_IDLE",
	"timeout":      "TIMEOUT",
	"capacity":     "CAPACITY",
	"overflow":     "OVERFLOW",
	"tenants":      "TENANTS",
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Command for starting the notification receiver",
	Long: `
Starts the webhook receiver of the agent's notifications. The agent must be
configured to post its webhooks to http://<host>:<server-port>/topic/{topic}/.
If --ws-url is given, notifications are read also from the agent's websocket.

Example
	findy-agent-hook listen \
		--server-port 8090 \
		--grpc-port 50052 \
		--ws-url ws://localhost:8031/ws \
		--api-key secret
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(listenEnvs, "LISTEN")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		try.To(lCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To1(lCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var lCmd = listen.DefaultValues

func init() {
	flags := listenCmd.Flags()
	flags.StringVar(&lCmd.ServiceName, "service-name", lCmd.ServiceName, flagInfo("service name", listenCmd.Name(), listenEnvs["service-name"]))
	flags.UintVar(&lCmd.ServerPort, "server-port", lCmd.ServerPort, flagInfo("webhook server port", listenCmd.Name(), listenEnvs["server-port"]))
	flags.IntVar(&lCmd.GRPCPort, "grpc-port", 0, flagInfo("grpc health service port, zero disables", listenCmd.Name(), listenEnvs["grpc-port"]))
	flags.StringVar(&lCmd.WsURL, "ws-url", "", flagInfo("agent's websocket URL", listenCmd.Name(), listenEnvs["ws-url"]))
	flags.StringVar(&lCmd.APIKey, "api-key", "", flagInfo("agent's admin API key", listenCmd.Name(), listenEnvs["api-key"]))
	flags.StringVar(&lCmd.Token, "token", "", flagInfo("bearer token for a multitenant agent", listenCmd.Name(), listenEnvs["token"]))
	flags.DurationVar(&lCmd.MaxIdle, "max-idle", lCmd.MaxIdle, flagInfo("websocket silence before reconnect", listenCmd.Name(), listenEnvs["max-idle"]))
	flags.DurationVar(&lCmd.Timeout, "timeout", lCmd.Timeout, flagInfo("webhook request timeout", listenCmd.Name(), listenEnvs["timeout"]))
	addBusFlags(listenCmd, &lCmd.BusCmd, listenEnvs)

	rootCmd.AddCommand(listenCmd)
}
