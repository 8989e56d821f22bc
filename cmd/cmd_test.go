package cmd

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMain(m *testing.M) {
	_ = flag.Set("logtostderr", "true")
	os.Exit(m.Run())
}

func TestExecute(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	tenants := filepath.Join(t.TempDir(), "tenants.yaml")
	if err := os.WriteFile(tenants, []byte("tenants:\n  w1: alice\n"), 0600); err != nil {
		t.Fatal(err)
	}

	// Define tests
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{
			name: "listen",
			args: []string{"cmd",
				"listen", "--dry-run",
				"--server-port", "8090",
			},
		},
		{
			name: "listen with websocket",
			args: []string{"cmd",
				"listen", "--dry-run",
				"--ws-url", "ws://localhost:8031/ws",
				"--api-key", "secret",
				"--grpc-port", "50052",
				"--overflow", "drop-oldest",
				"--tenants", tenants,
			},
		},
		{
			name: "listen bad overflow",
			args: []string{"cmd",
				"listen", "--dry-run",
				"--overflow", "newest",
			},
			wantErr: true,
		},
		{
			name: "watch",
			args: []string{"cmd",
				"watch", "--dry-run",
				"--ws-url", "ws://localhost:8031/ws",
				"--wallet", "w1",
				"--topic", "connections",
				"--topic", "present_proof",
			},
		},
		{
			name: "watch unknown topic",
			args: []string{"cmd",
				"watch", "--dry-run",
				"--ws-url", "ws://localhost:8031/ws",
				"--topic", "no_such_topic",
			},
			wantErr: true,
		},
		{
			name: "topics",
			args: []string{"cmd", "topics"},
		},
		{
			name: "version",
			args: []string{"cmd", "version"},
		},
		{
			name: "tree",
			args: []string{"cmd", "tree", "-L", "2"},
		},
	}

	// Iterate tests
	for _, test := range tests {
		os.Args = test.args
		rootCmd.SilenceUsage = true
		rootCmd.SilenceErrors = true

		t.Run(test.name, func(t *testing.T) {
			err := rootCmd.Execute()
			if (err != nil) != test.wantErr {
				t.Errorf("Test error = %v, wantErr %v", err, test.wantErr)
			}
		})
		wCmd.Topics = nil
		wCmd.Tenants = nil
		lCmd.BusCmd.Overflow = "block"
	}
}

func TestGetEnvName(t *testing.T) {
	if got := getEnvName("", "CONFIG"); got != "FHOOK_CONFIG" {
		t.Errorf("getEnvName() = %v", got)
	}
	if got := getEnvName("listen", "WS_URL"); got != "FHOOK_LISTEN_WS_URL" {
		t.Errorf("getEnvName() = %v", got)
	}
}

func TestOutputCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"tree", []string{"tree", "-L", "2"}, []string{"└── findy-agent-hook", "listen", "watch", "topics"}},
		{"tree of watch", []string{"tree", "watch"}, []string{"watch", "printing the agent's events"}},
		{"bash completion", []string{"completion", "bash"}, []string{"findy-agent-hook"}},
		{"fish completion", []string{"completion", "fish"}, []string{"findy-agent-hook"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rootCmd.SetOut(&buf)
			rootCmd.SetArgs(tt.args)
			defer func() {
				rootCmd.SetOut(nil)
				rootCmd.SetArgs(nil)
				treeLevel = 0
			}()

			if err := rootCmd.Execute(); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output doesn't contain %q:\n%s", w, buf.String())
				}
			}
		})
	}
}
