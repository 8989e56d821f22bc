package listen

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/findy-network/findy-agent-hook/cmds"
	"github.com/findy-network/findy-agent-hook/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	_ = flag.Set("logtostderr", "true")
	os.Exit(m.Run())
}

func TestCmd_Validate(t *testing.T) {
	ok := DefaultValues
	withWs := DefaultValues
	withWs.WsURL = "ws://localhost:8030/ws"

	tests := []struct {
		name    string
		modify  func(c *Cmd)
		base    Cmd
		wantErr bool
	}{
		{"defaults", func(*Cmd) {}, ok, false},
		{"websocket", func(*Cmd) {}, withWs, false},
		{"no service", func(c *Cmd) { c.ServiceName = "" }, ok, true},
		{"no port", func(c *Cmd) { c.ServerPort = 0 }, ok, true},
		{"negative grpc", func(c *Cmd) { c.GRPCPort = -1 }, ok, true},
		{"bad ws url", func(c *Cmd) { c.WsURL = "localhost" }, ok, true},
		{"no idle", func(c *Cmd) { c.MaxIdle = 0 }, withWs, true},
		{"bad overflow", func(c *Cmd) { c.BusCmd = cmds.BusCmd{Overflow: "x"} }, ok, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.base
			tt.modify(&c)
			if tt.wantErr {
				assert.Error(t, c.Validate())
			} else {
				assert.NoError(t, c.Validate())
			}
		})
	}
}

func freePort(t *testing.T) uint {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()
	return uint(lis.Addr().(*net.TCPAddr).Port)
}

func TestCmd_Run(t *testing.T) {
	c := DefaultValues
	c.ServerPort = freePort(t)
	require.NoError(t, c.Validate())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var out bytes.Buffer
	go func() { done <- c.Run(ctx, &out) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/topic/connections/", c.ServerPort)
	var code int
	require.Eventually(t, func() bool {
		req, _ := http.NewRequest(http.MethodPost, url,
			strings.NewReader(`{"connection_id":"c1","state":"active"}`))
		req.Header.Set(server.WalletHeader, "w1")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return false
		}
		resp.Body.Close()
		code = resp.StatusCode
		return true
	}, 3*time.Second, 50*time.Millisecond)
	assert.Equal(t, http.StatusAccepted, code)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("listen did not stop")
	}
}
