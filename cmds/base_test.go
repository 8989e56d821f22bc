package cmds

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/findy-network/findy-agent-hook/agent/bus"
	"github.com/findy-network/findy-agent-hook/agent/utils"
	"github.com/lainio/err2/assert"
)

func TestValidateWsURL(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	assert.NoError(ValidateWsURL("ws://localhost:8030/ws"))
	assert.NoError(ValidateWsURL("https://agent.example.com/ws"))
	assert.Error(ValidateWsURL(""))
	assert.Error(ValidateWsURL("ftp://localhost/ws"))
	assert.Error(ValidateWsURL("ws:///ws"))
}

func TestBusCmd_Validate(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	assert.NoError(BusCmd{}.Validate())
	assert.NoError(BusCmd{Capacity: 5, Overflow: "drop-oldest"}.Validate())
	assert.Error(BusCmd{Capacity: -1}.Validate())
	assert.Error(BusCmd{Overflow: "newest"}.Validate())
}

func TestBusCmd_NewBus(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	path := filepath.Join(t.TempDir(), "tenants.yaml")
	assert.NoError(os.WriteFile(path, []byte("tenants:\n  w1: alice\n"), 0600))

	c := BusCmd{Capacity: 3, Overflow: "drop-oldest", TenantsFile: path}
	b, names, err := c.NewBus("cmds-test")
	assert.NoError(err)
	defer b.Close()

	assert.Equal(b.Name(), "cmds-test")
	assert.Equal(b.Capacity(), 3)
	assert.Equal(b.Overflow(), bus.DropOldest)
	assert.Equal(utils.Settings.BusCapacity(), 3)
	name, ok := names.Name("w1")
	assert.That(ok)
	assert.Equal(name, "alice")

	_, _, err = BusCmd{TenantsFile: filepath.Join(t.TempDir(), "missing.yaml")}.NewBus("x")
	assert.Error(err)
}

func TestFprint(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	var buf bytes.Buffer
	Fprintf(&buf, "%s-%d", "a", 1)
	Fprintln(&buf, "")
	Fprintln(nil, "nothing")
	assert.Equal(buf.String(), "a-1\n")
}
