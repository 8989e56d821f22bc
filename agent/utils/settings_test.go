package utils

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHub_Defaults(t *testing.T) {
	h := &Hub{}
	assert.Equal(t, HTTPReqTimeout, h.Timeout())
	assert.Equal(t, DefaultMaxIdle, h.MaxIdle())
	assert.Equal(t, 0, h.BusCapacity())
	assert.Equal(t, "", h.ServiceName())

	h.SetTimeout(time.Second)
	h.SetMaxIdle(3 * time.Second)
	h.SetBusCapacity(20)
	h.SetOverflow("drop-oldest")
	h.SetServiceName("hook")
	assert.Equal(t, time.Second, h.Timeout())
	assert.Equal(t, 3*time.Second, h.MaxIdle())
	assert.Equal(t, 20, h.BusCapacity())
	assert.Equal(t, "drop-oldest", h.Overflow())
	assert.Equal(t, "hook", h.ServiceName())
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, "/home/tester", ExpandHome("~"))
	assert.Equal(t, filepath.Join("/home/tester", "tenants.yaml"), ExpandHome("~/tenants.yaml"))
	assert.Equal(t, "/etc/tenants.yaml", ExpandHome("/etc/tenants.yaml"))

	h := &Hub{}
	h.SetTenantsFile("~/t.yaml")
	assert.Equal(t, "/home/tester/t.yaml", h.TenantsFile())
}

func TestUUID(t *testing.T) {
	a, b := UUID(), UUID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
