package utils

import (
	"time"

	"github.com/golang/glog"
)

const (
	DefaultMaxIdle = 2 * time.Minute
	HTTPReqTimeout = 1 * time.Minute
)

var Settings = &Hub{}

type Hub struct {
	serviceName string        // name of the this service used in logs and version info
	versionInfo string        // Version number etc. in free format as a string
	timeout     time.Duration // timeout for HTTP requests, see Timeout
	maxIdle     time.Duration // websocket silence after which we reconnect
	tenantsFile string        // YAML file of the wallet names

	busCapacity int
	overflow    string
}

func (h *Hub) SetServiceName(n string) {
	h.serviceName = n
}

func (h *Hub) ServiceName() string {
	if h.serviceName == "" && glog.V(3) {
		glog.Info("warning service name is empty")
	}
	return h.serviceName
}

// SetVersionInfo sets current version info of this service. The info is
// shown by the version command and the /version endpoint.
func (h *Hub) SetVersionInfo(info string) {
	h.versionInfo = info
}

func (h *Hub) VersionInfo() string {
	return h.versionInfo
}

// SetTimeout sets the default timeout for HTTP requests.
func (h *Hub) SetTimeout(to time.Duration) {
	h.timeout = to
}

func (h *Hub) Timeout() time.Duration {
	if h.timeout == 0 {
		return HTTPReqTimeout
	}
	return h.timeout
}

func (h *Hub) SetMaxIdle(d time.Duration) {
	h.maxIdle = d
}

func (h *Hub) MaxIdle() time.Duration {
	if h.maxIdle == 0 {
		return DefaultMaxIdle
	}
	return h.maxIdle
}

func (h *Hub) SetTenantsFile(path string) {
	h.tenantsFile = ExpandHome(path)
}

func (h *Hub) TenantsFile() string {
	return h.tenantsFile
}

func (h *Hub) SetBusCapacity(c int) {
	h.busCapacity = c
}

// BusCapacity returns the queue size of the event bus, 0 means the bus
// default.
func (h *Hub) BusCapacity() int {
	return h.busCapacity
}

func (h *Hub) SetOverflow(policy string) {
	h.overflow = policy
}

func (h *Hub) Overflow() string {
	return h.overflow
}
