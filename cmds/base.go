/*
Package cmds has the command implementations of the CLI. Every command has a
Validate method for the arguments and an Exec method which does the work.
The cmd package binds them to the cobra commands.
*/
package cmds

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/findy-network/findy-agent-hook/agent/bus"
	"github.com/findy-network/findy-agent-hook/agent/tenant"
	"github.com/findy-network/findy-agent-hook/agent/utils"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

var ErrInvalid = errors.New("invalid command, check arguments")

type Result interface {
	JSON() ([]byte, error)
}

type Command interface {
	Validate() error
	Exec(w io.Writer) (r Result, err error)
}

// BusCmd has the event bus arguments shared by the commands which start a
// bus.
type BusCmd struct {
	Capacity    int
	Overflow    string
	TenantsFile string
}

func (c BusCmd) Validate() error {
	if c.Capacity < 0 {
		return errors.New("bus capacity cannot be negative")
	}
	if _, err := bus.ParseOverflow(c.Overflow); err != nil {
		return err
	}
	return nil
}

// NewBus stores the settings to utils.Settings, reads the tenant names if
// the file is given and starts the bus.
func (c BusCmd) NewBus(name string) (b *bus.Bus, names tenant.Names, err error) {
	defer err2.Handle(&err, "new bus")

	utils.Settings.SetBusCapacity(c.Capacity)
	utils.Settings.SetOverflow(c.Overflow)
	utils.Settings.SetTenantsFile(c.TenantsFile)

	table := tenant.NewTable()
	if path := utils.Settings.TenantsFile(); path != "" {
		table = try.To1(tenant.LoadFile(path))
		glog.V(1).Infof("%d tenant names read from %s", table.Len(), path)
	}
	overflow := try.To1(bus.ParseOverflow(utils.Settings.Overflow()))
	opts := []bus.Option{
		bus.WithName(name),
		bus.WithOverflow(overflow),
		bus.WithNames(table),
	}
	if capacity := utils.Settings.BusCapacity(); capacity > 0 {
		opts = append(opts, bus.WithCapacity(capacity))
	}
	return bus.New(opts...), table, nil
}

// WsCmd has the arguments of the agent's websocket channel.
type WsCmd struct {
	URL    string
	APIKey string
	Token  string
}

func (c WsCmd) Validate() error {
	return ValidateWsURL(c.URL)
}

func ValidateWsURL(s string) error {
	if s == "" {
		return errors.New("websocket URL cannot be empty")
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("websocket URL: %w", err)
	}
	switch u.Scheme {
	case "ws", "wss", "http", "https":
	default:
		return fmt.Errorf("websocket URL scheme %q not supported", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("websocket URL has no host")
	}
	return nil
}

// ParseLoggingArgs parses glog flags given as one string, e.g.
// "-logtostderr=true -v=2".
func ParseLoggingArgs(s string) {
	args := make([]string, 1, 12)
	args[0] = os.Args[0]
	args = append(args, strings.Fields(s)...)
	orgArgs := os.Args
	os.Args = args
	flag.Parse()
	os.Args = orgArgs
}

// Fprintln is fmt.Fprintln but it allows writer to be nil. Note! it throws an
// error.
func Fprintln(w io.Writer, a ...interface{}) {
	if w != nil {
		try.To1(fmt.Fprintln(w, a...))
	}
}

// Fprintf is fmt.Fprintf but it allows writer to be nil. Note! it throws an
// error.
func Fprintf(w io.Writer, format string, a ...interface{}) {
	if w != nil {
		try.To1(fmt.Fprintf(w, format, a...))
	}
}
