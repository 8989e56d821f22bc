/*
Package tenant is the side table of human readable wallet names. The names
are used for logging only. A missing name, or a missing table, is never an
error: the raw wallet id is used instead.
*/
package tenant

import (
	"os"
	"sync"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"gopkg.in/yaml.v3"
)

// BaseWallet is the label of the agent's own wallet which sends
// notifications without a wallet id.
const BaseWallet = "base"

// Names maps wallet ids to names.
type Names interface {
	Name(id string) (string, bool)
}

// Table is a thread safe Names implementation.
type Table struct {
	lk    sync.RWMutex
	names map[string]string
}

func NewTable() *Table {
	return &Table{names: make(map[string]string)}
}

func (t *Table) Name(id string) (string, bool) {
	if t == nil {
		return "", false
	}
	t.lk.RLock()
	defer t.lk.RUnlock()
	name, ok := t.names[id]
	return name, ok
}

func (t *Table) Set(id, name string) {
	t.lk.Lock()
	defer t.lk.Unlock()
	t.names[id] = name
}

func (t *Table) Remove(id string) {
	t.lk.Lock()
	defer t.lk.Unlock()
	delete(t.names, id)
}

func (t *Table) Len() int {
	t.lk.RLock()
	defer t.lk.RUnlock()
	return len(t.names)
}

type file struct {
	Tenants map[string]string `yaml:"tenants"`
}

// LoadFile reads the YAML file of the format:
//
//	tenants:
//	  <wallet-id>: <name>
func LoadFile(path string) (t *Table, err error) {
	defer err2.Handle(&err, "load tenant names")

	data := try.To1(os.ReadFile(path))
	return Parse(data)
}

// Parse parses tenant names from YAML data, see LoadFile.
func Parse(data []byte) (t *Table, err error) {
	defer err2.Handle(&err)

	var f file
	try.To(yaml.Unmarshal(data, &f))
	t = NewTable()
	for id, name := range f.Tenants {
		t.Set(id, name)
	}
	return t, nil
}

// Label returns the printable name of the wallet. It falls back to the id
// when names is nil or it doesn't know the wallet.
func Label(names Names, id string) string {
	if id == "" {
		return BaseWallet
	}
	if names == nil {
		return id
	}
	if name, ok := names.Name(id); ok && name != "" {
		return name + "(" + id + ")"
	}
	return id
}
