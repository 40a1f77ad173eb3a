// Package route maps request names to catalog requests so transports that
// only see a name and a JSON payload can dispatch through the mediator.
package route

import (
	"encoding/json"
	"fmt"
	"sort"

	domainerror "github.com/0xsj/overwatch-mediator/internal/domain/error"
	"github.com/0xsj/overwatch-mediator/internal/port/inbound/command"
	"github.com/0xsj/overwatch-mediator/internal/port/inbound/query"
	"github.com/0xsj/overwatch-mediator/pkg/mediator"
)

// Decoder builds a request from a JSON payload.
type Decoder func(payload []byte) (mediator.AnyRequest, error)

// Table maps request names to decoders. It is read-only once built.
type Table struct {
	decoders map[string]Decoder
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{decoders: make(map[string]Decoder)}
}

// Catalog returns the table of every catalog query and command.
func Catalog() *Table {
	t := NewTable()
	AddQuery[query.GetItem](t)
	AddQuery[query.ListItems](t)
	AddCommand[command.CreateItem](t)
	AddCommand[command.RenameItem](t)
	AddCommand[command.DeleteItem](t)
	return t
}

// AddQuery registers Q under its QueryName.
func AddQuery[Q query.Query](t *Table) {
	var zero Q
	t.add(zero.QueryName(), decodeJSON[Q])
}

// AddCommand registers C under its CommandName.
func AddCommand[C command.Command](t *Table) {
	var zero C
	t.add(zero.CommandName(), decodeJSON[C])
}

func (t *Table) add(name string, dec Decoder) {
	if _, dup := t.decoders[name]; dup {
		panic(fmt.Sprintf("route: duplicate request name %q", name))
	}
	t.decoders[name] = dec
}

// Decode builds the request registered under name.
// An empty payload decodes to the zero request.
func (t *Table) Decode(name string, payload []byte) (mediator.AnyRequest, error) {
	dec, ok := t.decoders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domainerror.ErrRequestUnknown, name)
	}
	return dec(payload)
}

// Names returns the registered request names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.decoders))
	for name := range t.decoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func decodeJSON[T mediator.AnyRequest](payload []byte) (mediator.AnyRequest, error) {
	var req T
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("%w: %v", domainerror.ErrRequestInvalid, err)
		}
	}
	return req, nil
}
