// Package symtab maps Trit-C identifiers onto physical VOID-3 registers and
// hands out synthetic branch labels.
//
// Allocation is flat and monotonic: a name keeps its register for the whole
// run, across what the source might intend as separate function bodies.
// The machine has no call frames, so nothing is ever freed.
package symtab

import (
	"errors"
	"fmt"

	"github.com/raymyers/tritc/pkg/machine"
)

// ErrRegisterExhausted is returned when more distinct identifiers are
// declared than the general-purpose range can hold.
var ErrRegisterExhausted = errors.New("register file exhausted")

// Entry binds one identifier to a register.
type Entry struct {
	Name      string
	Reg       int
	IsPointer bool
}

// Table is the symbol table and register allocator.
type Table struct {
	layout  machine.Layout
	entries []Entry
	index   map[string]int // name -> position in entries
}

// NewTable creates an empty table allocating from layout's GP range.
func NewTable(layout machine.Layout) *Table {
	return &Table{
		layout: layout,
		index:  make(map[string]int),
	}
}

// Resolve returns the register bound to name, allocating the next
// general-purpose register on first use.
func (t *Table) Resolve(name string) (int, error) {
	e, err := t.resolve(name, false)
	if err != nil {
		return 0, err
	}
	return e.Reg, nil
}

// ResolvePointer is Resolve for a name used as a pointer. The pointer flag
// is only recorded when the entry is created.
func (t *Table) ResolvePointer(name string) (int, error) {
	e, err := t.resolve(name, true)
	if err != nil {
		return 0, err
	}
	return e.Reg, nil
}

func (t *Table) resolve(name string, isPtr bool) (Entry, error) {
	if i, ok := t.index[name]; ok {
		return t.entries[i], nil
	}
	if len(t.entries) >= t.layout.GPCapacity {
		return Entry{}, fmt.Errorf("%w: cannot bind %q, all %d general-purpose registers in use",
			ErrRegisterExhausted, name, t.layout.GPCapacity)
	}
	e := Entry{Name: name, Reg: t.layout.GPBase + len(t.entries), IsPointer: isPtr}
	t.index[name] = len(t.entries)
	t.entries = append(t.entries, e)
	return e, nil
}

// Lookup returns the entry for name without allocating.
func (t *Table) Lookup(name string) (Entry, bool) {
	i, ok := t.index[name]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Len returns the number of bound identifiers.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the bindings in allocation order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}
