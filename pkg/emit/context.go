// Package emit expands classified Trit-C statements into VOID-3 instructions.
package emit

import (
	"github.com/raymyers/tritc/pkg/machine"
	"github.com/raymyers/tritc/pkg/symtab"
)

// Context is the mutable state of one translation run. It is owned by the
// driver and shared by reference with the emitter.
type Context struct {
	Profile *machine.Profile
	Symbols *symtab.Table
	Labels  *symtab.Labels
}

// NewContext creates a fresh context for profile
func NewContext(profile *machine.Profile) *Context {
	return &Context{
		Profile: profile,
		Symbols: symtab.NewTable(profile.Layout),
		Labels:  &symtab.Labels{},
	}
}
