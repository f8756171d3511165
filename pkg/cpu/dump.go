package cpu

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/raymyers/tritc/pkg/machine"
)

var hardwareNames = []string{"R", "G", "B", "X", "Y", "W", "H"}

// regRole names the partition register r belongs to.
func (c *CPU) regRole(r int) string {
	switch {
	case r <= machine.RegHeight:
		return "hw " + hardwareNames[r]
	case r == c.layout.StackReg:
		return "stack"
	case r == c.layout.StatusReg:
		return "status"
	case c.layout.IsGP(r):
		return "gp"
	}
	return ""
}

// Dump writes the machine state as a table: pc, step count and halt flag
// first, then one row per non-zero register plus the hardware and special
// ones.
func (c *CPU) Dump(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("VOID-3")
	t.AppendHeader(table.Row{"Reg", "Role", "Value"})
	t.AppendRow(table.Row{"pc", "state", c.pc})
	t.AppendRow(table.Row{"steps", "state", c.steps})
	t.AppendRow(table.Row{"halted", "state", fmt.Sprintf("%t", c.halted)})
	t.AppendSeparator()
	for r, v := range c.regs {
		role := c.regRole(r)
		if role == "gp" && v == 0 {
			continue
		}
		t.AppendRow(table.Row{r, role, v})
	}
	t.Render()
}
