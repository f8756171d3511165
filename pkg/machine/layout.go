// Package machine describes the VOID-3 register file and the instruction-set
// profiles that the translator targets.
package machine

import (
	"errors"
	"fmt"
)

// Hardware-mapped output registers read by RECT.
const (
	RegRed    = 0
	RegGreen  = 1
	RegBlue   = 2
	RegX      = 3
	RegY      = 4
	RegWidth  = 5
	RegHeight = 6
)

// Hardware input channels read by WAK.
const (
	ChanMouseX = 50
	ChanMouseY = 51
)

// MaxRegs is the size of the largest register file an instruction can
// address: register operands are encoded in 5 trits, so 0-121.
const MaxRegs = 122

// ErrInvalidLayout is returned when register partitions overlap or fall
// outside the register file.
var ErrInvalidLayout = errors.New("invalid register layout")

// Layout partitions the physical register file.
// The partition boundaries are fixed for the whole run.
type Layout struct {
	NumRegs    int `yaml:"count"`
	GPBase     int `yaml:"gp_base"`
	GPCapacity int `yaml:"gp_capacity"`
	StackReg   int `yaml:"stack"`
	StatusReg  int `yaml:"status"`
}

// DefaultLayout is the 27-register file of the most complete machine:
// 0-6 hardware outputs, 7-24 general purpose, 25 stack pointer, 26 status.
var DefaultLayout = Layout{
	NumRegs:    27,
	GPBase:     7,
	GPCapacity: 18,
	StackReg:   25,
	StatusReg:  26,
}

// GPLimit returns one past the last general-purpose register.
func (l Layout) GPLimit() int {
	return l.GPBase + l.GPCapacity
}

// IsGP reports whether r lies in the general-purpose range.
func (l Layout) IsGP(r int) bool {
	return r >= l.GPBase && r < l.GPLimit()
}

// Validate checks that every partition fits in the register file and that
// the general-purpose range does not cover the hardware, stack or status
// registers.
func (l Layout) Validate() error {
	if l.NumRegs <= RegHeight {
		return fmt.Errorf("%w: %d registers cannot hold the hardware outputs", ErrInvalidLayout, l.NumRegs)
	}
	if l.NumRegs > MaxRegs {
		return fmt.Errorf("%w: %d registers exceed the addressable %d", ErrInvalidLayout, l.NumRegs, MaxRegs)
	}
	if l.GPCapacity < 0 {
		return fmt.Errorf("%w: negative gp capacity %d", ErrInvalidLayout, l.GPCapacity)
	}
	if l.GPBase <= RegHeight {
		return fmt.Errorf("%w: gp base %d overlaps hardware outputs", ErrInvalidLayout, l.GPBase)
	}
	if l.GPLimit() > l.NumRegs {
		return fmt.Errorf("%w: gp range [%d,%d) exceeds %d registers", ErrInvalidLayout, l.GPBase, l.GPLimit(), l.NumRegs)
	}
	for _, r := range []struct {
		name string
		reg  int
	}{{"stack", l.StackReg}, {"status", l.StatusReg}} {
		if r.reg < 0 || r.reg >= l.NumRegs {
			return fmt.Errorf("%w: %s register %d out of range", ErrInvalidLayout, r.name, r.reg)
		}
		if r.reg <= RegHeight || l.IsGP(r.reg) {
			return fmt.Errorf("%w: %s register %d overlaps another partition", ErrInvalidLayout, r.name, r.reg)
		}
	}
	if l.StackReg == l.StatusReg {
		return fmt.Errorf("%w: stack and status share register %d", ErrInvalidLayout, l.StackReg)
	}
	return nil
}
