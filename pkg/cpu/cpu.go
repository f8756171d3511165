// Package cpu emulates the VOID-3 ternary machine closely enough to run
// translator output: a register file of balanced words, a flat trit memory
// holding VRAM, the program and a call stack, and two input devices.
package cpu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/raymyers/tritc/pkg/assembler"
	"github.com/raymyers/tritc/pkg/machine"
	"github.com/raymyers/tritc/pkg/trit"
)

// Memory map. VRAM occupies the bottom of memory, the program is loaded at
// ProgramBase and the stack grows down from the top.
const (
	ScreenSize   = 243
	ChannelTrits = 3
	PixelTrits   = 3 * ChannelTrits
	VRAMTrits    = ScreenSize * ScreenSize * PixelTrits
	MemoryTrits  = 1594323 // 3^13
	ProgramBase  = 531441  // 3^12
	StackCell    = assembler.InstTrits
)

// LevelTrace logs every executed instruction.
const LevelTrace = slog.LevelDebug - 4

var (
	ErrNotLoaded     = errors.New("no program loaded")
	ErrProgramSize   = errors.New("program does not fit in memory")
	ErrIllegal       = errors.New("illegal instruction")
	ErrAddress       = errors.New("address out of range")
	ErrStackOverflow = errors.New("stack overflow")
	ErrStepLimit     = errors.New("step limit reached")
)

// Input is the machine's view of the mouse and keyboard.
type Input interface {
	MouseX() int64
	MouseY() int64
	KeyPressed(code int64) bool
}

// Options configures a CPU
type Options struct {
	Input  Input        // nil reads zero mouse and no keys
	Logger *slog.Logger // nil discards
}

// CPU is one VOID-3 core
type CPU struct {
	layout machine.Layout
	regs   []int64
	mem    []int8

	pc      int
	progLen int
	loaded  bool
	halted  bool
	steps   int

	input Input
	log   *slog.Logger
}

// New creates a CPU with the register file described by layout.
func New(layout machine.Layout, opts Options) *CPU {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CPU{
		layout: layout,
		regs:   make([]int64, layout.NumRegs),
		mem:    make([]int8, MemoryTrits),
		input:  opts.Input,
		log:    log,
	}
}

// Load resets the machine and places prog at ProgramBase.
func (c *CPU) Load(prog *assembler.Program) error {
	if ProgramBase+prog.Len()*assembler.InstTrits > MemoryTrits-StackCell {
		return fmt.Errorf("%w: %d instructions", ErrProgramSize, prog.Len())
	}
	clear(c.mem)
	clear(c.regs)
	if err := prog.Encode(c.mem, ProgramBase); err != nil {
		return err
	}
	c.regs[c.layout.StackReg] = MemoryTrits
	c.pc = 0
	c.progLen = prog.Len()
	c.loaded = true
	c.halted = false
	c.steps = 0
	return nil
}

// Halted reports whether the machine stopped.
func (c *CPU) Halted() bool { return c.halted }

// PC returns the index of the next instruction.
func (c *CPU) PC() int { return c.pc }

// Steps returns the number of instructions executed since Load.
func (c *CPU) Steps() int { return c.steps }

// Reg returns register r.
func (c *CPU) Reg(r int) int64 { return c.regs[r] }

// SetReg writes register r, wrapping v to a word.
func (c *CPU) SetReg(r int, v int64) { c.regs[r] = trit.Clamp(v, trit.WordTrits) }

// Registers returns a copy of the register file.
func (c *CPU) Registers() []int64 {
	return append([]int64(nil), c.regs...)
}

// VRAM returns the frame buffer. The slice aliases machine memory.
func (c *CPU) VRAM() []int8 { return c.mem[:VRAMTrits] }

// Pixel returns the red, green and blue channel values at (x, y).
func (c *CPU) Pixel(x, y int) (r, g, b int64) {
	a := (y*ScreenSize + x) * PixelTrits
	return trit.Decode(c.mem, a, ChannelTrits),
		trit.Decode(c.mem, a+ChannelTrits, ChannelTrits),
		trit.Decode(c.mem, a+2*ChannelTrits, ChannelTrits)
}

// Run steps until the machine halts or maxSteps instructions have run.
// maxSteps <= 0 means no limit. It returns the number of steps taken and
// ErrStepLimit when the limit stopped a still running program.
func (c *CPU) Run(maxSteps int) (int, error) {
	n := 0
	for !c.halted {
		if maxSteps > 0 && n >= maxSteps {
			return n, ErrStepLimit
		}
		if err := c.Step(); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Step executes one instruction. Running off the end of the program halts.
func (c *CPU) Step() error {
	if !c.loaded {
		return ErrNotLoaded
	}
	if c.halted {
		return nil
	}
	if c.pc < 0 || c.pc >= c.progLen {
		c.halted = true
		return nil
	}

	in := assembler.DecodeInstr(c.mem, ProgramBase+c.pc*assembler.InstTrits)
	if c.log.Enabled(context.Background(), LevelTrace) {
		op, _ := assembler.Mnemonic(in.Op)
		c.log.Log(context.Background(), LevelTrace, "exec", "pc", c.pc, "op", op, "a1", in.A1, "a2", in.A2)
	}
	c.steps++
	next := c.pc + 1

	switch in.Op {
	case assembler.OpSLP:
		c.halted = true
		return nil
	case assembler.OpADD, assembler.OpSUB, assembler.OpMUL, assembler.OpDIV,
		assembler.OpMIN, assembler.OpMAX, assembler.OpTRI, assembler.OpCPY,
		assembler.OpLOD, assembler.OpSTR:
		a, b, err := c.regPair(in)
		if err != nil {
			return err
		}
		if err := c.alu(in.Op, a, b); err != nil {
			return err
		}
	case assembler.OpSET, assembler.OpWAK, assembler.OpKEY,
		assembler.OpTSL, assembler.OpTSR:
		a, err := c.reg(in.A1)
		if err != nil {
			return err
		}
		c.immediate(in.Op, a, in.A2)
	case assembler.OpJMP:
		next = int(in.A2)
	case assembler.OpBRZ:
		if c.status() == 0 {
			next = int(in.A2)
		}
	case assembler.OpBRP:
		if c.status() > 0 {
			next = int(in.A2)
		}
	case assembler.OpBRN:
		if c.status() < 0 {
			next = int(in.A2)
		}
	case assembler.OpCAL:
		if err := c.push(int64(next)); err != nil {
			return err
		}
		next = int(in.A2)
	case assembler.OpRET:
		ret, ok := c.pop()
		if !ok {
			c.halted = true
			return nil
		}
		next = int(ret)
	case assembler.OpRECT:
		c.rect()
	case assembler.OpCLS:
		clear(c.mem[:VRAMTrits])
	default:
		return fmt.Errorf("%w: opcode %d at %d", ErrIllegal, in.Op, c.pc)
	}

	c.pc = next
	return nil
}

func (c *CPU) reg(v int64) (int, error) {
	if v < 0 || v >= int64(len(c.regs)) {
		return 0, fmt.Errorf("%w: register %d at %d", ErrIllegal, v, c.pc)
	}
	return int(v), nil
}

func (c *CPU) regPair(in assembler.Instr) (int, int, error) {
	a, err := c.reg(in.A1)
	if err != nil {
		return 0, 0, err
	}
	b, err := c.reg(in.A2)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func (c *CPU) alu(op, a, b int) error {
	x, y := c.regs[a], c.regs[b]
	switch op {
	case assembler.OpADD:
		c.SetReg(a, x+y)
	case assembler.OpSUB:
		c.SetReg(a, x-y)
	case assembler.OpMUL:
		c.regs[a] = trit.MulClamp(x, y, trit.WordTrits)
	case assembler.OpDIV:
		if y == 0 {
			c.regs[a] = 0
		} else {
			c.regs[a] = x / y
		}
	case assembler.OpMIN:
		c.regs[a] = min(x, y)
	case assembler.OpMAX:
		c.regs[a] = max(x, y)
	case assembler.OpTRI:
		c.regs[c.layout.StatusReg] = sign(x - y)
	case assembler.OpCPY:
		c.regs[a] = y
	case assembler.OpLOD:
		addr, err := c.wordAddr(y)
		if err != nil {
			return err
		}
		c.regs[a] = trit.Decode(c.mem, addr, trit.WordTrits)
	case assembler.OpSTR:
		addr, err := c.wordAddr(y)
		if err != nil {
			return err
		}
		trit.Encode(c.mem, addr, trit.WordTrits, x)
	}
	return nil
}

func (c *CPU) immediate(op, a int, v int64) {
	switch op {
	case assembler.OpSET:
		c.regs[a] = v
	case assembler.OpWAK:
		c.regs[a] = c.wake(v)
	case assembler.OpKEY:
		if c.input != nil && c.input.KeyPressed(v) {
			c.regs[a] = 1
		} else {
			c.regs[a] = -1
		}
	case assembler.OpTSL, assembler.OpTSR:
		if op == assembler.OpTSR {
			v = -v
		}
		x := c.regs[a]
		for ; v > 0; v-- {
			x = trit.MulClamp(x, 3, trit.WordTrits)
		}
		for ; v < 0; v++ {
			x = trit.ShiftRight(x)
		}
		c.regs[a] = x
	}
}

// wake reads a hardware channel, or returns v itself for any other value.
func (c *CPU) wake(v int64) int64 {
	if c.input == nil {
		if v == machine.ChanMouseX || v == machine.ChanMouseY {
			return 0
		}
		return v
	}
	switch v {
	case machine.ChanMouseX:
		return trit.Clamp(c.input.MouseX(), trit.WordTrits)
	case machine.ChanMouseY:
		return trit.Clamp(c.input.MouseY(), trit.WordTrits)
	}
	return v
}

func (c *CPU) status() int64 {
	return c.regs[c.layout.StatusReg]
}

func (c *CPU) wordAddr(v int64) (int, error) {
	if v < 0 || v > MemoryTrits-trit.WordTrits {
		return 0, fmt.Errorf("%w: %d at %d", ErrAddress, v, c.pc)
	}
	return int(v), nil
}

func (c *CPU) push(v int64) error {
	sp := c.regs[c.layout.StackReg] - StackCell
	if sp < int64(ProgramBase+c.progLen*assembler.InstTrits) {
		return fmt.Errorf("%w at %d", ErrStackOverflow, c.pc)
	}
	trit.Encode(c.mem, int(sp), StackCell, v)
	c.regs[c.layout.StackReg] = sp
	return nil
}

func (c *CPU) pop() (int64, bool) {
	sp := c.regs[c.layout.StackReg]
	if sp >= MemoryTrits || sp < ProgramBase {
		return 0, false
	}
	v := trit.Decode(c.mem, int(sp), StackCell)
	c.regs[c.layout.StackReg] = sp + StackCell
	return v, true
}

// rect fills the rectangle held in the hardware registers, clipped to the
// screen. Channel values saturate to what three trits can hold.
func (c *CPU) rect() {
	x0, y0 := c.regs[machine.RegX], c.regs[machine.RegY]
	x1, y1 := x0+c.regs[machine.RegWidth], y0+c.regs[machine.RegHeight]
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, ScreenSize), min(y1, ScreenSize)

	lim := trit.Max(ChannelTrits)
	var px [PixelTrits]int8
	for i, r := range []int{machine.RegRed, machine.RegGreen, machine.RegBlue} {
		v := max(-lim, min(lim, c.regs[r]))
		trit.Encode(px[:], i*ChannelTrits, ChannelTrits, v)
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			copy(c.mem[(int(y)*ScreenSize+int(x))*PixelTrits:], px[:])
		}
	}
}

func sign(v int64) int64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
