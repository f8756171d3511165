// Package assembler packs VASM text into balanced-ternary instruction words
// for the VOID-3 emulator.
//
// Assembly is two-pass: the first pass records the instruction index of
// every label definition, the second encodes instructions and resolves
// branch and call targets against those indices.
package assembler

import (
	"errors"
	"fmt"
	"io"

	"github.com/raymyers/tritc/pkg/machine"
	"github.com/raymyers/tritc/pkg/trit"
	"github.com/raymyers/tritc/pkg/vasm"
)

var (
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrOperandCount   = errors.New("wrong operand count")
	ErrBadOperand     = errors.New("bad operand")
	ErrOperandRange   = errors.New("operand out of range")
	ErrUndefinedLabel = errors.New("undefined label")
	ErrDuplicateLabel = errors.New("duplicate label")
)

// Instr is one decoded instruction
type Instr struct {
	Op   int
	A1   int64
	A2   int64
	Line int // source line, 0 when unknown
}

// Program is an assembled VASM program
type Program struct {
	Instrs []Instr
	Labels map[string]int // label -> instruction index
}

// Len returns the number of instructions
func (p *Program) Len() int {
	return len(p.Instrs)
}

// Encode writes the program into trit memory starting at base.
func (p *Program) Encode(mem []int8, base int) error {
	if base < 0 || base+len(p.Instrs)*InstTrits > len(mem) {
		return fmt.Errorf("%w: program of %d instructions does not fit at %d", ErrOperandRange, len(p.Instrs), base)
	}
	for i, in := range p.Instrs {
		EncodeInstr(mem, base+i*InstTrits, in)
	}
	return nil
}

// EncodeInstr writes one instruction word at addr.
func EncodeInstr(mem []int8, addr int, in Instr) {
	trit.Encode(mem, addr, OpTrits, int64(in.Op))
	trit.Encode(mem, addr+OpTrits, Arg1Trits, in.A1)
	trit.Encode(mem, addr+OpTrits+Arg1Trits, Arg2Trits, in.A2)
}

// DecodeInstr reads the instruction word at addr.
func DecodeInstr(mem []int8, addr int) Instr {
	return Instr{
		Op: int(trit.Decode(mem, addr, OpTrits)),
		A1: trit.Decode(mem, addr+OpTrits, Arg1Trits),
		A2: trit.Decode(mem, addr+OpTrits+Arg1Trits, Arg2Trits),
	}
}

// Assembler assembles programs for one register layout
type Assembler struct {
	layout machine.Layout
}

// New creates an Assembler checking register operands against layout
func New(layout machine.Layout) *Assembler {
	return &Assembler{layout: layout}
}

// Assemble reads VASM text and assembles it.
func (a *Assembler) Assemble(r io.Reader) (*Program, error) {
	lines, err := vasm.Parse(r)
	if err != nil {
		return nil, err
	}
	return a.AssembleLines(lines)
}

// AssembleLines assembles already parsed lines.
func (a *Assembler) AssembleLines(lines []vasm.Source) (*Program, error) {
	prog := &Program{Labels: make(map[string]int)}

	// Pass 1: label addresses.
	idx := 0
	for _, src := range lines {
		switch l := src.Line.(type) {
		case vasm.Label:
			if _, dup := prog.Labels[l.Name]; dup {
				return nil, fmt.Errorf("line %d: %w %q", src.Num, ErrDuplicateLabel, l.Name)
			}
			prog.Labels[l.Name] = idx
		case vasm.Instruction:
			idx++
		}
	}
	if !trit.Fits(int64(idx), Arg2Trits) {
		return nil, fmt.Errorf("%w: %d instructions exceed the %d-trit branch range", ErrOperandRange, idx, Arg2Trits)
	}

	// Pass 2: encode.
	var errs []error
	for _, src := range lines {
		ins, ok := src.Line.(vasm.Instruction)
		if !ok {
			continue
		}
		in, err := a.encode(prog, ins)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", src.Num, err))
			continue
		}
		in.Line = src.Num
		prog.Instrs = append(prog.Instrs, in)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return prog, nil
}

func (a *Assembler) encode(prog *Program, ins vasm.Instruction) (Instr, error) {
	info, ok := opcodes[ins.Op]
	if !ok {
		return Instr{}, fmt.Errorf("%w %q", ErrUnknownOpcode, ins.Op)
	}
	if len(ins.Args) != len(info.slots) {
		return Instr{}, fmt.Errorf("%w: %s takes %d, got %d", ErrOperandCount, ins.Op, len(info.slots), len(ins.Args))
	}

	in := Instr{Op: info.code}
	for i, s := range info.slots {
		arg := ins.Args[i]
		switch s {
		case slotReg1:
			r, err := a.register(arg, Arg1Trits)
			if err != nil {
				return Instr{}, err
			}
			in.A1 = r
		case slotReg2:
			r, err := a.register(arg, Arg2Trits)
			if err != nil {
				return Instr{}, err
			}
			in.A2 = r
		case slotImm2:
			if arg.Kind == vasm.OperandSym {
				return Instr{}, fmt.Errorf("%w: %s expects an integer, got %q", ErrBadOperand, ins.Op, arg.Sym)
			}
			if !trit.Fits(arg.Value, Arg2Trits) {
				return Instr{}, fmt.Errorf("%w: %d does not fit in %d trits", ErrOperandRange, arg.Value, Arg2Trits)
			}
			in.A2 = arg.Value
		case slotTarget:
			t, err := resolveTarget(prog, arg)
			if err != nil {
				return Instr{}, err
			}
			in.A2 = t
		}
	}
	return in, nil
}

// register checks a register operand against the register file and against
// the width of the field it is encoded in.
func (a *Assembler) register(arg vasm.Operand, width int) (int64, error) {
	if arg.Kind == vasm.OperandSym {
		return 0, fmt.Errorf("%w: expected register, got %q", ErrBadOperand, arg.Sym)
	}
	if arg.Value < 0 || arg.Value >= int64(a.layout.NumRegs) {
		return 0, fmt.Errorf("%w: register %d outside 0-%d", ErrOperandRange, arg.Value, a.layout.NumRegs-1)
	}
	if !trit.Fits(arg.Value, width) {
		return 0, fmt.Errorf("%w: register %d does not fit in %d trits", ErrOperandRange, arg.Value, width)
	}
	return arg.Value, nil
}

// resolveTarget maps a branch operand to an instruction index. A symbol X
// names label X, or label LX when only that exists, so `CAL f` reaches the
// definition `Lf:` written for `label f`.
func resolveTarget(prog *Program, arg vasm.Operand) (int64, error) {
	if arg.Kind != vasm.OperandSym {
		if arg.Value < 0 || !trit.Fits(arg.Value, Arg2Trits) {
			return 0, fmt.Errorf("%w: target %d", ErrOperandRange, arg.Value)
		}
		return arg.Value, nil
	}
	if idx, ok := prog.Labels[arg.Sym]; ok {
		return int64(idx), nil
	}
	if idx, ok := prog.Labels["L"+arg.Sym]; ok {
		return int64(idx), nil
	}
	return 0, fmt.Errorf("%w %q", ErrUndefinedLabel, arg.Sym)
}
