package emit

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/raymyers/tritc/pkg/machine"
	"github.com/raymyers/tritc/pkg/stmt"
	"github.com/raymyers/tritc/pkg/symtab"
	"github.com/raymyers/tritc/pkg/vasm"
)

// graphicsTargets maps each graphics primitive to the hardware registers its
// arguments load, in argument order.
var graphicsTargets = map[stmt.Prim][]int{
	stmt.PrimColor: {machine.RegRed, machine.RegGreen, machine.RegBlue},
	stmt.PrimPos:   {machine.RegX, machine.RegY},
	stmt.PrimSize:  {machine.RegWidth, machine.RegHeight},
}

// systemOps maps fixed-opcode primitives to their instruction
var systemOps = map[stmt.Prim]vasm.Opcode{
	stmt.PrimDraw:  vasm.RECT,
	stmt.PrimRect:  vasm.RECT,
	stmt.PrimClear: vasm.CLS,
	stmt.PrimHalt:  vasm.SLP,
}

// ErrBadImmediate is returned for a hardware argument that looks numeric but
// is not an integer. The classifier never produces one.
var ErrBadImmediate = errors.New("malformed immediate")

// Emit expands s into target lines. Operands are resolved left to right as
// written, so a destination is bound before its sources. Apart from a
// malformed immediate, the only failure is register exhaustion from the
// symbol table.
func Emit(ctx *Context, s stmt.Stmt) ([]vasm.Line, error) {
	e := emitter{ctx: ctx}
	e.statement(s)
	if e.err != nil {
		return nil, e.err
	}
	return e.out, nil
}

// emitter accumulates lines for one statement and remembers the first
// resolution error.
type emitter struct {
	ctx *Context
	out []vasm.Line
	err error
}

func (e *emitter) add(ins vasm.Instruction) {
	e.out = append(e.out, ins)
}

func (e *emitter) reg(name string) vasm.Operand {
	if e.err != nil {
		return vasm.Reg(0)
	}
	r, err := e.ctx.Symbols.Resolve(name)
	if err != nil {
		e.err = err
	}
	return vasm.Reg(r)
}

func (e *emitter) status() vasm.Operand {
	return vasm.Reg(e.ctx.Profile.Layout.StatusReg)
}

func (e *emitter) statement(s stmt.Stmt) {
	switch s := s.(type) {
	case stmt.PointerStore:
		ptr, err := e.ctx.Symbols.ResolvePointer(s.Name)
		if err != nil {
			e.err = err
			return
		}
		e.add(vasm.Ins(vasm.WAK, e.status(), vasm.Imm(s.Value)))
		e.add(vasm.Ins(vasm.STR, e.status(), vasm.Reg(ptr)))

	case stmt.Declare:
		e.add(vasm.Ins(vasm.SET, e.reg(s.Name), vasm.Imm(s.Value)))

	case stmt.Literal:
		op := vasm.Opcode(e.ctx.Profile.BoolOpcode)
		e.add(vasm.Ins(op, e.reg(s.Name), vasm.Imm(s.Lit.Value())))

	case stmt.BinOp:
		op := vasm.ADD
		if s.Op == '*' {
			op = vasm.MUL
		}
		dst := e.reg(s.Dst)
		a := e.reg(s.A)
		b := e.reg(s.B)
		e.add(vasm.Ins(vasm.CPY, dst, a))
		e.add(vasm.Ins(op, dst, b))

	case stmt.Input:
		dst := e.reg(s.Dst)
		switch s.Source {
		case stmt.MouseX:
			e.add(vasm.Ins(vasm.WAK, dst, vasm.Imm(machine.ChanMouseX)).WithComment("mouse x"))
		case stmt.MouseY:
			e.add(vasm.Ins(vasm.WAK, dst, vasm.Imm(machine.ChanMouseY)).WithComment("mouse y"))
		default:
			e.add(vasm.Ins(vasm.KEY, dst, vasm.Imm(s.Code)).WithComment("key"))
		}

	case stmt.If:
		e.conditional(s)

	case stmt.LabelDef:
		e.out = append(e.out, vasm.Label{Name: "L" + s.Name})

	case stmt.Call:
		e.add(vasm.Ins(vasm.CAL, vasm.Sym(s.Name)))

	case stmt.Return:
		e.add(vasm.Ins(vasm.RET))

	case stmt.Graphics:
		targets := graphicsTargets[s.Prim]
		for i, arg := range s.Args {
			if i >= len(targets) {
				break
			}
			e.operandLoad(targets[i], arg)
		}

	case stmt.System:
		e.add(vasm.Ins(systemOps[s.Prim]))

	default:
		panic(fmt.Sprintf("emit: unhandled statement %T", s))
	}
}

// conditional lowers if ( a == b ). Both branches name the same synthetic
// label, and no definition of that label is ever emitted.
func (e *emitter) conditional(s stmt.If) {
	left := e.reg(s.Left)
	var right vasm.Operand
	if s.RightLit != stmt.LitNone {
		e.add(vasm.Ins(vasm.WAK, e.status(), vasm.Imm(s.RightLit.Value())))
		right = e.status()
	} else {
		right = e.reg(s.Right)
	}
	if e.err != nil {
		return
	}
	target := vasm.Sym(symtab.Name(e.ctx.Labels.Next()))
	e.add(vasm.Ins(vasm.TRI, left, right))
	e.add(vasm.Ins(vasm.BRN, target))
	e.add(vasm.Ins(vasm.BRP, target))
}

// operandLoad loads one hardware argument: immediates with SET, variables
// with CPY from their register.
func (e *emitter) operandLoad(target int, arg stmt.Arg) {
	if arg.IsImmediate() {
		v, err := strconv.ParseInt(string(arg), 10, 64)
		if err != nil {
			e.err = fmt.Errorf("%w %q", ErrBadImmediate, arg)
			return
		}
		e.add(vasm.Ins(vasm.SET, vasm.Reg(target), vasm.Imm(v)))
		return
	}
	e.add(vasm.Ins(vasm.CPY, vasm.Reg(target), e.reg(string(arg))))
}
