// Package vasm defines the textual VOID-3 assembly emitted by the translator:
// one instruction or label definition per line.
package vasm

import (
	"strconv"
	"strings"
)

// Opcode is an instruction mnemonic
type Opcode string

// Opcodes produced by the translator
const (
	SET  Opcode = "SET"  // load immediate
	CPY  Opcode = "CPY"  // register copy
	ADD  Opcode = "ADD"  // a += b
	MUL  Opcode = "MUL"  // a *= b
	WAK  Opcode = "WAK"  // load immediate or hardware channel
	STR  Opcode = "STR"  // store a through pointer b
	TRI  Opcode = "TRI"  // status = sign(a - b)
	BRN  Opcode = "BRN"  // branch if status negative
	BRP  Opcode = "BRP"  // branch if status positive
	CAL  Opcode = "CAL"  // call
	RET  Opcode = "RET"  // return
	RECT Opcode = "RECT" // draw rectangle from hardware registers
	CLS  Opcode = "CLS"  // clear screen
	SLP  Opcode = "SLP"  // halt
	KEY  Opcode = "KEY"  // key state
)

// Opcodes only written by hand
const (
	HALT Opcode = "HALT"
	SUB  Opcode = "SUB"
	DIV  Opcode = "DIV"
	MIN  Opcode = "MIN"
	MAX  Opcode = "MAX"
	JMP  Opcode = "JMP"
	BRZ  Opcode = "BRZ"
	TSL  Opcode = "TSL"
	TSR  Opcode = "TSR"
	LOD  Opcode = "LOD"
)

// OperandKind distinguishes how an operand was produced
type OperandKind int

const (
	OperandReg OperandKind = iota
	OperandImm
	OperandSym
)

// Operand is a register index, an integer literal or a symbol
type Operand struct {
	Kind  OperandKind
	Value int64
	Sym   string
}

// Reg makes a register operand
func Reg(r int) Operand { return Operand{Kind: OperandReg, Value: int64(r)} }

// Imm makes an immediate operand
func Imm(v int64) Operand { return Operand{Kind: OperandImm, Value: v} }

// Sym makes a symbolic operand
func Sym(name string) Operand { return Operand{Kind: OperandSym, Sym: name} }

func (o Operand) String() string {
	if o.Kind == OperandSym {
		return o.Sym
	}
	return strconv.FormatInt(o.Value, 10)
}

// Line is an instruction or a label definition
type Line interface {
	implLine()
	String() string
}

// Instruction is one opcode with up to two operands and an optional
// trailing comment.
type Instruction struct {
	Op      Opcode
	Args    []Operand
	Comment string
}

// Label defines a branch target
type Label struct {
	Name string
}

func (Instruction) implLine() {}
func (Label) implLine()       {}

// Ins builds an instruction
func Ins(op Opcode, args ...Operand) Instruction {
	return Instruction{Op: op, Args: args}
}

// WithComment returns a copy of i carrying comment.
func (i Instruction) WithComment(comment string) Instruction {
	i.Comment = comment
	return i
}

func (i Instruction) String() string {
	var sb strings.Builder
	sb.WriteString(string(i.Op))
	for _, a := range i.Args {
		sb.WriteByte(' ')
		sb.WriteString(a.String())
	}
	if i.Comment != "" {
		sb.WriteString(" // ")
		sb.WriteString(i.Comment)
	}
	return sb.String()
}

func (l Label) String() string {
	return l.Name + ":"
}
