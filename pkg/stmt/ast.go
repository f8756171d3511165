// Package stmt defines the recognized Trit-C statement shapes.
// Each shape is a tagged variant: its Kind plus the payload the emitter needs.
package stmt

import (
	"fmt"
	"strings"

	"github.com/raymyers/tritc/pkg/machine"
)

// Stmt is implemented by every recognized statement
type Stmt interface {
	Kind() machine.Feature
	String() string // canonical source form
}

// Lit is a balanced literal keyword
type Lit int

const (
	LitNone Lit = iota
	LitTrue
	LitFalse
	LitNull
)

// Value returns the trit value of the literal: true 1, false -1, null 0.
func (l Lit) Value() int64 {
	switch l {
	case LitTrue:
		return 1
	case LitFalse:
		return -1
	}
	return 0
}

func (l Lit) String() string {
	switch l {
	case LitTrue:
		return "true"
	case LitFalse:
		return "false"
	case LitNull:
		return "null"
	}
	return ""
}

// Arg is one positional argument of a graphics primitive, kept as written.
type Arg string

// IsImmediate reports whether the argument is a literal: its first character
// is a decimal digit or '-'. Anything else names a variable.
func (a Arg) IsImmediate() bool {
	return IsImmediate(string(a))
}

// IsImmediate applies the immediate rule to raw operand text.
func IsImmediate(text string) bool {
	if text == "" {
		return false
	}
	c := text[0]
	return c == '-' || ('0' <= c && c <= '9')
}

// PointerStore - *name = value
type PointerStore struct {
	Name  string
	Value int64
}

// Declare - int name = value
type Declare struct {
	Name  string
	Value int64
}

// Literal - name = true|false|null
type Literal struct {
	Name string
	Lit  Lit
}

// BinOp - dst = a + b, dst = a * b
type BinOp struct {
	Op   byte // '+' or '*'
	Dst  string
	A, B string
}

// InputSource selects a hardware input accessor
type InputSource int

const (
	MouseX InputSource = iota
	MouseY
	KeyPressed
)

// Input - name = get_mouse_x() | get_mouse_y() | is_pressed(code)
type Input struct {
	Dst    string
	Source InputSource
	Code   int64 // key code for KeyPressed
}

// If - if ( a == b ). Right is empty when comparing against RightLit.
type If struct {
	Left     string
	Right    string
	RightLit Lit
}

// LabelDef - label name
type LabelDef struct {
	Name string
}

// Call - call name
type Call struct {
	Name string
}

// Return - return
type Return struct{}

// Prim names a hardware primitive
type Prim string

const (
	PrimColor Prim = "color"
	PrimPos   Prim = "pos"
	PrimSize  Prim = "size"
	PrimDraw  Prim = "draw()"
	PrimRect  Prim = "RECT"
	PrimClear Prim = "clear()"
	PrimHalt  Prim = "halt()"
)

// Graphics - color(a, b, c), pos(a, b), size(a, b)
type Graphics struct {
	Prim Prim
	Args []Arg
}

// System - draw(), RECT, clear(), halt()
type System struct {
	Prim Prim
}

func (PointerStore) Kind() machine.Feature { return machine.FeaturePointerStore }
func (Declare) Kind() machine.Feature      { return machine.FeatureDeclare }
func (Literal) Kind() machine.Feature      { return machine.FeatureLiteral }
func (Input) Kind() machine.Feature        { return machine.FeatureInput }
func (If) Kind() machine.Feature           { return machine.FeatureIf }
func (LabelDef) Kind() machine.Feature     { return machine.FeatureLabel }
func (Call) Kind() machine.Feature         { return machine.FeatureCall }
func (Return) Kind() machine.Feature       { return machine.FeatureReturn }
func (Graphics) Kind() machine.Feature     { return machine.FeatureGraphics }
func (System) Kind() machine.Feature       { return machine.FeatureSystem }

func (b BinOp) Kind() machine.Feature {
	if b.Op == '*' {
		return machine.FeatureMul
	}
	return machine.FeatureAdd
}

func (s PointerStore) String() string { return fmt.Sprintf("*%s = %d", s.Name, s.Value) }
func (s Declare) String() string      { return fmt.Sprintf("int %s = %d", s.Name, s.Value) }
func (s Literal) String() string      { return fmt.Sprintf("%s = %s", s.Name, s.Lit) }
func (s BinOp) String() string        { return fmt.Sprintf("%s = %s %c %s", s.Dst, s.A, s.Op, s.B) }
func (s LabelDef) String() string     { return "label " + s.Name }
func (s Call) String() string         { return "call " + s.Name }
func (Return) String() string         { return "return" }
func (s System) String() string       { return string(s.Prim) }

func (s Input) String() string {
	switch s.Source {
	case MouseX:
		return s.Dst + " = get_mouse_x()"
	case MouseY:
		return s.Dst + " = get_mouse_y()"
	}
	return fmt.Sprintf("%s = is_pressed(%d)", s.Dst, s.Code)
}

func (s If) String() string {
	right := s.Right
	if s.RightLit != LitNone {
		right = s.RightLit.String()
	}
	return fmt.Sprintf("if ( %s == %s )", s.Left, right)
}

func (s Graphics) String() string {
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = string(a)
	}
	return fmt.Sprintf("%s(%s)", s.Prim, strings.Join(args, ", "))
}
