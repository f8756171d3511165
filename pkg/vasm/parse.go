package vasm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrSyntax is returned for lines that are neither instructions nor labels.
var ErrSyntax = errors.New("vasm syntax error")

// Source is a parsed line with its 1-based position in the input
type Source struct {
	Line
	Num int
}

// ParseLine parses one line of VASM. Blank and comment-only lines yield nil.
func ParseLine(text string) (Line, error) {
	comment := ""
	if i := strings.Index(text, "//"); i >= 0 {
		comment = strings.TrimSpace(text[i+2:])
		text = text[:i]
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, nil
	}

	if len(fields) == 1 && strings.HasSuffix(fields[0], ":") {
		name := strings.TrimSuffix(fields[0], ":")
		if name == "" {
			return nil, fmt.Errorf("%w: empty label", ErrSyntax)
		}
		return Label{Name: name}, nil
	}

	ins := Instruction{Op: Opcode(strings.ToUpper(fields[0])), Comment: comment}
	for _, f := range fields[1:] {
		ins.Args = append(ins.Args, parseOperand(f))
	}
	if len(ins.Args) > 2 {
		return nil, fmt.Errorf("%w: %s takes at most 2 operands, got %d", ErrSyntax, ins.Op, len(ins.Args))
	}
	return ins, nil
}

func parseOperand(f string) Operand {
	if v, err := strconv.ParseInt(f, 10, 64); err == nil {
		return Imm(v)
	}
	return Sym(f)
}

// Parse reads a whole VASM program, skipping blank and comment lines.
func Parse(r io.Reader) ([]Source, error) {
	var out []Source
	sc := bufio.NewScanner(r)
	num := 0
	for sc.Scan() {
		num++
		l, err := ParseLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", num, err)
		}
		if l != nil {
			out = append(out, Source{Line: l, Num: num})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
