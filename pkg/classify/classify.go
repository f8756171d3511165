// Package classify recognizes Trit-C statement shapes.
//
// Exclusive shapes are tried in a fixed priority order and the first match
// wins. Only when none matched do the hardware checks run, and those are
// independent: a single line may fire several of them.
package classify

import (
	"strconv"
	"strings"

	"github.com/raymyers/tritc/pkg/lexer"
	"github.com/raymyers/tritc/pkg/machine"
	"github.com/raymyers/tritc/pkg/stmt"
)

// matcher recognizes one exclusive statement shape
type matcher struct {
	feature machine.Feature
	match   func(toks []lexer.Token) (stmt.Stmt, bool)
}

// exclusive is the dispatch table, in priority order.
var exclusive = []matcher{
	{machine.FeaturePointerStore, matchPointerStore},
	{machine.FeatureDeclare, matchDeclare},
	{machine.FeatureLiteral, matchLiteral},
	{machine.FeatureAdd, matchBinOp(lexer.TokenPlus, '+')},
	{machine.FeatureMul, matchBinOp(lexer.TokenStar, '*')},
	{machine.FeatureInput, matchInput},
	{machine.FeatureIf, matchIf},
	{machine.FeatureLabel, matchLabel},
	{machine.FeatureCall, matchCall},
	{machine.FeatureReturn, matchReturn},
}

// graphicsPrims gives the argument count of each graphics primitive, in
// the order the checks fire.
var graphicsPrims = []struct {
	prim  stmt.Prim
	arity int
}{
	{stmt.PrimColor, 3},
	{stmt.PrimPos, 2},
	{stmt.PrimSize, 2},
}

// systemPrims are matched by raw substring presence, in firing order.
var systemPrims = []stmt.Prim{stmt.PrimDraw, stmt.PrimRect, stmt.PrimClear, stmt.PrimHalt}

// Classifier recognizes the statement shapes enabled by a profile
type Classifier struct {
	profile *machine.Profile
}

// New creates a Classifier for profile
func New(profile *machine.Profile) *Classifier {
	return &Classifier{profile: profile}
}

// Classify returns the statements recognized on line, in emission order.
// An unrecognized line yields nil.
func (c *Classifier) Classify(line string) []stmt.Stmt {
	toks := lexer.Tokenize(line)

	for _, m := range exclusive {
		if !c.profile.Enabled(m.feature) {
			continue
		}
		if s, ok := m.match(toks); ok {
			return []stmt.Stmt{s}
		}
	}

	var out []stmt.Stmt
	if c.profile.Enabled(machine.FeatureGraphics) {
		for _, g := range graphicsPrims {
			if s, ok := findGraphics(toks, g.prim, g.arity); ok {
				out = append(out, s)
			}
		}
	}
	if c.profile.Enabled(machine.FeatureSystem) {
		for _, p := range systemPrims {
			if strings.Contains(line, string(p)) {
				out = append(out, stmt.System{Prim: p})
			}
		}
	}
	return out
}

// is reports whether toks has exactly the given token types.
func is(toks []lexer.Token, types ...lexer.TokenType) bool {
	if len(toks) != len(types) {
		return false
	}
	for i, t := range types {
		if toks[i].Type != t {
			return false
		}
	}
	return true
}

// intAt parses an optionally negated integer starting at toks[i] and
// returns the value and the index after it.
func intAt(toks []lexer.Token, i int) (int64, int, bool) {
	neg := false
	if i < len(toks) && toks[i].Type == lexer.TokenMinus {
		neg = true
		i++
	}
	if i >= len(toks) || toks[i].Type != lexer.TokenInt {
		return 0, i, false
	}
	v, err := strconv.ParseInt(toks[i].Literal, 10, 64)
	if err != nil {
		return 0, i, false
	}
	if neg {
		v = -v
	}
	return v, i + 1, true
}

// assignedInt matches `= INT` running from toks[start] to the end of the line.
func assignedInt(toks []lexer.Token, start int) (int64, bool) {
	if start >= len(toks) || toks[start].Type != lexer.TokenAssign {
		return 0, false
	}
	v, next, ok := intAt(toks, start+1)
	return v, ok && next == len(toks)
}

func matchPointerStore(toks []lexer.Token) (stmt.Stmt, bool) {
	if len(toks) < 4 || !is(toks[:2], lexer.TokenStar, lexer.TokenIdent) {
		return nil, false
	}
	v, ok := assignedInt(toks, 2)
	if !ok {
		return nil, false
	}
	return stmt.PointerStore{Name: toks[1].Literal, Value: v}, true
}

func matchDeclare(toks []lexer.Token) (stmt.Stmt, bool) {
	if len(toks) < 4 || !is(toks[:2], lexer.TokenInt_, lexer.TokenIdent) {
		return nil, false
	}
	v, ok := assignedInt(toks, 2)
	if !ok {
		return nil, false
	}
	return stmt.Declare{Name: toks[1].Literal, Value: v}, true
}

func litOf(t lexer.TokenType) stmt.Lit {
	switch t {
	case lexer.TokenTrue:
		return stmt.LitTrue
	case lexer.TokenFalse:
		return stmt.LitFalse
	case lexer.TokenNull:
		return stmt.LitNull
	}
	return stmt.LitNone
}

func matchLiteral(toks []lexer.Token) (stmt.Stmt, bool) {
	if len(toks) != 3 || !is(toks[:2], lexer.TokenIdent, lexer.TokenAssign) {
		return nil, false
	}
	lit := litOf(toks[2].Type)
	if lit == stmt.LitNone {
		return nil, false
	}
	return stmt.Literal{Name: toks[0].Literal, Lit: lit}, true
}

func matchBinOp(opTok lexer.TokenType, op byte) func([]lexer.Token) (stmt.Stmt, bool) {
	return func(toks []lexer.Token) (stmt.Stmt, bool) {
		if !is(toks, lexer.TokenIdent, lexer.TokenAssign, lexer.TokenIdent, opTok, lexer.TokenIdent) {
			return nil, false
		}
		return stmt.BinOp{Op: op, Dst: toks[0].Literal, A: toks[2].Literal, B: toks[4].Literal}, true
	}
}

func matchInput(toks []lexer.Token) (stmt.Stmt, bool) {
	if len(toks) < 5 || !is(toks[:4], lexer.TokenIdent, lexer.TokenAssign, lexer.TokenIdent, lexer.TokenLParen) {
		return nil, false
	}
	dst := toks[0].Literal
	switch toks[2].Literal {
	case "get_mouse_x", "get_mouse_y":
		if !is(toks[4:], lexer.TokenRParen) {
			return nil, false
		}
		src := stmt.MouseX
		if toks[2].Literal == "get_mouse_y" {
			src = stmt.MouseY
		}
		return stmt.Input{Dst: dst, Source: src}, true
	case "is_pressed":
		code, next, ok := intAt(toks, 4)
		if !ok || !is(toks[next:], lexer.TokenRParen) {
			return nil, false
		}
		return stmt.Input{Dst: dst, Source: stmt.KeyPressed, Code: code}, true
	}
	return nil, false
}

func matchIf(toks []lexer.Token) (stmt.Stmt, bool) {
	if len(toks) != 6 || !is(toks[:4], lexer.TokenIf, lexer.TokenLParen, lexer.TokenIdent, lexer.TokenEq) ||
		toks[5].Type != lexer.TokenRParen {
		return nil, false
	}
	s := stmt.If{Left: toks[2].Literal}
	switch right := toks[4]; {
	case right.Type == lexer.TokenIdent:
		s.Right = right.Literal
	case litOf(right.Type) != stmt.LitNone:
		s.RightLit = litOf(right.Type)
	default:
		return nil, false
	}
	return s, true
}

// matchLabel accepts the label keyword anywhere on the line followed by a
// name. Numeric names let source satisfy a synthetic branch target.
func matchLabel(toks []lexer.Token) (stmt.Stmt, bool) {
	for i := 0; i+1 < len(toks); i++ {
		if toks[i].Type != lexer.TokenLabel {
			continue
		}
		if next := toks[i+1]; next.Type == lexer.TokenIdent || next.Type == lexer.TokenInt {
			return stmt.LabelDef{Name: next.Literal}, true
		}
	}
	return nil, false
}

func matchCall(toks []lexer.Token) (stmt.Stmt, bool) {
	if !is(toks, lexer.TokenCall, lexer.TokenIdent) {
		return nil, false
	}
	return stmt.Call{Name: toks[1].Literal}, true
}

func matchReturn(toks []lexer.Token) (stmt.Stmt, bool) {
	for _, t := range toks {
		if t.Type == lexer.TokenReturn {
			return stmt.Return{}, true
		}
	}
	return nil, false
}

// findGraphics returns the first well-formed call of prim on the line.
func findGraphics(toks []lexer.Token, prim stmt.Prim, arity int) (stmt.Stmt, bool) {
	for i := 0; i+1 < len(toks); i++ {
		if toks[i].Type != lexer.TokenIdent || toks[i].Literal != string(prim) || toks[i+1].Type != lexer.TokenLParen {
			continue
		}
		if args, ok := parseArgs(toks[i+2:], arity); ok {
			return stmt.Graphics{Prim: prim, Args: args}, true
		}
	}
	return nil, false
}

// parseArgs reads exactly n comma-separated arguments and the closing paren.
func parseArgs(toks []lexer.Token, n int) ([]stmt.Arg, bool) {
	args := make([]stmt.Arg, 0, n)
	i := 0
	for len(args) < n {
		if len(args) > 0 {
			if i >= len(toks) || toks[i].Type != lexer.TokenComma {
				return nil, false
			}
			i++
		}
		if i < len(toks) && toks[i].Type == lexer.TokenIdent {
			args = append(args, stmt.Arg(toks[i].Literal))
			i++
			continue
		}
		v, next, ok := intAt(toks, i)
		if !ok {
			return nil, false
		}
		args = append(args, stmt.Arg(strconv.FormatInt(v, 10)))
		i = next
	}
	if i >= len(toks) || toks[i].Type != lexer.TokenRParen {
		return nil, false
	}
	return args, true
}
