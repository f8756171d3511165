package vasm

import (
	"errors"
	"strings"
	"testing"
)

func TestInstructionString(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want string
	}{
		{"SET", Ins(SET, Reg(7), Imm(5)), "SET 7 5"},
		{"SET negative", Ins(SET, Reg(7), Imm(-12)), "SET 7 -12"},
		{"CPY", Ins(CPY, Reg(9), Reg(7)), "CPY 9 7"},
		{"BRN", Ins(BRN, Sym("L3")), "BRN L3"},
		{"RET", Ins(RET), "RET"},
		{"RECT", Ins(RECT), "RECT"},
		{"comment", Ins(WAK, Reg(9), Imm(50)).WithComment("mouse x"), "WAK 9 50 // mouse x"},
		{"label", Label{Name: "Lloop"}, "Lloop:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLineRoundTrip(t *testing.T) {
	lines := []string{
		"SET 7 5",
		"CPY 0 7",
		"BRP L0",
		"CAL draw_box",
		"WAK 9 51 // mouse y",
		"L0:",
		"SLP",
	}
	for _, text := range lines {
		l, err := ParseLine(text)
		if err != nil {
			t.Fatalf("ParseLine(%q): %v", text, err)
		}
		if l.String() != text {
			t.Errorf("round trip %q -> %q", text, l.String())
		}
	}
}

func TestParseLineDetails(t *testing.T) {
	l, err := ParseLine("  set   7  -3   ")
	if err != nil {
		t.Fatal(err)
	}
	ins, ok := l.(Instruction)
	if !ok {
		t.Fatalf("got %T, want Instruction", l)
	}
	if ins.Op != SET {
		t.Errorf("op = %s, want SET", ins.Op)
	}
	if len(ins.Args) != 2 || ins.Args[0].Kind != OperandImm || ins.Args[1].Value != -3 {
		t.Errorf("args = %+v", ins.Args)
	}

	for _, blank := range []string{"", "   ", "// TRIT-C UNIVERSAL COMPILER OUTPUT"} {
		if l, err := ParseLine(blank); l != nil || err != nil {
			t.Errorf("ParseLine(%q) = %v, %v; want nil, nil", blank, l, err)
		}
	}

	for _, bad := range []string{"ADD 1 2 3", ":"} {
		if _, err := ParseLine(bad); !errors.Is(err, ErrSyntax) {
			t.Errorf("ParseLine(%q) = %v, want ErrSyntax", bad, err)
		}
	}
}

func TestParse(t *testing.T) {
	src := `// header
SET 7 5

L1:
BRN L1
`
	got, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d lines, want 3", len(got))
	}
	wantNums := []int{2, 4, 5}
	for i, s := range got {
		if s.Num != wantNums[i] {
			t.Errorf("line %d num = %d, want %d", i, s.Num, wantNums[i])
		}
	}
	if _, ok := got[1].Line.(Label); !ok {
		t.Errorf("got[1] = %T, want Label", got[1].Line)
	}

	_, err = Parse(strings.NewReader("SET 1\nADD 1 2 3\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Parse error = %v, want line 2", err)
	}
}
