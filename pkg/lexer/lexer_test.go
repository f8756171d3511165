package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `int x = 5`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenInt_, "int"},
		{TokenIdent, "x"},
		{TokenAssign, "="},
		{TokenInt, "5"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * = == ( ) ,`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenPlus, "+"},
		{TokenMinus, "-"},
		{TokenStar, "*"},
		{TokenAssign, "="},
		{TokenEq, "=="},
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenComma, ","},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"int", TokenInt_},
		{"if", TokenIf},
		{"label", TokenLabel},
		{"call", TokenCall},
		{"return", TokenReturn},
		{"true", TokenTrue},
		{"false", TokenFalse},
		{"null", TokenNull},
		{"returned", TokenIdent},
		{"get_mouse_x", TokenIdent},
		{"_tmp2", TokenIdent},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := New(tt.input).NextToken()
			if tok.Type != tt.want {
				t.Errorf("type = %s, want %s", tok.Type, tt.want)
			}
			if tok.Literal != tt.input {
				t.Errorf("literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestTokenizeNoSpaces(t *testing.T) {
	toks := Tokenize("color(x,-3,0)")
	want := []TokenType{
		TokenIdent, TokenLParen, TokenIdent, TokenComma,
		TokenMinus, TokenInt, TokenComma, TokenInt, TokenRParen,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, tok := range toks {
		if tok.Type != want[i] {
			t.Errorf("toks[%d] = %s, want %s", i, tok.Type, want[i])
		}
	}
}

func TestComments(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"// a comment", 0},
		{"x = y + z // sum", 5},
		{"   //", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := len(Tokenize(tt.input)); got != tt.want {
			t.Errorf("Tokenize(%q) has %d tokens, want %d", tt.input, got, tt.want)
		}
	}
}

func TestIllegalAndColumns(t *testing.T) {
	toks := Tokenize("a / b;")
	if len(toks) != 4 {
		t.Fatalf("got %d tokens, want 4", len(toks))
	}
	if toks[1].Type != TokenIllegal || toks[1].Literal != "/" {
		t.Errorf("toks[1] = %+v, want ILLEGAL /", toks[1])
	}
	if toks[3].Type != TokenIllegal {
		t.Errorf("toks[3] = %+v, want ILLEGAL", toks[3])
	}
	if toks[2].Column != 5 {
		t.Errorf("column of b = %d, want 5", toks[2].Column)
	}
}
