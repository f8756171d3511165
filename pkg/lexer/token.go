package lexer

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Literals
	TokenIdent // x, color, get_mouse_x
	TokenInt   // 42

	// Keywords
	TokenInt_   // int
	TokenIf     // if
	TokenLabel  // label
	TokenCall   // call
	TokenReturn // return
	TokenTrue   // true
	TokenFalse  // false
	TokenNull   // null

	// Operators
	TokenPlus   // +
	TokenMinus  // -
	TokenStar   // *
	TokenAssign // =
	TokenEq     // ==

	// Delimiters
	TokenLParen // (
	TokenRParen // )
	TokenComma  // ,
)

var tokenNames = map[TokenType]string{
	TokenEOF:     "EOF",
	TokenIllegal: "ILLEGAL",
	TokenIdent:   "IDENT",
	TokenInt:     "INT",
	TokenInt_:    "int",
	TokenIf:      "if",
	TokenLabel:   "label",
	TokenCall:    "call",
	TokenReturn:  "return",
	TokenTrue:    "true",
	TokenFalse:   "false",
	TokenNull:    "null",
	TokenPlus:    "+",
	TokenMinus:   "-",
	TokenStar:    "*",
	TokenAssign:  "=",
	TokenEq:      "==",
	TokenLParen:  "(",
	TokenRParen:  ")",
	TokenComma:   ",",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Column  int
}

// keywords maps keyword strings to token types
var keywords = map[string]TokenType{
	"int":    TokenInt_,
	"if":     TokenIf,
	"label":  TokenLabel,
	"call":   TokenCall,
	"return": TokenReturn,
	"true":   TokenTrue,
	"false":  TokenFalse,
	"null":   TokenNull,
}

// LookupIdent returns the token type for an identifier (keyword or IDENT)
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
