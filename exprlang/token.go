package exprlang

import (
	"fmt"

	"github.com/ccomendant/antlr4-c3/atn"
	"github.com/ccomendant/antlr4-c3/completion"
)

// Token types of the expression language. Whitespace is emitted on the
// hidden channel; TokenError covers anything the lexer cannot classify.
const (
	TokenVar atn.TokenType = iota + 1
	TokenLet
	TokenID
	TokenEqual
	TokenPlus
	TokenMinus
	TokenMultiply
	TokenDivide
	TokenOpenPar
	TokenClosePar
	TokenWhitespace
	TokenError
)

var tokenNames = map[atn.TokenType]string{
	atn.TokenEOF:    "EOF",
	TokenVar:        "VAR",
	TokenLet:        "LET",
	TokenID:         "ID",
	TokenEqual:      "EQUAL",
	TokenPlus:       "PLUS",
	TokenMinus:      "MINUS",
	TokenMultiply:   "MULTIPLY",
	TokenDivide:     "DIVIDE",
	TokenOpenPar:    "OPEN_PAR",
	TokenClosePar:   "CLOSE_PAR",
	TokenWhitespace: "WS",
	TokenError:      "ERROR",
}

var tokenLiterals = map[atn.TokenType]string{
	TokenVar:      "var",
	TokenLet:      "let",
	TokenEqual:    "=",
	TokenPlus:     "+",
	TokenMinus:    "-",
	TokenMultiply: "*",
	TokenDivide:   "/",
	TokenOpenPar:  "(",
	TokenClosePar: ")",
}

// TokenName returns the symbolic name of a token type.
func TokenName(t atn.TokenType) string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token-%d", t)
}

// TokenLiteral returns the literal spelling of a fixed token type, or ""
// for variable-content tokens like identifiers.
func TokenLiteral(t atn.TokenType) string {
	return tokenLiterals[t]
}

// TokenByName resolves a symbolic token name like "ID" or "PLUS".
func TokenByName(name string) (atn.TokenType, error) {
	for t, n := range tokenNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("exprlang: unknown token name %q", name)
}

// Position is a location in the lexed source.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Token is one lexed token with its stream index and source position.
type Token struct {
	Type    atn.TokenType
	Channel completion.Channel
	Text    string
	Index   int
	Pos     Position
}

// End returns the offset just past the token's text.
func (t Token) End() int {
	return t.Pos.Offset + len(t.Text)
}
