// Package exprlang is a small expression language for declarations like
// "var c = a + b()", with a hand-written lexer and a hand-built ATN. It is
// the concrete grammar the completion engine is exercised against by the
// tests, the CLI and the LSP server.
package exprlang

import (
	"github.com/ccomendant/antlr4-c3/atn"
	"github.com/ccomendant/antlr4-c3/completion"
)

// Lexer tokenizes expression source. Whitespace is kept, on the hidden
// channel, so token indexes match the positions an editor caret can sit on.
type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

// NewLexer returns a lexer over the given source.
func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
	}
}

// Tokenize lexes the whole input. The returned slice always ends with an
// EOF token and every token carries its stream index.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.next()
		tok.Index = len(tokens)
		tokens = append(tokens, tok)
		if tok.Type == atn.TokenEOF {
			return tokens
		}
	}
}

func (l *Lexer) position() Position {
	return Position{File: l.file, Offset: l.pos, Line: l.line, Column: l.column}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) next() Token {
	start := l.position()

	if l.pos >= len(l.input) {
		return Token{Type: atn.TokenEOF, Channel: completion.ChannelDefault, Pos: start}
	}

	ch := l.peek()
	switch {
	case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
		for {
			ch = l.peek()
			if ch != ' ' && ch != '\t' && ch != '\r' && ch != '\n' {
				break
			}
			l.advance()
		}
		return l.token(TokenWhitespace, completion.ChannelHidden, start)
	case isLetter(ch):
		for isLetter(l.peek()) || isDigit(l.peek()) {
			l.advance()
		}
		tok := l.token(TokenID, completion.ChannelDefault, start)
		switch tok.Text {
		case "var":
			tok.Type = TokenVar
		case "let":
			tok.Type = TokenLet
		}
		return tok
	case ch == '=':
		l.advance()
		return l.token(TokenEqual, completion.ChannelDefault, start)
	case ch == '+':
		l.advance()
		return l.token(TokenPlus, completion.ChannelDefault, start)
	case ch == '-':
		l.advance()
		return l.token(TokenMinus, completion.ChannelDefault, start)
	case ch == '*':
		l.advance()
		return l.token(TokenMultiply, completion.ChannelDefault, start)
	case ch == '/':
		l.advance()
		return l.token(TokenDivide, completion.ChannelDefault, start)
	case ch == '(':
		l.advance()
		return l.token(TokenOpenPar, completion.ChannelDefault, start)
	case ch == ')':
		l.advance()
		return l.token(TokenClosePar, completion.ChannelDefault, start)
	default:
		l.advance()
		return l.token(TokenError, completion.ChannelDefault, start)
	}
}

func (l *Lexer) token(typ atn.TokenType, channel completion.Channel, start Position) Token {
	return Token{
		Type:    typ,
		Channel: channel,
		Text:    string(l.input[start.Offset:l.pos]),
		Pos:     start,
	}
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Scan tokenizes source and wraps it in a Stream.
func Scan(input []byte, file string) *Stream {
	return NewStream(NewLexer(input, file).Tokenize())
}

// Stream adapts lexed tokens to the engine's token-stream view and maps
// source offsets to caret token indexes.
type Stream struct {
	tokens []Token
}

// NewStream wraps an already-lexed token slice.
func NewStream(tokens []Token) *Stream {
	return &Stream{tokens: tokens}
}

// Get implements completion.TokenStream.
func (s *Stream) Get(i int) completion.Token {
	t := s.tokens[i]
	return completion.Token{Type: t.Type, Channel: t.Channel}
}

// Size implements completion.TokenStream.
func (s *Stream) Size() int { return len(s.tokens) }

// Tokens returns the underlying tokens.
func (s *Stream) Tokens() []Token { return s.tokens }

// CaretTokenIndex returns the index of the token covering the given source
// offset: the first token whose extent ends past the offset. Offsets at or
// past the end of input map to the EOF token.
func (s *Stream) CaretTokenIndex(offset int) int {
	for _, tok := range s.tokens {
		if tok.Type == atn.TokenEOF || tok.End() > offset {
			return tok.Index
		}
	}
	return len(s.tokens) - 1
}
