package toml

import (
	"fmt"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	TokenError TokenType = iota
	TokenEOF

	TokenIdent   // bare key
	TokenString  // "quoted"
	TokenInteger // 123
	TokenFloat   // 1.5, 1e3
	TokenBool    // true/false

	TokenEqual    // =
	TokenDot      // .
	TokenComma    // ,
	TokenLBracket // [
	TokenRBracket // ]
	TokenNewline  // statement terminator
)

// Token is a lexeme with its source position (1-indexed)
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenNewline:
		return "newline"
	case TokenError:
		return t.Literal
	}
	if len(t.Literal) > 20 {
		return fmt.Sprintf("%q...", t.Literal[:20])
	}
	return fmt.Sprintf("%q", t.Literal)
}

// ParseError locates a syntax or type error in the input
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("toml: line %d col %d: %s", e.Line, e.Col, e.Msg)
}

func errorAt(t Token, format string, args ...any) *ParseError {
	return &ParseError{Line: t.Line, Col: t.Col, Msg: fmt.Sprintf(format, args...)}
}
