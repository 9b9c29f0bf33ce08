package toml

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Lexer splits TOML input into tokens, dropping whitespace and comments
type Lexer struct {
	input []byte
	pos   int
	line  int
	col   int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// NextToken returns the next token; after EOF or an error it keeps returning the same kind
func (l *Lexer) NextToken() Token {
	l.skipBlank()

	line, col := l.line, l.col
	tok := func(typ TokenType, lit string) Token {
		return Token{Type: typ, Literal: lit, Line: line, Col: col}
	}

	if l.pos >= len(l.input) {
		return tok(TokenEOF, "")
	}

	ch := l.peek()
	switch ch {
	case '\n':
		l.advance()
		return tok(TokenNewline, "\n")
	case '=':
		l.advance()
		return tok(TokenEqual, "=")
	case '.':
		l.advance()
		return tok(TokenDot, ".")
	case ',':
		l.advance()
		return tok(TokenComma, ",")
	case '[':
		l.advance()
		return tok(TokenLBracket, "[")
	case ']':
		l.advance()
		return tok(TokenRBracket, "]")
	case '"':
		s, err := l.readString()
		if err != nil {
			return tok(TokenError, err.Error())
		}
		return tok(TokenString, s)
	}

	if isBare(ch) || ch == '+' {
		lit := l.readBare()
		return tok(classify(lit), lit)
	}

	l.advance()
	return tok(TokenError, fmt.Sprintf("unexpected character %q", ch))
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, w := utf8.DecodeRune(l.input[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return r
}

// skipBlank skips spaces, tabs, carriage returns and comments up to the newline
func (l *Lexer) skipBlank() {
	for l.pos < len(l.input) {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		case '#':
			for l.pos < len(l.input) && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// readString reads a basic string; escapes follow Go's double-quoted rules
func (l *Lexer) readString() (string, error) {
	start := l.pos
	l.advance() // opening quote
	escaped := false
	for l.pos < len(l.input) {
		ch := l.advance()
		switch {
		case ch == '\n':
			return "", fmt.Errorf("newline in string")
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"':
			s, err := strconv.Unquote(string(l.input[start:l.pos]))
			if err != nil {
				return "", fmt.Errorf("invalid escape in string")
			}
			return s, nil
		}
	}
	return "", fmt.Errorf("unterminated string")
}

// readBare reads a bare key or a number; '.' continues only numeric runs
func (l *Lexer) readBare() string {
	start := l.pos
	numeric := isDigit(l.peek()) || l.peek() == '+' || l.peek() == '-'
	for l.pos < len(l.input) {
		ch := l.peek()
		switch {
		case isBare(ch), ch == '+':
		case ch == '.' && numeric:
		default:
			return string(l.input[start:l.pos])
		}
		l.advance()
	}
	return string(l.input[start:l.pos])
}

// classify decides between bool, integer, float and bare key
func classify(lit string) TokenType {
	if lit == "true" || lit == "false" {
		return TokenBool
	}
	if _, err := strconv.ParseInt(lit, 0, 64); err == nil {
		return TokenInteger
	}
	if _, err := strconv.ParseFloat(lit, 64); err == nil {
		switch lit {
		case "inf", "+inf", "-inf", "nan", "+nan", "-nan":
		default:
			if !isDigitStart(lit) {
				return TokenIdent
			}
		}
		return TokenFloat
	}
	return TokenIdent
}

// isDigitStart rejects words strconv accepts as floats, like "Infinity"
func isDigitStart(lit string) bool {
	if lit[0] == '+' || lit[0] == '-' {
		lit = lit[1:]
	}
	return lit != "" && isDigit(rune(lit[0]))
}

func isBare(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '-'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
