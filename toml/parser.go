package toml

import (
	"strconv"
	"strings"
)

// Parser builds a map[string]any tree from TOML tokens
// Tables become map[string]any, arrays []any, integers int64, floats float64
type Parser struct {
	lexer   *Lexer
	cur     Token
	peek    Token
	root    map[string]any
	current map[string]any
}

func NewParser(input []byte) *Parser {
	p := &Parser{
		lexer: NewLexer(input),
		root:  make(map[string]any),
	}
	p.current = p.root
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

// Parse consumes the whole input
func (p *Parser) Parse() (map[string]any, error) {
	tables := make(map[string]bool)
	for p.cur.Type != TokenEOF {
		var err error
		switch p.cur.Type {
		case TokenNewline:
			p.next()
			continue
		case TokenLBracket:
			err = p.parseTable(tables)
		case TokenError:
			err = errorAt(p.cur, "%s", p.cur.Literal)
		default:
			err = p.parseKeyValue(p.current)
		}
		if err != nil {
			return nil, err
		}
		if err := p.endStatement(); err != nil {
			return nil, err
		}
	}
	return p.root, nil
}

func (p *Parser) endStatement() error {
	switch p.cur.Type {
	case TokenNewline:
		p.next()
		return nil
	case TokenEOF:
		return nil
	}
	return errorAt(p.cur, "expected end of line, got %s", p.cur)
}

// parseTable handles [a.b]; each table header may appear once
func (p *Parser) parseTable(tables map[string]bool) error {
	open := p.cur
	p.next()
	keys, err := p.parseKey()
	if err != nil {
		return err
	}
	if p.cur.Type != TokenRBracket {
		return errorAt(p.cur, "expected ']' after table name, got %s", p.cur)
	}
	p.next()

	path := joinKey(keys)
	if tables[path] {
		return errorAt(open, "table [%s] defined twice", path)
	}
	tables[path] = true

	m := p.root
	for _, k := range keys {
		child, err := descend(m, k)
		if err != nil {
			return errorAt(open, "%v", err)
		}
		m = child
	}
	p.current = m
	return nil
}

func (p *Parser) parseKeyValue(scope map[string]any) error {
	keyTok := p.cur
	keys, err := p.parseKey()
	if err != nil {
		return err
	}
	if p.cur.Type != TokenEqual {
		return errorAt(p.cur, "expected '=' after key, got %s", p.cur)
	}
	p.next()

	val, err := p.parseValue()
	if err != nil {
		return err
	}

	m := scope
	for _, k := range keys[:len(keys)-1] {
		if m, err = descend(m, k); err != nil {
			return errorAt(keyTok, "%v", err)
		}
	}
	last := keys[len(keys)-1]
	if _, exists := m[last]; exists {
		return errorAt(keyTok, "duplicate key %q", joinKey(keys))
	}
	m[last] = val
	return nil
}

// parseKey reads a possibly dotted key
func (p *Parser) parseKey() ([]string, error) {
	var keys []string
	for {
		switch p.cur.Type {
		case TokenIdent, TokenString, TokenInteger, TokenBool:
			keys = append(keys, p.cur.Literal)
		default:
			return nil, errorAt(p.cur, "expected key, got %s", p.cur)
		}
		p.next()
		if p.cur.Type != TokenDot {
			return keys, nil
		}
		p.next()
	}
}

func (p *Parser) parseValue() (any, error) {
	tok := p.cur
	switch tok.Type {
	case TokenString:
		p.next()
		return tok.Literal, nil
	case TokenBool:
		p.next()
		return tok.Literal == "true", nil
	case TokenInteger:
		v, err := strconv.ParseInt(tok.Literal, 0, 64)
		if err != nil {
			return nil, errorAt(tok, "invalid integer %s", tok)
		}
		p.next()
		return v, nil
	case TokenFloat:
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, errorAt(tok, "invalid float %s", tok)
		}
		p.next()
		return v, nil
	case TokenLBracket:
		return p.parseArray()
	case TokenError:
		return nil, errorAt(tok, "%s", tok.Literal)
	}
	return nil, errorAt(tok, "expected value, got %s", tok)
}

// parseArray allows newlines between elements and a trailing comma
func (p *Parser) parseArray() ([]any, error) {
	p.next() // [
	arr := make([]any, 0)
	for {
		p.skipNewlines()
		if p.cur.Type == TokenRBracket {
			p.next()
			return arr, nil
		}

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)

		p.skipNewlines()
		switch p.cur.Type {
		case TokenComma:
			p.next()
		case TokenRBracket:
		default:
			return nil, errorAt(p.cur, "expected ',' or ']' in array, got %s", p.cur)
		}
	}
}

func (p *Parser) skipNewlines() {
	for p.cur.Type == TokenNewline {
		p.next()
	}
}

// descend returns m[key] as a table, creating it when absent
func descend(m map[string]any, key string) (map[string]any, error) {
	v, ok := m[key]
	if !ok {
		child := make(map[string]any)
		m[key] = child
		return child, nil
	}
	child, ok := v.(map[string]any)
	if !ok {
		return nil, &keyConflictError{key: key}
	}
	return child, nil
}

type keyConflictError struct {
	key string
}

func (e *keyConflictError) Error() string {
	return "key " + strconv.Quote(e.key) + " is not a table"
}

func joinKey(keys []string) string {
	return strings.Join(keys, ".")
}
