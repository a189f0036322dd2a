// SPDX-License-Identifier: MPL-2.0

// Package keyvalues parses Valve's KeyValues text format, the format behind
// VMT materials, VMF maps, gameinfo.txt and Steam's .vdf/.acf files.
//
// The format is a sequence of key/value pairs where a value is either a
// (possibly quoted) string or a nested block in braces. Keys are
// case-insensitive and may repeat; VMF relies on repetition for its solid
// and entity blocks, so the document model preserves order and duplicates.
package keyvalues

import (
	"fmt"
	"io"
	"strings"
)

// Pair is a single key holding either a string value or a child block,
// never both.
type Pair struct {
	Key   string
	Value string
	Child *Object
}

// HasChild reports whether the pair holds a nested block instead of a value.
func (p Pair) HasChild() bool { return p.Child != nil }

// Object is an ordered list of pairs.
type Object struct {
	Pairs []Pair
}

// Get returns the first pair whose key matches (case-insensitively).
func (o *Object) Get(key string) (Pair, bool) {
	for _, p := range o.Pairs {
		if strings.EqualFold(p.Key, key) {
			return p, true
		}
	}
	return Pair{}, false
}

// All returns every pair whose key matches (case-insensitively), in
// document order.
func (o *Object) All(key string) []Pair {
	var out []Pair
	for _, p := range o.Pairs {
		if strings.EqualFold(p.Key, key) {
			out = append(out, p)
		}
	}
	return out
}

// Value returns the string value of the first matching pair, or "" when the
// key is absent or holds a block.
func (o *Object) Value(key string) string {
	p, ok := o.Get(key)
	if !ok || p.HasChild() {
		return ""
	}
	return p.Value
}

// Child returns the block of the first matching pair, or nil when the key is
// absent or holds a string value.
func (o *Object) Child(key string) *Object {
	p, ok := o.Get(key)
	if !ok || !p.HasChild() {
		return nil
	}
	return p.Child
}

// ParseError reports where in the input parsing failed.
type ParseError struct {
	Line int
	Msg  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parse reads a full KeyValues document. The returned object holds the
// top-level pairs; documents with a single root block (gameinfo.txt,
// .vdf files) appear as an object with one pair.
func Parse(r io.Reader) (*Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keyvalues input: %w", err)
	}
	p := &parser{lex: &lexer{data: data, line: 1}}
	return p.parseObject(true)
}

// ParseString is Parse over a string.
func ParseString(s string) (*Object, error) {
	p := &parser{lex: &lexer{data: []byte(s), line: 1}}
	return p.parseObject(true)
}

type tokenKind int

const (
	tokenString tokenKind = iota
	tokenOpen
	tokenClose
	tokenCondition
	tokenEOF
)

type token struct {
	kind tokenKind
	text string
	line int
}

type lexer struct {
	data []byte
	pos  int
	line int
}

func (l *lexer) errorf(format string, args ...any) *ParseError {
	return &ParseError{Line: l.line, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '/' && l.pos+1 < len(l.data) && l.data[l.pos+1] == '/':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' {
				l.pos++
			}
		case c == '{':
			l.pos++
			return token{kind: tokenOpen, line: l.line}, nil
		case c == '}':
			l.pos++
			return token{kind: tokenClose, line: l.line}, nil
		case c == '"':
			return l.quoted()
		case c == '[':
			return l.condition()
		default:
			return l.unquoted(), nil
		}
	}
	return token{kind: tokenEOF, line: l.line}, nil
}

// quoted consumes a double-quoted string. Escape handling matches the
// engine's: \n, \t, \" and \\ are translated, anything else after a
// backslash is kept verbatim (VMF stores Windows paths unescaped).
func (l *lexer) quoted() (token, error) {
	start := l.line
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch c {
		case '"':
			l.pos++
			return token{kind: tokenString, text: sb.String(), line: start}, nil
		case '\n':
			l.line++
			sb.WriteByte(c)
			l.pos++
		case '\\':
			if l.pos+1 < len(l.data) {
				switch l.data[l.pos+1] {
				case 'n':
					sb.WriteByte('\n')
					l.pos += 2
					continue
				case 't':
					sb.WriteByte('\t')
					l.pos += 2
					continue
				case '"', '\\':
					sb.WriteByte(l.data[l.pos+1])
					l.pos += 2
					continue
				}
			}
			sb.WriteByte(c)
			l.pos++
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
	return token{}, &ParseError{Line: start, Msg: "unterminated quoted string"}
}

// condition consumes a platform conditional such as [$WIN32] or [!$X360].
// Callers discard them; this tool resolves content for exactly one platform.
func (l *lexer) condition() (token, error) {
	start := l.line
	l.pos++ // opening bracket
	begin := l.pos
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if c == ']' {
			text := string(l.data[begin:l.pos])
			l.pos++
			return token{kind: tokenCondition, text: text, line: start}, nil
		}
		if c == '\n' {
			break
		}
		l.pos++
	}
	return token{}, &ParseError{Line: start, Msg: "unterminated conditional"}
}

func (l *lexer) unquoted() token {
	start := l.pos
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' ||
			c == '{' || c == '}' || c == '"' {
			break
		}
		if c == '/' && l.pos+1 < len(l.data) && l.data[l.pos+1] == '/' {
			break
		}
		l.pos++
	}
	return token{kind: tokenString, text: string(l.data[start:l.pos]), line: l.line}
}

type parser struct {
	lex *lexer
}

// nextValue returns the next token, skipping platform conditionals.
func (p *parser) nextValue() (token, error) {
	for {
		tok, err := p.lex.next()
		if err != nil {
			return token{}, err
		}
		if tok.kind != tokenCondition {
			return tok, nil
		}
	}
}

func (p *parser) parseObject(root bool) (*Object, error) {
	obj := &Object{}
	for {
		tok, err := p.nextValue()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenEOF:
			if !root {
				return nil, &ParseError{Line: tok.line, Msg: "unexpected end of input inside block"}
			}
			return obj, nil
		case tokenClose:
			if root {
				return nil, &ParseError{Line: tok.line, Msg: "unexpected '}' at top level"}
			}
			return obj, nil
		case tokenOpen:
			return nil, &ParseError{Line: tok.line, Msg: "expected key, got '{'"}
		case tokenString:
			pair, err := p.parsePair(tok)
			if err != nil {
				return nil, err
			}
			obj.Pairs = append(obj.Pairs, pair)
		}
	}
}

func (p *parser) parsePair(key token) (Pair, error) {
	tok, err := p.nextValue()
	if err != nil {
		return Pair{}, err
	}
	switch tok.kind {
	case tokenString:
		return Pair{Key: key.text, Value: tok.text}, nil
	case tokenOpen:
		child, err := p.parseObject(false)
		if err != nil {
			return Pair{}, err
		}
		return Pair{Key: key.text, Child: child}, nil
	case tokenClose:
		return Pair{}, &ParseError{Line: tok.line, Msg: fmt.Sprintf("key %q has no value", key.text)}
	default:
		return Pair{}, &ParseError{Line: key.line, Msg: fmt.Sprintf("key %q has no value before end of input", key.text)}
	}
}
