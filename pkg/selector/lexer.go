package selector

import (
	"fmt"
	"strconv"
	"strings"
)

// tokenKind identifies a lexical token in the selector mini-language.
type tokenKind int8

const (
	tokInvalid tokenKind = iota // error token; value holds the message
	tokEOF
	tokIdent   // bare identifier: host tag or composite display name
	tokClass   // .name
	tokLBrack  // [
	tokRBrack  // ]
	tokEqual   // =
	tokString  // quoted attribute value; value holds parsed content
	tokNumber  // numeric attribute value
	tokTrue    // true
	tokFalse   // false
)

var tokenNames = [...]string{
	tokInvalid: "invalid",
	tokEOF:     "EOF",
	tokIdent:   "identifier",
	tokClass:   "class",
	tokLBrack:  "[",
	tokRBrack:  "]",
	tokEqual:   "=",
	tokString:  "string",
	tokNumber:  "number",
	tokTrue:    "true",
	tokFalse:   "false",
}

func (k tokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("tokenKind(%d)", k)
}

// token is a single lexical token. text holds the raw source slice; for
// tokString the surrounding quotes are stripped.
type token struct {
	kind tokenKind
	text string
	pos  int
}

// lexer scans a selector string. It is a single-pass, hand-written scanner;
// tokens reference slices of the source.
type lexer struct {
	src string
	pos int
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (l *lexer) errorf(pos int, format string, args ...any) token {
	return token{kind: tokInvalid, text: fmt.Sprintf(format, args...), pos: pos}
}

// next returns the next token, skipping insignificant whitespace.
func (l *lexer) next() token {
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}
	}
	start := l.pos
	c := l.src[l.pos]
	switch {
	case c == '[':
		l.pos++
		return token{kind: tokLBrack, text: "[", pos: start}
	case c == ']':
		l.pos++
		return token{kind: tokRBrack, text: "]", pos: start}
	case c == '=':
		l.pos++
		return token{kind: tokEqual, text: "=", pos: start}
	case c == '.':
		l.pos++
		if l.pos >= len(l.src) || !isIdentStart(l.src[l.pos]) {
			return l.errorf(start, "expected class name after '.'")
		}
		return token{kind: tokClass, text: l.scanIdent(), pos: start}
	case c == '"' || c == '\'':
		return l.scanString(c)
	case c == '+' || c == '-' || (c >= '0' && c <= '9'):
		return l.scanNumber()
	case isIdentStart(c):
		word := l.scanIdent()
		switch word {
		case "true":
			return token{kind: tokTrue, text: word, pos: start}
		case "false":
			return token{kind: tokFalse, text: word, pos: start}
		}
		return token{kind: tokIdent, text: word, pos: start}
	}
	return l.errorf(start, "unexpected character %q", c)
}

func (l *lexer) scanIdent() string {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	return l.src[start:l.pos]
}

func (l *lexer) scanString(quote byte) token {
	start := l.pos
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case quote:
			l.pos++
			return token{kind: tokString, text: sb.String(), pos: start}
		case '\\':
			l.pos++
			if l.pos >= len(l.src) {
				return l.errorf(start, "unterminated escape in string")
			}
			sb.WriteByte(l.src[l.pos])
			l.pos++
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
	return l.errorf(start, "unterminated string")
}

func (l *lexer) scanNumber() token {
	start := l.pos
	if l.src[l.pos] == '+' || l.src[l.pos] == '-' {
		l.pos++
	}
	seenDot := false
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '.' && !seenDot {
			seenDot = true
			l.pos++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		l.pos++
	}
	text := l.src[start:l.pos]
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return l.errorf(start, "malformed number %q", text)
	}
	return token{kind: tokNumber, text: text, pos: start}
}
