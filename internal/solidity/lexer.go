package solidity

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokHexNumber
	tokHexString
	tokString
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	// exponent/fraction only set for tokNumber when the literal has them.
	fraction string
	exponent string
	start    int
	end      int
}

var keywords = map[string]bool{
	"pragma": true, "import": true, "contract": true, "interface": true,
	"library": true, "abstract": true, "is": true, "using": true, "for": true,
	"enum": true, "event": true, "error": true, "struct": true, "type": true,
	"function": true, "constructor": true, "modifier": true, "receive": true,
	"fallback": true, "returns": true, "return": true, "if": true, "else": true,
	"while": true, "do": true, "try": true, "catch": true, "revert": true,
	"emit": true, "memory": true, "calldata": true, "storage": true,
	"public": true, "private": true, "internal": true, "external": true,
	"pure": true, "view": true, "payable": true, "virtual": true,
	"override": true, "constant": true, "immutable": true, "indexed": true,
	"anonymous": true, "mapping": true, "delete": true, "new": true,
	"true": true, "false": true, "this": true, "unchecked": true,
	"assembly": true, "continue": true, "break": true, "global": true,
	"as": true, "from": true,
}

// lexer tokenizes Solidity source. It is deliberately small: it recognizes
// enough of the grammar for the parser to build the subset of the tree the
// detector catalogue needs, and skips comments and whitespace.
type lexer struct {
	src    string
	pos    int
	toks   []token
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

func (l *lexer) errorf(format string, args ...any) error {
	return fmt.Errorf("solidity: lex error at byte %d: %s", l.pos, fmt.Sprintf(format, args...))
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekByteAt(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentCont(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokenize runs the full lexer and returns the token stream, appending a
// trailing tokEOF sentinel.
func (l *lexer) Tokenize() ([]token, error) {
	for {
		l.skipWhitespaceAndComments()
		if l.pos >= len(l.src) {
			break
		}
		start := l.pos
		c := l.peekByte()
		switch {
		case c == '"' || c == '\'':
			s, err := l.lexString(c)
			if err != nil {
				return nil, err
			}
			l.toks = append(l.toks, token{kind: tokString, text: s, start: start, end: l.pos})
		case isIdentStart(rune(c)) || c >= utf8.RuneSelf:
			l.lexIdentOrKeywordOrHex(start)
		case c >= '0' && c <= '9':
			l.lexNumber(start)
		case c == '.' && l.peekByteAt(1) >= '0' && l.peekByteAt(1) <= '9':
			l.lexNumber(start)
		default:
			l.lexPunct(start)
		}
	}
	l.toks = append(l.toks, token{kind: tokEOF, start: l.pos, end: l.pos})
	return l.toks, nil
}

func (l *lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.pos++
		case c == '/' && l.peekByteAt(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.peekByteAt(1) == '*':
			l.pos += 2
			for l.pos < len(l.src) && !(l.src[l.pos] == '*' && l.peekByteAt(1) == '/') {
				l.pos++
			}
			l.pos += 2
			if l.pos > len(l.src) {
				l.pos = len(l.src)
			}
		default:
			return
		}
	}
}

func (l *lexer) lexString(quote byte) (string, error) {
	l.pos++ // opening quote
	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			return "", l.errorf("unterminated string literal")
		}
		c := l.src[l.pos]
		if c == quote {
			l.pos++
			return sb.String(), nil
		}
		if c == '\\' && l.pos+1 < len(l.src) {
			sb.WriteByte(c)
			sb.WriteByte(l.src[l.pos+1])
			l.pos += 2
			continue
		}
		sb.WriteByte(c)
		l.pos++
	}
}

func (l *lexer) lexIdentOrKeywordOrHex(start int) {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentCont(r) {
			break
		}
		l.pos += size
	}
	text := l.src[start:l.pos]
	if (text == "hex") && (l.peekByte() == '"' || l.peekByte() == '\'') {
		quote := l.peekByte()
		s, err := l.lexString(quote)
		if err == nil {
			l.toks = append(l.toks, token{kind: tokHexString, text: s, start: start, end: l.pos})
			return
		}
	}
	l.toks = append(l.toks, token{kind: tokIdent, text: text, start: start, end: l.pos})
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (l *lexer) lexNumber(start int) {
	if l.peekByte() == '0' && (l.peekByteAt(1) == 'x' || l.peekByteAt(1) == 'X') {
		l.pos += 2
		for isHexDigit(l.peekByte()) || l.peekByte() == '_' {
			l.pos++
		}
		l.toks = append(l.toks, token{kind: tokHexNumber, text: l.src[start:l.pos], start: start, end: l.pos})
		return
	}
	intPart := l.scanDigits()
	fraction := ""
	if l.peekByte() == '.' {
		l.pos++
		fraction = l.scanDigits()
	}
	exponent := ""
	if l.peekByte() == 'e' || l.peekByte() == 'E' {
		expStart := l.pos
		l.pos++
		if l.peekByte() == '+' || l.peekByte() == '-' {
			l.pos++
		}
		l.scanDigits()
		exponent = l.src[expStart+1 : l.pos]
	}
	l.toks = append(l.toks, token{kind: tokNumber, text: intPart, fraction: fraction, exponent: exponent, start: start, end: l.pos})
}

func (l *lexer) scanDigits() string {
	start := l.pos
	for (l.peekByte() >= '0' && l.peekByte() <= '9') || l.peekByte() == '_' {
		l.pos++
	}
	return strings.ReplaceAll(l.src[start:l.pos], "_", "")
}

var threeCharPuncts = []string{">>=", "<<=", "**=", "==="}
var twoCharPuncts = []string{
	"=>", "->", "&&", "||", "==", "!=", "<=", ">=", "++", "--", "**",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>",
}

func (l *lexer) lexPunct(start int) {
	rest := l.src[l.pos:]
	for _, p := range threeCharPuncts {
		if strings.HasPrefix(rest, p) {
			l.pos += len(p)
			l.toks = append(l.toks, token{kind: tokPunct, text: p, start: start, end: l.pos})
			return
		}
	}
	for _, p := range twoCharPuncts {
		if strings.HasPrefix(rest, p) {
			l.pos += len(p)
			l.toks = append(l.toks, token{kind: tokPunct, text: p, start: start, end: l.pos})
			return
		}
	}
	l.pos++
	l.toks = append(l.toks, token{kind: tokPunct, text: rest[:1], start: start, end: l.pos})
}
