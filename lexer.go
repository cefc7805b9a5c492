package cval

import (
	"iter"
	"regexp"
)

// token is a single lexeme: its byte offset in the source and its
// raw bytes. Grounded directly on the teacher's lexer.go.
type token struct {
	i int
	b []byte
}

type lexer struct {
	data     []byte
	i        int
	yieldTok func(token, error) bool
}

func (l *lexer) error(reason string, args ...any) {
	l.yieldTok(token{}, newPosError(l.data, l.i, UnexpectedCharacter, reason, args...))
}

func (l *lexer) yield(n int) bool {
	if !l.yieldTok(token{l.i, l.data[l.i : l.i+n]}, nil) {
		return false
	}
	l.i += n
	return true
}

var spaceRE = regexp.MustCompile(`^([[:space:]\p{Zs}]|(#|//)[^\n]*|/\*([^*]|\*[^/])*\*?\*/)*`)

func (l *lexer) skipSpace() {
	l.i += len(spaceRE.Find(l.data[l.i:]))
}

var (
	stringRE       = regexp.MustCompile(`(?s)^(([^'\\]|\\.)*)'`)
	doubleStringRE = regexp.MustCompile(`(?s)^(([^"\\]|\\.)*)"`)
	// lexNumRE matches exactly the shapes the parser knows how to
	// classify afterwards: a signed hex/binary/octal/decimal integer,
	// or a decimal real (optional fraction, optional exponent),
	// optionally followed by one timespan unit suffix. Unlike the
	// teacher's catch-all "swallow every following letter" rule, this
	// stops at the first character that can't extend one of those
	// shapes, so a malformed trailer (spec §4.1 "10msb" -> a timespan
	// token followed by a stray 'b') lexes as two tokens instead of
	// one unclassifiable one.
	//
	// The octal/decimal mantissa and its optional fraction share one
	// alternative ([0-9]+(?:\.[0-9]*)?) rather than separate
	// alternatives: Go's regexp alternation is leftmost-first, not
	// leftmost-longest, so a standalone "0[0-7]*" alternative ahead of
	// the fraction alternative would match just "0" against "0.5" and
	// never even try the longer fraction branch. A greedy optional
	// group inside a single alternative doesn't have that problem — it
	// extends whenever the input allows it. classifyNumber, not this
	// regex, is what tells an octal literal from a plain decimal one.
	lexNumRE = regexp.MustCompile(`^[-+]?(?:0[xX][0-9a-fA-F]+|0[bB][01]+|[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][-+]?[0-9]+)?(?:ns|us|ms|min|h|s)?`)
	fieldRE  = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z_0-9]*`)
)

func (l *lexer) tokens() {
	for l.i = 0; ; {
		l.skipSpace()
		if l.i == len(l.data) {
			break
		}
		switch l.data[l.i] {
		case '{', '}', '[', ']', ':', ',', '=':
			if !l.yield(1) {
				return
			}
			continue
		case '.':
			// A '.' only starts a real literal (".5") when a digit
			// follows; otherwise it is the dotted-key path separator
			// (a.b.c), yielded as its own single-byte token.
			if l.i+1 >= len(l.data) || l.data[l.i+1] < '0' || l.data[l.i+1] > '9' {
				if !l.yield(1) {
					return
				}
				continue
			}
		case '\'':
			str := stringRE.Find(l.data[l.i+1:])
			if str == nil {
				l.error("unterminated string literal")
				return
			}
			if !l.yield(1 + len(str)) {
				return
			}
			continue
		case '"':
			str := doubleStringRE.Find(l.data[l.i+1:])
			if str == nil {
				l.error("unterminated string literal")
				return
			}
			if !l.yield(1 + len(str)) {
				return
			}
			continue
		}
		if n := lexNumRE.Find(l.data[l.i:]); n != nil {
			if !l.yield(len(n)) {
				return
			}
			continue
		}
		if n := fieldRE.Find(l.data[l.i:]); n != nil {
			if !l.yield(len(n)) {
				return
			}
			continue
		}
		l.error("invalid character %q", l.data[l.i])
		return
	}
}

func tokens(data []byte) iter.Seq2[token, error] {
	return func(yield func(token, error) bool) {
		(&lexer{data: data, yieldTok: yield}).tokens()
	}
}
