package cval

import (
	"strconv"
	"strings"
)

// String implements the canonical printer (spec §4.4/§6 "to_string"):
// a total function over every variant. Parse reads the output back
// as an equal Value for booleans, integers, timespans, non-integral
// reals, plain strings and lists of these. It does not for none, for a
// uri (its text reads back as a string), for a real with an integral
// value (it prints like an integer and reads back as one), or for a
// top-level string whose text is empty or reads as another literal.
func (v Value) String() string {
	var b strings.Builder
	v.writeTo(&b)
	return b.String()
}

// ToString is an alias for String kept for symmetry with the other
// To* coercions in coerce.go; to_string is total and never fails.
func (v Value) ToString() string { return v.String() }

func (v Value) writeTo(b *strings.Builder) {
	switch v.kind {
	case KindNone:
		b.WriteString("null")
	case KindBoolean:
		if v.i != 0 {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindInteger:
		b.WriteString(strconv.FormatInt(v.i, 10))
	case KindReal:
		b.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case KindTimespan:
		b.WriteString(formatTimespan(v.i))
	case KindURI:
		b.WriteString(v.str)
	case KindString:
		b.WriteString(v.str)
	case KindList:
		b.WriteByte('[')
		for i, e := range v.list {
			if i > 0 {
				b.WriteString(", ")
			}
			e.writeQuoted(b)
		}
		b.WriteByte(']')
	case KindDictionary:
		b.WriteByte('{')
		first := true
		v.dict.each(func(k string, val Value) bool {
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(k)
			b.WriteString(" = ")
			val.writeQuoted(b)
			return true
		})
		b.WriteByte('}')
	}
}

// writeQuoted is like writeTo except string-kind values are quoted,
// matching spec §4.4: "list → … strings inside a list are quoted."
// The same rule applies to dictionary values.
func (v Value) writeQuoted(b *strings.Builder) {
	if v.kind == KindString {
		b.WriteString(strconv.Quote(v.str))
		return
	}
	v.writeTo(b)
}
