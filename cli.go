package cval

import (
	"reflect"
	"strconv"
	"strings"
)

// TargetShape describes enough of a caller's target type for ParseCLI
// to pick among the three relaxations of spec §4.2. Callers that
// already know their target's shape can build one by hand; ShapeOf
// derives one from a reflect.Type for use alongside GetAs[T].
type TargetShape struct {
	List       bool // target is a list (or nested list)
	NestedList bool // target is a list of lists
	ElemString bool // the (innermost) element type is string
}

// ShapeOf inspects rt and reports the TargetShape that ParseCLI should
// use for input later extracted into rt with GetAs: slices and arrays
// count as lists, a list-of-(slice or array) counts as a nested list.
func ShapeOf(rt reflect.Type) TargetShape {
	if rt.Kind() != reflect.Slice && rt.Kind() != reflect.Array {
		return TargetShape{}
	}
	elem := rt.Elem()
	if elem.Kind() == reflect.Slice || elem.Kind() == reflect.Array {
		return TargetShape{List: true, NestedList: true, ElemString: elem.Elem().Kind() == reflect.String}
	}
	return TargetShape{List: true, ElemString: elem.Kind() == reflect.String}
}

// ParseCLI implements the relaxed CLI-shortcut grammar of spec §4.2:
// a thin pre-pass that, given the target's shape, decides whether to
// wrap the input in brackets or quotes before handing it to the
// strict parser. The strict grammar (Parse) never applies these
// relaxations itself.
func ParseCLI(input string, shape TargetShape) (Value, error) {
	trimmed := strings.TrimSpace(input)
	switch {
	case shape.NestedList:
		return parseNestedListCLI(trimmed)
	case shape.List:
		return parseListCLI(trimmed, shape.ElemString)
	default:
		return Parse(input)
	}
}

// parseNestedListCLI handles "nested-list target, outermost brackets
// optional": inner brackets stay mandatory, and an input with no
// bracket at all is treated as a single inner list.
func parseNestedListCLI(trimmed string) (Value, error) {
	if !strings.Contains(trimmed, "[") {
		return Parse("[[" + trimmed + "]]")
	}
	if strings.HasPrefix(trimmed, "[") {
		if v, err := Parse(trimmed); err == nil && isListOfLists(v) {
			return v, nil
		}
	}
	return Parse("[" + trimmed + "]")
}

func isListOfLists(v Value) bool {
	if v.kind != KindList {
		return false
	}
	for _, e := range v.list {
		if e.kind != KindList {
			return false
		}
	}
	return true
}

// parseListCLI handles "list target, outer brackets optional" and,
// for a list-of-string target, "quotes optional".
func parseListCLI(trimmed string, elemString bool) (Value, error) {
	if strings.HasPrefix(trimmed, "[") {
		return Parse(trimmed)
	}
	if elemString {
		quoted, err := quoteCommaList(trimmed)
		if err != nil {
			return Value{}, err
		}
		return Parse(quoted)
	}
	return Parse("[" + trimmed + "]")
}

// quoteCommaList splits trimmed on top-level commas, trims whitespace
// around each element, quotes elements that aren't already quoted
// (quoted elements keep their whitespace literally), and wraps the
// result in brackets for the strict parser. A bare, unquoted element
// containing '[' or ']' means the outer brackets spec §4.2 says are
// "optional" were instead mismatched, so that is a syntax error rather
// than a literal element value.
func quoteCommaList(trimmed string) (string, error) {
	var b strings.Builder
	b.WriteByte('[')
	n := 0
	for _, part := range splitTopLevelCommas(trimmed) {
		elem := strings.TrimSpace(part)
		if elem == "" {
			continue
		}
		if n > 0 {
			b.WriteByte(',')
		}
		n++
		if elem[0] == '"' || elem[0] == '\'' {
			b.WriteString(elem)
		} else {
			if strings.ContainsAny(elem, "[]") {
				return "", newError(UnexpectedCharacter, "mismatched bracket in %q", elem)
			}
			b.WriteString(strconv.Quote(elem))
		}
	}
	b.WriteByte(']')
	return b.String(), nil
}

// splitTopLevelCommas splits on commas that fall outside a quoted
// span, so a quoted element may itself contain a literal comma.
func splitTopLevelCommas(s string) []string {
	var parts []string
	start := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ',':
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
