package cval

import "github.com/alecthomas/repr"

// reprString renders a Value's internal structure for failure
// messages, the same way sqltest/querydump.go uses repr.String to
// dump a parsed row when an assertion fails.
func reprString(v Value) string {
	return repr.String(v, repr.Indent("  "))
}
