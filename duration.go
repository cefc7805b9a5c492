package cval

import (
	"strconv"
	"strings"
)

// timespanUnits lists the accepted suffixes in the preference order
// used by formatTimespan (spec §4.1/§4.4): ns, us, ms, s, min, h.
var timespanUnits = []struct {
	suffix string
	ns     int64
}{
	{"ns", 1},
	{"us", 1_000},
	{"ms", 1_000_000},
	{"s", 1_000_000_000},
	{"min", 60 * 1_000_000_000},
	{"h", 3600 * 1_000_000_000},
}

// splitTimespanToken splits a lexed token into its numeric mantissa
// and unit suffix, trying the longest suffixes first so "min" isn't
// mistaken for "m"+"in" (there's no bare "m" or "ms" ambiguity here
// since suffixes are checked longest-to-shortest).
func splitTimespanToken(tok string) (mantissa, suffix string, ok bool) {
	// Longest suffix first: "min" must be tried before "ms"/"s"/"s"'s
	// prefix-free siblings would otherwise be ambiguous if checked in
	// the wrong order (e.g. "min" vs "m" + "in").
	candidates := []string{"min", "ns", "us", "ms", "h", "s"}
	for _, suf := range candidates {
		if strings.HasSuffix(tok, suf) && len(tok) > len(suf) {
			return tok[:len(tok)-len(suf)], suf, true
		}
	}
	return "", "", false
}

// unitNanos returns the nanosecond scale for a known suffix.
func unitNanos(suffix string) (int64, bool) {
	for _, u := range timespanUnits {
		if u.suffix == suffix {
			return u.ns, true
		}
	}
	return 0, false
}

// parseTimespanToken parses a full "<number><unit>" token (e.g.
// "10ms", "1.5min", "-4ns") into a nanosecond count. It does not
// itself decide whether a bare token looks like a timespan; the
// parser calls this only once it has recognized a known suffix.
func parseTimespanToken(tok string) (int64, bool) {
	mantissa, suffix, ok := splitTimespanToken(tok)
	if !ok {
		return 0, false
	}
	scale, ok := unitNanos(suffix)
	if !ok {
		return 0, false
	}
	if n, err := strconv.ParseInt(mantissa, 10, 64); err == nil {
		return n * scale, true
	}
	f, err := strconv.ParseFloat(mantissa, 64)
	if err != nil {
		return 0, false
	}
	return int64(f * float64(scale)), true
}

// formatTimespan renders ns nanoseconds as "<magnitude><unit>",
// preferring the largest unit (checked in ns, us, ms, s, min, h
// order, keeping the last one that divides evenly) that yields a
// whole number, per spec §4.4.
func formatTimespan(ns int64) string {
	best := timespanUnits[0]
	for _, u := range timespanUnits {
		if ns%u.ns == 0 {
			best = u
		} else {
			break
		}
	}
	return strconv.FormatInt(ns/best.ns, 10) + best.suffix
}
