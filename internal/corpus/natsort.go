package corpus

import (
	"sort"
	"strings"
)

// NaturalLess orders strings so that embedded runs of digits compare by
// numeric value: "Vol 2" sorts before "Vol 10". A numeric run sorts before
// a non-numeric run at the same position. Strings that compare equal this
// way (e.g. "07" and "7") fall back to byte order.
func NaturalLess(a, b string) bool {
	if c := naturalCompare(a, b); c != 0 {
		return c < 0
	}
	return a < b
}

// NaturalSort sorts values in place using NaturalLess
func NaturalSort(values []string) {
	sort.SliceStable(values, func(i, j int) bool {
		return NaturalLess(values[i], values[j])
	})
}

func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		ca, restA := nextChunk(a)
		cb, restB := nextChunk(b)
		da, db := isDigit(ca[0]), isDigit(cb[0])

		var c int
		switch {
		case da && db:
			c = compareNumeric(ca, cb)
		case da:
			c = -1
		case db:
			c = 1
		default:
			c = strings.Compare(ca, cb)
		}
		if c != 0 {
			return c
		}
		a, b = restA, restB
	}
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

// nextChunk splits off the leading run of digits or non-digits
func nextChunk(s string) (chunk, rest string) {
	digit := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digit {
		i++
	}
	return s[:i], s[i:]
}

func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
