package service

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var combiningMarks = runes.In(unicode.Mn)

// Normalize builds the comparison key used by every matching stage:
// upper case, diacritics dropped (Á→A, Ñ→N), whitespace runs collapsed, trimmed.
// "Algodón  Pima" and "ALGODON PIMA" give the same key.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	out := s

	// transform chains keep state, build one per call (matching runs in parallel)
	t := transform.Chain(norm.NFD, runes.Remove(combiningMarks), norm.NFC)
	if folded, _, err := transform.String(t, out); err == nil {
		out = folded
	}
	// upper case only once marks are gone: letters like ǰ or ẖ have no
	// single-rune upper form and decompose to a lower case base
	return collapseSpaces(strings.ToUpper(out))
}

// NormalizeValue coerces v to text first; nil gives "".
func NormalizeValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return Normalize(x)
	case *string:
		if x == nil {
			return ""
		}
		return Normalize(*x)
	default:
		return Normalize(fmt.Sprint(x))
	}
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// tokenSort: tokens sorted alphabetically ("POLO CAMISA" == "CAMISA POLO")
func tokenSort(s string) string {
	f := strings.Fields(s)
	sort.Strings(f)
	return strings.Join(f, " ")
}
