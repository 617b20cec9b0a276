package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var rxKeepNums = regexp.MustCompile(`[^\d.,\-]`)

var spaceStripper = strings.NewReplacer("\u00A0", "", "\u202F", "", "\u2009", "", " ", "", "\t", "")

// ParseNumber parses spreadsheet/PDF numbers written either way:
// "1.234,50", "1,234.50", "2 345,6" (NBSP), "(12)", "19%", "$ 3.000".
// ok is false when nothing numeric is left after cleanup.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = spaceStripper.Replace(s)

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = rxKeepNums.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." || s == "," {
		return 0, false
	}
	s = unifySeparators(s)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

// unifySeparators leaves at most one '.' as the decimal separator.
// With both separators present the rightmost one is decimal. A single comma
// followed by exactly three digits is a thousands separator ("1,200"),
// unless the integer part is zero ("0,500").
func unifySeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return strings.ReplaceAll(s, ",", "")
		}
		intPart, frac := s[:lastComma], s[lastComma+1:]
		digits := strings.TrimPrefix(intPart, "-")
		if len(frac) == 3 && digits != "" && strings.TrimLeft(digits, "0") != "" {
			return intPart + frac
		}
		return intPart + "." + frac
	case lastDot >= 0 && strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}
	return s
}
