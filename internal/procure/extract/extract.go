// Package extract turns the text lines of a purchase order PDF into PO lines.
// Best effort: a line is an item when it starts with a 1-3 digit item number
// and carries a dd.mm.yyyy delivery date.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"procure-service/internal/procure/model"
)

var (
	reItemStart = regexp.MustCompile(`^\s*\d{1,3}\s`)
	reDate      = regexp.MustCompile(`\b\d{2}\.\d{2}\.\d{4}\b`)
	reItem      = regexp.MustCompile(`^\s*(\d+)\s+(.*)$`)
	// qty UM unit_price <currency> iva% subtotal
	reTail = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s+([A-Z]+)\s+(\d+(?:[.,]\d+)?)\s+\S+\s+(\d+(?:[.,]\d+)?)\s*%\s+(\d+(?:[.,]\d+)?)`)
)

// ParsePOText extracts PO lines sorted by item number. Numeric fields stay
// nil when the tail of the line does not follow the expected layout.
func ParsePOText(lines []string) []model.PoLine {
	var out []model.PoLine
	for _, line := range lines {
		if l, ok := parseLine(line); ok {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Item < out[j].Item })
	return out
}

func parseLine(line string) (model.PoLine, bool) {
	if !reItemStart.MatchString(line) {
		return model.PoLine{}, false
	}
	loc := reDate.FindStringIndex(line)
	if loc == nil {
		return model.PoLine{}, false
	}

	m := reItem.FindStringSubmatch(strings.TrimSpace(line[:loc[0]]))
	if m == nil {
		return model.PoLine{}, false
	}
	item, err := strconv.Atoi(m[1])
	if err != nil {
		return model.PoLine{}, false
	}

	pl := model.PoLine{
		Item:         item,
		Description:  strings.TrimSpace(m[2]),
		DeliveryDate: line[loc[0]:loc[1]],
	}
	if t := reTail.FindStringSubmatch(strings.TrimSpace(line[loc[1]:])); t != nil {
		pl.Quantity = number(t[1])
		pl.Unit = t[2]
		pl.UnitPrice = number(t[3])
		pl.TaxPct = number(t[4])
		pl.Subtotal = number(t[5])
	}
	return pl, true
}

// commas are thousands separators in this layout
func number(s string) *float64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &f
}
