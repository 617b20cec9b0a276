// Package adapter maps raw spreadsheet records (header -> cell) onto the
// canonical rows the pipeline works with. Missing columns and unparseable
// numbers degrade into warnings; only structurally broken tables fail.
package adapter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"procure-service/internal/procure/model"
	"procure-service/internal/utils"
)

var ErrMalformedTable = errors.New("malformed table")

// headersOf returns the columns of the first record and checks that all
// records carry exactly the same set.
func headersOf(rows []map[string]string) ([]string, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	headers := make([]string, 0, len(rows[0]))
	for h := range rows[0] {
		headers = append(headers, h)
	}
	sort.Strings(headers)

	for i, rec := range rows[1:] {
		if len(rec) != len(headers) {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrMalformedTable, i+2, len(rec), len(headers))
		}
		for _, h := range headers {
			if _, ok := rec[h]; !ok {
				return nil, fmt.Errorf("%w: row %d lacks column %q", ErrMalformedTable, i+2, h)
			}
		}
	}
	return headers, nil
}

type cells struct {
	cols map[string]string
	bad  int // non-empty numeric cells that did not parse
}

func (c *cells) has(col string) bool {
	_, ok := c.cols[col]
	return ok
}

func (c *cells) text(rec map[string]string, col string) string {
	h, ok := c.cols[col]
	if !ok {
		return ""
	}
	return strings.TrimSpace(rec[h])
}

func (c *cells) number(rec map[string]string, col string) *float64 {
	v := c.text(rec, col)
	if v == "" {
		return nil
	}
	f, ok := utils.ParseNumber(v)
	if !ok {
		c.bad++
		return nil
	}
	return &f
}

func missingWarning(source string, missing []string) model.Warning {
	return model.Warning{
		Code:    model.WarnMissingSchema,
		Source:  source,
		Message: "missing expected columns: " + strings.Join(missing, ", "),
		Count:   len(missing),
	}
}

func unparseableWarning(source string, n int) model.Warning {
	return model.Warning{
		Code:    model.WarnUnparseableField,
		Source:  source,
		Message: "numeric cells that could not be parsed were left empty",
		Count:   n,
	}
}

// BomEntries maps APU/BOM records. Rows without garment code and name are
// dropped (section titles, totals).
func BomEntries(rows []map[string]string) ([]model.BomEntry, []model.Warning, error) {
	headers, err := headersOf(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("bom: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	cols, missing := resolveColumns(headers, bomColumns)
	var warnings []model.Warning
	if len(missing) > 0 {
		warnings = append(warnings, missingWarning("bom", missing))
	}

	c := &cells{cols: cols}
	out := make([]model.BomEntry, 0, len(rows))
	for _, rec := range rows {
		if looksLikeHeaderRow(rec, cols) {
			continue
		}
		e := model.BomEntry{
			GarmentCode: c.text(rec, ColGarmentCode),
			GarmentName: c.text(rec, ColGarmentName),
			Material:    c.text(rec, ColMaterial),
			Unit:        c.text(rec, ColUnit),
			Consumption: c.number(rec, ColConsumption),
			UnitCost:    c.number(rec, ColUnitCost),
			Supplier:    c.text(rec, ColSupplier),
			ItemCost:    c.number(rec, ColItemCost),
		}
		if e.GarmentCode == "" && e.GarmentName == "" {
			continue
		}
		out = append(out, e)
	}
	if c.bad > 0 {
		warnings = append(warnings, unparseableWarning("bom", c.bad))
	}
	return out, warnings, nil
}

// PoLines maps purchase order records. Rows with a blank description are
// skipped; without an ITEM column (or with an unreadable one) the position
// in the order is used.
func PoLines(rows []map[string]string) ([]model.PoLine, []model.Warning, error) {
	headers, err := headersOf(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("po: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	cols, missing := resolveColumns(headers, poColumns)
	var warnings []model.Warning
	if len(missing) > 0 {
		warnings = append(warnings, missingWarning("po", missing))
	}

	c := &cells{cols: cols}
	out := make([]model.PoLine, 0, len(rows))
	for _, rec := range rows {
		if looksLikeHeaderRow(rec, cols) {
			continue
		}
		desc := c.text(rec, ColDescription)
		if desc == "" {
			continue
		}
		line := model.PoLine{
			Item:         len(out) + 1,
			Description:  desc,
			DeliveryDate: c.text(rec, ColDeliveryDate),
			Quantity:     c.number(rec, ColQuantity),
			Unit:         c.text(rec, ColPoUnit),
			UnitPrice:    c.number(rec, ColUnitPrice),
			TaxPct:       c.number(rec, ColTaxPct),
			Subtotal:     c.number(rec, ColSubtotal),
		}
		if c.has(ColItem) {
			if n, ok := utils.ParseNumber(c.text(rec, ColItem)); ok && n > 0 {
				line.Item = int(n)
			}
		}
		out = append(out, line)
	}
	if c.bad > 0 {
		warnings = append(warnings, unparseableWarning("po", c.bad))
	}
	return out, warnings, nil
}

// DictionaryEntries maps the synonym table. headers is the table's header
// row as read from the file; it decides the schema when there are no records.
// enabled is false when any of the three required columns is missing; the run
// then goes on without it.
func DictionaryEntries(headers []string, rows []map[string]string) (entries []model.DictionaryEntry, enabled bool, warnings []model.Warning, err error) {
	if len(rows) > 0 {
		if headers, err = headersOf(rows); err != nil {
			return nil, false, nil, fmt.Errorf("dictionary: %w", err)
		}
	}
	if len(headers) == 0 {
		return nil, true, nil, nil
	}

	cols, missing := resolveColumns(headers, dictionaryColumns)
	if len(missing) > 0 {
		return nil, false, []model.Warning{{
			Code:    model.WarnDictionaryDisabled,
			Source:  "dictionary",
			Message: "dictionary ignored, required columns: DESCRIPCION_OC, CODIGO_PRENDA, PRENDA; missing: " + strings.Join(missing, ", "),
			Count:   len(missing),
		}}, nil
	}

	c := &cells{cols: cols}
	entries = make([]model.DictionaryEntry, 0, len(rows))
	for _, rec := range rows {
		e := model.DictionaryEntry{
			Description: c.text(rec, ColDescription),
			Code:        c.text(rec, ColGarmentCode),
			Name:        c.text(rec, ColGarmentName),
		}
		if e.Description == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, true, nil, nil
}
