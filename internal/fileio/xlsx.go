package fileio

import (
	"errors"
	"io"
	"regexp"
	"strings"

	excelize "github.com/xuri/excelize/v2"
)

// readXLSX reads the first sheet that has data, so a cover or instructions
// sheet left empty in front of the APU does not hide it. Numbers come back as
// stored (a "0" format must not round 1.2345 kg of fabric to 1); dates and
// text come back as the operator sees them.
func readXLSX(r io.Reader, headerRow int) (Table, error) {
	if headerRow <= 0 {
		return Table{}, errors.New("xlsx: headerRow must be 1-based")
	}
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		if v, err := f.GetSheetVisible(sheet); err == nil && !v {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return Table{}, err
		}
		if len(rows) < headerRow {
			continue
		}
		raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return Table{}, err
		}
		useStoredNumbers(f, sheet, rows, raw)
		return newTable(rows, headerRow), nil
	}
	return Table{}, nil
}

// useStoredNumbers replaces formatted cells with their raw value unless the
// cell carries a date or time format.
func useStoredNumbers(f *excelize.File, sheet string, shown, raw [][]string) {
	for i := range shown {
		if i >= len(raw) {
			return
		}
		for j := range shown[i] {
			if j >= len(raw[i]) || raw[i][j] == shown[i][j] {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil || isDateCell(f, sheet, cell) {
				continue
			}
			shown[i][j] = raw[i][j]
		}
	}
}

// quoted literals and [color]/[$-locale] sections carry no date tokens
var fmtLiterals = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.`)

func isDateCell(f *excelize.File, sheet, cell string) bool {
	id, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return false
	}
	st, err := f.GetStyle(id)
	if err != nil || st == nil {
		return false
	}
	if st.CustomNumFmt != nil {
		code := strings.ToLower(fmtLiterals.ReplaceAllString(*st.CustomNumFmt, ""))
		return strings.ContainsAny(code, "ydhs")
	}
	// built-in date and time formats
	n := st.NumFmt
	return (n >= 14 && n <= 22) || (n >= 45 && n <= 47)
}
