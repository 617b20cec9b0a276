package fileio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFile = errors.New("unsupported file type")

// Table is a sheet below its header row. Headers survive even when there
// are no records.
type Table struct {
	Headers []string
	Records []map[string]string
}

// ReadTable picks a reader by extension. headerRow is 1-based.
func ReadTable(r io.Reader, filename string, headerRow int) (Table, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		return readXLSX(r, headerRow)
	case ".xls":
		return readXLS(r, headerRow)
	case ".csv", ".txt":
		return readCSV(r, headerRow)
	default:
		return Table{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, filename)
	}
}

// ReadAnyMaps returns only the records (header -> value) of ReadTable.
func ReadAnyMaps(r io.Reader, filename string, headerRow int) ([]map[string]string, error) {
	t, err := ReadTable(r, filename, headerRow)
	return t.Records, err
}

// IsPDF reports whether filename should go through the PDF text extractor.
func IsPDF(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// pickHeader takes the header row and names blank cells "Column N".
// Duplicate headers get a " (N)" suffix so no column is lost.
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 || idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	seen := make(map[string]int, len(h))
	for i, v := range h {
		v = normalizeCell(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		if n := seen[v]; n > 0 {
			seen[v] = n + 1
			v = fmt.Sprintf("%s (%d)", v, n+1)
		} else {
			seen[v] = 1
		}
		out[i] = v
	}
	return out
}

// rowsToMaps converts rows below the header into records, skipping empty rows.
// Every record carries every header.
func rowsToMaps(rows [][]string, headers []string, headerRow int) []map[string]string {
	start := headerRow
	if start < 1 {
		start = 1
	}
	var out []map[string]string
	for r := start; r < len(rows); r++ {
		rec := rows[r]
		m := make(map[string]string, len(headers))
		empty := true
		for c := range headers {
			var v string
			if c < len(rec) {
				v = normalizeCell(rec[c])
			}
			if v != "" {
				empty = false
			}
			m[headers[c]] = v
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}

var cellSpaces = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "\uFEFF", "")

func newTable(rows [][]string, headerRow int) Table {
	if len(rows) == 0 {
		return Table{}
	}
	h := pickHeader(rows, headerRow)
	return Table{Headers: h, Records: rowsToMaps(rows, h, headerRow)}
}

// normalizeCell trims a cell and turns NBSP/NNBSP into plain spaces.
func normalizeCell(s string) string {
	return strings.TrimSpace(cellSpaces.Replace(s))
}
