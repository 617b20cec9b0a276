package fileio

import (
	"bytes"
	"errors"
	"io"

	xls "github.com/extrame/xls"
)

const xlsProbeCols = 256

// xlsWidth finds the widest populated row; Row.LastCol() is unreliable on
// files written by some ERPs.
func xlsWidth(sheet *xls.WorkSheet) int {
	width := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		r := sheet.Row(i)
		if r == nil {
			continue
		}
		for j := xlsProbeCols - 1; j >= width; j-- {
			if normalizeCell(r.Col(j)) != "" {
				width = j + 1
				break
			}
		}
	}
	return max(width, 1)
}

// readXLS reads the first sheet of a legacy BIFF workbook.
func readXLS(r io.Reader, headerRow int) (Table, error) {
	if headerRow <= 0 {
		return Table{}, errors.New("xls: headerRow must be 1-based")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return Table{}, err
	}

	// the charset only matters for strings stored as 8-bit
	var wb *xls.WorkBook
	var lastErr error
	for _, cs := range []string{"windows-1252", "utf-8"} {
		wb, lastErr = xls.OpenReader(bytes.NewReader(b), cs)
		if lastErr == nil && wb != nil {
			break
		}
	}
	if wb == nil {
		if lastErr == nil {
			lastErr = errors.New("xls: failed to open workbook")
		}
		return Table{}, lastErr
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return Table{}, nil
	}

	width := xlsWidth(sheet)
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		cols := make([]string, width)
		if row := sheet.Row(i); row != nil {
			for j := range cols {
				cols[j] = row.Col(j)
			}
		}
		rows = append(rows, cols)
	}

	return newTable(rows, headerRow), nil
}
