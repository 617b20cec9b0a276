// Package loader reads uploaded files into canonical pipeline rows.
package loader

import (
	"fmt"
	"io"

	"procure-service/internal/fileio"
	"procure-service/internal/procure/adapter"
	"procure-service/internal/procure/extract"
	"procure-service/internal/procure/model"
)

// Bom reads an APU/BOM workbook or CSV.
func Bom(r io.Reader, filename string, headerRow int) ([]model.BomEntry, []model.Warning, error) {
	rows, err := fileio.ReadAnyMaps(r, filename, headerRow)
	if err != nil {
		return nil, nil, fmt.Errorf("read bom %q: %w", filename, err)
	}
	return adapter.BomEntries(rows)
}

// PurchaseOrder reads the client OC. PDFs go through text extraction,
// anything else is treated as a table.
func PurchaseOrder(r io.Reader, filename string, headerRow int) ([]model.PoLine, []model.Warning, error) {
	if fileio.IsPDF(filename) {
		text, err := fileio.ReadPDFLines(r)
		if err != nil {
			return nil, nil, fmt.Errorf("read po %q: %w", filename, err)
		}
		return extract.ParsePOText(text), nil, nil
	}
	rows, err := fileio.ReadAnyMaps(r, filename, headerRow)
	if err != nil {
		return nil, nil, fmt.Errorf("read po %q: %w", filename, err)
	}
	return adapter.PoLines(rows)
}

// Dictionary reads the optional synonym table (header on the first row).
func Dictionary(r io.Reader, filename string) ([]model.DictionaryEntry, bool, []model.Warning, error) {
	t, err := fileio.ReadTable(r, filename, 1)
	if err != nil {
		return nil, false, nil, fmt.Errorf("read dictionary %q: %w", filename, err)
	}
	return adapter.DictionaryEntries(t.Headers, t.Records)
}
