package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/klauspost/compress/zip"

	"procure-service/internal/procure/model"
	"procure-service/internal/procure/service"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// EntryName is the archive file name for a supplier's order: PO_<supplier>.xlsx
// with the supplier folded to ASCII. Blank names fall back to the order number.
func EntryName(po model.PurchaseOrder) string {
	base := unsafeFileChars.ReplaceAllString(service.Normalize(po.Supplier), "_")
	if base == "" || base == "_" {
		base = po.Number
	}
	return "PO_" + base + ".xlsx"
}

// PurchaseOrderZip writes one workbook per purchase order into a zip archive.
func PurchaseOrderZip(w io.Writer, pos []model.PurchaseOrder) error {
	zw := zip.NewWriter(w)
	used := make(map[string]int, len(pos))
	for _, po := range pos {
		name := EntryName(po)
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s_%d.xlsx", strings.TrimSuffix(name, ".xlsx"), n)
		}

		if err := writeEntry(zw, name, po); err != nil {
			zw.Close()
			return fmt.Errorf("zip %s: %w", name, err)
		}
	}
	return zw.Close()
}

func writeEntry(zw *zip.Writer, name string, po model.PurchaseOrder) error {
	f, err := PurchaseOrderWorkbook(po)
	if err != nil {
		return err
	}
	defer f.Close()

	entry, err := zw.Create(name)
	if err != nil {
		return err
	}
	return f.Write(entry)
}
