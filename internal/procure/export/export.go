// Package export renders pipeline results as the operator's deliverables:
// the main procurement workbook and one purchase order workbook per supplier.
package export

import (
	"fmt"
	"math"
	"strings"

	excelize "github.com/xuri/excelize/v2"

	"procure-service/internal/procure/model"
)

// Sheet names of the main workbook.
const (
	SheetExtracted     = "OC_Extraida"
	SheetMapping       = "Mapeo_Propuesto"
	SheetClientOrder   = "Orden_Cliente"
	SheetRequirements  = "Req_por_Prenda"
	SheetConsolidated  = "Consolidado_Material"
	SheetWarnings      = "Advertencias"
	SheetSummary       = "Resumen"
	maxSheetNameLength = 31
)

var sheetNameReplacer = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "(", "]", ")",
)

// SheetName makes s acceptable to Excel: no reserved characters, at most
// 31 characters, never empty.
func SheetName(s string) string {
	s = strings.Trim(strings.TrimSpace(sheetNameReplacer.Replace(s)), "'")
	if s == "" {
		return "Hoja1"
	}
	if r := []rune(s); len(r) > maxSheetNameLength {
		s = string(r[:maxSheetNameLength])
	}
	return s
}

// sheet accumulates rows for one worksheet.
type sheet struct {
	name   string
	header []any
	rows   [][]any
}

func (s *sheet) add(cells ...any) { s.rows = append(s.rows, cells) }

// book writes sheets in order; the default "Sheet1" is renamed to the first.
func book(sheets ...*sheet) (*excelize.File, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	for i, s := range sheets {
		name := SheetName(s.name)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
		if err := writeRows(f, name, s, bold); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeRows(f *excelize.File, name string, s *sheet, headerStyle int) error {
	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return err
	}
	if len(s.header) > 0 {
		head := make([]any, len(s.header))
		for i, h := range s.header {
			head[i] = excelize.Cell{StyleID: headerStyle, Value: h}
		}
		if err := sw.SetRow("A1", head); err != nil {
			return err
		}
	}
	for i, r := range s.rows {
		if len(r) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, r); err != nil {
			return err
		}
	}
	return sw.Flush()
}

// opt turns nil numbers into blank cells.
func opt(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func code(g *model.Garment) any {
	if g == nil {
		return nil
	}
	return g.Code
}

func name(g *model.Garment) any {
	if g == nil {
		return nil
	}
	return g.Name
}

// score is shown with three decimals; the pipeline keeps the raw value.
func score(v *float64) any {
	if v == nil {
		return nil
	}
	return math.Round(*v*1000) / 1000
}

func extractedSheet(lines []model.PoLine) *sheet {
	s := &sheet{name: SheetExtracted, header: []any{
		"ITEM", "DESCRIPCION_OC", "FECHA_ENTREGA", "CANTIDAD_OC", "UM_OC", "P_UNIT_OC", "IVA_%", "SUBTOTAL_OC",
	}}
	for _, l := range lines {
		s.add(l.Item, l.Description, l.DeliveryDate, opt(l.Quantity), l.Unit, opt(l.UnitPrice), opt(l.TaxPct), opt(l.Subtotal))
	}
	return s
}

func mappingSheet(resolved []model.ResolvedLine) *sheet {
	s := &sheet{name: SheetMapping, header: []any{
		"ITEM", "DESCRIPCION_OC", "CANTIDAD_OC", "CODIGO_PRENDA", "PRENDA",
		"SUG_CODIGO_PRENDA", "SUG_PRENDA", "COINCIDENCIA", "MEJOR_CANDIDATO",
	}}
	for _, l := range resolved {
		s.add(l.Item, l.Description, opt(l.Quantity), code(l.Exact), name(l.Exact),
			code(l.Suggested), name(l.Suggested), score(l.Score), name(l.Closest))
	}
	return s
}

func clientOrderSheet(resolved []model.ResolvedLine) *sheet {
	s := &sheet{name: SheetClientOrder, header: []any{
		"ITEM", "DESCRIPCION_OC", "CODIGO_PRENDA", "PRENDA", "CANTIDAD", "UM_OC", "FECHA_ENTREGA", "METODO",
	}}
	for _, l := range resolved {
		s.add(l.Item, l.Description, code(l.Final), name(l.Final), opt(l.Quantity), l.Unit, l.DeliveryDate, string(l.Method))
	}
	return s
}

func requirementsSheet(rows []model.RequirementRow) *sheet {
	s := &sheet{name: SheetRequirements, header: []any{
		"ITEM", "DESCRIPCION_OC", "CODIGO_PRENDA", "PRENDA", "CANTIDAD", "MATERIAL", "UNIDAD",
		"CONSUMO_POR_PRENDA", "COSTO_UNITARIO", "PROVEEDOR", "CANTIDAD_MATERIAL", "DATO_INCOMPLETO",
	}}
	for _, r := range rows {
		incomplete := ""
		if r.ParseFailed {
			incomplete = "SI"
		}
		s.add(r.Item, r.Description, r.GarmentCode, r.GarmentName, r.OrderedQty, r.Material, r.Unit,
			r.Consumption, opt(r.UnitCost), r.Supplier, r.RequiredQty, incomplete)
	}
	return s
}

func consolidatedSheet(sheetName string, rows []model.ConsolidatedRow) *sheet {
	s := &sheet{name: sheetName, header: []any{
		"PROVEEDOR", "MATERIAL", "UNIDAD", "CANTIDAD_MATERIAL", "COSTO_UNITARIO", "COSTO_ESTIMADO",
	}}
	for _, r := range rows {
		s.add(r.Supplier, r.Material, r.Unit, r.Quantity, opt(r.UnitCost), opt(r.EstimatedCost))
	}
	return s
}

func warningsSheet(ws []model.Warning) *sheet {
	s := &sheet{name: SheetWarnings, header: []any{"CODIGO", "ORIGEN", "MENSAJE", "CANTIDAD"}}
	for _, w := range ws {
		s.add(w.Code, w.Source, w.Message, w.Count)
	}
	return s
}

func summarySheet(res model.Result) *sheet {
	sum := res.Summary
	s := &sheet{name: SheetSummary, header: []any{"INDICADOR", "VALOR"}}
	s.add("Ejecucion", res.RunID)
	s.add("Lineas OC", sum.PoLines)
	s.add("Filas BOM", sum.BomRows)
	s.add("Prendas en catalogo", sum.CatalogGarments)
	s.add("Coincidencias diccionario", sum.DictionaryHits)
	s.add("Coincidencias fuzzy", sum.FuzzyHits)
	s.add("Sin identificar", sum.Unresolved)
	s.add("Sin materiales en BOM", sum.WithoutMaterials)
	s.add("Filas de requerimiento", sum.RequirementRows)
	s.add("Filas con dato incompleto", sum.ParseFailures)
	s.add("Materiales consolidados", sum.Consolidated)
	s.add("Proveedores", sum.Suppliers)
	s.add("Umbral fuzzy", res.Opts.Threshold)
	return s
}

// MainWorkbook builds ComprasTextiles: extraction, mapping, client order,
// requirements, consolidation, then warnings (if any) and the run summary.
// The caller closes the file.
func MainWorkbook(res model.Result) (*excelize.File, error) {
	sheets := []*sheet{
		extractedSheet(res.Lines),
		mappingSheet(res.Resolved),
		clientOrderSheet(res.Resolved),
		requirementsSheet(res.Requirements),
		consolidatedSheet(SheetConsolidated, res.Consolidated),
	}
	if len(res.Warnings) > 0 {
		sheets = append(sheets, warningsSheet(res.Warnings))
	}
	sheets = append(sheets, summarySheet(res))
	return book(sheets...)
}

// PurchaseOrderWorkbook builds the single-sheet document sent to a supplier:
// its consolidated lines followed by subtotal, tax and total.
func PurchaseOrderWorkbook(po model.PurchaseOrder) (*excelize.File, error) {
	s := consolidatedSheet(purchaseOrderSheetName(po.Supplier), po.Items)
	s.add()
	s.add("ORDEN", po.Number)
	s.add("SUBTOTAL", nil, nil, nil, nil, po.Subtotal.InexactFloat64())
	s.add(fmt.Sprintf("IVA %s%%", po.TaxRate.Shift(2).String()), nil, nil, nil, nil, po.Tax.InexactFloat64())
	s.add("TOTAL", nil, nil, nil, nil, po.Total.InexactFloat64())
	return book(s)
}

func purchaseOrderSheetName(supplier string) string {
	r := []rune(supplier)
	if len(r) > 25 {
		r = r[:25]
	}
	return SheetName("PO_" + string(r))
}
