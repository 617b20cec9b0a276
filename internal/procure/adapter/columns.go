package adapter

import (
	"regexp"
	"sort"
	"strings"

	"procure-service/internal/procure/service"
)

// Canonical column names.
const (
	ColGarmentCode = "CODIGO_PRENDA"
	ColGarmentName = "PRENDA"
	ColMaterial    = "MATERIAL"
	ColUnit        = "UNIDAD"
	ColConsumption = "CONSUMO_POR_PRENDA"
	ColUnitCost    = "COSTO_UNITARIO"
	ColItemCost    = "COSTO_ITEM"
	ColSupplier    = "PROVEEDOR"

	ColItem         = "ITEM"
	ColDescription  = "DESCRIPCION_OC"
	ColDeliveryDate = "FECHA_ENTREGA"
	ColQuantity     = "CANTIDAD_OC"
	ColPoUnit       = "UM_OC"
	ColUnitPrice    = "P_UNIT_OC"
	ColTaxPct       = "IVA_%"
	ColSubtotal     = "SUBTOTAL_OC"
)

// column: canonical name + accepted headers, in priority order.
type column struct {
	name     string
	aliases  []string
	required bool
}

var bomColumns = []column{
	{name: ColGarmentCode, aliases: []string{"CODIGO_PRENDA", "CODIGO"}, required: true},
	{name: ColGarmentName, aliases: []string{"PRENDA"}, required: true},
	{name: ColMaterial, aliases: []string{"MATERIAL", "Descripción"}, required: true},
	{name: ColUnit, aliases: []string{"UNIDAD", "Unidad de medida"}, required: true},
	{name: ColConsumption, aliases: []string{"CONSUMO_POR_PRENDA", "Cantidad Total", "Consumo"}, required: true},
	{name: ColUnitCost, aliases: []string{"COSTO_UNITARIO", "P.U", "Precio Unitario"}, required: true},
	{name: ColSupplier, aliases: []string{"PROVEEDOR"}, required: true},
	{name: ColItemCost, aliases: []string{"COSTO_ITEM", "Costo/ITEM"}},
}

var poColumns = []column{
	{name: ColItem, aliases: []string{"ITEM", "No", "N°"}},
	{name: ColDescription, aliases: []string{"DESCRIPCION_OC", "Descripción", "Descripcion"}, required: true},
	{name: ColDeliveryDate, aliases: []string{"FECHA_ENTREGA", "Fecha Entrega"}},
	{name: ColQuantity, aliases: []string{"CANTIDAD_OC", "Cantidad"}, required: true},
	{name: ColPoUnit, aliases: []string{"UM_OC", "UM"}},
	{name: ColUnitPrice, aliases: []string{"P_UNIT_OC", "P.U", "Precio Unitario"}},
	{name: ColTaxPct, aliases: []string{"IVA_%", "IVA"}},
	{name: ColSubtotal, aliases: []string{"SUBTOTAL_OC", "Subtotal"}},
}

var dictionaryColumns = []column{
	{name: ColDescription, aliases: []string{"DESCRIPCION_OC"}, required: true},
	{name: ColGarmentCode, aliases: []string{"CODIGO_PRENDA"}, required: true},
	{name: ColGarmentName, aliases: []string{"PRENDA"}, required: true},
}

var nonAlnum = regexp.MustCompile(`[^\p{L}\p{N}%]+`)

// headerKey folds a header for comparison: "Descripción" == "DESCRIPCION",
// "CODIGO_PRENDA" == "Codigo Prenda", "P.U" == "P U".
func headerKey(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	return strings.TrimSpace(nonAlnum.ReplaceAllString(service.Normalize(s), " "))
}

// resolveColumns maps canonical names to the real headers of a table.
// Aliases are tried in order; the first header (sorted) matching wins.
func resolveColumns(headers []string, cols []column) (found map[string]string, missing []string) {
	byKey := make(map[string]string, len(headers))
	sorted := append([]string(nil), headers...)
	sort.Strings(sorted)
	for _, h := range sorted {
		k := headerKey(h)
		if _, ok := byKey[k]; !ok && k != "" {
			byKey[k] = h
		}
	}

	found = make(map[string]string, len(cols))
	for _, c := range cols {
		for _, a := range c.aliases {
			if h, ok := byKey[headerKey(a)]; ok {
				found[c.name] = h
				break
			}
		}
		if _, ok := found[c.name]; !ok && c.required {
			missing = append(missing, c.name)
		}
	}
	return found, missing
}

// looksLikeHeaderRow: repeated header lines inside long exports
func looksLikeHeaderRow(rec map[string]string, headers map[string]string) bool {
	hits := 0
	for _, h := range headers {
		if v := rec[h]; v != "" && headerKey(v) == headerKey(h) {
			hits++
		}
	}
	return hits >= 2
}
