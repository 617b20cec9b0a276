package service

import "procure-service/internal/procure/model"

type Expansion struct {
	Rows             []model.RequirementRow
	Unresolved       int // lines without final identity
	WithoutMaterials int // resolved, but no BOM row for the garment
	ParseFailures    int // rows with quantity or consumption coerced to 0
}

// Expand joins resolved lines with the BOM on (code, name):
// required = ordered qty x consumption per garment. Missing numbers count as 0.
func Expand(resolved []model.ResolvedLine, bom []model.BomEntry) Expansion {
	byGarment := make(map[model.Garment][]model.BomEntry)
	for _, b := range bom {
		g := model.Garment{Code: b.GarmentCode, Name: b.GarmentName}
		byGarment[g] = append(byGarment[g], b)
	}

	var exp Expansion
	for _, rl := range resolved {
		if rl.Final == nil {
			exp.Unresolved++
			continue
		}
		materials := byGarment[*rl.Final]
		if len(materials) == 0 {
			exp.WithoutMaterials++
			continue
		}

		qty, qtyOK := orZero(rl.Quantity)
		for _, b := range materials {
			cons, consOK := orZero(b.Consumption)
			row := model.RequirementRow{
				Item:        rl.Item,
				Description: rl.Description,
				GarmentCode: rl.Final.Code,
				GarmentName: rl.Final.Name,
				OrderedQty:  qty,
				Consumption: cons,
				Material:    b.Material,
				Unit:        b.Unit,
				UnitCost:    b.UnitCost,
				Supplier:    b.Supplier,
				RequiredQty: qty * cons,
				ParseFailed: !qtyOK || !consOK,
			}
			if row.ParseFailed {
				exp.ParseFailures++
			}
			exp.Rows = append(exp.Rows, row)
		}
	}
	return exp
}

func orZero(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}
