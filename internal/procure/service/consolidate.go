package service

import (
	"sort"

	"procure-service/internal/procure/model"
)

type ConsolidateOptions struct {
	NormalizeSuppliers bool
	NormalizeMaterials bool
}

type groupKey struct {
	supplier, material, unit string
}

// Consolidate groups requirement rows by (supplier, material, unit):
// quantities are summed, unit cost is the max seen (not the average), and
// estimated cost = quantity x max cost. Output is sorted by the group key.
func Consolidate(rows []model.RequirementRow, opt ConsolidateOptions) []model.ConsolidatedRow {
	idx := make(map[groupKey]int)
	var out []model.ConsolidatedRow

	for _, r := range rows {
		k := groupKey{supplier: r.Supplier, material: r.Material, unit: r.Unit}
		if opt.NormalizeSuppliers {
			k.supplier = Normalize(k.supplier)
		}
		if opt.NormalizeMaterials {
			k.material = Normalize(k.material)
		}

		i, ok := idx[k]
		if !ok {
			out = append(out, model.ConsolidatedRow{Supplier: k.supplier, Material: k.material, Unit: k.unit})
			i = len(out) - 1
			idx[k] = i
		}
		c := &out[i]
		c.Quantity += r.RequiredQty
		c.Sources++
		if r.UnitCost != nil && (c.UnitCost == nil || *r.UnitCost > *c.UnitCost) {
			cost := *r.UnitCost
			c.UnitCost = &cost
		}
	}

	for i := range out {
		if out[i].UnitCost != nil {
			est := out[i].Quantity * *out[i].UnitCost
			out[i].EstimatedCost = &est
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Supplier != b.Supplier {
			return a.Supplier < b.Supplier
		}
		if a.Material != b.Material {
			return a.Material < b.Material
		}
		return a.Unit < b.Unit
	})
	return out
}
