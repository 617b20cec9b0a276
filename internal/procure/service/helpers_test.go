package service

import "procure-service/internal/procure/model"

func num(v float64) *float64 { return &v }

func bomRow(code, name, material, unit string, consumption, cost float64, supplier string) model.BomEntry {
	return model.BomEntry{
		GarmentCode: code,
		GarmentName: name,
		Material:    material,
		Unit:        unit,
		Consumption: num(consumption),
		UnitCost:    num(cost),
		Supplier:    supplier,
	}
}
