package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"procure-service/internal/procure/model"
)

// UnassignedSupplier heads the purchase order of rows without a supplier.
const UnassignedSupplier = "SIN_PROVEEDOR"

// PurchaseOrders splits consolidated rows into one document per supplier, in
// supplier order. subtotal = sum of known estimated costs (2 decimals),
// tax = subtotal x rate (2 decimals), total = subtotal + tax.
func PurchaseOrders(rows []model.ConsolidatedRow, taxRate float64) []model.PurchaseOrder {
	rate := decimal.NewFromFloat(taxRate)

	var pos []model.PurchaseOrder
	idx := make(map[string]int)
	for _, r := range rows {
		supplier := r.Supplier
		if supplier == "" {
			supplier = UnassignedSupplier
		}
		i, ok := idx[supplier]
		if !ok {
			pos = append(pos, model.PurchaseOrder{
				Number:   fmt.Sprintf("PO-%03d", len(pos)+1),
				Supplier: supplier,
				TaxRate:  rate,
			})
			i = len(pos) - 1
			idx[supplier] = i
		}
		pos[i].Items = append(pos[i].Items, r)
	}

	for i := range pos {
		sum := decimal.Zero
		for _, it := range pos[i].Items {
			if it.EstimatedCost != nil {
				sum = sum.Add(decimal.NewFromFloat(*it.EstimatedCost))
			}
		}
		pos[i].Subtotal = sum.Round(2)
		pos[i].Tax = pos[i].Subtotal.Mul(rate).Round(2)
		pos[i].Total = pos[i].Subtotal.Add(pos[i].Tax)
	}
	return pos
}
