package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procure-service/internal/procure/model"
)

func TestPurchaseOrders_OnePerSupplierWithTax(t *testing.T) {
	rows := Consolidate([]model.RequirementRow{
		req("ACME", "COTTON", "KG", 120, num(3)),
		req("ACME", "THREAD", "M", 10, num(0.5)),
		req("BOTONES", "BUTTON", "UN", 600, num(0.1)),
		req("", "LABEL", "UN", 100, nil),
	}, ConsolidateOptions{})

	pos := PurchaseOrders(rows, 0.19)
	require.Len(t, pos, 3)

	assert.Equal(t, UnassignedSupplier, pos[0].Supplier)
	assert.True(t, pos[0].Subtotal.IsZero())
	assert.True(t, pos[0].Total.IsZero())

	acme := pos[1]
	assert.Equal(t, "ACME", acme.Supplier)
	assert.Equal(t, "PO-002", acme.Number)
	require.Len(t, acme.Items, 2)
	assert.True(t, acme.Subtotal.Equal(decimal.RequireFromString("365")), acme.Subtotal.String())
	assert.True(t, acme.Tax.Equal(decimal.RequireFromString("69.35")), acme.Tax.String())
	assert.True(t, acme.Total.Equal(decimal.RequireFromString("434.35")), acme.Total.String())

	assert.Equal(t, "BOTONES", pos[2].Supplier)
	assert.True(t, pos[2].Subtotal.Equal(decimal.RequireFromString("60")), pos[2].Subtotal.String())
}

func TestPurchaseOrders_Empty(t *testing.T) {
	assert.Empty(t, PurchaseOrders(nil, 0.19))
}
