package export

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"procure-service/internal/procure/model"
)

func f64(v float64) *float64 { return &v }

func sampleResult() model.Result {
	shirt := &model.Garment{Code: "G1", Name: "SHIRT"}
	return model.Result{
		RunID: "run-1",
		Lines: []model.PoLine{{Item: 1, Description: "shirt", Quantity: f64(100)}},
		Resolved: []model.ResolvedLine{{
			PoLine:    model.PoLine{Item: 1, Description: "shirt", Quantity: f64(100)},
			Suggested: shirt, Closest: shirt, Score: f64(0.923076923), Final: shirt, Method: model.MethodFuzzy,
		}},
		Requirements: []model.RequirementRow{{
			Item: 1, Description: "shirt", GarmentCode: "G1", GarmentName: "SHIRT", OrderedQty: 100,
			Consumption: 1.2, Material: "COTTON", Unit: "KG", UnitCost: f64(3), Supplier: "TEXTIL A", RequiredQty: 120,
		}},
		Consolidated: []model.ConsolidatedRow{{
			Supplier: "TEXTIL A", Material: "COTTON", Unit: "KG", Quantity: 120, UnitCost: f64(3), EstimatedCost: f64(360), Sources: 1,
		}},
		Summary: model.Summary{PoLines: 1, FuzzyHits: 1},
	}
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Hoja1", SheetName("  "))
	assert.Equal(t, "PO_A_B", SheetName("PO_A/B"))
	assert.Equal(t, "(x)", SheetName("[x]"))
	assert.Len(t, []rune(SheetName("PO_CONFECCIONES Y TEXTILES DEL NORTE")), 31)
}

func TestMainWorkbook(t *testing.T) {
	t.Run("without warnings", func(t *testing.T) {
		f, err := MainWorkbook(sampleResult())
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, []string{SheetExtracted, SheetMapping, SheetClientOrder, SheetRequirements, SheetConsolidated, SheetSummary}, f.GetSheetList())

		rows, err := f.GetRows(SheetMapping)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "COINCIDENCIA", rows[0][7])
		assert.Equal(t, "0.923", rows[1][7])

		rows, err = f.GetRows(SheetConsolidated)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"TEXTIL A", "COTTON", "KG", "120", "3", "360"}, rows[1])
	})

	t.Run("with warnings", func(t *testing.T) {
		res := sampleResult()
		res.Warnings = []model.Warning{{Code: model.WarnUnresolved, Source: "pipeline", Message: "x", Count: 2}}
		f, err := MainWorkbook(res)
		require.NoError(t, err)
		defer f.Close()

		assert.Contains(t, f.GetSheetList(), SheetWarnings)
		rows, err := f.GetRows(SheetWarnings)
		require.NoError(t, err)
		assert.Equal(t, []string{model.WarnUnresolved, "pipeline", "x", "2"}, rows[1])
	})
}

func samplePO(supplier string) model.PurchaseOrder {
	return model.PurchaseOrder{
		Number:   "PO-001",
		Supplier: supplier,
		Items:    sampleResult().Consolidated,
		Subtotal: decimal.RequireFromString("360"),
		TaxRate:  decimal.RequireFromString("0.19"),
		Tax:      decimal.RequireFromString("68.4"),
		Total:    decimal.RequireFromString("428.4"),
	}
}

func TestPurchaseOrderWorkbook(t *testing.T) {
	f, err := PurchaseOrderWorkbook(samplePO("TEXTIL A"))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"PO_TEXTIL A"}, f.GetSheetList())
	rows, err := f.GetRows("PO_TEXTIL A")
	require.NoError(t, err)

	last := rows[len(rows)-1]
	assert.Equal(t, "TOTAL", last[0])
	assert.Equal(t, "428.4", last[5])
	assert.Equal(t, "IVA 19%", rows[len(rows)-2][0])
}

func TestPurchaseOrderZip(t *testing.T) {
	var buf bytes.Buffer
	pos := []model.PurchaseOrder{samplePO("Textil Á"), samplePO("TEXTIL A"), samplePO("")}
	pos[2].Number = "PO-003"
	require.NoError(t, PurchaseOrderZip(&buf, pos))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var names []string
	for _, zf := range zr.File {
		names = append(names, zf.Name)
	}
	assert.Equal(t, []string{"PO_TEXTIL_A.xlsx", "PO_TEXTIL_A_2.xlsx", "PO_PO-003.xlsx"}, names)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"PO_Textil Á"}, f.GetSheetList())
}
