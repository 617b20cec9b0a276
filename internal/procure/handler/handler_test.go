package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"procure-service/internal/config"
	"procure-service/internal/procure/export"
	"procure-service/internal/procure/model"
)

const (
	bomCSV = "CODIGO_PRENDA;PRENDA;Descripción;Unidad;Cantidad Total;P.U;Proveedor\n" +
		"G1;SHIRT;Cotton;KG;1,2;3;Textil A\n" +
		"G2;POLO;Piqué;M;1,5;10;Textil B\n"
	poCSV   = "ITEM,DESCRIPCION,CANTIDAD,UM\n1,shirt,100,UN\n2,Camisa Polo MC,10,UN\n3,Botas de seguridad,4,PAR\n"
	dictCSV = "DESCRIPCION_OC,CODIGO_PRENDA,PRENDA\nCamisa Polo MC,G2,POLO\n"
)

func testConfig() config.Config {
	return config.Config{
		FuzzyThreshold:     0.65,
		FuzzyEnabled:       true,
		FuzzyScorer:        "token_sort",
		NormalizeMaterials: true,
		NormalizeSuppliers: true,
		TaxRate:            0.19,
		MatchWorkers:       2,
		MaxPoLines:         100,
		MaxCatalog:         100,
	}
}

type part struct{ field, filename, body string }

func newRequest(t *testing.T, parts []part, values map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		fw, err := mw.CreateFormFile(p.field, p.filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(p.body))
		require.NoError(t, err)
	}
	for k, v := range values {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/procure", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(cfg config.Config, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	Procure(cfg, zerolog.Nop()).ServeHTTP(rec, req)
	return rec
}

func allParts() []part {
	return []part{
		{"bom", "apu.csv", bomCSV},
		{"po", "oc.csv", poCSV},
		{"dictionary", "dict.csv", dictCSV},
	}
}

func TestProcure_JSON(t *testing.T) {
	rec := serve(testConfig(), newRequest(t, allParts(), nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Run-ID"))

	var res model.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	require.Len(t, res.Resolved, 3)
	assert.Equal(t, model.MethodFuzzy, res.Resolved[0].Method)
	assert.Equal(t, model.MethodDictionary, res.Resolved[1].Method)
	assert.Equal(t, model.MethodNone, res.Resolved[2].Method)

	assert.Equal(t, 1, res.Summary.DictionaryHits)
	assert.Equal(t, 1, res.Summary.FuzzyHits)
	assert.Equal(t, 1, res.Summary.Unresolved)

	require.Len(t, res.PurchaseOrders, 2)
	a, b := res.PurchaseOrders[0], res.PurchaseOrders[1]
	assert.Equal(t, "TEXTIL A", a.Supplier)
	assert.True(t, a.Total.Equal(decimal.RequireFromString("428.4")), a.Total.String())
	assert.Equal(t, "TEXTIL B", b.Supplier)
	assert.True(t, b.Total.Equal(decimal.RequireFromString("178.5")), b.Total.String())
}

func TestProcure_Overrides(t *testing.T) {
	rec := serve(testConfig(), newRequest(t, allParts(), map[string]string{
		"fuzzy":    "false",
		"tax_rate": "0",
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res model.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Opts.EnableFuzzy)
	assert.Equal(t, 0, res.Summary.FuzzyHits)
	require.Len(t, res.PurchaseOrders, 1)
	assert.True(t, res.PurchaseOrders[0].Total.Equal(decimal.RequireFromString("150")))
}

func TestProcure_Workbook(t *testing.T) {
	rec := serve(testConfig(), newRequest(t, allParts(), map[string]string{"format": "xlsx"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "ComprasTextiles_")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), export.SheetConsolidated)
	assert.Contains(t, f.GetSheetList(), export.SheetWarnings)
}

func TestProcure_Zip(t *testing.T) {
	rec := serve(testConfig(), newRequest(t, allParts(), map[string]string{"format": "zip"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "PO_TEXTIL_A.xlsx", zr.File[0].Name)
}

func TestProcure_Errors(t *testing.T) {
	tests := []struct {
		name   string
		cfg    func(*config.Config)
		parts  []part
		values map[string]string
		status int
	}{
		{
			name:   "missing bom",
			parts:  []part{{"po", "oc.csv", poCSV}},
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown format",
			parts:  allParts(),
			values: map[string]string{"format": "pdf"},
			status: http.StatusBadRequest,
		},
		{
			name:   "threshold out of range",
			parts:  allParts(),
			values: map[string]string{"threshold": "1.5"},
			status: http.StatusBadRequest,
		},
		{
			name:   "unreadable pdf",
			parts:  []part{{"bom", "apu.csv", bomCSV}, {"po", "oc.pdf", "%PDF-broken"}},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "too many lines",
			cfg:    func(c *config.Config) { c.MaxPoLines = 1 },
			parts:  allParts(),
			status: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			if tc.cfg != nil {
				tc.cfg(&cfg)
			}
			rec := serve(cfg, newRequest(t, tc.parts, tc.values))
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}
