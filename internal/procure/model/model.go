package model

import "github.com/shopspring/decimal"

// BomEntry is one APU/BOM row: a material consumed by a garment.
// Numeric fields are nil when the column is absent or the cell did not parse.
type BomEntry struct {
	GarmentCode string   `json:"garmentCode"`
	GarmentName string   `json:"garmentName"`
	Material    string   `json:"material"`
	Unit        string   `json:"unit"`
	Consumption *float64 `json:"consumption"` // per garment
	UnitCost    *float64 `json:"unitCost"`
	Supplier    string   `json:"supplier"`
	ItemCost    *float64 `json:"itemCost,omitempty"` // Costo/ITEM, informational
}

// Garment is a catalog identity.
type Garment struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CatalogEntry is a distinct (code, name) pair of the BOM; Key is the
// normalized name used for fuzzy search.
type CatalogEntry struct {
	Garment
	Key string `json:"key"`
}

// PoLine is one item of the client's purchase order (OC).
// Only Item and Description are guaranteed.
type PoLine struct {
	Item         int      `json:"item"`
	Description  string   `json:"description"`
	DeliveryDate string   `json:"deliveryDate,omitempty"`
	Quantity     *float64 `json:"quantity"`
	Unit         string   `json:"unit,omitempty"`
	UnitPrice    *float64 `json:"unitPrice,omitempty"`
	TaxPct       *float64 `json:"taxPct,omitempty"`
	Subtotal     *float64 `json:"subtotal,omitempty"`
}

// DictionaryEntry maps a raw OC description to a garment.
type DictionaryEntry struct {
	Description string `json:"description"`
	Code        string `json:"code"`
	Name        string `json:"name"`
}

// Suggestion is the outcome of the fuzzy pass for one line.
// Garment is set only when Score cleared the threshold; Closest is the best
// candidate regardless, for operator review. Score is nil when nothing was
// compared (empty catalog, fuzzy disabled).
type Suggestion struct {
	Garment *Garment `json:"garment"`
	Closest *Garment `json:"closest,omitempty"`
	Score   *float64 `json:"score"`
}

// Method tells how the final identity of a line was chosen.
type Method string

const (
	MethodDictionary Method = "dictionary"
	MethodFuzzy      Method = "fuzzy"
	MethodNone       Method = "none"
)

// ResolvedLine is a PoLine plus its dictionary, fuzzy and final identities.
type ResolvedLine struct {
	PoLine
	Exact     *Garment `json:"exact"`
	Suggested *Garment `json:"suggested"`
	Closest   *Garment `json:"closest,omitempty"`
	Score     *float64 `json:"score"`
	Final     *Garment `json:"final"`
	Method    Method   `json:"method"`
}

// RequirementRow is one resolved line joined with one BOM material.
// ParseFailed marks rows where quantity or consumption was coerced to zero.
type RequirementRow struct {
	Item        int      `json:"item"`
	Description string   `json:"description"`
	GarmentCode string   `json:"garmentCode"`
	GarmentName string   `json:"garmentName"`
	OrderedQty  float64  `json:"orderedQty"`
	Consumption float64  `json:"consumption"`
	Material    string   `json:"material"`
	Unit        string   `json:"unit"`
	UnitCost    *float64 `json:"unitCost"`
	Supplier    string   `json:"supplier"`
	RequiredQty float64  `json:"requiredQty"`
	ParseFailed bool     `json:"parseFailed,omitempty"`
}

// ConsolidatedRow is the requirement summed per (supplier, material, unit).
// UnitCost is the max cost observed; nil when no contributing row had one.
type ConsolidatedRow struct {
	Supplier      string   `json:"supplier"`
	Material      string   `json:"material"`
	Unit          string   `json:"unit"`
	Quantity      float64  `json:"quantity"`
	UnitCost      *float64 `json:"unitCost"`
	EstimatedCost *float64 `json:"estimatedCost"`
	Sources       int      `json:"sources"`
}

// PurchaseOrder is the document issued to one supplier.
type PurchaseOrder struct {
	Number   string            `json:"number"`
	Supplier string            `json:"supplier"`
	Items    []ConsolidatedRow `json:"items"`
	Subtotal decimal.Decimal   `json:"subtotal"`
	TaxRate  decimal.Decimal   `json:"taxRate"`
	Tax      decimal.Decimal   `json:"tax"`
	Total    decimal.Decimal   `json:"total"`
}

// Warning codes surfaced to the operator. None of them aborts a run.
const (
	WarnMissingSchema      = "missing_schema"
	WarnUnparseableField   = "unparseable_field"
	WarnUnresolved         = "unresolved"
	WarnNoBomMaterials     = "no_bom_materials"
	WarnDictionaryDisabled = "dictionary_disabled"
	WarnFuzzyDisabled      = "fuzzy_disabled"
	WarnEmptyCatalog       = "empty_catalog"
	WarnEmptyOrder         = "empty_order"
)

type Warning struct {
	Code    string `json:"code"`
	Source  string `json:"source,omitempty"` // bom | po | dictionary | pipeline
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

type Options struct {
	Threshold          float64 `json:"threshold"`          // fuzzy acceptance (0..1)
	EnableFuzzy        bool    `json:"enableFuzzy"`        // off -> null matcher
	Scorer             string  `json:"scorer"`             // token_sort | damerau
	NormalizeMaterials bool    `json:"normalizeMaterials"` // fold material spellings before grouping
	NormalizeSuppliers bool    `json:"normalizeSuppliers"` // fold supplier spellings before grouping
	TaxRate            float64 `json:"taxRate"`
	Workers            int     `json:"workers"`
	MaxPoLines         int     `json:"maxPoLines"`
	MaxCatalog         int     `json:"maxCatalog"`
}

type Summary struct {
	PoLines          int `json:"poLines"`
	BomRows          int `json:"bomRows"`
	CatalogGarments  int `json:"catalogGarments"`
	DictionaryHits   int `json:"dictionaryHits"`
	FuzzyHits        int `json:"fuzzyHits"`
	Unresolved       int `json:"unresolved"`
	WithoutMaterials int `json:"withoutMaterials"`
	RequirementRows  int `json:"requirementRows"`
	ParseFailures    int `json:"parseFailures"`
	Consolidated     int `json:"consolidated"`
	Suppliers        int `json:"suppliers"`
}

type Result struct {
	RunID          string            `json:"runId"`
	Lines          []PoLine          `json:"lines"`
	Resolved       []ResolvedLine    `json:"resolved"`
	Requirements   []RequirementRow  `json:"requirements"`
	Consolidated   []ConsolidatedRow `json:"consolidated"`
	PurchaseOrders []PurchaseOrder   `json:"purchaseOrders"`
	Warnings       []Warning         `json:"warnings"`
	Summary        Summary           `json:"summary"`
	Opts           Options           `json:"opts"`
}
