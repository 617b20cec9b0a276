package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"procure-service/internal/procure/model"
)

var (
	ErrInputTooLarge    = errors.New("input exceeds configured limits")
	ErrInvalidThreshold = errors.New("fuzzy threshold must be within [0, 1]")
)

// Input is what the loaders hand over: canonical rows plus the warnings
// raised while mapping the source tables.
type Input struct {
	Bom               []model.BomEntry
	Lines             []model.PoLine
	Dictionary        []model.DictionaryEntry
	DictionaryEnabled bool
	Warnings          []model.Warning
}

// Run executes the whole pipeline:
// catalog -> dictionary/fuzzy -> reconcile -> expand -> consolidate -> POs.
// Data quality problems never fail a run, they end up in Result.Warnings.
func Run(in Input, opt model.Options) (model.Result, error) {
	if opt.Threshold < 0 || opt.Threshold > 1 {
		return model.Result{}, fmt.Errorf("%w: %v", ErrInvalidThreshold, opt.Threshold)
	}
	if opt.MaxPoLines > 0 && len(in.Lines) > opt.MaxPoLines {
		return model.Result{}, fmt.Errorf("%w: %d order lines (max %d)", ErrInputTooLarge, len(in.Lines), opt.MaxPoLines)
	}

	catalog := BuildCatalog(in.Bom)
	if opt.MaxCatalog > 0 && catalog.Len() > opt.MaxCatalog {
		return model.Result{}, fmt.Errorf("%w: %d catalog garments (max %d)", ErrInputTooLarge, catalog.Len(), opt.MaxCatalog)
	}

	warnings := append([]model.Warning(nil), in.Warnings...)
	if len(in.Lines) == 0 {
		warnings = append(warnings, model.Warning{Code: model.WarnEmptyOrder, Source: "po",
			Message: "no items could be extracted from the purchase order"})
	}

	dict := NewDictionary(in.Dictionary, in.DictionaryEnabled)

	var matcher Matcher = NoopMatcher{}
	switch {
	case !opt.EnableFuzzy:
		warnings = append(warnings, model.Warning{Code: model.WarnFuzzyDisabled, Source: "pipeline",
			Message: "fuzzy matching is disabled, only dictionary matches are used"})
	case len(catalog.Names()) == 0:
		warnings = append(warnings, model.Warning{Code: model.WarnEmptyCatalog, Source: "bom",
			Message: "BOM has no named garments, fuzzy matching skipped"})
	default:
		matcher = NewCatalogMatcher(catalog, opt.Threshold, ScorerByName(opt.Scorer))
	}

	resolved := Reconcile(in.Lines, dict, matcher, opt.Workers)
	exp := Expand(resolved, in.Bom)
	consolidated := Consolidate(exp.Rows, ConsolidateOptions{
		NormalizeSuppliers: opt.NormalizeSuppliers,
		NormalizeMaterials: opt.NormalizeMaterials,
	})
	pos := PurchaseOrders(consolidated, opt.TaxRate)

	sum := model.Summary{
		PoLines:          len(in.Lines),
		BomRows:          len(in.Bom),
		CatalogGarments:  catalog.Len(),
		Unresolved:       exp.Unresolved,
		WithoutMaterials: exp.WithoutMaterials,
		RequirementRows:  len(exp.Rows),
		ParseFailures:    exp.ParseFailures,
		Consolidated:     len(consolidated),
		Suppliers:        len(pos),
	}
	for _, rl := range resolved {
		switch rl.Method {
		case model.MethodDictionary:
			sum.DictionaryHits++
		case model.MethodFuzzy:
			sum.FuzzyHits++
		}
	}

	if exp.Unresolved > 0 {
		warnings = append(warnings, model.Warning{Code: model.WarnUnresolved, Source: "pipeline", Count: exp.Unresolved,
			Message: "order lines without dictionary or fuzzy match were left out of the requirements"})
	}
	if exp.WithoutMaterials > 0 {
		warnings = append(warnings, model.Warning{Code: model.WarnNoBomMaterials, Source: "pipeline", Count: exp.WithoutMaterials,
			Message: "matched garments have no materials in the BOM"})
	}
	if exp.ParseFailures > 0 {
		warnings = append(warnings, model.Warning{Code: model.WarnUnparseableField, Source: "pipeline", Count: exp.ParseFailures,
			Message: "requirement rows computed with a missing quantity or consumption (taken as 0)"})
	}

	return model.Result{
		RunID:          uuid.NewString(),
		Lines:          in.Lines,
		Resolved:       resolved,
		Requirements:   exp.Rows,
		Consolidated:   consolidated,
		PurchaseOrders: pos,
		Warnings:       warnings,
		Summary:        sum,
		Opts:           opt,
	}, nil
}
