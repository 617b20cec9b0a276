package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"procure-service/internal/config"
	"procure-service/internal/metrics"
	"procure-service/internal/procure/export"
	"procure-service/internal/procure/loader"
	"procure-service/internal/procure/model"
	"procure-service/internal/procure/service"
)

type cliOptions struct {
	bomPath      string
	poPath       string
	dictPath     string
	outDir       string
	bomHeaderRow int
	poHeaderRow  int
	pipeline     model.Options
}

func main() {
	cfg := config.Load()
	cfg.LogFile = "" // console only
	logger := config.SetupLogger(cfg)

	opts, err := parseFlags(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("procure")
	}
	if err := run(opts, logger, os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("procure")
	}
}

func parseFlags(cfg config.Config) (cliOptions, error) {
	opts := cliOptions{pipeline: cfg.PipelineOptions()}
	noFuzzy := false
	flag.StringVar(&opts.bomPath, "bom", "", "APU/BOM workbook or CSV")
	flag.StringVar(&opts.poPath, "po", "", "Client purchase order (PDF, XLSX, XLS or CSV)")
	flag.StringVar(&opts.dictPath, "dict", "", "Optional synonym dictionary (DESCRIPCION_OC, CODIGO_PRENDA, PRENDA)")
	flag.StringVar(&opts.outDir, "out-dir", ".", "Directory for the generated workbook and zip")
	flag.IntVar(&opts.bomHeaderRow, "bom-header-row", 1, "1-based header row of the BOM")
	flag.IntVar(&opts.poHeaderRow, "po-header-row", 1, "1-based header row of a tabular purchase order")
	flag.Float64Var(&opts.pipeline.Threshold, "threshold", opts.pipeline.Threshold, "Fuzzy acceptance threshold (0..1)")
	flag.Float64Var(&opts.pipeline.TaxRate, "tax-rate", opts.pipeline.TaxRate, "Tax rate applied to supplier purchase orders")
	flag.StringVar(&opts.pipeline.Scorer, "scorer", opts.pipeline.Scorer, "Fuzzy scorer: token_sort or damerau")
	flag.BoolVar(&opts.pipeline.NormalizeMaterials, "normalize-materials", opts.pipeline.NormalizeMaterials, "Fold material spellings before consolidating")
	flag.BoolVar(&opts.pipeline.NormalizeSuppliers, "normalize-suppliers", opts.pipeline.NormalizeSuppliers, "Fold supplier spellings before consolidating")
	flag.BoolVar(&noFuzzy, "no-fuzzy", false, "Resolve garments through the dictionary only")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --bom FILE --po FILE [options]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.bomPath = strings.TrimSpace(opts.bomPath)
	opts.poPath = strings.TrimSpace(opts.poPath)
	opts.dictPath = strings.TrimSpace(opts.dictPath)
	if noFuzzy {
		opts.pipeline.EnableFuzzy = false
	}

	if opts.bomPath == "" {
		flag.Usage()
		return opts, errors.New("missing required --bom file")
	}
	if opts.poPath == "" {
		flag.Usage()
		return opts, errors.New("missing required --po file")
	}
	return opts, nil
}

func run(opts cliOptions, logger zerolog.Logger, out io.Writer) error {
	start := time.Now()
	res, err := procure(opts)
	if err != nil {
		metrics.RecordFailure("cli", time.Since(start))
		return err
	}
	metrics.RecordRun("cli", res, time.Since(start))

	for _, w := range res.Warnings {
		logger.Warn().Str("code", w.Code).Str("source", w.Source).Int("count", w.Count).Msg(w.Message)
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return err
	}
	ts := start.Format("20060102_150405")
	book := filepath.Join(opts.outDir, "ComprasTextiles_"+ts+".xlsx")
	if err := saveWorkbook(book, res); err != nil {
		return fmt.Errorf("write %s: %w", book, err)
	}
	fmt.Fprintln(out, book)

	if len(res.PurchaseOrders) > 0 {
		archive := filepath.Join(opts.outDir, "POs_por_Proveedor_"+ts+".zip")
		if err := saveZip(archive, res.PurchaseOrders); err != nil {
			return fmt.Errorf("write %s: %w", archive, err)
		}
		fmt.Fprintln(out, archive)
	}

	s := res.Summary
	fmt.Fprintf(out, "lines=%d dictionary=%d fuzzy=%d unresolved=%d without_bom=%d materials=%d suppliers=%d\n",
		s.PoLines, s.DictionaryHits, s.FuzzyHits, s.Unresolved, s.WithoutMaterials, s.Consolidated, s.Suppliers)
	return nil
}

func procure(opts cliOptions) (model.Result, error) {
	var in service.Input
	in.DictionaryEnabled = true

	err := withFile(opts.bomPath, func(f io.Reader) error {
		var warnings []model.Warning
		var err error
		in.Bom, warnings, err = loader.Bom(f, opts.bomPath, opts.bomHeaderRow)
		in.Warnings = append(in.Warnings, warnings...)
		return err
	})
	if err != nil {
		return model.Result{}, err
	}

	err = withFile(opts.poPath, func(f io.Reader) error {
		var warnings []model.Warning
		var err error
		in.Lines, warnings, err = loader.PurchaseOrder(f, opts.poPath, opts.poHeaderRow)
		in.Warnings = append(in.Warnings, warnings...)
		return err
	})
	if err != nil {
		return model.Result{}, err
	}

	if opts.dictPath != "" {
		err = withFile(opts.dictPath, func(f io.Reader) error {
			var warnings []model.Warning
			var err error
			in.Dictionary, in.DictionaryEnabled, warnings, err = loader.Dictionary(f, opts.dictPath)
			in.Warnings = append(in.Warnings, warnings...)
			return err
		})
		if err != nil {
			return model.Result{}, err
		}
	}

	return service.Run(in, opts.pipeline)
}

func withFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f)
}

func saveWorkbook(path string, res model.Result) error {
	f, err := export.MainWorkbook(res)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func saveZip(path string, pos []model.PurchaseOrder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.PurchaseOrderZip(f, pos); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
