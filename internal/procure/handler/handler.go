package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"procure-service/internal/config"
	"procure-service/internal/fileio"
	"procure-service/internal/metrics"
	"procure-service/internal/middleware"
	"procure-service/internal/procure/adapter"
	"procure-service/internal/procure/export"
	"procure-service/internal/procure/loader"
	"procure-service/internal/procure/model"
	"procure-service/internal/procure/service"
)

const (
	formatJSON = "json"
	formatXLSX = "xlsx"
	formatZIP  = "zip"

	// parts beyond this are spooled to disk by mime/multipart
	multipartMemory = 32 << 20
)

// requestError carries the HTTP status chosen for a failed run.
type requestError struct {
	status int
	err    error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(format string, args ...any) error {
	return &requestError{status: http.StatusBadRequest, err: fmt.Errorf(format, args...)}
}

// statusOf maps pipeline and loader errors onto HTTP statuses.
func statusOf(err error) int {
	var re *requestError
	var mbe *http.MaxBytesError
	switch {
	case errors.As(err, &re):
		return re.status
	case errors.As(err, &mbe), errors.Is(err, service.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, fileio.ErrPDFUnreadable), errors.Is(err, adapter.ErrMalformedTable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// Procure handles POST /procure: multipart with bom, po and an optional
// dictionary file. The response is the JSON result, the main workbook or the
// zip of supplier purchase orders, depending on the format field.
func Procure(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.With().Str("rid", middleware.GetRequestID(r)).Logger()

		res, format, err := run(cfg, r)
		if err != nil {
			metrics.RecordFailure("http", time.Since(start))
			status := statusOf(err)
			log.Warn().Err(err).Int("status", status).Msg("procure failed")
			writeError(w, status, err.Error())
			return
		}
		metrics.RecordRun("http", res, time.Since(start))

		for _, wn := range res.Warnings {
			log.Warn().Str("run_id", res.RunID).Str("code", wn.Code).Str("source", wn.Source).
				Int("count", wn.Count).Msg(wn.Message)
		}

		w.Header().Set("X-Run-ID", res.RunID)
		ts := start.Format("20060102_150405")
		switch format {
		case formatXLSX:
			err = writeWorkbook(w, res, "ComprasTextiles_"+ts+".xlsx")
		case formatZIP:
			err = writeZip(w, res, "POs_por_Proveedor_"+ts+".zip")
		default:
			err = writeJSON(w, http.StatusOK, res)
		}
		if err != nil {
			log.Error().Err(err).Str("format", format).Msg("write response")
			return
		}

		log.Info().
			Str("run_id", res.RunID).
			Int("po_lines", res.Summary.PoLines).
			Int("dictionary", res.Summary.DictionaryHits).
			Int("fuzzy", res.Summary.FuzzyHits).
			Int("unresolved", res.Summary.Unresolved).
			Int("suppliers", res.Summary.Suppliers).
			Dur("elapsed", time.Since(start)).
			Msg("procure done")
	}
}

func run(cfg config.Config, r *http.Request) (model.Result, string, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return model.Result{}, "", err
		}
		return model.Result{}, "", badRequest("bad multipart form: %v", err)
	}
	defer r.MultipartForm.RemoveAll()

	format := r.FormValue("format")
	switch format {
	case "":
		format = formatJSON
	case formatJSON, formatXLSX, formatZIP:
	default:
		return model.Result{}, "", badRequest("unknown format %q (json, xlsx, zip)", format)
	}

	opt := options(cfg, r)

	var in service.Input
	var warnings []model.Warning
	err := withFile(r, "bom", true, func(f io.Reader, name string) error {
		var err error
		in.Bom, warnings, err = loader.Bom(f, name, atoi(r.FormValue("bom_header_row"), 1))
		in.Warnings = append(in.Warnings, warnings...)
		return err
	})
	if err != nil {
		return model.Result{}, format, err
	}

	err = withFile(r, "po", true, func(f io.Reader, name string) error {
		var err error
		in.Lines, warnings, err = loader.PurchaseOrder(f, name, atoi(r.FormValue("po_header_row"), 1))
		in.Warnings = append(in.Warnings, warnings...)
		return err
	})
	if err != nil {
		return model.Result{}, format, err
	}

	in.DictionaryEnabled = true
	err = withFile(r, "dictionary", false, func(f io.Reader, name string) error {
		var err error
		in.Dictionary, in.DictionaryEnabled, warnings, err = loader.Dictionary(f, name)
		in.Warnings = append(in.Warnings, warnings...)
		return err
	})
	if err != nil {
		return model.Result{}, format, err
	}

	res, err := service.Run(in, opt)
	return res, format, err
}

// options starts from the configured defaults; form values override them.
func options(cfg config.Config, r *http.Request) model.Options {
	opt := cfg.PipelineOptions()
	opt.Threshold = toFloat(r.FormValue("threshold"), opt.Threshold)
	opt.EnableFuzzy = toBool(r.FormValue("fuzzy"), opt.EnableFuzzy)
	opt.NormalizeMaterials = toBool(r.FormValue("normalize_materials"), opt.NormalizeMaterials)
	opt.NormalizeSuppliers = toBool(r.FormValue("normalize_suppliers"), opt.NormalizeSuppliers)
	opt.TaxRate = toFloat(r.FormValue("tax_rate"), opt.TaxRate)
	if s := r.FormValue("scorer"); s != "" {
		opt.Scorer = s
	}
	return opt
}

func withFile(r *http.Request, field string, required bool, fn func(io.Reader, string) error) error {
	f, h, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) && !required {
		return nil
	}
	if err != nil {
		return badRequest("missing %s: %v", field, err)
	}
	defer func(f multipart.File) { _ = f.Close() }(f)
	return fn(f, h.Filename)
}

func writeWorkbook(w http.ResponseWriter, res model.Result, filename string) error {
	f, err := export.MainWorkbook(res)
	if err != nil {
		return err
	}
	defer f.Close()
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return f.Write(w)
}

func writeZip(w http.ResponseWriter, res model.Result, filename string) error {
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return export.PurchaseOrderZip(w, res.PurchaseOrders)
}
