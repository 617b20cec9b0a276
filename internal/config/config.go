package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"procure-service/internal/procure/model"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string

	// pipeline defaults; a request may override the first few
	FuzzyThreshold     float64
	FuzzyEnabled       bool
	FuzzyScorer        string
	NormalizeMaterials bool
	NormalizeSuppliers bool
	TaxRate            float64
	MatchWorkers       int
	MaxPoLines         int
	MaxCatalog         int
}

// Load reads the environment; a .env file in the working directory, if any,
// fills the variables that are not already set.
func Load() Config {
	_ = godotenv.Load()

	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         getint("PORT", 8082),
		AllowOrigins: origins,
		LogLevel:     getenv("LOG_LEVEL", "info"),
		MaxUploadMB:  getint("MAX_UPLOAD_MB", 64),
		LogFile:      getenv("LOG_FILE", "logs/procure-service.log"),

		FuzzyThreshold:     getfloat("FUZZY_THRESHOLD", 0.65),
		FuzzyEnabled:       getbool("FUZZY_ENABLED", true),
		FuzzyScorer:        getenv("FUZZY_SCORER", "token_sort"),
		NormalizeMaterials: getbool("NORMALIZE_MATERIALS", true),
		NormalizeSuppliers: getbool("NORMALIZE_SUPPLIERS", true),
		TaxRate:            getfloat("TAX_RATE", 0.19),
		MatchWorkers:       getint("MATCH_WORKERS", runtime.NumCPU()),
		MaxPoLines:         getint("MAX_PO_LINES", 10000),
		MaxCatalog:         getint("MAX_CATALOG", 50000),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// PipelineOptions are the run defaults before per-request overrides.
func (c Config) PipelineOptions() model.Options {
	return model.Options{
		Threshold:          c.FuzzyThreshold,
		EnableFuzzy:        c.FuzzyEnabled,
		Scorer:             c.FuzzyScorer,
		NormalizeMaterials: c.NormalizeMaterials,
		NormalizeSuppliers: c.NormalizeSuppliers,
		TaxRate:            c.TaxRate,
		Workers:            c.MatchWorkers,
		MaxPoLines:         c.MaxPoLines,
		MaxCatalog:         c.MaxCatalog,
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	n, err := strconv.Atoi(getenv(k, ""))
	if err != nil {
		return def
	}
	return n
}

func getfloat(k string, def float64) float64 {
	f, err := strconv.ParseFloat(getenv(k, ""), 64)
	if err != nil {
		return def
	}
	return f
}

func getbool(k string, def bool) bool {
	b, err := strconv.ParseBool(getenv(k, ""))
	if err != nil {
		return def
	}
	return b
}
