package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Knowledge-base source kinds.
const (
	SourceCSV      = "csv"
	SourceXLSX     = "xlsx"
	SourcePostgres = "postgres"
)

type Config struct {
	Port            string
	GinMode         string
	DatabaseURL     string
	EnableDB        bool
	KBSource        string
	DatasetDir      string
	DatasetWorkbook string
	LogLevel        string
	LogFormat       string
	ServiceName     string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "release"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		EnableDB:        strings.EqualFold(getEnv("ENABLE_DB", "false"), "true"),
		KBSource:        strings.ToLower(getEnv("KB_SOURCE", SourceCSV)),
		DatasetDir:      getEnv("DATASET_DIR", "dataset"),
		DatasetWorkbook: getEnv("DATASET_WORKBOOK", "dataset/knowledge.xlsx"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		ServiceName:     getEnv("SERVICE_NAME", "symptom-predictor"),
	}

	switch cfg.KBSource {
	case SourceCSV, SourceXLSX, SourcePostgres:
	default:
		return nil, fmt.Errorf("unknown KB_SOURCE %q (want csv, xlsx or postgres)", cfg.KBSource)
	}

	if cfg.NeedsDB() && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true or KB_SOURCE=postgres")
	}

	return cfg, nil
}

// NeedsDB reports whether a Postgres pool must be opened at startup.
func (c *Config) NeedsDB() bool {
	return c.EnableDB || c.KBSource == SourcePostgres
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
