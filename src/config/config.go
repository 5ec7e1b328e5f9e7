package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port               string
	DatabasePath       string
	LogLevel           string
	RateTablePath      string
	MaxUploadSizeBytes int64

	// Partial-refund policy: percentage of a payable obligation retained by
	// the state budget; the remainder is refundable to the taxpayer.
	// Set to 0 to disable the split.
	RefundSplitStatePercent int

	// Default tax year used when a record context does not carry one.
	DefaultTaxYear int
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	maxUploadSizeBytesStr := getEnv("MAX_UPLOAD_SIZE_BYTES", "10485760")
	maxUploadSizeBytes, err := strconv.ParseInt(maxUploadSizeBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_UPLOAD_SIZE_BYTES format '%s'. Using default 10MB. Error: %v", maxUploadSizeBytesStr, err)
		maxUploadSizeBytes = 10 * 1024 * 1024
	}

	splitPercent := getEnvAsInt("REFUND_SPLIT_STATE_PERCENT", 20)
	if splitPercent < 0 || splitPercent > 100 {
		log.Printf("WARNING: REFUND_SPLIT_STATE_PERCENT %d out of range [0,100], using default 20", splitPercent)
		splitPercent = 20
	}

	Cfg = &AppConfig{
		Port:               getEnv("PORT", "8080"),
		DatabasePath:       getEnv("DATABASE_PATH", "./edvhesabat.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		RateTablePath:      getEnv("RATE_TABLE_PATH", "data/edv_rates.json"),
		MaxUploadSizeBytes: maxUploadSizeBytes,

		RefundSplitStatePercent: splitPercent,
		DefaultTaxYear:          getEnvAsInt("DEFAULT_TAX_YEAR", 2026),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, RateTable=%s, RefundSplit=%d%%",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.RateTablePath, Cfg.RefundSplitStatePercent)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Integer value for %s not set or empty, using default: %d", key, fallback)
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}
