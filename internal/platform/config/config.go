package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Rate limiting, in ulule/limiter formatted notation (e.g. "100-M").
	RateLimit string

	// Redis backs the create-loan idempotency cache; empty disables it.
	RedisAddr string
	RedisDB   int

	// Spreadsheet ingestion sources.
	CustomerDataPath string
	LoanDataPath     string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CUSTOMER_DATA_PATH", "customer_data.xlsx")
	viper.SetDefault("LOAN_DATA_PATH", "loan_data.xlsx")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      viper.GetString("PGSQL_URL"),
		Port:             viper.GetString("PORT"),
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		RateLimit:        viper.GetString("RATE_LIMIT"),
		RedisAddr:        viper.GetString("REDIS_ADDR"),
		RedisDB:          viper.GetInt("REDIS_DB"),
		CustomerDataPath: viper.GetString("CUSTOMER_DATA_PATH"),
		LoanDataPath:     viper.GetString("LOAN_DATA_PATH"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Create-loan idempotency cache disabled.")
	}

	return cfg, nil
}
