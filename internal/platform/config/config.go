package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL         string
	Port                string
	IsProduction        bool
	EnableDBCheck       bool
	JWTSecret           string
	StorageDriver       string
	RateLimit           string
	CORSAllowedOrigins  []string
	SalaryJobInterval   time.Duration
	NotificationWorkers int
	NotificationBuffer  int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("SALARY_JOB_INTERVAL", "24h")
	v.SetDefault("NOTIFICATION_WORKERS", 2)
	v.SetDefault("NOTIFICATION_BUFFER", 256)

	// Actual environment variables override .env values and defaults.
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		StorageDriver:       strings.ToLower(v.GetString("STORAGE_DRIVER")),
		RateLimit:           v.GetString("RATE_LIMIT"),
		NotificationWorkers: v.GetInt("NOTIFICATION_WORKERS"),
		NotificationBuffer:  v.GetInt("NOTIFICATION_BUFFER"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageDriverMemory:
	default:
		log.Printf("Warning: unknown STORAGE_DRIVER %q. Defaulting to %s.\n", cfg.StorageDriver, StorageDriverPostgres)
		cfg.StorageDriver = StorageDriverPostgres
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	intervalStr := v.GetString("SALARY_JOB_INTERVAL")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		interval = 24 * time.Hour
		log.Printf("Warning: Invalid value for SALARY_JOB_INTERVAL ('%s'). Defaulting to %s.\n", intervalStr, interval)
	}
	cfg.SalaryJobInterval = interval

	if cfg.NotificationWorkers <= 0 {
		cfg.NotificationWorkers = 1
	}
	if cfg.NotificationBuffer <= 0 {
		cfg.NotificationBuffer = 1
	}

	return cfg, nil
}
