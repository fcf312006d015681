package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// Browser origins allowed through CORS.
	AllowedOrigins []string

	// Rate cache.
	RedisURL string

	// Task dispatch.
	KafkaBrokers    []string
	KafkaPDFTopic   string
	KafkaEmailTopic string

	// National bank web-service credentials.
	NBSEndpoint  string
	NBSUsername  string
	NBSPassword  string
	NBSLicenceID string
	NBSTimeout   time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("ALLOWED_ORIGINS", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_PDF_TOPIC", "invoice.pdf")
	viper.SetDefault("KAFKA_EMAIL_TOPIC", "invoice.email")
	viper.SetDefault("NBS_ENDPOINT", "")
	viper.SetDefault("NBS_USERNAME", "")
	viper.SetDefault("NBS_PASSWORD", "")
	viper.SetDefault("NBS_LICENCE_ID", "")
	viper.SetDefault("NBS_TIMEOUT", "10s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if origins := viper.GetString("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Exchange-rate caching and fallback are disabled.")
	}

	if brokers := viper.GetString("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if trimmed := strings.TrimSpace(b); trimmed != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, trimmed)
			}
		}
	}
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("Warning: KAFKA_BROKERS not set. PDF and email dispatch are disabled.")
	}
	cfg.KafkaPDFTopic = viper.GetString("KAFKA_PDF_TOPIC")
	cfg.KafkaEmailTopic = viper.GetString("KAFKA_EMAIL_TOPIC")

	cfg.NBSEndpoint = viper.GetString("NBS_ENDPOINT")
	cfg.NBSUsername = viper.GetString("NBS_USERNAME")
	cfg.NBSPassword = viper.GetString("NBS_PASSWORD")
	cfg.NBSLicenceID = viper.GetString("NBS_LICENCE_ID")

	nbsTimeoutStr := viper.GetString("NBS_TIMEOUT")
	nbsTimeout, err := time.ParseDuration(nbsTimeoutStr)
	if err != nil {
		nbsTimeout = 10 * time.Second
		if nbsTimeoutStr != "" {
			log.Printf("Warning: Invalid value for NBS_TIMEOUT ('%s'). Defaulting to %s.\n", nbsTimeoutStr, nbsTimeout.String())
		}
	}
	cfg.NBSTimeout = nbsTimeout

	return cfg, nil
}
