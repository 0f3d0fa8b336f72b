package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

type Config struct {
	Address            string        `env:"RUN_ADDRESS" envDefault:"localhost:8080"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"INFO"`
	DatabaseConnection string        `env:"DATABASE_URI"`
	RedisURL           string        `env:"REDIS_URL"`
	CacheTTL           time.Duration `env:"EXTRACTION_CACHE_TTL" envDefault:"0"`
	OpenAIKey          string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL      string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
	OpenAIModel        string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	MistralKey         string        `env:"MISTRAL_API_KEY"`
	MistralBaseURL     string        `env:"MISTRAL_BASE_URL" envDefault:"https://api.mistral.ai"`
	MistralOCRModel    string        `env:"MISTRAL_OCR_MODEL" envDefault:"mistral-ocr-latest"`
	AITimeout          time.Duration `env:"AI_REQUEST_TIMEOUT" envDefault:"90s"`
	AuthEnabled        bool          `env:"AUTH_ENABLED" envDefault:"false"`
	JWTSecret          string        `env:"JWT_SECRET" envDefault:"dontexposethis"`
	JWTTTL             time.Duration `env:"JWT_TTL" envDefault:"24h"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	address := flag.String("a", cfg.Address, "{Host:port} for server")
	loglevel := flag.String("l", cfg.LogLevel, "Log level for server")
	databaseConnection := flag.String("d", cfg.DatabaseConnection, "Database connection string")
	redisURL := flag.String("r", cfg.RedisURL, "Redis URL for the extraction cache (empty disables caching)")
	aiTimeout := flag.Duration("t", cfg.AITimeout, "Timeout for hosted model calls")

	flag.Parse()

	cfg.Address = *address
	cfg.LogLevel = *loglevel
	cfg.DatabaseConnection = *databaseConnection
	cfg.RedisURL = *redisURL
	cfg.AITimeout = *aiTimeout

	if cfg.AuthEnabled && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("ENV JWT_SECRET must be set when AUTH_ENABLED=true")
	}

	return cfg, nil
}
