package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Dotenv string `mapstructure:"dotenv"`
	Server struct {
		HTTPPort       string        `mapstructure:"HTTPPort"`
		Timeout        time.Duration `mapstructure:"HTTPTimeout"`
		AllowedOrigins []string      `mapstructure:"allowedOrigins"`
	} `mapstructure:"server"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Catalog struct {
		// Source is either "seed" (embedded YAML) or "postgres".
		Source            string  `mapstructure:"source"`
		Concurrency       int     `mapstructure:"concurrency"`
		RequestsPerSecond float64 `mapstructure:"requestsPerSecond"`
		Burst             int     `mapstructure:"burst"`
	} `mapstructure:"catalog"`
	GenAI struct {
		APIKey         string        `mapstructure:"apiKey"`
		Model          string        `mapstructure:"model"`
		EmbeddingModel string        `mapstructure:"embeddingModel"`
		Timeout        time.Duration `mapstructure:"timeout"`
	} `mapstructure:"genai"`
	Recommendation struct {
		Timeout           time.Duration `mapstructure:"timeout"`
		CacheTTL          time.Duration `mapstructure:"cacheTTL"`
		RequestsPerMinute int           `mapstructure:"requestsPerMinute"`
	} `mapstructure:"recommendation"`
	Breaker struct {
		MaxRequests         uint32        `mapstructure:"maxRequests"`
		Interval            time.Duration `mapstructure:"interval"`
		Timeout             time.Duration `mapstructure:"timeout"`
		ConsecutiveFailures uint32        `mapstructure:"consecutiveFailures"`
	} `mapstructure:"breaker"`
	Auth struct {
		JWTSecret         string        `mapstructure:"jwtSecret"`
		AdminUser         string        `mapstructure:"adminUser"`
		AdminPasswordHash string        `mapstructure:"adminPasswordHash"`
		TokenTTL          time.Duration `mapstructure:"tokenTTL"`
	} `mapstructure:"auth"`
	Observability struct {
		ServiceName string `mapstructure:"serviceName"`
		MetricsPort string `mapstructure:"metricsPort"`
	} `mapstructure:"observability"`
}

// insecureJWTSecret is the placeholder from sample configs.
const insecureJWTSecret = "change-me"

// envBindings maps config keys onto the environment variables used by deployments.
var envBindings = map[string]string{
	"genai.apiKey":                   "GOOGLE_GEMINI_API_KEY",
	"repositories.postgres.host":     "POSTGRES_HOST",
	"repositories.postgres.port":     "POSTGRES_PORT",
	"repositories.postgres.username": "POSTGRES_USER",
	"repositories.postgres.password": "POSTGRES_PASSWORD",
	"repositories.postgres.db":       "POSTGRES_DB",
	"auth.jwtSecret":                 "JWT_SECRET_KEY",
	"auth.adminPasswordHash":         "ADMIN_PASSWORD_HASH",
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err = config.Validate(); err != nil {
		return Config{}, err
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Catalog.Source {
	case "seed", "postgres":
	default:
		return fmt.Errorf("invalid catalog.source %q: want seed or postgres", c.Catalog.Source)
	}
	if c.Catalog.Concurrency < 1 {
		return fmt.Errorf("catalog.concurrency must be at least 1, got %d", c.Catalog.Concurrency)
	}
	if c.Server.HTTPPort == "" {
		return fmt.Errorf("server.HTTPPort is required")
	}
	if c.Auth.AdminPasswordHash != "" {
		switch strings.TrimSpace(c.Auth.JWTSecret) {
		case "", insecureJWTSecret:
			return fmt.Errorf("auth.jwtSecret must be set to a private value when an admin password is configured")
		}
	}
	return nil
}
