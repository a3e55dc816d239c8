package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	S3       S3Config
	Log      LogConfig
	CORS     CORSConfig
	Generate GenerateConfig
	Email    EmailConfig
	Metrics  MetricsConfig
}

// EmailConfig holds delivery email settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// GenerateConfig holds document generation settings.
type GenerateConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	MaxClients  int `mapstructure:"max_clients"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds object storage settings for templates and outputs.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the DOCGEN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docgen")
	v.SetDefault("db.password", "docgen")
	v.SetDefault("db.name", "docgen")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docgen-storage")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 20)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Generation defaults
	v.SetDefault("generate.concurrency", 4)
	v.SetDefault("generate.max_clients", 500)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@docgen.local")
	v.SetDefault("email.from_name", "DocGen")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "DOCGEN_SERVER_PORT",
		"server.read_timeout":   "DOCGEN_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "DOCGEN_SERVER_WRITE_TIMEOUT",
		"server.environment":    "DOCGEN_SERVER_ENVIRONMENT",
		"db.host":               "DOCGEN_DB_HOST",
		"db.port":               "DOCGEN_DB_PORT",
		"db.user":               "DOCGEN_DB_USER",
		"db.password":           "DOCGEN_DB_PASSWORD",
		"db.name":               "DOCGEN_DB_NAME",
		"db.sslmode":            "DOCGEN_DB_SSLMODE",
		"db.max_open":           "DOCGEN_DB_MAX_OPEN",
		"db.max_idle":           "DOCGEN_DB_MAX_IDLE",
		"s3.region":             "DOCGEN_S3_REGION",
		"s3.bucket":             "DOCGEN_S3_BUCKET",
		"s3.endpoint":           "DOCGEN_S3_ENDPOINT",
		"s3.access_key":         "DOCGEN_S3_ACCESS_KEY",
		"s3.secret_key":         "DOCGEN_S3_SECRET_KEY",
		"s3.max_file_size_mb":   "DOCGEN_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":     "DOCGEN_S3_PRESIGN_EXPIRY",
		"log.level":             "DOCGEN_LOG_LEVEL",
		"log.format":            "DOCGEN_LOG_FORMAT",
		"cors.allowed_origins":  "DOCGEN_CORS_ALLOWED_ORIGINS",
		"generate.concurrency":  "DOCGEN_GENERATE_CONCURRENCY",
		"generate.max_clients":  "DOCGEN_GENERATE_MAX_CLIENTS",
		"email.provider":        "DOCGEN_EMAIL_PROVIDER",
		"email.region":          "DOCGEN_EMAIL_REGION",
		"email.from_address":    "DOCGEN_EMAIL_FROM_ADDRESS",
		"email.from_name":       "DOCGEN_EMAIL_FROM_NAME",
		"metrics.enabled":       "DOCGEN_METRICS_ENABLED",
		"metrics.path":          "DOCGEN_METRICS_PATH",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Platform hosts set PORT. Use it if DOCGEN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCGEN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Generate = GenerateConfig{
		Concurrency: v.GetInt("generate.concurrency"),
		MaxClients:  v.GetInt("generate.max_clients"),
	}
	if cfg.Generate.Concurrency < 1 {
		cfg.Generate.Concurrency = 1
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("metrics.enabled"),
		Path:    v.GetString("metrics.path"),
	}

	return cfg, nil
}
