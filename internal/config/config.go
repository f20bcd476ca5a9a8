package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Upload    UploadConfig
	Mail      MailConfig
	Admin     AdminConfig
	JWT       JWTConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Only enable behind a proxy that overwrites those headers.
	TrustProxy     bool
	MetricsEnabled bool
}

// DatabaseConfig selects the content store. Driver "sqlite" uses Path;
// driver "postgres" uses the connection fields.
type DatabaseConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type UploadConfig struct {
	Dir         string
	URLPrefix   string
	MaxMemoryMB int64
}

// MailConfig holds the SMTP relay settings for the contact form.
// Relaying is enabled only when both User and Password are set.
type MailConfig struct {
	User               string
	Password           string
	AdminEmail         string
	SMTPHost           string
	SMTPPort           int
	InsecureSkipVerify bool
}

type AdminConfig struct {
	Password    string
	EnforceAuth bool
}

type JWTConfig struct {
	Secret       string
	AccessExpiry int // in minutes
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Requests      int
	WindowSeconds int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	File string
}

// IsDevelopment reports whether SERVER_ENV is "development".
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// Window returns the rate limit window as a duration.
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// Enabled reports whether a Redis host was configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func Load() *Config {
	// Populate the process environment from .env first so that settings
	// read directly from os.Getenv elsewhere see the same values.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("SERVER_TRUST_PROXY", false)
	viper.SetDefault("METRICS_ENABLED", true)
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_PATH", "ceramics.db")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("UPLOAD_DIR", "public/img")
	viper.SetDefault("UPLOAD_URL_PREFIX", "/img")
	viper.SetDefault("UPLOAD_MAX_MEMORY_MB", 32)
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_INSECURE_SKIP_VERIFY", false)
	viper.SetDefault("ADMIN_PASSWORD", "admin123")
	viper.SetDefault("AUTH_ENFORCE", true)
	viper.SetDefault("JWT_ACCESS_EXPIRY", 720)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT_REQUESTS", 10)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Env:            viper.GetString("SERVER_ENV"),
			TrustProxy:     viper.GetBool("SERVER_TRUST_PROXY"),
			MetricsEnabled: viper.GetBool("METRICS_ENABLED"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Path:     viper.GetString("DB_PATH"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Upload: UploadConfig{
			Dir:         viper.GetString("UPLOAD_DIR"),
			URLPrefix:   viper.GetString("UPLOAD_URL_PREFIX"),
			MaxMemoryMB: viper.GetInt64("UPLOAD_MAX_MEMORY_MB"),
		},
		Mail: MailConfig{
			User:               viper.GetString("EMAIL_USER"),
			Password:           viper.GetString("EMAIL_PASS"),
			AdminEmail:         viper.GetString("ADMIN_EMAIL"),
			SMTPHost:           viper.GetString("SMTP_HOST"),
			SMTPPort:           viper.GetInt("SMTP_PORT"),
			InsecureSkipVerify: viper.GetBool("SMTP_INSECURE_SKIP_VERIFY"),
		},
		Admin: AdminConfig{
			Password:    viper.GetString("ADMIN_PASSWORD"),
			EnforceAuth: viper.GetBool("AUTH_ENFORCE"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: viper.GetInt("JWT_ACCESS_EXPIRY"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Requests:      viper.GetInt("RATE_LIMIT_REQUESTS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Log: LogConfig{
			File: viper.GetString("LOG_FILE"),
		},
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
