package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is built once at startup
// and passed by reference into each component; nothing mutates it afterwards.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	S3      S3Config
	Gemini  GeminiConfig
	Upload  UploadConfig
	OCR     OCRConfig
	Session SessionConfig
	CORS    CORSConfig
	Log     LogConfig
	App     AppConfig
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

// S3Config holds object storage settings for uploaded originals.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// GeminiConfig holds settings for the generative model gateway.
type GeminiConfig struct {
	APIKey          string  `mapstructure:"api_key"`
	Model           string  `mapstructure:"model"`
	Temperature     float64 `mapstructure:"temperature"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens"`
	TimeoutSecs     int     `mapstructure:"timeout_secs"`
}

// Timeout returns the per-call deadline for model requests.
func (g *GeminiConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSecs) * time.Second
}

// UploadConfig holds upload validation settings.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the inclusive upload size limit in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// OCRConfig holds text recognition settings.
type OCRConfig struct {
	Languages string `mapstructure:"languages"`
	// TessdataPrefix overrides where Tesseract looks for language data.
	// Empty means the system default.
	TessdataPrefix string `mapstructure:"tessdata_prefix"`
	// ClosingKernel is the side of the morphological closing kernel applied
	// after thresholding. The default of 1 leaves the image untouched.
	ClosingKernel int `mapstructure:"closing_kernel"`
}

// SessionConfig holds session token signing settings.
type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AppConfig holds miscellaneous application flags. CacheEnabled is read
// at startup but not consulted by the analysis pipeline.
type AppConfig struct {
	Debug        bool `mapstructure:"debug"`
	CacheEnabled bool `mapstructure:"cache_enabled"`
}

// Load reads configuration from environment variables with the DOCSENSE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCSENSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docsense")
	v.SetDefault("db.password", "docsense_secret")
	v.SetDefault("db.name", "docsense_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docsense-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-pro")
	v.SetDefault("gemini.temperature", 0.1)
	v.SetDefault("gemini.max_output_tokens", 8192)
	v.SetDefault("gemini.timeout_secs", 120)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 50)

	// OCR defaults
	v.SetDefault("ocr.languages", "eng")
	v.SetDefault("ocr.tessdata_prefix", "")
	v.SetDefault("ocr.closing_kernel", 1)

	// Session defaults
	v.SetDefault("session.secret", "change-me-in-production")
	v.SetDefault("session.expiry", "24h")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// App defaults
	v.SetDefault("app.debug", false)
	v.SetDefault("app.cache_enabled", true)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "DOCSENSE_SERVER_PORT",
		"server.read_timeout":      "DOCSENSE_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "DOCSENSE_SERVER_WRITE_TIMEOUT",
		"server.environment":       "DOCSENSE_SERVER_ENVIRONMENT",
		"db.host":                  "DOCSENSE_DB_HOST",
		"db.port":                  "DOCSENSE_DB_PORT",
		"db.user":                  "DOCSENSE_DB_USER",
		"db.password":              "DOCSENSE_DB_PASSWORD",
		"db.name":                  "DOCSENSE_DB_NAME",
		"db.sslmode":               "DOCSENSE_DB_SSLMODE",
		"db.max_open":              "DOCSENSE_DB_MAX_OPEN",
		"db.max_idle":              "DOCSENSE_DB_MAX_IDLE",
		"s3.region":                "DOCSENSE_S3_REGION",
		"s3.bucket":                "DOCSENSE_S3_BUCKET",
		"s3.endpoint":              "DOCSENSE_S3_ENDPOINT",
		"s3.access_key":            "DOCSENSE_S3_ACCESS_KEY",
		"s3.secret_key":            "DOCSENSE_S3_SECRET_KEY",
		"s3.presign_expiry":        "DOCSENSE_S3_PRESIGN_EXPIRY",
		"gemini.api_key":           "DOCSENSE_GEMINI_API_KEY",
		"gemini.model":             "DOCSENSE_GEMINI_MODEL",
		"gemini.temperature":       "DOCSENSE_GEMINI_TEMPERATURE",
		"gemini.max_output_tokens": "DOCSENSE_GEMINI_MAX_OUTPUT_TOKENS",
		"gemini.timeout_secs":      "DOCSENSE_GEMINI_TIMEOUT_SECS",
		"upload.max_file_size_mb":  "DOCSENSE_UPLOAD_MAX_FILE_SIZE_MB",
		"ocr.languages":            "DOCSENSE_OCR_LANGUAGES",
		"ocr.tessdata_prefix":      "DOCSENSE_OCR_TESSDATA_PREFIX",
		"ocr.closing_kernel":       "DOCSENSE_OCR_CLOSING_KERNEL",
		"session.secret":           "DOCSENSE_SESSION_SECRET",
		"session.expiry":           "DOCSENSE_SESSION_EXPIRY",
		"cors.allowed_origins":     "DOCSENSE_CORS_ALLOWED_ORIGINS",
		"log.level":                "DOCSENSE_LOG_LEVEL",
		"log.format":               "DOCSENSE_LOG_FORMAT",
		"app.debug":                "DOCSENSE_DEBUG",
		"app.cache_enabled":        "DOCSENSE_CACHE_ENABLED",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCSENSE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCSENSE_SERVER_PORT") == "" {
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
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}

	// The bare GOOGLE_API_KEY variable is honored as a fallback so the
	// standard Google SDK convention keeps working.
	apiKey := v.GetString("gemini.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	cfg.Gemini = GeminiConfig{
		APIKey:          apiKey,
		Model:           v.GetString("gemini.model"),
		Temperature:     v.GetFloat64("gemini.temperature"),
		MaxOutputTokens: v.GetInt("gemini.max_output_tokens"),
		TimeoutSecs:     v.GetInt("gemini.timeout_secs"),
	}

	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.OCR = OCRConfig{
		Languages:      v.GetString("ocr.languages"),
		TessdataPrefix: v.GetString("ocr.tessdata_prefix"),
		ClosingKernel:  v.GetInt("ocr.closing_kernel"),
	}
	cfg.Session = SessionConfig{
		Secret: v.GetString("session.secret"),
		Expiry: v.GetDuration("session.expiry"),
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

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.App = AppConfig{
		Debug:        v.GetBool("app.debug"),
		CacheEnabled: v.GetBool("app.cache_enabled"),
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
// A missing Gemini API key is a fatal startup error.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY (or DOCSENSE_GEMINI_API_KEY) is required")
	}
	if c.Upload.MaxFileSizeMB <= 0 {
		return fmt.Errorf("upload.max_file_size_mb must be positive")
	}
	return nil
}
