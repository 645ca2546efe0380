package config

import (
	"flag"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	pkgRetry "github.com/nilecare/advisory-backend/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8000"`

	// Database configuration
	Database DatabaseConfig `envPrefix:"DATABASE_"`

	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// Advisory pipeline
	AdvisoryCfg AdvisoryConfig `envPrefix:"ADVISORY_"`

	// External service configurations
	OpenAICfg    OpenAIConnectorConfig    `envPrefix:"OPENAI_"`
	TranslateCfg TranslateConnectorConfig `envPrefix:"TRANSLATE_"`
	WeatherCfg   WeatherConnectorConfig   `envPrefix:"WEATHER_"`

	AuthCfg AuthConfig `envPrefix:"AUTH_"`
	CORSCfg CORSConfig `envPrefix:"CORS_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// File upload and ingestion
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`
	IngestCfg     IngestConfig     `envPrefix:"INGEST_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// DatabaseConfig accepts a full URL or its components
type DatabaseConfig struct {
	URL      string `env:"URL"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"5432"`
	Name     string `env:"NAME"`
	SSLMode  string `env:"SSLMODE"`
}

// ConnString returns DATABASE_URL, or builds one from the components.
// Returns an empty string when neither is configured.
func (c DatabaseConfig) ConnString() string {
	if u := strings.TrimSpace(c.URL); u != "" {
		return u
	}

	user := strings.TrimSpace(c.User)
	password := strings.TrimSpace(c.Password)
	host := strings.TrimSpace(c.Host)
	name := strings.TrimSpace(c.Name)
	if user == "" || password == "" || host == "" || name == "" {
		return ""
	}

	conn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		url.PathEscape(user), url.PathEscape(password), host, c.Port, name)
	if c.SSLMode != "" {
		conn += "?sslmode=" + url.QueryEscape(c.SSLMode)
	}
	return conn
}

// AdvisoryConfig tunes the question answering pipeline
type AdvisoryConfig struct {
	KRetrieval  int           `env:"K_RETRIEVAL" envDefault:"5"`
	EmbedDim    int           `env:"EMBED_DIM" envDefault:"1536"`
	MaxTokens   int           `env:"MAX_TOKENS" envDefault:"512"`
	CallTimeout time.Duration `env:"CALL_TIMEOUT" envDefault:"20s"`
	SourcesMode string        `env:"SOURCES_MODE" envDefault:"placeholder"`
}

// StoredEmbeddingDim is the vector width of the documents.embedding column
const StoredEmbeddingDim = 1536

const (
	SourcesModePlaceholder = "placeholder"
	SourcesModeChunks      = "chunks"
)

type OpenAIConnectorConfig struct {
	HTTPClientConfig
	EmbeddingsEndpoint string `env:"EMBEDDINGS_ENDPOINT" envDefault:"/embeddings"`
	ChatEndpoint       string `env:"CHAT_ENDPOINT" envDefault:"/chat/completions"`
	APIKey             string `env:"API_KEY"`
	GenModel           string `env:"GEN_MODEL" envDefault:"gpt-4o-mini"`
	EmbeddingModel     string `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
}

type TranslateConnectorConfig struct {
	HTTPClientConfig
	DetectEndpoint    string `env:"DETECT_ENDPOINT" envDefault:"/language/translate/v2/detect"`
	TranslateEndpoint string `env:"TRANSLATE_ENDPOINT" envDefault:"/language/translate/v2"`
	APIKey            string `env:"API_KEY"`
}

type WeatherConnectorConfig struct {
	HTTPClientConfig
	CurrentEndpoint string        `env:"CURRENT_ENDPOINT" envDefault:"/data/2.5/weather"`
	APIKey          string        `env:"API_KEY"`
	Units           string        `env:"UNITS" envDefault:"metric"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"10m"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

type AuthConfig struct {
	SecretKey      string        `env:"SECRET_KEY,notEmpty"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"30m"`
}

type CORSConfig struct {
	Origins     string `env:"ORIGINS" envDefault:"*"`
	OriginRegex string `env:"ORIGIN_REGEX"`
}

// AllowedOrigins parses the comma separated origin list.
// An empty value or "*" allows every origin.
func (c CORSConfig) AllowedOrigins() []string {
	raw := strings.TrimSpace(c.Origins)
	if raw == "" || raw == "*" {
		return []string{"*"}
	}

	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize   int64    `env:"MAX_FILE_SIZE" envDefault:"5242880"`    // 5 MiB
	MaxUploadSize int64    `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10 MiB
	AllowedTypes  []string `env:"ALLOWED_TYPES" envDefault:".txt,.md,.docx" envSeparator:","`
	ChunkSize     int      `env:"CHUNK_SIZE" envDefault:"1000"`
	ChunkOverlap  int      `env:"CHUNK_OVERLAP" envDefault:"100"`

	// UniDocLicenseKey enables .docx handling with a metered unioffice license
	UniDocLicenseKey string `env:"UNIDOC_LICENSE_KEY"`
}

// IngestConfig drives the background embedding worker
type IngestConfig struct {
	Interval  time.Duration        `env:"INTERVAL" envDefault:"30s"`
	BatchSize int                  `env:"BATCH_SIZE" envDefault:"20"`
	Retry     pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string        `env:"BOT_TOKEN"`
	UpdateTimeout      int           `env:"UPDATE_TIMEOUT" envDefault:"60"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int           `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
	DefaultLang        string        `env:"DEFAULT_LANG" envDefault:"auto"`
	PreferencesTTL     time.Duration `env:"PREFERENCES_TTL" envDefault:"24h"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag
	return cfg, nil
}

// Parse reads the configuration from the process environment and validates it
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.Database.ConnString() == "" {
		errors = append(errors, "DATABASE_URL or DATABASE_USER/DATABASE_PASSWORD/DATABASE_HOST/DATABASE_NAME must be set")
	}

	// Validate Database configuration
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	// Validate advisory pipeline
	if cfg.AdvisoryCfg.KRetrieval < 1 {
		errors = append(errors, fmt.Sprintf("ADVISORY_K_RETRIEVAL must be positive, got %d", cfg.AdvisoryCfg.KRetrieval))
	}

	// documents.embedding is declared vector(1536) in the migrations
	if cfg.AdvisoryCfg.EmbedDim != StoredEmbeddingDim {
		errors = append(errors, fmt.Sprintf("ADVISORY_EMBED_DIM must be %d to match the documents table, got %d",
			StoredEmbeddingDim, cfg.AdvisoryCfg.EmbedDim))
	}

	if cfg.AdvisoryCfg.MaxTokens < 1 {
		errors = append(errors, fmt.Sprintf("ADVISORY_MAX_TOKENS must be positive, got %d", cfg.AdvisoryCfg.MaxTokens))
	}

	switch cfg.AdvisoryCfg.SourcesMode {
	case SourcesModePlaceholder, SourcesModeChunks:
	default:
		errors = append(errors, fmt.Sprintf("ADVISORY_SOURCES_MODE must be %q or %q, got %q",
			SourcesModePlaceholder, SourcesModeChunks, cfg.AdvisoryCfg.SourcesMode))
	}

	if cfg.FileUploadCfg.ChunkOverlap < 0 || cfg.FileUploadCfg.ChunkOverlap >= cfg.FileUploadCfg.ChunkSize {
		errors = append(errors, fmt.Sprintf("FILE_UPLOAD_CHUNK_OVERLAP must be between 0 and FILE_UPLOAD_CHUNK_SIZE(%d), got %d",
			cfg.FileUploadCfg.ChunkSize, cfg.FileUploadCfg.ChunkOverlap))
	}

	// Validate ingestion worker
	if cfg.IngestCfg.Interval <= 0 {
		errors = append(errors, fmt.Sprintf("INGEST_INTERVAL must be positive, got %s", cfg.IngestCfg.Interval))
	}

	if cfg.IngestCfg.BatchSize < 1 {
		errors = append(errors, fmt.Sprintf("INGEST_BATCH_SIZE must be at least 1, got %d", cfg.IngestCfg.BatchSize))
	}

	if cfg.WeatherCfg.CacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("WEATHER_CACHE_TTL must not be negative, got %s", cfg.WeatherCfg.CacheTTL))
	}

	// Validate Telegram configuration
	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
