package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Log        LogConfig        `mapstructure:"log"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Embedding  EmbeddingConfig  `mapstructure:"embedding"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Client     ClientConfig     `mapstructure:"client"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LLMConfig selects and configures the model that picks the final ECCN.
// Provider "none" disables the LLM and the classifier returns the top
// vector match.
type LLMConfig struct {
	Provider string        `mapstructure:"provider"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// EmbeddingConfig configures the embedding provider used for retrieval
type EmbeddingConfig struct {
	Provider    string        `mapstructure:"provider"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	BatchSize   int           `mapstructure:"batch_size"`
	Concurrency int           `mapstructure:"concurrency"`
}

// CatalogConfig holds ECCN catalog ingestion settings
type CatalogConfig struct {
	Path            string `mapstructure:"path"`
	IngestOnStartup bool   `mapstructure:"ingest_on_startup"`
}

// ClassifierConfig holds retrieval settings
type ClassifierConfig struct {
	TopK int `mapstructure:"top_k"`
}

// ClientConfig holds settings for the terminal client talking to the API
type ClientConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Providers accepted for llm.provider and embedding.provider
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// Load reads configuration from .env, an optional config file and ECCN_* environment variables
func Load() (*Config, error) {
	// .env is a local development convenience
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("ECCN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "eccn")
	v.SetDefault("database.password", "eccn")
	v.SetDefault("database.dbname", "eccn")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-4o")
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("embedding.provider", ProviderOpenAI)
	v.SetDefault("embedding.api_key", "")
	v.SetDefault("embedding.model", "text-embedding-3-small")
	v.SetDefault("embedding.base_url", "https://api.openai.com/v1")
	v.SetDefault("embedding.timeout", 30*time.Second)
	v.SetDefault("embedding.batch_size", 50)
	v.SetDefault("embedding.concurrency", 4)

	v.SetDefault("catalog.path", "data/eccn_data.csv")
	v.SetDefault("catalog.ingest_on_startup", true)

	v.SetDefault("classifier.top_k", 5)

	v.SetDefault("client.base_url", "http://localhost:8000")
	v.SetDefault("client.timeout", 60*time.Second)
}

func (c *Config) validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if !isKnownProvider(c.LLM.Provider) {
		errs = append(errs, fmt.Errorf("llm.provider must be one of openai, gemini, none (got: %s)", c.LLM.Provider))
	}
	if !isKnownProvider(c.Embedding.Provider) {
		errs = append(errs, fmt.Errorf("embedding.provider must be one of openai, gemini, none (got: %s)", c.Embedding.Provider))
	}
	if c.Embedding.BatchSize < 1 {
		errs = append(errs, errors.New("embedding.batch_size must be positive"))
	}
	if c.Classifier.TopK < 1 {
		errs = append(errs, errors.New("classifier.top_k must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%w", errors.Join(errs...))
	}
	return nil
}

func isKnownProvider(p string) bool {
	switch p {
	case ProviderOpenAI, ProviderGemini, ProviderNone:
		return true
	}
	return false
}

// LLMEnabled reports whether an LLM can be called
func (c *LLMConfig) LLMEnabled() bool {
	return c.Provider != ProviderNone && c.APIKey != ""
}

// EmbeddingEnabled reports whether embeddings can be generated
func (c *EmbeddingConfig) EmbeddingEnabled() bool {
	return c.Provider != ProviderNone && c.APIKey != ""
}

// Addr returns the host:port pair the server listens on
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Addr returns the host:port pair of the Redis server
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
