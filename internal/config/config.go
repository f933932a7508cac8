package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	TRACE_ID_KEY = "traceId"

	// worker pool tuning
	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	// server timeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	// job requests buffer limit
	BufferLimit = 100

	// rate limiting
	RateLimitPerSecond      = 5
	BurstRateLimitPerSecond = 10

	// redis databases: job state and chat history live in separate DBs
	RedisJobStore     = 0
	RedisMessageStore = 1

	RedisJobStoreTTL     = 24 * time.Hour
	RedisMessageStoreTTL = 24 * time.Hour

	// readiness probe client pooling
	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second
)

// Config holds everything that varies between deployments. Tuning knobs
// that never change at runtime stay as constants above.
//
// Sources, highest precedence first: HELPDESK_* environment variables,
// the YAML config file, built-in defaults.
type Config struct {
	API       APIConfig       `mapstructure:"api" yaml:"api"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	LLM       LLMConfig       `mapstructure:"llm" yaml:"llm"`
	Embedding EmbeddingConfig `mapstructure:"embedding" yaml:"embedding"`
	Retrieval RetrievalConfig `mapstructure:"retrieval" yaml:"retrieval"`
	Qdrant    QdrantConfig    `mapstructure:"qdrant" yaml:"qdrant"`
	Redis     RedisConfig     `mapstructure:"redis" yaml:"redis"`
	Location  LocationConfig  `mapstructure:"location" yaml:"location"`
	Care      CareConfig      `mapstructure:"customer_care" yaml:"customer_care"`
	Dataset   DatasetConfig   `mapstructure:"dataset" yaml:"dataset"`
}

type APIConfig struct {
	Title       string `mapstructure:"title" yaml:"title"`
	Version     string `mapstructure:"version" yaml:"version"`
	ListenAddr  string `mapstructure:"listen_addr" yaml:"listen_addr"`
	AuthToken   string `mapstructure:"auth_token" yaml:"auth_token"`
	DisableAuth bool   `mapstructure:"disable_auth" yaml:"disable_auth"`
}

type LoggingConfig struct {
	Production bool   `mapstructure:"production" yaml:"production"`
	Level      string `mapstructure:"level" yaml:"level"`
}

type LLMConfig struct {
	Provider      string  `mapstructure:"provider" yaml:"provider"`
	OllamaBaseURL string  `mapstructure:"ollama_base_url" yaml:"ollama_base_url"`
	OllamaModel   string  `mapstructure:"ollama_model" yaml:"ollama_model"`
	GeminiAPIKey  string  `mapstructure:"gemini_api_key" yaml:"gemini_api_key"`
	GeminiModel   string  `mapstructure:"gemini_model" yaml:"gemini_model"`
	Temperature   float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens     int     `mapstructure:"max_tokens" yaml:"max_tokens"`
}

type EmbeddingConfig struct {
	Provider    string `mapstructure:"provider" yaml:"provider"`
	OllamaModel string `mapstructure:"ollama_model" yaml:"ollama_model"`
	GeminiModel string `mapstructure:"gemini_model" yaml:"gemini_model"`
	Dimension   int32  `mapstructure:"dimension" yaml:"dimension"`
}

type RetrievalConfig struct {
	TopK                int     `mapstructure:"top_k" yaml:"top_k"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`
	CacheCutoff         float64 `mapstructure:"cache_cutoff" yaml:"cache_cutoff"`
}

type QdrantConfig struct {
	Host            string `mapstructure:"host" yaml:"host"`
	GrpcPort        int    `mapstructure:"grpc_port" yaml:"grpc_port"`
	UseTLS          bool   `mapstructure:"use_tls" yaml:"use_tls"`
	PoolSize        uint   `mapstructure:"pool_size" yaml:"pool_size"`
	Collection      string `mapstructure:"collection" yaml:"collection"`
	CacheCollection string `mapstructure:"cache_collection" yaml:"cache_collection"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
}

type LocationConfig struct {
	City  string `mapstructure:"city" yaml:"city"`
	State string `mapstructure:"state" yaml:"state"`
}

type CareConfig struct {
	Phone   string `mapstructure:"phone" yaml:"phone"`
	Email   string `mapstructure:"email" yaml:"email"`
	Hours   string `mapstructure:"hours" yaml:"hours"`
	Website string `mapstructure:"website" yaml:"website"`
}

type DatasetConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

func Default() *Config {
	return &Config{
		API: APIConfig{
			Title:       "Community Helpdesk Chatbot API",
			Version:     "2.0.0",
			ListenAddr:  ":8000",
			DisableAuth: true,
		},
		Logging: LoggingConfig{
			Production: false,
			Level:      "INFO",
		},
		LLM: LLMConfig{
			Provider:      "ollama",
			OllamaBaseURL: "http://localhost:11434",
			OllamaModel:   "llama3.2:3b",
			GeminiModel:   "gemini-2.5-flash-lite-preview-09-2025",
			Temperature:   0.6,
			MaxTokens:     500,
		},
		Embedding: EmbeddingConfig{
			Provider:    "ollama",
			OllamaModel: "nomic-embed-text",
			GeminiModel: "gemini-embedding-001",
			Dimension:   768,
		},
		Retrieval: RetrievalConfig{
			TopK:                5,
			SimilarityThreshold: 0.0,
			CacheCutoff:         0.97,
		},
		Qdrant: QdrantConfig{
			Host:            "localhost",
			GrpcPort:        6334,
			PoolSize:        1,
			Collection:      "community_services",
			CacheCollection: "semantic-cache",
		},
		Redis: RedisConfig{
			Addr: "127.0.0.1:6379",
		},
		Location: LocationConfig{
			City:  "Chennai",
			State: "Tamil Nadu",
		},
		Care: CareConfig{
			Phone:   "1913",
			Email:   "support@chennaicorporation.gov.in",
			Hours:   "24/7",
			Website: "www.chennaicorporation.gov.in",
		},
		Dataset: DatasetConfig{
			Path: "data/community_services.json",
		},
	}
}

// Load reads the config file (when present) and applies HELPDESK_*
// environment overrides on top of the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if configPath != "" {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func Validate(cfg *Config) error {
	if cfg.API.ListenAddr == "" {
		return fmt.Errorf("api.listen_addr must not be empty")
	}
	if cfg.Retrieval.TopK < 1 {
		return fmt.Errorf("retrieval.top_k must be at least 1, got %d", cfg.Retrieval.TopK)
	}
	if cfg.Embedding.Dimension < 1 {
		return fmt.Errorf("embedding.dimension must be positive, got %d", cfg.Embedding.Dimension)
	}
	switch cfg.LLM.Provider {
	case "ollama", "gemini":
	default:
		return fmt.Errorf("llm.provider must be ollama or gemini, got %q", cfg.LLM.Provider)
	}
	switch cfg.Embedding.Provider {
	case "ollama", "gemini":
	default:
		return fmt.Errorf("embedding.provider must be ollama or gemini, got %q", cfg.Embedding.Provider)
	}
	if !cfg.API.DisableAuth && cfg.API.AuthToken == "" {
		return fmt.Errorf("api.auth_token is required when auth is enabled")
	}
	return nil
}

// Save writes the configuration as YAML, creating the parent directory
// if needed. Used by "helpdesk config init".
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ModelName is the generation model behind the configured provider.
func (c *LLMConfig) ModelName() string {
	if c.Provider == "gemini" {
		return c.GeminiModel
	}
	return c.OllamaModel
}

func (c *LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToUpper(c.Level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("HELPDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/helpdesk")
	v.SetConfigName("helpdesk")
	v.SetConfigType("yaml")
}
