package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for RAGShop
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Database DatabaseConfig `mapstructure:"database"`
	RAG      RAGConfig      `mapstructure:"rag"`
	Latency  LatencyConfig  `mapstructure:"latency"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	BaseURL string `mapstructure:"base_url"`
	// StaticDir holds a prebuilt admin bundle served under /admin; empty disables it
	StaticDir string `mapstructure:"static_dir"`
}

// AdminConfig holds admin authentication configuration
type AdminConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// AuthConfig holds dashboard login configuration
type AuthConfig struct {
	SharedPassword string        `mapstructure:"shared_password"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// RAGConfig holds knowledge chunking configuration
type RAGConfig struct {
	ChunkSize    int `mapstructure:"chunk_size"`
	ChunkOverlap int `mapstructure:"chunk_overlap"`
}

// LatencyConfig holds the simulated service delays
type LatencyConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Scale   float64       `mapstructure:"scale"`
	Read    time.Duration `mapstructure:"read"`
	List    time.Duration `mapstructure:"list"`
	Write   time.Duration `mapstructure:"write"`
	Heavy   time.Duration `mapstructure:"heavy"`
	Export  time.Duration `mapstructure:"export"`
	Reindex time.Duration `mapstructure:"reindex"`
}

// CacheConfig holds query cache configuration
type CacheConfig struct {
	StaleTime    time.Duration `mapstructure:"stale_time"`
	GCTime       time.Duration `mapstructure:"gc_time"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// CORSConfig holds allowed origins
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// Load loads configuration from .env, file and environment
func Load(configPath string) (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("RAGSHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.static_dir", "")

	v.SetDefault("admin.api_key", "")

	v.SetDefault("auth.shared_password", "password123")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)

	v.SetDefault("database.path", "./data/ragshop.db")

	v.SetDefault("rag.chunk_size", 200)
	v.SetDefault("rag.chunk_overlap", 0)

	v.SetDefault("latency.enabled", true)
	v.SetDefault("latency.scale", 1.0)
	v.SetDefault("latency.read", 300*time.Millisecond)
	v.SetDefault("latency.list", 500*time.Millisecond)
	v.SetDefault("latency.write", 500*time.Millisecond)
	v.SetDefault("latency.heavy", 800*time.Millisecond)
	v.SetDefault("latency.export", 1000*time.Millisecond)
	v.SetDefault("latency.reindex", 2000*time.Millisecond)

	v.SetDefault("cache.stale_time", 30*time.Second)
	v.SetDefault("cache.gc_time", 5*time.Minute)
	v.SetDefault("cache.fetch_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", false)

	v.SetDefault("cors.allow_origins", []string{"*"})

}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
