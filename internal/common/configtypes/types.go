package configtypes

import (
	"github.com/edgecomet/seotext/pkg/types"
)

// Log level constants
const (
	LogLevelDebug  = "debug"
	LogLevelInfo   = "info"
	LogLevelWarn   = "warn"
	LogLevelError  = "error"
	LogLevelDPanic = "dpanic"
	LogLevelPanic  = "panic"
	LogLevelFatal  = "fatal"
)

// Log format constants
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
	LogFormatText    = "text"
)

// Completion cache compression algorithms
const (
	CompressionNone   = "none"
	CompressionSnappy = "snappy"
	CompressionLZ4    = "lz4"
)

// ConcurrencyAuto sizes the server concurrency limit from host memory.
const ConcurrencyAuto = "auto"

// ServiceConfig is the seotext service configuration
type ServiceConfig struct {
	Server  ServerConfig  `yaml:"server"`
	LLM     LLMConfig     `yaml:"llm"`
	Cache   CacheConfig   `yaml:"cache"`
	Redis   RedisConfig   `yaml:"redis"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type ServerConfig struct {
	ID          string         `yaml:"id"`
	Listen      string         `yaml:"listen"`
	Timeout     types.Duration `yaml:"timeout"`
	MaxBodySize int            `yaml:"max_body_size"` // bytes
	Concurrency string         `yaml:"concurrency"`   // integer or "auto"
}

// LLMConfig configures the chat completion endpoint.
// An empty APIKey is filled from OPENAI_API_KEY.
type LLMConfig struct {
	Endpoint        string         `yaml:"endpoint"`
	Model           string         `yaml:"model"`
	APIKey          string         `yaml:"api_key"`
	Timeout         types.Duration `yaml:"timeout"`
	FallbackOnError bool           `yaml:"fallback_on_error"`
}

// CacheConfig configures the optional Redis completion cache.
type CacheConfig struct {
	Enabled     bool           `yaml:"enabled"`
	TTL         types.Duration `yaml:"ttl"`
	Compression string         `yaml:"compression"` // none, snappy, lz4
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LogConfig struct {
	Level   string           `yaml:"level"`
	Console ConsoleLogConfig `yaml:"console"`
	File    FileLogConfig    `yaml:"file"`
}

type ConsoleLogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"`
	Level   string `yaml:"level,omitempty"`
}

type FileLogConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Path     string         `yaml:"path"`
	Format   string         `yaml:"format"`
	Level    string         `yaml:"level,omitempty"`
	Rotation RotationConfig `yaml:"rotation"`
}

type RotationConfig struct {
	MaxSize    int  `yaml:"max_size"`
	MaxAge     int  `yaml:"max_age"`
	MaxBackups int  `yaml:"max_backups"`
	Compress   bool `yaml:"compress"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Listen    string `yaml:"listen"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
}
