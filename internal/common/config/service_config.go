package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/zap"

	"github.com/edgecomet/seotext/internal/common/configtypes"
	"github.com/edgecomet/seotext/internal/common/yamlutil"
	"github.com/edgecomet/seotext/pkg/types"
)

// APIKeyEnv supplies llm.api_key when the config leaves it empty.
const APIKeyEnv = "OPENAI_API_KEY"

const (
	// SafetyMargin is added to llm.timeout for the default server timeout so
	// fasthttp does not close connections before the completion returns
	SafetyMargin = 10 * time.Second

	defaultLLMEndpoint = "https://api.openai.com/v1/chat/completions"
	defaultLLMModel    = "gpt-4-turbo-preview"
	defaultLLMTimeout  = 60 * time.Second
	defaultMaxBodySize = 1 << 20
	defaultCacheTTL    = 24 * time.Hour
	defaultMetricsPath = "/metrics"
	defaultNamespace   = "seotext"

	minAutoConcurrency = 64
	maxAutoConcurrency = 4096
	// memory budgeted per in-flight request when sizing concurrency from RAM
	perRequestBytes = 4 << 20
	reservedBytes   = 512 << 20
)

var namespaceRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ServiceConfigManager loads and holds the service configuration
type ServiceConfigManager struct {
	config     *configtypes.ServiceConfig
	configPath string
	logger     *zap.Logger
}

func NewServiceConfigManager(configPath string, logger *zap.Logger) (*ServiceConfigManager, error) {
	cm := &ServiceConfigManager{
		configPath: configPath,
		logger:     logger,
	}

	if err := cm.LoadConfig(); err != nil {
		return nil, err
	}
	return cm, nil
}

// LoadConfig reads the file, loads .env files, applies defaults and validates.
func (cm *ServiceConfigManager) LoadConfig() error {
	cfg, err := LoadServiceConfig(cm.configPath)
	if err != nil {
		return err
	}
	cm.config = cfg

	if cfg.LLM.APIKey == "" {
		cm.logger.Warn("No completion API key configured",
			zap.String("env", APIKeyEnv))
	}
	return nil
}

func (cm *ServiceConfigManager) GetConfig() *configtypes.ServiceConfig {
	return cm.config
}

// LoadServiceConfig loads a service configuration from configPath.
// A .env file next to the config and one in the working directory are loaded
// first; variables already set in the environment win.
func LoadServiceConfig(configPath string) (*configtypes.ServiceConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg configtypes.ServiceConfig
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(configPath), ".env"), ".env"); err != nil {
		return nil, err
	}

	ApplyDefaults(&cfg)
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv(APIKeyEnv)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func loadDotEnv(paths ...string) error {
	seen := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true

		if _, err := os.Stat(abs); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(abs); err != nil {
			return fmt.Errorf("failed to load %s: %w", abs, err)
		}
	}
	return nil
}

// ApplyDefaults fills unset fields.
func ApplyDefaults(cfg *configtypes.ServiceConfig) {
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = defaultMaxBodySize
	}
	if cfg.Server.Concurrency == "" {
		cfg.Server.Concurrency = configtypes.ConcurrencyAuto
	}

	if cfg.LLM.Endpoint == "" {
		cfg.LLM.Endpoint = defaultLLMEndpoint
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultLLMModel
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = types.Duration(defaultLLMTimeout)
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = types.Duration(cfg.LLM.Timeout.ToDuration() + SafetyMargin)
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = types.Duration(defaultCacheTTL)
	}
	if cfg.Cache.Compression == "" {
		cfg.Cache.Compression = configtypes.CompressionSnappy
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = configtypes.LogLevelInfo
	}
	// Both outputs disabled means nothing was configured
	if !cfg.Log.Console.Enabled && !cfg.Log.File.Enabled {
		cfg.Log.Console.Enabled = true
	}
	if cfg.Log.Console.Format == "" {
		cfg.Log.Console.Format = configtypes.LogFormatConsole
	}
	if cfg.Log.File.Format == "" {
		cfg.Log.File.Format = configtypes.LogFormatText
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = defaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = defaultNamespace
	}
}

// Validate checks a configuration with defaults applied.
func Validate(cfg *configtypes.ServiceConfig) error {
	if cfg.Server.ID == "" {
		return fmt.Errorf("server.id is required")
	}
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if err := configtypes.ValidateListenAddress(cfg.Server.Listen); err != nil {
		return fmt.Errorf("invalid server.listen: %w", err)
	}
	if cfg.Server.MaxBodySize < 0 {
		return fmt.Errorf("server.max_body_size must be positive")
	}
	if _, err := ParseConcurrency(cfg.Server.Concurrency); err != nil {
		return err
	}
	if cfg.Server.Timeout.ToDuration() <= cfg.LLM.Timeout.ToDuration() {
		return fmt.Errorf("server.timeout (%s) must exceed llm.timeout (%s)", cfg.Server.Timeout, cfg.LLM.Timeout)
	}

	u, err := url.Parse(cfg.LLM.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid llm.endpoint: %q (must be an http or https URL)", cfg.LLM.Endpoint)
	}
	if cfg.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive")
	}

	if cfg.Cache.Enabled {
		if cfg.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required when cache is enabled")
		}
		if cfg.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive")
		}
	}
	switch cfg.Cache.Compression {
	case configtypes.CompressionNone, configtypes.CompressionSnappy, configtypes.CompressionLZ4:
	default:
		return fmt.Errorf("invalid cache.compression: %s (must be none, snappy, or lz4)", cfg.Cache.Compression)
	}

	if err := validateLog(&cfg.Log); err != nil {
		return err
	}
	return validateMetrics(&cfg.Metrics, cfg.Server.Listen)
}

func validateLog(log *configtypes.LogConfig) error {
	validLevels := map[string]bool{
		configtypes.LogLevelDebug:  true,
		configtypes.LogLevelInfo:   true,
		configtypes.LogLevelWarn:   true,
		configtypes.LogLevelError:  true,
		configtypes.LogLevelDPanic: true,
		configtypes.LogLevelPanic:  true,
		configtypes.LogLevelFatal:  true,
	}
	if !validLevels[log.Level] {
		return fmt.Errorf("invalid log.level: %s (must be debug, info, warn, error, dpanic, panic, or fatal)", log.Level)
	}

	if log.Console.Enabled && log.Console.Format != configtypes.LogFormatJSON && log.Console.Format != configtypes.LogFormatConsole {
		return fmt.Errorf("invalid log.console.format: %s (must be json or console)", log.Console.Format)
	}

	if log.File.Enabled {
		if log.File.Path == "" {
			return fmt.Errorf("log.file.path must be specified when file logging is enabled")
		}
		if log.File.Format != configtypes.LogFormatJSON && log.File.Format != configtypes.LogFormatText {
			return fmt.Errorf("invalid log.file.format: %s (must be json or text)", log.File.Format)
		}
		r := log.File.Rotation
		if r.MaxSize < 0 || r.MaxAge < 0 || r.MaxBackups < 0 {
			return fmt.Errorf("log.file.rotation values must be >= 0")
		}
	}
	return nil
}

func validateMetrics(m *configtypes.MetricsConfig, serverListen string) error {
	if m.Enabled {
		if m.Listen == "" {
			return fmt.Errorf("metrics.listen is required when metrics enabled")
		}
		if err := configtypes.ValidateListenAddress(m.Listen); err != nil {
			return fmt.Errorf("invalid metrics.listen: %w", err)
		}

		metricsPort, err1 := configtypes.GetPortFromListen(m.Listen)
		serverPort, err2 := configtypes.GetPortFromListen(serverListen)
		if err1 == nil && err2 == nil && metricsPort == serverPort {
			return fmt.Errorf("metrics.listen port (%d) must differ from server.listen port (%d) when metrics enabled", metricsPort, serverPort)
		}
	}

	if !strings.HasPrefix(m.Path, "/") {
		return fmt.Errorf("invalid metrics.path: %s (must start with /)", m.Path)
	}
	if !namespaceRe.MatchString(m.Namespace) {
		return fmt.Errorf("invalid metrics.namespace: %s (must match [a-zA-Z_][a-zA-Z0-9_]*)", m.Namespace)
	}
	return nil
}

// ParseConcurrency returns the explicit limit, or 0 for "auto".
func ParseConcurrency(value string) (int, error) {
	if value == configtypes.ConcurrencyAuto {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("server.concurrency must be 'auto' or positive integer")
	}
	return n, nil
}

// ResolveConcurrency returns the fasthttp concurrency limit for value,
// sizing "auto" from total system memory.
func ResolveConcurrency(value string) int {
	n, err := ParseConcurrency(value)
	if err == nil && n > 0 {
		return n
	}

	var totalBytes int64
	if v, err := mem.VirtualMemory(); err != nil {
		totalBytes = 4 << 30 // conservative guess when memory cannot be read
	} else {
		totalBytes = int64(v.Total)
	}
	return concurrencyForMemory(totalBytes)
}

func concurrencyForMemory(totalBytes int64) int {
	n := int((totalBytes - reservedBytes) / perRequestBytes)
	if n < minAutoConcurrency {
		return minAutoConcurrency
	}
	if n > maxAutoConcurrency {
		return maxAutoConcurrency
	}
	return n
}

// GetConfigPath resolves path to an absolute path of an existing file.
func GetConfigPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("config path cannot be empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("config file does not exist: %s", absPath)
	}
	return absPath, nil
}
