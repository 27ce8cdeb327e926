package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const envPrefix = "BREWXML"

type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Decode DecodeConfig `mapstructure:"decode"`
	Encode EncodeConfig `mapstructure:"encode"`
	Cache  CacheConfig  `mapstructure:"cache"`
	// Metrics are written in Prometheus text format when the command ends.
	MetricsTextfile string `mapstructure:"metrics-textfile"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`   // debug|info|warn|error
	Backend string `mapstructure:"backend"` // zap|logrus|slog
}

type DecodeConfig struct {
	MaxDocumentSize int `mapstructure:"max_document_size"`
}

type EncodeConfig struct {
	Indent int `mapstructure:"indent"`
}

type CacheConfig struct {
	Provider  string          `mapstructure:"provider"` // none|ristretto|bigcache|redis
	Namespace string          `mapstructure:"namespace"`
	TTL       time.Duration   `mapstructure:"ttl"`
	MaxEntry  int             `mapstructure:"max_entry_bytes"`
	Ristretto RistrettoConfig `mapstructure:"ristretto"`
	Redis     RedisConfig     `mapstructure:"redis"`

	// GenRetention bounds how long export generations are kept: the local
	// sweep horizon, or the key TTL on redis.
	GenRetention time.Duration `mapstructure:"gen_retention"`
}

type RistrettoConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

var (
	logLevels      = []string{"debug", "info", "warn", "error"}
	logBackends    = []string{"zap", "logrus", "slog"}
	cacheProviders = []string{"none", "ristretto", "bigcache", "redis"}
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.backend", "zap")
	v.SetDefault("decode.max_document_size", 16<<20)
	v.SetDefault("encode.indent", 2)
	v.SetDefault("cache.provider", "none")
	v.SetDefault("cache.namespace", "cli")
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.max_entry_bytes", 32<<20)
	v.SetDefault("cache.gen_retention", 30*24*time.Hour)
	v.SetDefault("cache.ristretto.max_bytes", 64<<20)
	v.SetDefault("cache.redis.addr", "localhost:6379")
}

// LoadConfig merges defaults, the optional config file and BREWXML_* env
// vars (BREWXML_CACHE_REDIS_ADDR => cache.redis.addr) into v, then
// unmarshals and validates.
func LoadConfig(v *viper.Viper, file string) (Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file [%s]: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if !lo.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of %v, got %q", logLevels, c.Log.Level))
	}
	if !lo.Contains(logBackends, c.Log.Backend) {
		errs = append(errs, fmt.Errorf("log.backend must be one of %v, got %q", logBackends, c.Log.Backend))
	}
	if c.Decode.MaxDocumentSize < 0 {
		errs = append(errs, errors.New("decode.max_document_size must be >= 0"))
	}
	if c.Encode.Indent < 0 || c.Encode.Indent > 16 {
		errs = append(errs, fmt.Errorf("encode.indent must be in [0,16], got %d", c.Encode.Indent))
	}
	if !lo.Contains(cacheProviders, c.Cache.Provider) {
		errs = append(errs, fmt.Errorf("cache.provider must be one of %v, got %q", cacheProviders, c.Cache.Provider))
	}
	if c.Cache.Provider != "none" && c.Cache.Namespace == "" {
		errs = append(errs, errors.New("cache.namespace is required when a cache provider is set"))
	}
	if c.Cache.Provider == "redis" && c.Cache.Redis.Addr == "" {
		errs = append(errs, errors.New("cache.redis.addr is required for the redis provider"))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, errors.New("cache.ttl must be >= 0"))
	}
	if c.Cache.GenRetention < 0 {
		errs = append(errs, errors.New("cache.gen_retention must be >= 0"))
	}
	return errors.Join(errs...)
}
