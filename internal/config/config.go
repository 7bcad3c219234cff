package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	envPrefix              = "STAYS_WEB_"
	defaultEnvFile         = ".env"
	defaultPort            = "8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultTemplatesDir    = "templates"
	defaultPublicDir       = "public"
	defaultEnvironment     = "dev"
	defaultBrand           = "Stays"
	defaultStoreBackend    = StoreCookie
	defaultStorePrefix     = "stays:"
	defaultStoreTTL        = 30 * 24 * time.Hour
	defaultLoadMoreDelay   = 800 * time.Millisecond
	defaultLogLevel        = "info"
	minHashKeyLength       = 32
)

// Store backends for the visitor key-value cache.
const (
	StoreCookie = "cookie"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Web       WebConfig
	Session   SessionConfig
	Store     StoreConfig
	Log       LogConfig
	Analytics AnalyticsConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// WebConfig controls page rendering and the catalog.
type WebConfig struct {
	Environment   string
	Dev           bool
	TemplatesDir  string
	PublicDir     string
	Brand         string
	CatalogFile   string
	LoadMoreDelay time.Duration
}

// Production reports whether the deployment is production.
func (w WebConfig) Production() bool { return w.Environment == "prod" }

// SessionConfig holds the session cookie keys. Ephemeral keys are generated per process
// when none are configured outside production.
type SessionConfig struct {
	HashKey   []byte
	BlockKey  []byte
	Secure    bool
	Ephemeral bool
}

// StoreConfig selects where visitor favorites and preferences live.
type StoreConfig struct {
	Backend string
	Prefix  string
	TTL     time.Duration
	Redis   RedisConfig
}

// RedisConfig addresses the redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// AnalyticsConfig holds client instrumentation ids surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string
	GTMContainerID   string
	SegmentWriteKey  string
	Debug            bool
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile reads a dotenv file instead of ./.env. An empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap supplies values that take precedence over every other source.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv ignores the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, the dotenv file, the process
// environment and an explicit map, later sources winning.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		key = envPrefix + key
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if value, ok := dotEnvValues[key]; ok {
			return value, true
		}
		return "", false
	}

	environment := strings.ToLower(stringWithDefault(lookup, "ENV", defaultEnvironment))
	addr := stringWithDefault(lookup, "ADDR", "")
	if addr == "" {
		addr = ":" + stringWithDefault(lookup, "PORT", defaultPort)
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:            addr,
			ReadTimeout:     durationWithDefault(lookup, "READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationWithDefault(lookup, "WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(lookup, "IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: durationWithDefault(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Web: WebConfig{
			Environment:   environment,
			Dev:           boolWithDefault(lookup, "DEV", false),
			TemplatesDir:  stringWithDefault(lookup, "TEMPLATES_DIR", defaultTemplatesDir),
			PublicDir:     stringWithDefault(lookup, "PUBLIC_DIR", defaultPublicDir),
			Brand:         stringWithDefault(lookup, "BRAND", defaultBrand),
			CatalogFile:   stringWithDefault(lookup, "CATALOG_FILE", ""),
			LoadMoreDelay: durationWithDefault(lookup, "LOAD_MORE_DELAY", defaultLoadMoreDelay),
		},
		Session: SessionConfig{
			HashKey:  bytesWithDefault(lookup, "SESSION_HASH_KEY"),
			BlockKey: bytesWithDefault(lookup, "SESSION_BLOCK_KEY"),
			Secure:   environment == "prod",
		},
		Store: StoreConfig{
			Backend: strings.ToLower(stringWithDefault(lookup, "STORE", defaultStoreBackend)),
			Prefix:  stringWithDefault(lookup, "STORE_PREFIX", defaultStorePrefix),
			TTL:     durationWithDefault(lookup, "STORE_TTL", defaultStoreTTL),
			Redis: RedisConfig{
				Addr:     stringWithDefault(lookup, "REDIS_ADDR", ""),
				Password: stringWithDefault(lookup, "REDIS_PASSWORD", ""),
				DB:       intWithDefault(lookup, "REDIS_DB", 0),
			},
		},
		Log: LogConfig{
			Level: stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(lookup, "GA_MEASUREMENT_ID", ""),
			GTMContainerID:   stringWithDefault(lookup, "GTM_CONTAINER_ID", ""),
			SegmentWriteKey:  stringWithDefault(lookup, "SEGMENT_WRITE_KEY", ""),
			Debug:            boolWithDefault(lookup, "ANALYTICS_DEBUG", false),
		},
	}

	if len(cfg.Session.HashKey) == 0 && !cfg.Web.Production() {
		cfg.Session.HashKey = randomKey(64)
		cfg.Session.BlockKey = randomKey(32)
		cfg.Session.Ephemeral = true
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if strings.TrimSpace(cfg.Server.Addr) == "" || strings.HasSuffix(cfg.Server.Addr, ":") {
		missing = append(missing, "Server.Addr")
	}
	if len(cfg.Session.HashKey) < minHashKeyLength {
		missing = append(missing, "Session.HashKey")
	}
	switch len(cfg.Session.BlockKey) {
	case 0, 16, 24, 32:
	default:
		missing = append(missing, "Session.BlockKey")
	}
	switch cfg.Store.Backend {
	case StoreCookie, StoreMemory:
	case StoreRedis:
		if strings.TrimSpace(cfg.Store.Redis.Addr) == "" {
			missing = append(missing, "Store.Redis.Addr")
		}
	default:
		missing = append(missing, "Store.Backend")
	}
	if cfg.Store.TTL < 0 {
		missing = append(missing, "Store.TTL")
	}
	if cfg.Web.LoadMoreDelay < 0 {
		missing = append(missing, "Web.LoadMoreDelay")
	}
	if strings.TrimSpace(cfg.Web.Brand) == "" {
		missing = append(missing, "Web.Brand")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

func randomKey(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("config: generate session key: %v", err))
	}
	return b
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func bytesWithDefault(lookup func(string) (string, bool), key string) []byte {
	if value, ok := lookup(key); ok && value != "" {
		return []byte(value)
	}
	return nil
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
