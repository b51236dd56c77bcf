package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Data     DataConfig
	Database DatabaseConfig
	Redis    RedisConfig
	HTTP     HTTPConfig
	Log      LogConfig
}

type AppConfig struct {
	AppName     string `validate:"required"`
	Environment string `validate:"required"`
	HTTPPort    string `validate:"required"`
}

type DataConfig struct {
	Source string `validate:"oneof=file postgres"`
	Path   string
	Query  string
	// LoadFatal aborts startup when the candidate source cannot be read.
	LoadFatal bool
}

type DatabaseConfig struct {
	URL            string
	DBHost         string
	DBPort         string
	DBName         string
	DBUser         string
	DBPassword     string
	DBSSLMode      string
	ConnectTimeout time.Duration
	PoolMaxConns   int32 `validate:"gte=0"`
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int           `validate:"gte=0"`
	TTL      time.Duration `validate:"gte=0"`
}

type HTTPConfig struct {
	RequestTimeout time.Duration `validate:"gt=0"`
	MaxPageLimit   int           `validate:"gte=1"`
	RateLimitRPS   float64       `validate:"gte=0"`
	RateLimitBurst int           `validate:"gte=0"`
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidConfig      = errors.New("invalid configuration")
)

var validate = validator.New()

// Load reads the environment, optionally seeded from a .env file.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds the config from an arbitrary key lookup.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	var missing []string
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}
	req := func(key string) string {
		v := get(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		if v := get(key); v != "" {
			return v
		}
		return def
	}

	var bad []string
	optInt := func(key string, def int) int {
		raw := get(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			bad = append(bad, key)
			return def
		}
		return v
	}
	optFloat := func(key string, def float64) float64 {
		raw := get(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			bad = append(bad, key)
			return def
		}
		return v
	}
	optBool := func(key string, def bool) bool {
		raw := get(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			bad = append(bad, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := get(key)
		if raw == "" {
			return def
		}
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(raw); err == nil {
			return time.Duration(secs) * time.Second
		}
		bad = append(bad, key)
		return def
	}

	cfg := Config{}
	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Data = DataConfig{
		Source:    strings.ToLower(opt("DATA_SOURCE", SourceFile)),
		Path:      opt("DATA_PATH", "data.json"),
		Query:     get("DATA_QUERY"),
		LoadFatal: optBool("DATA_LOAD_FATAL", false),
	}

	cfg.Database = DatabaseConfig{
		URL:            get("DATABASE_URL"),
		DBHost:         get("DB_HOST"),
		DBPort:         opt("DB_PORT", "5432"),
		DBName:         get("DB_NAME"),
		DBUser:         get("DB_USER"),
		DBPassword:     get("DB_PASSWORD"),
		DBSSLMode:      opt("DB_SSL_MODE", "disable"),
		ConnectTimeout: optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:   int32(optInt("DB_POOL_MAX_CONNS", 4)),
	}

	cfg.Redis = RedisConfig{
		Enabled:  optBool("REDIS_ENABLED", false),
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: get("REDIS_PASSWORD"),
		DB:       optInt("REDIS_DB", 0),
		TTL:      optDuration("REDIS_TTL", 600*time.Second),
	}

	cfg.HTTP = HTTPConfig{
		RequestTimeout: optDuration("REQUEST_TIMEOUT", 5*time.Second),
		MaxPageLimit:   optInt("PAGE_LIMIT_MAX", 100),
		RateLimitRPS:   optFloat("RATE_LIMIT_RPS", 50),
		RateLimitBurst: optInt("RATE_LIMIT_BURST", 100),
	}

	cfg.Log = LogConfig{
		JSON:  optBool("LOG_JSON", false),
		Debug: optBool("LOG_DEBUG", false),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(bad) > 0 {
		return Config{}, fmt.Errorf("%w: malformed %s", errInvalidConfig, strings.Join(bad, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	for _, part := range []any{c.App, c.Data, c.Database, c.Redis, c.HTTP} {
		if err := validate.Struct(part); err != nil {
			return fmt.Errorf("%w: %v", errInvalidConfig, err)
		}
	}
	if c.Data.Source == SourcePostgres && c.Database.URL == "" && c.Database.DBHost == "" {
		return fmt.Errorf("%w: DATA_SOURCE=postgres needs DATABASE_URL or DB_HOST", errInvalidConfig)
	}
	return nil
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}
