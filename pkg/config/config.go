package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Feed     FeedConfig
	Timeline TimelineConfig
	Slots    SlotsConfig
	Goals    GoalsConfig
	Export   ExportConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// FeedConfig controls external calendar feed ingestion.
type FeedConfig struct {
	ProxyPrefix  string
	FetchTimeout time.Duration
}

// TimelineConfig tunes the merged timeline read model.
type TimelineConfig struct {
	CacheTTL time.Duration
}

// SlotsConfig provides defaults for free-slot searches.
type SlotsConfig struct {
	DefaultDays         int
	DefaultDayStartHour int
	DefaultDayEndHour   int
}

// GoalsConfig tunes commitment progress tracking.
type GoalsConfig struct {
	DefaultHorizonDays   int
	BehindThresholdRatio float64
}

// ExportConfig gates the agenda export endpoint.
type ExportConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret: v.GetString("JWT_SECRET"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Feed = FeedConfig{
		ProxyPrefix:  v.GetString("FEED_PROXY_PREFIX"),
		FetchTimeout: parseDuration(v.GetString("FEED_FETCH_TIMEOUT"), 10*time.Second),
	}

	cfg.Timeline = TimelineConfig{
		CacheTTL: parseDuration(v.GetString("TIMELINE_CACHE_TTL"), time.Minute),
	}

	cfg.Slots = SlotsConfig{
		DefaultDays:         v.GetInt("SLOTS_DEFAULT_DAYS"),
		DefaultDayStartHour: v.GetInt("SLOTS_DEFAULT_DAY_START_HOUR"),
		DefaultDayEndHour:   v.GetInt("SLOTS_DEFAULT_DAY_END_HOUR"),
	}

	cfg.Goals = GoalsConfig{
		DefaultHorizonDays:   v.GetInt("GOALS_DEFAULT_HORIZON_DAYS"),
		BehindThresholdRatio: v.GetFloat64("GOALS_BEHIND_THRESHOLD_RATIO"),
	}

	cfg.Export = ExportConfig{
		Enabled: v.GetBool("ENABLE_AGENDA_EXPORT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "agenda")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "change-me")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("FEED_PROXY_PREFIX", "")
	v.SetDefault("FEED_FETCH_TIMEOUT", "10s")

	v.SetDefault("TIMELINE_CACHE_TTL", "60s")

	v.SetDefault("SLOTS_DEFAULT_DAYS", 7)
	v.SetDefault("SLOTS_DEFAULT_DAY_START_HOUR", 8)
	v.SetDefault("SLOTS_DEFAULT_DAY_END_HOUR", 22)

	v.SetDefault("GOALS_DEFAULT_HORIZON_DAYS", 90)
	v.SetDefault("GOALS_BEHIND_THRESHOLD_RATIO", 1.0)

	v.SetDefault("ENABLE_AGENDA_EXPORT", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
