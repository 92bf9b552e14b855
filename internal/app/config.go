package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/moodlog-backend/internal/data/db"
	"github.com/yungbote/moodlog-backend/internal/http/middleware"
	"github.com/yungbote/moodlog-backend/internal/observability"
	"github.com/yungbote/moodlog-backend/internal/platform/cache"
	"github.com/yungbote/moodlog-backend/internal/platform/envutil"
	"github.com/yungbote/moodlog-backend/internal/platform/gemini"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

type Config struct {
	HTTPAddr string `yaml:"http_addr"`

	JWTSecretKey    string        `yaml:"jwt_secret_key"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`

	Timezone       string   `yaml:"timezone"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	AvatarFontPath string   `yaml:"avatar_font_path"`

	DB     db.Config     `yaml:"db"`
	Gemini gemini.Config `yaml:"gemini"`

	Redis           cache.RedisConfig `yaml:"redis"`
	EmotionCacheTTL time.Duration     `yaml:"emotion_cache_ttl"`

	Otel observability.OtelConfig `yaml:"otel"`
}

// Location resolves Timezone, falling back to UTC when it is blank or unknown.
func (c Config) Location() *time.Location {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadConfig reads the environment, then overlays CONFIG_FILE when set.
func LoadConfig(log *logger.Logger) (Config, error) {
	port := envutil.String("PORT", "8080")
	cfg := Config{
		HTTPAddr: envutil.String("HTTP_ADDR", ":"+port),

		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL:  envutil.Seconds("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL: envutil.Seconds("REFRESH_TOKEN_TTL", 24*time.Hour),

		Timezone:       envutil.String("APP_TIMEZONE", "UTC"),
		AllowedOrigins: envutil.List("CORS_ALLOWED_ORIGINS", middleware.DefaultAllowedOrigins),
		AvatarFontPath: envutil.String("AVATAR_FONT_PATH", ""),

		DB: db.Config{
			Driver:     envutil.String("DB_DRIVER", db.DriverPostgres),
			DSN:        envutil.String("DB_DSN", ""),
			Host:       envutil.String("POSTGRES_HOST", "localhost"),
			Port:       envutil.String("POSTGRES_PORT", "5432"),
			User:       envutil.String("POSTGRES_USER", "postgres"),
			Password:   envutil.String("POSTGRES_PASSWORD", ""),
			Name:       envutil.String("POSTGRES_NAME", "moodlog"),
			SQLitePath: envutil.String("SQLITE_PATH", "moodlog.db"),
		},
		Gemini: gemini.Config{
			APIKey:  envutil.String("GEMINI_API_KEY", ""),
			APIURL:  envutil.String("GEMINI_API_URL", ""),
			Timeout: envutil.Seconds("GEMINI_TIMEOUT_SECONDS", gemini.DefaultTimeout),
		},

		Redis: cache.RedisConfig{
			Addr:     envutil.String("REDIS_ADDR", ""),
			Password: envutil.String("REDIS_PASSWORD", ""),
			DB:       envutil.Int("REDIS_DB", 0),
			Prefix:   envutil.String("REDIS_PREFIX", ""),
		},
		EmotionCacheTTL: envutil.Seconds("EMOTION_CACHE_TTL", 10*time.Minute),

		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "moodlog"),
			Environment: envutil.String("OTEL_ENVIRONMENT", ""),
			Version:     envutil.String("OTEL_SERVICE_VERSION", ""),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: envutil.Float("OTEL_SAMPLE_RATIO", 1),
		},
	}

	path := envutil.String("CONFIG_FILE", "")
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %q: %w", path, err)
	}
	if log != nil {
		log.Info("Config file applied", "path", path)
	}
	return cfg, nil
}
