package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "9090")
	t.Setenv("ACCESS_TOKEN_TTL", "60")
	t.Setenv("GEMINI_TIMEOUT_SECONDS", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := LoadConfig(logger.Nop())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("LoadConfig: addr = %q", cfg.HTTPAddr)
	}
	if cfg.AccessTokenTTL != time.Minute {
		t.Fatalf("LoadConfig: access ttl = %s", cfg.AccessTokenTTL)
	}
	if cfg.Gemini.Timeout != 5*time.Second {
		t.Fatalf("LoadConfig: gemini timeout = %s", cfg.Gemini.Timeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("LoadConfig: origins = %v", cfg.AllowedOrigins)
	}
	if cfg.DB.Driver != "sqlite" {
		t.Fatalf("LoadConfig: driver = %q", cfg.DB.Driver)
	}
}

func TestLoadConfigFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moodlog.yaml")
	body := `
timezone: America/New_York
emotion_cache_ttl: 30s
gemini:
  api_key: from-file
db:
  driver: sqlite
  sqlite_path: /tmp/overlay.db
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET_KEY", "env-secret")
	t.Setenv("GEMINI_API_KEY", "from-env")

	cfg, err := LoadConfig(logger.Nop())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Gemini.APIKey != "from-file" {
		t.Fatalf("LoadConfig: file should override env, got %q", cfg.Gemini.APIKey)
	}
	if cfg.JWTSecretKey != "env-secret" {
		t.Fatalf("LoadConfig: env value lost, got %q", cfg.JWTSecretKey)
	}
	if cfg.EmotionCacheTTL != 30*time.Second {
		t.Fatalf("LoadConfig: cache ttl = %s", cfg.EmotionCacheTTL)
	}
	if cfg.DB.SQLitePath != "/tmp/overlay.db" {
		t.Fatalf("LoadConfig: sqlite path = %q", cfg.DB.SQLitePath)
	}
	if cfg.Location().String() != "America/New_York" {
		t.Fatalf("Location: got %s", cfg.Location())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := LoadConfig(logger.Nop()); err == nil {
		t.Fatalf("LoadConfig: expected error for missing file")
	}
}

func TestLocationFallback(t *testing.T) {
	if loc := (Config{Timezone: "Not/AZone"}).Location(); loc != time.UTC {
		t.Fatalf("Location: got %s", loc)
	}
}
