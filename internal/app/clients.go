package app

import (
	"context"

	"github.com/yungbote/moodlog-backend/internal/platform/avatar"
	"github.com/yungbote/moodlog-backend/internal/platform/cache"
	"github.com/yungbote/moodlog-backend/internal/platform/gemini"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

type Clients struct {
	Gemini  gemini.Client
	Cache   cache.Cache
	Avatars *avatar.Renderer
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	avatars, err := avatar.NewRenderer(cfg.AvatarFontPath)
	if err != nil {
		return Clients{}, err
	}

	var c cache.Cache
	if cfg.Redis.Addr == "" {
		log.Info("REDIS_ADDR not set; using in-process taxonomy cache")
		c = cache.NewMemory()
	} else {
		c, err = cache.NewRedis(ctx, log, cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable; taxonomy cache disabled", "addr", cfg.Redis.Addr, "error", err)
			c = cache.NewNop()
		}
	}

	return Clients{
		Gemini:  gemini.NewClient(log, cfg.Gemini),
		Cache:   c,
		Avatars: avatars,
	}, nil
}

func (c Clients) Close() {
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
}
