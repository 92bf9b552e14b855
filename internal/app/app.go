package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/moodlog-backend/internal/data/db"
	apphttp "github.com/yungbote/moodlog-backend/internal/http"
	"github.com/yungbote/moodlog-backend/internal/observability"
	"github.com/yungbote/moodlog-backend/internal/platform/envutil"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients

	dbService    *db.Service
	otelShutdown func(context.Context) error
}

// Bootstrap builds the logger and loads config. Every entrypoint starts here.
func Bootstrap() (*logger.Logger, Config, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, Config{}, fmt.Errorf("init logger: %w", err)
	}
	log.Info("Loading environment variables...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, Config{}, err
	}
	return log, cfg, nil
}

// OpenDB connects using cfg.DB and brings the schema up to date.
func OpenDB(log *logger.Logger, cfg Config) (*db.Service, error) {
	svc, err := db.NewService(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}
	if err := db.AutoMigrateAll(svc.DB()); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("db automigrate: %w", err)
	}
	return svc, nil
}

func New(ctx context.Context) (*App, error) {
	log, cfg, err := Bootstrap()
	if err != nil {
		return nil, err
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)

	dbService, err := OpenDB(log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}
	theDB := dbService.DB()

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, fmt.Errorf("init clients: %w", err)
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, clients)
	handlerset := wireHandlers(theDB, log, serviceset, clients)
	middleware := wireMiddleware(log, serviceset)
	router := wireRouter(log, cfg, handlerset, middleware)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Clients:      clients,
		dbService:    dbService,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("HTTP server listening", "addr", a.Cfg.HTTPAddr)
	return apphttp.NewServer(a.Router, a.Cfg.HTTPAddr).Run(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil && a.Log != nil {
			a.Log.Warn("db close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
