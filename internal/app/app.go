package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/projectgate-backend/internal/http"
	"github.com/yungbote/projectgate-backend/internal/platform/db"
	"github.com/yungbote/projectgate-backend/internal/platform/envutil"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

type App struct {
	Log    *logger.Logger
	Cfg    Config
	DB     *gorm.DB
	Router *http.Server

	Repos      Repos
	Clients    Clients
	Services   Services
	Handlers   Handlers
	Middleware Middleware
}

func New() (*App, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	theDB := pg.DB()

	clients, err := wireClients(log)
	if err != nil {
		return nil, fmt.Errorf("wire clients: %w", err)
	}

	repoSet := wireRepos(theDB, log)
	serviceSet := wireServices(theDB, log, cfg, repoSet, clients)
	handlerSet := wireHandlers(log, serviceSet)
	mw := wireMiddleware(log, serviceSet)
	router := wireRouter(log, handlerSet, mw)

	return &App{
		Log:        log,
		Cfg:        cfg,
		DB:         theDB,
		Router:     router,
		Repos:      repoSet,
		Clients:    clients,
		Services:   serviceSet,
		Handlers:   handlerSet,
		Middleware: mw,
	}, nil
}

func (a *App) Run() error {
	a.Log.Info("Starting http server", "addr", a.Cfg.HTTPAddr)
	return a.Router.Run(a.Cfg.HTTPAddr)
}

func (a *App) Close() {
	if a.Clients.Speech != nil {
		if err := a.Clients.Speech.Close(); err != nil {
			a.Log.Warn("closing speech client", "error", err)
		}
	}
	if a.Clients.Cache != nil {
		if err := a.Clients.Cache.Close(); err != nil {
			a.Log.Warn("closing redis cache", "error", err)
		}
	}
	a.Log.Sync()
}
