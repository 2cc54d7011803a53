package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"biocard-backend/internal/accounts"
	"biocard-backend/internal/assets"
	googleauth "biocard-backend/internal/auth"
	"biocard-backend/internal/profiles"
	"biocard-backend/internal/shared/cache"
	"biocard-backend/internal/shared/config"
	"biocard-backend/internal/shared/server"
	"biocard-backend/internal/shared/storage/db"
	"biocard-backend/internal/system"
)

// App holds the wired application graph.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	AssetStore      assets.Store
	Cache           cache.Cache
	AccountsRepo    accounts.Repo
	ProfilesRepo    profiles.Repo
	AccountsService *accounts.Service
	ProfilesService *profiles.Service
	AccountsHandler *accounts.Handler
	ProfilesHandler *profiles.Handler
	SystemHandler   *system.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares the full dependency graph and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Cache:  buildCache(cfg),
	}

	buildServices(app)

	if err := app.AccountsService.EnsureRoot(ctx, cfg.RootUsername, cfg.RootPassword); err != nil {
		return nil, fmt.Errorf("ensure root account: %w", err)
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		Validator:       app.AccountsService,
		AccountsHandler: app.AccountsHandler,
		ProfilesHandler: app.ProfilesHandler,
		SystemHandler:   app.SystemHandler,
		GoogleAuth:      app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildCache(cfg config.Config) cache.Cache {
	if cfg.CacheBackend == "redis" && cfg.RedisAddr != "" {
		return cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	}
	return cache.NewMemory()
}

func buildServices(app *App) {
	cfg := app.Config

	var accountsRepo accounts.Repo
	var profilesRepo profiles.Repo
	var assetStore assets.Store

	if app.DB != nil {
		accountsRepo = accounts.NewPGRepo(app.DB)
		profilesRepo = &profiles.PGRepo{DB: app.DB}
		assetStore = assets.NewPGStore(app.DB)
	} else {
		memStore := assets.NewMemoryStore()
		accountsRepo = accounts.NewMemoryRepo()
		profilesRepo = profiles.NewMemoryRepo(memStore)
		assetStore = memStore
	}

	lifecycle := &profiles.Lifecycle{
		Store:  assetStore,
		Policy: assets.NewPolicy(cfg.AssetMaxBytes, cfg.AssetAllowedTypes),
	}

	profilesSvc := &profiles.Service{
		Repo:      profilesRepo,
		Store:     assetStore,
		Lifecycle: lifecycle,
		Cache:     app.Cache,
		CacheTTL:  cfg.CacheTTL,
	}

	accountsSvc := accounts.NewService(accountsRepo, profilesSvc)

	app.AssetStore = assetStore
	app.AccountsRepo = accountsRepo
	app.ProfilesRepo = profilesRepo
	app.ProfilesService = profilesSvc
	app.AccountsService = accountsSvc
	app.ProfilesHandler = profiles.NewHandler(profilesSvc)
	app.AccountsHandler = accounts.NewHandler(accountsSvc)
	app.SystemHandler = system.NewHandler(profilesSvc, cfg.Env)
	app.GoogleAuth = googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		accountsSvc,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
