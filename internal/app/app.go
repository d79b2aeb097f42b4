package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/orgdrive/orgdrive/internal/config"
	"github.com/orgdrive/orgdrive/internal/db"
	"github.com/orgdrive/orgdrive/internal/repository"
	"github.com/orgdrive/orgdrive/internal/service"
	"github.com/orgdrive/orgdrive/internal/storage"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	IdentityService *service.IdentityService
	FileService     *service.FileService
	FavoriteService *service.FavoriteService
	Sweeper         *service.Sweeper
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	fileRepository := repository.NewFileRepository(database)
	favoriteRepository := repository.NewFavoriteRepository(database)

	// Storage
	blobStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	retry := service.RetryPolicy{MaxAttempts: cfg.StoreRetryMax, Base: cfg.StoreRetryBase}
	identityService := service.NewIdentityService(userRepository, retry)
	fileService := service.NewFileService(fileRepository, blobStorage, cfg.FileNameMaxLen, retry)
	favoriteService := service.NewFavoriteService(favoriteRepository, fileRepository, retry)
	sweeper := service.NewSweeper(fileRepository, fileService, cfg.SweepInterval, cfg.SweepPageSize, cfg.SweepMaxPages)

	return &App{
		Cfg:             cfg,
		DB:              database,
		IdentityService: identityService,
		FileService:     fileService,
		FavoriteService: favoriteService,
		Sweeper:         sweeper,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
