package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/bossygit/vibes-arc-sub000/internal/adapters/cache"
	adapterHTTP "github.com/bossygit/vibes-arc-sub000/internal/adapters/handler/http"
	"github.com/bossygit/vibes-arc-sub000/internal/adapters/repository"
	"github.com/bossygit/vibes-arc-sub000/internal/config"
	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
	"github.com/bossygit/vibes-arc-sub000/internal/core/services"
	"github.com/bossygit/vibes-arc-sub000/internal/core/workers"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// app holds the wired storage and services shared by every command.
type app struct {
	cfg *config.Config
	db  *sqlx.DB
	rdb *redis.Client

	habitRepo    domain.HabitRepository
	identityRepo domain.IdentityRepository
	tx           domain.Transactor

	habits     *services.HabitService
	identities *services.IdentityService
	reports    *services.ReportService
	backups    *services.BackupService
	exports    *workers.ExportWorker
}

func connectDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	log.WithFields(log.Fields{"host": cfg.DBHost, "db": cfg.DBName}).Info("Connecting to database...")

	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := repository.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	log.Info("Database connected successfully.")
	return db, nil
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := connectDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.habitRepo = repository.NewPostgresHabitRepository(db)
		a.identityRepo = repository.NewPostgresIdentityRepository(db)
		a.tx = repository.NewPostgresTransactor(db)
	default:
		log.Warn("Using in-memory storage, data is lost on exit")
		a.habitRepo = repository.NewInMemoryHabitRepository()
		a.identityRepo = repository.NewInMemoryIdentityRepository()
	}

	if cfg.CacheEnabled() {
		rdb, err := cache.NewRedisClient(cache.Options{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			// the cache is optional; reports read the store directly
			log.WithError(err).Warn("[CACHE] Redis unavailable, running without cache")
		} else {
			a.rdb = rdb
			a.habitRepo = repository.NewCachedHabitRepository(a.habitRepo, rdb)
			a.identityRepo = repository.NewCachedIdentityRepository(a.identityRepo, rdb)
			if a.tx != nil {
				a.tx = repository.NewCachedTransactor(a.tx, rdb)
			}
		}
	}

	cal := cfg.Calendar()
	a.habits = services.NewHabitService(a.habitRepo, a.identityRepo, cal)
	a.identities = services.NewIdentityService(a.identityRepo, a.habitRepo)
	a.reports = services.NewReportService(a.habitRepo, a.identityRepo, cal, cfg.ReportDefaultDays)
	a.backups = services.NewBackupService(a.habitRepo, a.identityRepo)
	if a.tx != nil {
		a.backups.WithTransactor(a.tx)
	}
	a.exports = workers.NewExportWorker(a.reports, cfg.ExportDir)

	return a, nil
}

func (a *app) router(startTime time.Time) *gin.Engine {
	deps := adapterHTTP.RouterDependencies{
		HabitHandler:    adapterHTTP.NewHabitHandler(a.habits),
		IdentityHandler: adapterHTTP.NewIdentityHandler(a.identities),
		ReportHandler:   adapterHTTP.NewReportHandler(a.reports, a.backups, a.exports),
		Redis:           a.rdb,
		RateLimit: adapterHTTP.RateLimit{
			Requests: a.cfg.RateLimitRequests,
			Window:   a.cfg.RateLimitWindow,
		},
		StartTime: startTime,
	}
	if a.db != nil {
		deps.DB = a.db
	}

	return adapterHTTP.NewRouter(deps)
}

func (a *app) Close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			log.WithError(err).Warn("[CACHE] Failed to close Redis client")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.WithError(err).Warn("Failed to close database")
		}
	}
}
