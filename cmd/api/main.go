package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jofra02/proyecto-ventas/internal/application/ports"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
	"github.com/jofra02/proyecto-ventas/internal/infrastructure/cache"
	"github.com/jofra02/proyecto-ventas/internal/infrastructure/memory"
	"github.com/jofra02/proyecto-ventas/internal/infrastructure/postgres"
	"github.com/jofra02/proyecto-ventas/pkg/config"
	"github.com/jofra02/proyecto-ventas/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	level := cfg.App.LogLevel
	if level == "" {
		level = "info"
		if cfg.App.Env == "development" {
			level = "debug"
		}
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageBackend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var store storage
	switch cfg.App.StorageBackend {
	case config.StorageMemory:
		mem := memory.New()
		store = storage{tx: mem, repos: mem.Repos(), analytics: mem.Analytics()}
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		store = storage{
			tx:        postgres.NewTxRunner(pool),
			repos:     postgres.NewRepos(pool),
			analytics: postgres.NewAnalyticsRepository(pool),
		}
	}

	// Caché de analítica opcional: sin REDIS_ADDR las lecturas van directo a la base.
	if cfg.Redis.Addr != "" {
		client, err := cache.NewClient(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, analítica sin caché")
		} else {
			defer func() { _ = client.Close() }()
			store.cache = cache.NewAnalyticsCache(client, time.Duration(cfg.Analytics.CacheTTLSeconds)*time.Second)
		}
	}

	app, err := newServer(cfg, log, store)
	if err != nil {
		log.Fatal().Err(err).Msg("armar servidor")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// storage backend elegido por STORAGE_BACKEND.
type storage struct {
	tx        ports.TxRunner
	repos     repository.Repos
	analytics repository.AnalyticsRepository
	cache     *cache.AnalyticsCache // nil = sin caché
}
