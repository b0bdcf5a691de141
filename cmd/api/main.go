package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ouvidoriasenai/portal/internal/config"
	"github.com/ouvidoriasenai/portal/internal/db"
	internalhttp "github.com/ouvidoriasenai/portal/internal/http"
	"github.com/ouvidoriasenai/portal/internal/kv"
	"github.com/ouvidoriasenai/portal/internal/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("portal encerrado com erro")
	}
}

func run() error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx := context.Background()

	backend, fechar, err := montarBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer fechar()

	var uploader storage.Uploader = storage.NoopUploader{}
	if cfg.AnexoDir != "" {
		uploader, err = storage.NewLocalUploader(cfg.AnexoDir, cfg.AnexoBaseURL)
		if err != nil {
			return err
		}
	}

	handler := internalhttp.NewRouter(cfg, backend, uploader)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("driver", cfg.StorageDriver).Msgf("portal de ouvidoria ouvindo em :%d", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("encerrando...")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// montarBackend escolhe o store de blobs conforme STORAGE_DRIVER.
func montarBackend(ctx context.Context, cfg *config.Config) (kv.Store, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("redis parse: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return kv.NewRedisStore(client, "ouvidoria"), func() { _ = client.Close() }, nil

	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("db: %w", err)
		}
		store, err := kv.NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil

	default:
		return kv.NewMemoryStore(), func() {}, nil
	}
}
