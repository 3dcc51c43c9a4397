// internal/app/app.go

// Package app wires configuration into the store, lifecycle service,
// renderer and HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/arbeit-tech/billing-service/internal/api"
	"github.com/arbeit-tech/billing-service/internal/config"
	"github.com/arbeit-tech/billing-service/internal/logger"
	"github.com/arbeit-tech/billing-service/pkg/lifecycle"
	"github.com/arbeit-tech/billing-service/pkg/render"
	"github.com/arbeit-tech/billing-service/pkg/store"
)

// ErrNotPostgres is returned by Migrate for stores without a schema.
var ErrNotPostgres = errors.New("migrate requires STORE_DRIVER=postgres")

// App holds the wired backends for one process.
type App struct {
	Config    *config.Config
	Store     store.Store
	Service   *lifecycle.Service
	Publisher *render.Publisher

	closers []io.Closer
}

// New opens the configured backends. Close releases them.
func New(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	log := logger.WithComponent("app")
	a := &App{Config: cfg}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	a.Store, err = openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.Store)
	log.Info().Str("driver", cfg.StoreDriver).Msg("store opened")

	opts := []lifecycle.Option{lifecycle.WithLogger(logger.WithComponent("lifecycle"))}
	if cfg.SequenceBackend == config.SequenceRedis {
		client, err := store.NewRedisClient(ctx, cfg.RedisCfg.Addr(), cfg.RedisCfg.Password, cfg.RedisCfg.DB)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client)
		opts = append(opts, lifecycle.WithSequencer(store.NewRedisSequencer(client, store.WithSeed(a.Store))))
		log.Info().Str("addr", cfg.RedisCfg.Addr()).Msg("using redis sequencer")
	}
	a.Service = lifecycle.NewService(a.Store, opts...)

	fileOpts := []render.FileStoreOption{render.WithFileLogger(logger.WithComponent("artifacts"))}
	if cfg.S3Cfg.Bucket != "" {
		mirror, err := render.NewS3Mirror(cfg.S3Cfg.Region, cfg.S3Cfg.Bucket, cfg.S3Cfg.Prefix)
		if err != nil {
			return nil, err
		}
		fileOpts = append(fileOpts, render.WithMirror(mirror))
		log.Info().Str("bucket", cfg.S3Cfg.Bucket).Msg("mirroring artifacts to s3")
	}

	renderer := render.NewRenderer(render.WithBrand(cfg.BrandName), render.WithContact(cfg.BrandContact))
	a.Publisher = render.NewPublisher(a.Service, renderer, render.NewFileStore(cfg.PDFDir, fileOpts...))

	return a, nil
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return store.NewMemory(), nil
	case config.StorePostgres:
		db, err := store.OpenPostgres(ctx, cfg.PostgresCfg.ConnString())
		if err != nil {
			return nil, err
		}
		pg, err := store.NewPostgres(db, store.WithLogger(logger.WithComponent("postgres")))
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return pg, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// Server builds the HTTP server. Email delivery is logged only.
func (a *App) Server() *api.Server {
	return api.NewServer(a.Service, a.Publisher, api.NewLogMailer(logger.WithComponent("mailer")), logger.WithComponent("http"))
}

// Migrate applies the database schema.
func (a *App) Migrate(ctx context.Context) error {
	pg, ok := a.Store.(*store.Postgres)
	if !ok {
		return ErrNotPostgres
	}
	return pg.Migrate(ctx)
}

// Close releases backends in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
