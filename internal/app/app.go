package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taskvest/taskvest/internal/config"
	"github.com/taskvest/taskvest/internal/handlers"
	"github.com/taskvest/taskvest/internal/pg"
	"github.com/taskvest/taskvest/internal/repo"
	"github.com/taskvest/taskvest/internal/repo/memory"
	"github.com/taskvest/taskvest/internal/service"
	"github.com/taskvest/taskvest/internal/verifier"
	"github.com/taskvest/taskvest/pkg/clients"
	"github.com/taskvest/taskvest/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories
	vrf  *verifier.Client

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		zap.L().Error("unknown time zone: ", zap.Error(err))
		return fmt.Errorf("can't load time zone %q: %w", cfg.TimeZone, err)
	}

	a.cfg = cfg
	a.vrf = verifier.New(cfg, clients.NewHTTPClient())

	var txManager pg.TXManager
	if cfg.DemoMode {
		zap.L().Info("demo mode enabled, using in-memory fixture store")
		a.repo = memory.New().Repositories()
		txManager = memory.TXManager{}
	} else {
		var pool *pgxpool.Pool
		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			pool, err = getPgxpool(gCtx, cfg)
			if err != nil {
				return fmt.Errorf("can't build pgx pool: %w", err)
			}
			if err = pg.RunMigrations(pool); err != nil {
				return fmt.Errorf("can't run migrations: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			if err := a.vrf.Ping(gCtx); err != nil {
				return fmt.Errorf("verification service unreachable: %w", err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			zap.L().Error("startup checks failed: ", zap.Error(err))
			return err
		}
		a.repo = repo.New(pg.New(pool))
		txManager = pg.NewTXManager(pool)
	}

	a.srv = service.New(a.repo, a.vrf, txManager, loc)
	a.api = handlers.New(a.srv)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
