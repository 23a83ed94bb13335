// Package server initializes and runs the jogging tracker server.
// It picks the storage backend, applies migrations, bootstraps the admin
// account, handles graceful shutdown and starts the gRPC endpoint.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/joggingtracker/internal/logging"
	"github.com/dmitrijs2005/joggingtracker/internal/server/auth"
	"github.com/dmitrijs2005/joggingtracker/internal/server/config"
	"github.com/dmitrijs2005/joggingtracker/internal/server/metrics"
	"github.com/dmitrijs2005/joggingtracker/internal/server/ops"
	"github.com/dmitrijs2005/joggingtracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/joggingtracker/internal/server/services"

	gs "github.com/dmitrijs2005/joggingtracker/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	manager     repomanager.RepositoryManager
	metrics     *metrics.Metrics
	gate        *auth.Gate
	tokens      *services.TokenService
	records     *services.RecordStore
	userService *services.UserService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(c.LogLevel, c.LogFormat)

	codec, err := auth.NewTokenCodec([]byte(c.SecretKey), c.TokenIssuer, c.TokenAudience, c.AccessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token codec init error: %w", err)
	}

	m, err := newRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	dir, err := services.NewIdentityDirectory(m, c.BcryptCost)
	if err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("identity directory init error: %w", err)
	}

	app := &App{
		config:      c,
		logger:      logger,
		manager:     m,
		metrics:     metrics.New(),
		gate:        auth.NewGate(codec),
		tokens:      services.NewTokenService(dir, codec, c.SessionCookieName, logger),
		records:     services.NewRecordStore(m, logger),
		userService: services.NewUserService(dir, logger),
	}

	if err := app.bootstrapAdmin(ctx); err != nil {
		_ = m.Close()
		return nil, err
	}

	return app, nil
}

func newRepositoryManager(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
	if dsn == "" {
		return repomanager.NewInMemoryRepositoryManager(), nil
	}
	db, err := repomanager.OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return repomanager.NewPostgresRepositoryManager(db), nil
}

func (app *App) bootstrapAdmin(ctx context.Context) error {
	if r := app.userService.EnsureRoles(ctx); !r.Ok() {
		return fmt.Errorf("role bootstrap error: %s", r.Message())
	}
	if app.config.AdminUserName == "" || app.config.AdminPassword == "" {
		return nil
	}
	r := app.userService.EnsureAdmin(ctx, app.config.AdminUserName, app.config.AdminPassword)
	if !r.Ok() {
		return fmt.Errorf("admin bootstrap error: %s", r.Message())
	}
	app.logger.Info(ctx, "admin account ready", "username", app.config.AdminUserName)
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.gate, app.tokens, app.records, app.userService)
	s.Use(app.metrics.UnaryServerInterceptor())

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startOpsServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := ops.NewServer(app.config.MetricsAddr, app.logger, app.metrics.Handler(), app.manager)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startOpsServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "closing storage", "error", err)
	}
}
