// @title                       Todo Service API
// @version                     1.0
// @description                 Multi-user todo service with JWT authentication and role-based access.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	_ "github.com/todoapp/todo-service/docs"
	"github.com/todoapp/todo-service/internal/api"
	"github.com/todoapp/todo-service/internal/core/ports"
	"github.com/todoapp/todo-service/internal/core/security"
	"github.com/todoapp/todo-service/internal/core/service"
	"github.com/todoapp/todo-service/internal/infrastructure/db/memory"
	"github.com/todoapp/todo-service/internal/infrastructure/db/mongo"
	"github.com/todoapp/todo-service/internal/infrastructure/db/redis"
	"github.com/todoapp/todo-service/internal/infrastructure/queue"
	"github.com/todoapp/todo-service/internal/pkg/config"
	"github.com/todoapp/todo-service/pkg/logger"
)

type repositories struct {
	users  ports.UserRepository
	todos  ports.TodoRepository
	events ports.AuthEventRepository
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.Init(logger.Options{Pretty: true, Service: "todo-service"})
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "todo-service",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	var (
		repos repositories
		db    *mongodriver.Database
	)
	switch cfg.Store {
	case config.StoreMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		repos = repositories{
			users:  memory.NewUserRepository(),
			todos:  memory.NewTodoRepository(),
			events: memory.NewAuthEventRepository(),
		}
	default:
		store, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := store.Close(closeCtx); err != nil {
				log.Warn().Err(err).Msg("mongo close failed")
			}
		}()
		db = store.Database()
		repos = repositories{users: store.Users, todos: store.Todos, events: store.Events}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	}

	// --- Login throttle ---
	var (
		throttle ports.LoginThrottle
		rdb      *goredis.Client
	)
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer client.Close()
		rdb = client
		throttle = redis.NewLoginThrottle(rdb, cfg.Auth.MaxAttempts, cfg.Auth.LoginWindow)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	} else {
		throttle = memory.NewLoginThrottle(cfg.Auth.MaxAttempts, cfg.Auth.LoginWindow)
	}

	// --- Security ---
	tokenCfg := security.TokenConfig{Secret: []byte(cfg.Auth.JWTSecret), Algorithm: cfg.Auth.JWTAlgorithm}
	issuer, err := security.NewIssuer(tokenCfg)
	if err != nil {
		return err
	}
	verifier, err := security.NewVerifier(tokenCfg)
	if err != nil {
		return err
	}
	hasher := security.NewHasher(cfg.Auth.BcryptCost)

	// --- Audit pipeline ---
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	audit := service.NewAuditService(repos.events, logger.Component("audit"))
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, audit, logger.Component("dispatcher"))
	dispatcher.Start(workerCtx)
	defer func() {
		cancelWorkers()
		dispatcher.Wait()
	}()

	// --- Services ---
	authSvc := service.NewAuthService(repos.users, hasher, issuer, cfg.Auth.TokenTTL, logger.Component("auth"),
		service.WithLoginThrottle(throttle),
		service.WithAuditSink(dispatcher),
	)

	e := api.NewRouter(api.Deps{
		Auth:         authSvc,
		Users:        service.NewUserService(repos.users, hasher, dispatcher, logger.Component("user")),
		Todos:        service.NewTodoService(repos.todos, logger.Component("todo")),
		Admin:        service.NewAdminService(repos.todos, logger.Component("admin")),
		Verifier:     verifier,
		TokenTTL:     cfg.Auth.TokenTTL,
		CookieSecure: cfg.CookieSecure,
		Mongo:        db,
		Redis:        rdb,
	}, logger.Component("http"))

	// --- Serve ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
