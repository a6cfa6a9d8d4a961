package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	auth_service "blog-service/internal/application/service/auth"
	post_service "blog-service/internal/application/service/post"
	user_service "blog-service/internal/application/service/user"
	ports "blog-service/internal/domain/ports/output"
	post_repository "blog-service/internal/domain/ports/output/post"
	user_repository "blog-service/internal/domain/ports/output/user"
	"blog-service/internal/infrastructure/config"
	delivery_http "blog-service/internal/infrastructure/inbound/http"
	auth_http "blog-service/internal/infrastructure/inbound/http/auth"
	post_http "blog-service/internal/infrastructure/inbound/http/post"
	user_http "blog-service/internal/infrastructure/inbound/http/user"
	metrics_server "blog-service/internal/infrastructure/inbound/metrics"
	"blog-service/internal/infrastructure/logger"
	prometheus_metrics "blog-service/internal/infrastructure/outbound/metrics/prometheus"
	post_memory "blog-service/internal/infrastructure/outbound/repository/post/memory"
	post_postgres "blog-service/internal/infrastructure/outbound/repository/post/postgres"
	"blog-service/internal/infrastructure/outbound/repository/postgres"
	user_memory "blog-service/internal/infrastructure/outbound/repository/user/memory"
	user_postgres "blog-service/internal/infrastructure/outbound/repository/user/postgres"
	token_jwt "blog-service/internal/infrastructure/outbound/token/jwt"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API and the metrics server",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "skip-migrations",
				Usage: "Do not apply pending migrations on startup",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := config.MustLoad(c.String("config"))
			return serve(c.Context, cfg, !c.Bool("skip-migrations"))
		},
	}
}

type stores struct {
	users user_repository.Repository
	posts post_repository.Repository
	close func()
}

func openStores(ctx context.Context, cfg *config.Config, migrate bool, log ports.Logger, metrics ports.MetricsProvider) (*stores, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("Using in-memory store, data is lost on restart")
		return &stores{
			users: user_memory.NewUserRepository(log),
			posts: post_memory.NewPostRepository(log),
			close: func() {},
		}, nil
	}

	dsn := cfg.Database.DSN()
	if migrate {
		if err := postgres.MigrateUp(dsn, log); err != nil {
			return nil, err
		}
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	if cfg.Database.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Database.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &stores{
		users: user_postgres.NewUserRepository(pool, log, metrics),
		posts: post_postgres.NewPostRepository(pool, log, metrics),
		close: pool.Close,
	}, nil
}

func serve(ctx context.Context, cfg *config.Config, migrate bool) error {
	log := logger.New(cfg.Env)
	metrics := prometheus_metrics.NewPrometheusMetricsProvider()

	st, err := openStores(ctx, cfg, migrate, log, metrics)
	if err != nil {
		log.Error("Failed to open store", slog.String("error", err.Error()))
		return err
	}
	defer st.close()

	validate := validator.New()
	tokens := token_jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)

	userService := user_service.NewUserService(st.users, log, metrics, cfg.Auth.BcryptCost)
	postService := post_service.NewPostService(st.posts, st.users, log, metrics)
	authService := auth_service.NewAuthService(st.users, log)

	passwordStrategy := auth_http.NewPasswordStrategy(authService, log, metrics)
	tokenStrategy := auth_http.NewTokenStrategy(tokens, log, metrics)

	routes := delivery_http.Routes(
		auth_http.NewAPI(passwordStrategy, tokens, log),
		user_http.NewAPI(userService, validate, log),
		post_http.NewAPI(postService, validate, log),
	)
	router := delivery_http.NewRouter(routes, delivery_http.NewGate(tokenStrategy, log), log, metrics)

	httpServer := delivery_http.NewServer(router,
		cfg.HTTPServer.Address, cfg.HTTPServer.Port,
		cfg.HTTPServer.ReadTimeout, cfg.HTTPServer.WriteTimeout, log)
	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	metrics.SetServiceHealth(true)

	errs := make(chan error, 2)
	go func() { errs <- httpServer.Run() }()
	go func() { errs <- metricsServer.Run() }()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down servers...")
	case runErr = <-errs:
		if runErr != nil {
			log.Error("Server error", slog.String("error", runErr.Error()))
		}
	}

	metrics.SetServiceHealth(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	log.Info("Server exited")
	return runErr
}
