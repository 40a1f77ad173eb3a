package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	natsclient "github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"github.com/0xsj/overwatch-pkg/log"

	cataloggrpc "github.com/0xsj/overwatch-mediator/internal/adapter/inbound/grpc"
	natsrpc "github.com/0xsj/overwatch-mediator/internal/adapter/inbound/nats"
	natsadapter "github.com/0xsj/overwatch-mediator/internal/adapter/outbound/nats"
	"github.com/0xsj/overwatch-mediator/internal/adapter/outbound/postgres"
	rediscache "github.com/0xsj/overwatch-mediator/internal/adapter/outbound/redis"
	"github.com/0xsj/overwatch-mediator/internal/app"
	"github.com/0xsj/overwatch-mediator/internal/config"
	"github.com/0xsj/overwatch-mediator/pkg/mediator"
	"github.com/0xsj/overwatch-mediator/pkg/registry"
	"github.com/0xsj/overwatch-mediator/pkg/validation"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := log.NewPretty(log.DefaultConfig())

	logger.Info("starting catalog service",
		log.String("version", "1.0.0"),
		log.String("address", cfg.Server.Address()),
	)

	// Connect to PostgreSQL
	pool, err := connectPostgres(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Connect to Redis
	redisClient, err := connectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	// Connect to NATS
	natsConn, err := connectNATS(cfg.NATS, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to nats: %w", err)
	}
	defer natsConn.Close()

	// Register handlers
	reg := registry.New()
	if err := app.Register(reg, app.Dependencies{
		ItemRepo:  postgres.NewItemRepository(pool),
		ItemCache: rediscache.NewItemCache(redisClient, cfg.Cache.ItemTTL),
		Publisher: natsadapter.NewEventPublisher(natsConn, cfg.NATS.SubjectPrefix),
	}); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}

	// Register validators
	pipeline := validation.NewPipeline(validation.Options{
		FailOnError: cfg.Validation.FailOnError,
		RunAll:      cfg.Validation.RunAll,
	}, validation.WithLogger(logger))
	app.RegisterValidators(pipeline)

	dispatcher := mediator.New(reg,
		mediator.WithLogger(logger),
		mediator.WithValidation(pipeline),
	)

	logger.Info("mediator ready", log.Any("handlers", reg.Len()))

	// Initialize gRPC server
	serverCfg := cataloggrpc.ServerConfig{
		Host:              cfg.Server.Host,
		Port:              cfg.Server.Port,
		EnableReflection:  cfg.Server.EnableReflection,
		EnableHealthCheck: cfg.Server.EnableHealthCheck,
	}

	server, err := cataloggrpc.NewServer(
		serverCfg,
		cataloggrpc.NewHandler(cataloggrpc.HandlerConfig{
			Dispatcher: dispatcher,
			Logger:     logger,
		}),
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create grpc server: %w", err)
	}

	// Initialize NATS request server
	var rpcServer *natsrpc.Server
	if cfg.NATS.EnableRPC {
		rpcServer = natsrpc.NewServer(natsrpc.ServerConfig{
			SubjectPrefix:  cfg.NATS.RPCPrefix,
			QueueGroup:     cfg.NATS.RPCQueue,
			RequestTimeout: cfg.NATS.RPCTimeout,
		}, natsConn, dispatcher, logger)

		if err := rpcServer.Start(); err != nil {
			return fmt.Errorf("failed to start nats request server: %w", err)
		}
	}

	// Handle graceful shutdown
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("catalog service started", log.String("address", serverCfg.Address()))

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.Info("received shutdown signal", log.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if rpcServer != nil {
			if err := rpcServer.Stop(); err != nil {
				logger.Warn("failed to drain nats request server", log.String("error", err.Error()))
			}
		}

		if err := server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}

		logger.Info("catalog service stopped gracefully")
		return nil
	}
}

func connectPostgres(ctx context.Context, cfg config.DatabaseConfig, logger log.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("connected to postgres",
		log.String("host", cfg.Host),
		log.String("database", cfg.Database),
	)

	return pool, nil
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, logger log.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("connected to redis",
		log.String("address", cfg.Address()),
	)

	return client, nil
}

func connectNATS(cfg config.NATSConfig, logger log.Logger) (*natsclient.Conn, error) {
	opts := []natsclient.Option{
		natsclient.MaxReconnects(cfg.MaxReconnects),
		natsclient.ReconnectWait(cfg.ReconnectWait),
		natsclient.DisconnectErrHandler(func(nc *natsclient.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", log.String("error", err.Error()))
			}
		}),
		natsclient.ReconnectHandler(func(nc *natsclient.Conn) {
			logger.Info("nats reconnected", log.String("url", nc.ConnectedUrl()))
		}),
	}

	conn, err := natsclient.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	logger.Info("connected to nats",
		log.String("url", conn.ConnectedUrl()),
	)

	return conn, nil
}
