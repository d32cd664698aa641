package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"foodorder/cmd"
	"foodorder/internal/adapters/in/http"
	"foodorder/internal/adapters/out/kafka"
	"foodorder/internal/adapters/out/postgres"
	"foodorder/internal/adapters/out/postgres/migrations"
	redis_adapter "foodorder/internal/adapters/out/redis"
	"foodorder/internal/core/ports"
	"foodorder/internal/telemetry"

	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(config.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, config, logger); err != nil {
		logger.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, config cmd.Config, logger *slog.Logger) error {
	if config.OTLPEndpoint != "" {
		shutdownTracer, err := telemetry.InitTracerProvider(ctx, config.OTLPEndpoint, config.ServiceName, config.ServiceVersion)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer shutdownWithTimeout(logger, "tracer provider", shutdownTracer)
	}

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider(config.ServiceName, config.ServiceVersion)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer shutdownWithTimeout(logger, "meter provider", shutdownMeter)

	metrics, err := telemetry.NewOrderMetrics(otel.GetMeterProvider())
	if err != nil {
		return fmt.Errorf("create order metrics: %w", err)
	}

	dsn := postgres.DSN(config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)
	if err = migrate(dsn); err != nil {
		return err
	}

	sqlDB, err := telemetry.OpenDB("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer sqlDB.Close()
	if err = sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	gormDB, err := postgres.NewGormDB(sqlDB)
	if err != nil {
		return err
	}

	var locker ports.Locker
	if config.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		defer rdb.Close()
		if err = rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		locker = redis_adapter.NewLocker(rdb)
		logger.Info("Sweep lease enabled", "redis", config.RedisAddr)
	}

	var publisher ports.EventPublisher
	if len(config.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(config.KafkaBrokers, config.KafkaOrderTopic)
		defer producer.Close()
		publisher = producer
		logger.Info("Order events enabled", "brokers", strings.Join(config.KafkaBrokers, ","), "topic", config.KafkaOrderTopic)
	}

	app := cmd.NewCompositionRoot(config, gormDB, publisher, locker, metrics, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		jobManager.StopAll(stopCtx)
	}()

	e, err := http.NewRouter(ctx, app.CreateHTTPServer(), http.RouterConfig{
		ServiceName:    config.ServiceName,
		JWTSecret:      config.JWTSecret,
		MetricsHandler: metricsHandler,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}
	e.Logger.SetLevel(gommonLevel(config.LogLevel))
	if config.JWTSecret == "" {
		logger.Warn("JWT_SECRET is empty, the API accepts unauthenticated requests")
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", config.HTTPPort)
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func migrate(dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	return migrations.Up(db)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func gommonLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

func shutdownWithTimeout(logger *slog.Logger, name string, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Warn("Shutdown failed", "component", name, "error", err)
	}
}
