package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/ports"
	"foodorder/internal/telemetry"

	"github.com/robfig/cron/v3"
)

// OrderExpiryLeaseKey is the lease replicas compete for before sweeping.
const OrderExpiryLeaseKey = "order-expiry-sweep"

// ExpirePendingOrdersHandler runs one sweep.
type ExpirePendingOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.ExpirePendingOrdersCommand) (commands.ExpirePendingOrdersResult, error)
}

// OrderExpiryConfig holds the expiry rule settings.
type OrderExpiryConfig struct {
	// Threshold is how long an order may stay pending.
	Threshold time.Duration
	// Interval is the time between sweeps.
	Interval time.Duration
}

// OrderExpiryJob periodically cancels orders that stayed pending longer than
// the threshold.
type OrderExpiryJob struct {
	handler ExpirePendingOrdersHandler
	locker  ports.Locker
	metrics *telemetry.OrderMetrics
	config  OrderExpiryConfig
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderExpiryJob creates the job. locker and metrics may be nil: without a
// locker every replica sweeps on its own schedule, which is safe because the
// sweep is a conditional update.
func NewOrderExpiryJob(
	handler ExpirePendingOrdersHandler,
	locker ports.Locker,
	metrics *telemetry.OrderMetrics,
	config OrderExpiryConfig,
	logger *slog.Logger,
) *OrderExpiryJob {
	logger = logger.With("component", "order_expiry_job")
	cronLogger := newCronLogger(logger)

	return &OrderExpiryJob{
		handler: handler,
		locker:  locker,
		metrics: metrics,
		config:  config,
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: logger,
	}
}

// Start schedules the sweep every config.Interval. The first sweep runs one
// interval after Start.
func (j *OrderExpiryJob) Start() error {
	if j.config.Interval <= 0 {
		return fmt.Errorf("order expiry interval must be positive, got %s", j.config.Interval)
	}
	if j.config.Threshold <= 0 {
		return fmt.Errorf("order expiry threshold must be positive, got %s", j.config.Threshold)
	}

	_, err := j.cron.AddFunc("@every "+j.config.Interval.String(), func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Order expiry job started",
		"interval", j.config.Interval.String(),
		"threshold", j.config.Threshold.String(),
	)
	return nil
}

// Stop unschedules the job and waits for a running sweep to finish or ctx to
// expire.
func (j *OrderExpiryJob) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
		j.logger.Warn("Order expiry job stopped before the running sweep finished")
		return
	}
	j.logger.Info("Order expiry job stopped")
}

// RunOnce performs a single sweep. It never returns an error: failures are
// logged and the next tick tries again.
func (j *OrderExpiryJob) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, j.config.Interval)
	defer cancel()

	release, ok := j.acquire(ctx)
	if !ok {
		return
	}
	defer release()

	started := time.Now()
	result, err := j.sweep(ctx)
	j.metrics.SweepFinished(ctx, time.Since(started), len(result.Expired), err)

	if err != nil {
		j.logger.ErrorContext(ctx, "Order expiry sweep failed", "error", err, "cutoff", result.Cutoff)
		return
	}
	if len(result.Expired) > 0 {
		j.logger.InfoContext(ctx, "Expired pending orders",
			"count", len(result.Expired),
			"cutoff", result.Cutoff,
		)
	}
}

func (j *OrderExpiryJob) sweep(ctx context.Context) (commands.ExpirePendingOrdersResult, error) {
	cmd, err := commands.NewExpirePendingOrdersCommand(j.config.Threshold)
	if err != nil {
		return commands.ExpirePendingOrdersResult{}, err
	}
	return j.handler.Handle(ctx, cmd)
}

// acquire takes the shared lease. When the lease store is unreachable the sweep
// still runs.
func (j *OrderExpiryJob) acquire(ctx context.Context) (func(), bool) {
	noop := func() {}
	if j.locker == nil {
		return noop, true
	}

	token, ok, err := j.locker.TryLock(ctx, OrderExpiryLeaseKey, j.config.Interval)
	if err != nil {
		j.logger.WarnContext(ctx, "Order expiry lease unavailable, sweeping without it", "error", err)
		return noop, true
	}
	if !ok {
		j.logger.DebugContext(ctx, "Order expiry lease held by another replica")
		return noop, false
	}

	return func() {
		// the sweep context may already be done
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if unlockErr := j.locker.Unlock(unlockCtx, OrderExpiryLeaseKey, token); unlockErr != nil {
			j.logger.WarnContext(ctx, "Failed to release order expiry lease", "error", unlockErr)
		}
	}, true
}
