package cmd

import (
	"log/slog"
	"time"

	"foodorder/internal/adapters/in/http"
	"foodorder/internal/adapters/out/postgres"
	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/ports"
	"foodorder/internal/jobs"
	"foodorder/internal/telemetry"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use cases. publisher and locker are
// optional and may be nil.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	locker     ports.Locker
	metrics    *telemetry.OrderMetrics
	logger     *slog.Logger
	now        commands.Clock
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	locker ports.Locker,
	metrics *telemetry.OrderMetrics,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		locker:     locker,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.now, c.logger)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.now, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.now, c.logger)
}

func (c *CompositionRoot) CreateExpirePendingOrdersCommandHandler() commands.ExpirePendingOrdersCommandHandler {
	return commands.NewExpirePendingOrdersCommandHandler(c.orderUoWFactory(), c.publisher, c.now, c.logger)
}

func (c *CompositionRoot) CreateCreateFoodCommandHandler() commands.CreateFoodCommandHandler {
	var f commands.FoodUoWFactory = FuncFoodUoWFactory(func() commands.FoodUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateFoodCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListFoodsQueryHandler() queries.ListFoodsQueryHandler {
	return queries.NewListFoodsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(http.Handlers{
		PlaceOrder:    c.CreatePlaceOrderCommandHandler(),
		CompleteOrder: c.CreateCompleteOrderCommandHandler(),
		CancelOrder:   c.CreateCancelOrderCommandHandler(),
		GetOrder:      c.CreateGetOrderQueryHandler(),
		ListOrders:    c.CreateListOrdersQueryHandler(),
		CreateFood:    c.CreateCreateFoodCommandHandler(),
		ListFoods:     c.CreateListFoodsQueryHandler(),
	}, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	expiryJob := jobs.NewOrderExpiryJob(
		c.CreateExpirePendingOrdersCommandHandler(),
		c.locker,
		c.metrics,
		jobs.OrderExpiryConfig{
			Threshold: c.config.OrderExpiryThreshold,
			Interval:  c.config.OrderSweepInterval,
		},
		c.logger,
	)
	return jobs.NewJobManager(expiryJob)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncFoodUoWFactory func() commands.FoodUoW

func (f FuncFoodUoWFactory) Create() commands.FoodUoW {
	return f()
}
