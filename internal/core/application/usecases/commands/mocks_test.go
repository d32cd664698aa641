package commands_test

import (
	"context"
	"log/slog"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/food"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var (
	testNow    = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	testClock  = commands.Clock(func() time.Time { return testNow })
	testLogger = slog.New(slog.DiscardHandler)
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Find(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatusIf(ctx context.Context, o *order.Order, expected order.Status) (bool, error) {
	args := m.Called(ctx, o, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) CancelPendingCreatedBefore(ctx context.Context, cutoff, at time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockFoodRepository struct{ mock.Mock }

func (m *MockFoodRepository) Add(ctx context.Context, f *food.Food) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFoodRepository) Get(ctx context.Context, id kernel.UUID) (*food.Food, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*food.Food), args.Error(1)
}

func (m *MockFoodRepository) List(ctx context.Context) ([]*food.Food, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*food.Food), args.Error(1)
}

type MockFoodUoW struct{ mock.Mock }

func (m *MockFoodUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFoodUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFoodUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFoodUoW) FoodRepository() ports.FoodRepository {
	args := m.Called()
	return args.Get(0).(ports.FoodRepository)
}

type MockFoodUoWFactory struct{ mock.Mock }

func (m *MockFoodUoWFactory) Create() commands.FoodUoW {
	args := m.Called()
	return args.Get(0).(commands.FoodUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...order.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func eventsOfType(t order.EventType, n int) any {
	return mock.MatchedBy(func(events []order.Event) bool {
		if len(events) != n {
			return false
		}
		for _, e := range events {
			if e.Type != t {
				return false
			}
		}
		return true
	})
}
