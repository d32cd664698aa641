package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"foodorder/internal/adapters/out/postgres/foodrepo"
	"foodorder/internal/adapters/out/postgres/orderrepo"
	"foodorder/internal/adapters/out/postgres/pgtest"
	"foodorder/internal/core/domain/model/food"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// OrderRepositoryIntegrationTestSuite verifies persistence and the conditional
// update semantics against a real PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	db         *pgtest.Database
	repository *orderrepo.GormOrderRepository
	food       *food.Food
	now        time.Time
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Truncate())
	suite.repository = orderrepo.NewGormOrderRepository(suite.db.Gorm)
	suite.now = kernel.Timestamp(time.Now())

	item, err := food.NewFood(kernel.NewUUID(), "Veg Biryani", "", decimal.NewFromInt(180), "", food.Veg)
	suite.Require().NoError(err)
	suite.Require().NoError(foodrepo.NewGormFoodRepository(suite.db.Gorm).Add(context.Background(), item))
	suite.food = item
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.Require().NoError(suite.db.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTrip() {
	ctx := context.Background()
	placed := suite.placeOrder(suite.now, order.Pending)

	loaded, err := suite.repository.Get(ctx, placed.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(placed.ID()))
	suite.True(loaded.FoodID().IsEqual(placed.FoodID()))
	suite.True(loaded.UserID().IsEqual(placed.UserID()))
	suite.Equal(placed.ExternalOrderID(), loaded.ExternalOrderID())
	suite.Equal(placed.UserAddressID(), loaded.UserAddressID())
	suite.Equal(placed.PaymentMode(), loaded.PaymentMode())
	suite.Equal(order.Pending, loaded.Status())
	suite.True(placed.CreatedAt().Equal(loaded.CreatedAt()))
	suite.True(loaded.CreatedAt().Equal(loaded.UpdatedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnknownFood_NotFound() {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "ext", "addr", order.Cash, suite.now)
	suite.Require().NoError(err)

	err = suite.repository.Add(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Equal("object not found: food "+o.FoodID().String(), err.Error())
	suite.NotContains(err.Error(), "orders_food_id_fkey")
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructed() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFind_ByUserAndStatus() {
	ctx := context.Background()
	user := kernel.NewUUID()
	older := suite.placeOrderFor(user, suite.now.Add(-time.Hour), order.Pending)
	newer := suite.placeOrderFor(user, suite.now, order.Pending)
	suite.placeOrderFor(user, suite.now, order.Completed)
	suite.placeOrder(suite.now, order.Pending)

	found, err := suite.repository.Find(ctx, ports.OrderFilter{UserID: user, Status: order.Pending})
	suite.Require().NoError(err)
	suite.Require().Len(found, 2)
	suite.True(found[0].ID().IsEqual(newer.ID()))
	suite.True(found[1].ID().IsEqual(older.ID()))

	all, err := suite.repository.Find(ctx, ports.OrderFilter{})
	suite.Require().NoError(err)
	suite.Len(all, 4)

	limited, err := suite.repository.Find(ctx, ports.OrderFilter{Limit: 1})
	suite.Require().NoError(err)
	suite.Len(limited, 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatusIf_Applies() {
	ctx := context.Background()
	placed := suite.placeOrder(suite.now.Add(-time.Minute), order.Pending)
	suite.Require().NoError(placed.Complete(suite.now))

	applied, err := suite.repository.UpdateStatusIf(ctx, placed, order.Pending)
	suite.Require().NoError(err)
	suite.True(applied)

	loaded, err := suite.repository.Get(ctx, placed.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Completed, loaded.Status())
	suite.True(suite.now.Equal(loaded.UpdatedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatusIf_StaleExpectation() {
	ctx := context.Background()
	placed := suite.placeOrder(suite.now.Add(-time.Minute), order.Canceled)

	stale, err := order.RestoreOrder(placed.ID(), placed.FoodID(), placed.UserID(),
		placed.ExternalOrderID(), placed.UserAddressID(), placed.PaymentMode(),
		order.Pending, placed.CreatedAt(), placed.CreatedAt())
	suite.Require().NoError(err)
	suite.Require().NoError(stale.Complete(suite.now))

	applied, err := suite.repository.UpdateStatusIf(ctx, stale, order.Pending)
	suite.Require().NoError(err)
	suite.False(applied)

	loaded, err := suite.repository.Get(ctx, placed.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Canceled, loaded.Status())
}

// A: pending 25m old, B: pending 5m old, C: completed 30m old. A 20m sweep
// cancels only A.
func (suite *OrderRepositoryIntegrationTestSuite) TestCancelPendingCreatedBefore_Sweep() {
	ctx := context.Background()
	a := suite.placeOrder(suite.now.Add(-25*time.Minute), order.Pending)
	b := suite.placeOrder(suite.now.Add(-5*time.Minute), order.Pending)
	c := suite.placeOrder(suite.now.Add(-30*time.Minute), order.Completed)

	expired, err := suite.repository.CancelPendingCreatedBefore(ctx, suite.now.Add(-20*time.Minute), suite.now)
	suite.Require().NoError(err)
	suite.Require().Len(expired, 1)
	suite.True(expired[0].ID().IsEqual(a.ID()))
	suite.Equal(order.Canceled, expired[0].Status())
	suite.True(suite.now.Equal(expired[0].UpdatedAt()))

	suite.assertStatus(a.ID(), order.Canceled)
	suite.assertStatus(b.ID(), order.Pending)
	suite.assertStatus(c.ID(), order.Completed)

	again, err := suite.repository.CancelPendingCreatedBefore(ctx, suite.now.Add(-20*time.Minute), suite.now)
	suite.Require().NoError(err)
	suite.Empty(again)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCancelPendingCreatedBefore_CutoffIsInclusive() {
	cutoff := suite.now.Add(-20 * time.Minute)
	onCutoff := suite.placeOrder(cutoff, order.Pending)

	expired, err := suite.repository.CancelPendingCreatedBefore(context.Background(), cutoff, suite.now)
	suite.Require().NoError(err)
	suite.Require().Len(expired, 1)
	suite.True(expired[0].ID().IsEqual(onCutoff.ID()))
}

// Complete and the sweep race for the same expired order. Exactly one of them
// changes the row.
func (suite *OrderRepositoryIntegrationTestSuite) TestCompleteRacesSweep_ExactlyOneWins() {
	ctx := context.Background()

	for range 10 {
		suite.SetupTest()
		target := suite.placeOrder(suite.now.Add(-time.Hour), order.Pending)
		suite.Require().NoError(target.Complete(suite.now))

		var (
			wg        sync.WaitGroup
			completed bool
			expired   []*order.Order
			errC      error
			errS      error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			completed, errC = suite.repository.UpdateStatusIf(ctx, target, order.Pending)
		}()
		go func() {
			defer wg.Done()
			expired, errS = suite.repository.CancelPendingCreatedBefore(ctx, suite.now.Add(-20*time.Minute), suite.now)
		}()
		wg.Wait()

		suite.Require().NoError(errC)
		suite.Require().NoError(errS)
		suite.NotEqual(completed, len(expired) == 1, "exactly one writer must win")

		want := order.Canceled
		if completed {
			want = order.Completed
		}
		suite.assertStatus(target.ID(), want)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) placeOrder(createdAt time.Time, status order.Status) *order.Order {
	return suite.placeOrderFor(kernel.NewUUID(), createdAt, status)
}

func (suite *OrderRepositoryIntegrationTestSuite) placeOrderFor(user kernel.UUID, createdAt time.Time, status order.Status) *order.Order {
	o, err := order.RestoreOrder(kernel.NewUUID(), suite.food.ID(), user, "ext", "addr", order.UPI, status, createdAt, createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertStatus(id kernel.UUID, want order.Status) {
	loaded, err := suite.repository.Get(context.Background(), id)
	suite.Require().NoError(err)
	suite.Equal(want, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Gorm.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
