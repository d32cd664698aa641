package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "foodorder/internal/adapters/out/postgres"
	"foodorder/internal/adapters/out/postgres/pgtest"
	"foodorder/internal/core/domain/model/food"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// UnitOfWorkIntegrationTestSuite exercises transaction boundaries with a real
// PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	db      *pgtest.Database
	factory ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.db = db
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db.Gorm)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.Require().NoError(suite.db.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_MultiRepositoryCommit() {
	ctx := context.Background()
	item := suite.newFood()
	placed := suite.newOrder(item.ID(), time.Now())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.FoodRepository().Add(ctx, item))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, placed))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	_, err := reader.FoodRepository().Get(ctx, item.ID())
	suite.Require().NoError(err)
	_, err = reader.OrderRepository().Get(ctx, placed.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	item := suite.newFood()
	placed := suite.newOrder(item.ID(), time.Now())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.FoodRepository().Add(ctx, item))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, placed))

	_, err := uow.OrderRepository().Get(ctx, placed.ID())
	suite.Require().NoError(err, "Order is visible inside its own transaction")

	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, placed.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = reader.FoodRepository().Get(ctx, item.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_UncommittedIsInvisible() {
	ctx := context.Background()
	item := suite.newFood()

	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	defer func() { _ = writer.Rollback(ctx) }()
	suite.Require().NoError(writer.FoodRepository().Add(ctx, item))

	reader := suite.factory.Create()
	items, err := reader.FoodRepository().List(ctx)
	suite.Require().NoError(err)
	suite.Empty(items)
}

// The second conditional update blocks on the row lock held by the first
// transaction, re-checks its predicate after the commit and matches nothing.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConditionalUpdateLinearizes() {
	ctx := context.Background()
	item := suite.newFood()
	created := time.Now().Add(-time.Minute)
	placed := suite.newOrder(item.ID(), created)

	setup := suite.factory.Create()
	suite.Require().NoError(setup.FoodRepository().Add(ctx, item))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, placed))

	completer := suite.factory.Create()
	suite.Require().NoError(completer.Begin(ctx))
	toComplete, err := completer.OrderRepository().Get(ctx, placed.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(toComplete.Complete(time.Now()))
	applied, err := completer.OrderRepository().UpdateStatusIf(ctx, toComplete, order.Pending)
	suite.Require().NoError(err)
	suite.Require().True(applied)

	type outcome struct {
		applied bool
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		canceler := suite.factory.Create()
		if beginErr := canceler.Begin(ctx); beginErr != nil {
			done <- outcome{err: beginErr}
			return
		}
		defer func() { _ = canceler.Rollback(ctx) }()

		toCancel, getErr := canceler.OrderRepository().Get(ctx, placed.ID())
		if getErr != nil {
			done <- outcome{err: getErr}
			return
		}
		if cancelErr := toCancel.Cancel(time.Now()); cancelErr != nil {
			done <- outcome{err: cancelErr}
			return
		}
		ok, updateErr := canceler.OrderRepository().UpdateStatusIf(ctx, toCancel, order.Pending)
		if updateErr == nil && ok {
			updateErr = canceler.Commit(ctx)
		}
		done <- outcome{applied: ok, err: updateErr}
	}()

	select {
	case <-done:
		suite.Fail("canceler should wait for the row lock")
	case <-time.After(300 * time.Millisecond):
	}

	suite.Require().NoError(completer.Commit(ctx))

	res := <-done
	suite.Require().NoError(res.err)
	suite.False(res.applied)

	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, placed.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Completed, loaded.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) newFood() *food.Food {
	item, err := food.NewFood(kernel.NewUUID(), "Gulab Jamun", "", decimal.NewFromInt(70), "", food.Dessert)
	suite.Require().NoError(err)
	return item
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(foodID kernel.UUID, now time.Time) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), foodID, kernel.NewUUID(), "ext", "addr", order.Card, now)
	suite.Require().NoError(err)
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
