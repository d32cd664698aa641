package orderrepo

import (
	"context"
	"errors"
	"time"

	"foodorder/internal/adapters/out/postgres/pgerr"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errDuplicateOrder = errors.New("an order with this id already exists")

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a repository over db, which may be a transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// checkedParams names the order field each CHECK constraint guards.
var checkedParams = map[string]string{
	"orders_payment_mode_check":    "paymentMode",
	"orders_status_check":          "status",
	"orders_updated_after_created": "updatedAt",
}

// Add inserts a new order. A food_id that violates the foreign key is reported as
// an ObjectNotFoundError for the food.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return insertError(err, aggregate.FoodID())
	}

	return nil
}

// insertError translates an INSERT failure. Constraint violations become domain
// errors that carry no server diagnostics; those stay on StoreError, which
// never reaches a client.
func insertError(err error, foodID kernel.UUID) error {
	switch pgerr.Code(err) {
	case pgerr.ForeignKeyViolation:
		return errs.NewObjectNotFoundError("food", foodID.String())
	case pgerr.UniqueViolation:
		return errs.NewValueIsInvalidErrorWithCause("id", errDuplicateOrder)
	case pgerr.CheckViolation:
		if param, ok := checkedParams[pgerr.Constraint(err)]; ok {
			return errs.NewValueIsInvalidError(param)
		}
		return errs.NewValueIsInvalidError("order")
	default:
		return errs.NewStoreErrorWithCause("insert order", err)
	}
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewStoreErrorWithCause("get order", err)
	}

	o, err := toDomain(dto)
	if err != nil {
		return nil, errs.NewStoreErrorWithCause("decode order", err)
	}
	return o, nil
}

// Find lists orders matching filter, newest first.
func (r *GormOrderRepository) Find(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	q := r.db.WithContext(ctx).Model(&OrderDTO{})
	if filter.UserID.Validate() == nil {
		q = q.Where("user_id = ?", filter.UserID.Bytes())
	}
	if filter.Status != order.Unknown {
		q = q.Where("status = ?", filter.Status.String())
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var dtos []OrderDTO
	if err := q.Order("created_at DESC").Order("id").Find(&dtos).Error; err != nil {
		return nil, errs.NewStoreErrorWithCause("find orders", err)
	}

	orders, err := toDomainList(dtos)
	if err != nil {
		return nil, errs.NewStoreErrorWithCause("decode order", err)
	}
	return orders, nil
}

// UpdateStatusIf persists the aggregate's status and updatedAt guarded by
// status = expected. The row lock taken by UPDATE linearizes writers; a writer
// that waited re-evaluates the predicate and matches nothing if it lost.
func (r *GormOrderRepository) UpdateStatusIf(ctx context.Context, aggregate *order.Order, expected order.Status) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), expected.String()).
		Updates(map[string]any{
			"status":     aggregate.Status().String(),
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return false, errs.NewStoreErrorWithCause("update order status", result.Error)
	}

	return result.RowsAffected == 1, nil
}

// CancelPendingCreatedBefore is the sweep's single bulk conditional update. The
// status predicate is the concurrency guard: rows completed or canceled by another
// writer no longer match. RETURNING hands back the rows it changed.
func (r *GormOrderRepository) CancelPendingCreatedBefore(ctx context.Context, cutoff, at time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	result := r.db.WithContext(ctx).
		Model(&dtos).
		Clauses(clause.Returning{}).
		Where("status = ? AND created_at <= ?", order.Pending.String(), kernel.Timestamp(cutoff)).
		Updates(map[string]any{
			"status":     order.Canceled.String(),
			"updated_at": kernel.Timestamp(at),
		})
	if result.Error != nil {
		return nil, errs.NewStoreErrorWithCause("cancel expired orders", result.Error)
	}

	orders, err := toDomainList(dtos)
	if err != nil {
		return nil, errs.NewStoreErrorWithCause("decode order", err)
	}
	return orders, nil
}
