package food

import (
	"errors"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	MaxNameLength        = 255
	MaxDescriptionLength = 2048
)

var ErrFoodIsNotConstructed = errors.New("Food must be created via NewFood or RestoreFood constructor")

// Food is a catalog item. It has no lifecycle of its own in this service.
type Food struct {
	id          kernel.UUID
	name        string
	description string
	price       decimal.Decimal
	image       string
	category    Category

	guard guard.ConstructorGuard
}

// NewFood creates a catalog item. name is required, price must not be negative and
// category must be one of the enumerated values. description and image are optional.
func NewFood(id kernel.UUID, name, description string, price decimal.Decimal, image string, category Category) (*Food, error) {
	f := &Food{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		f.setID(id),
		f.setName(name),
		f.setDescription(description),
		f.setPrice(price),
		f.setCategory(category),
	); err != nil {
		return nil, err
	}
	f.image = strings.TrimSpace(image)

	return f, nil
}

// RestoreFood rebuilds a catalog item from persisted state.
func RestoreFood(id kernel.UUID, name, description string, price decimal.Decimal, image string, category Category) (*Food, error) {
	return NewFood(id, name, description, price, image, category)
}

func (f *Food) Validate() error {
	if f == nil {
		return ErrFoodIsNotConstructed
	}
	return f.guard.Validate(ErrFoodIsNotConstructed)
}

func (f *Food) ID() kernel.UUID { return f.id }
func (f *Food) Name() string { return f.name }
func (f *Food) Description() string { return f.description }
func (f *Food) Price() decimal.Decimal { return f.price }
func (f *Food) Image() string { return f.image }
func (f *Food) Category() Category { return f.category }

func (f *Food) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	f.id = id
	return nil
}

func (f *Food) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if n := len(name); n > MaxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", n, 1, MaxNameLength)
	}
	f.name = name
	return nil
}

func (f *Food) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if n := len(description); n > MaxDescriptionLength {
		return errs.NewValueIsOutOfRangeError("description length", n, 0, MaxDescriptionLength)
	}
	f.description = description
	return nil
}

func (f *Food) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsOutOfRangeError("price", price.String(), 0, "unbounded")
	}
	f.price = price
	return nil
}

func (f *Food) setCategory(c Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f.category = c
	return nil
}
