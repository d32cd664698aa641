package food

import (
	"fmt"
	"strings"

	"foodorder/internal/pkg/errs"
)

// Category classifies a food item.
type Category string

const (
	Veg     Category = "veg"
	NonVeg  Category = "non-veg"
	Dessert Category = "dessert"
)

// ParseCategory accepts category names case-insensitively.
func ParseCategory(s string) (Category, error) {
	if strings.TrimSpace(s) == "" {
		return "", errs.NewValueIsRequiredError("category")
	}
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c Category) Validate() error {
	switch c {
	case Veg, NonVeg, Dessert:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a food category", string(c)))
	}
}

func (c Category) String() string {
	return string(c)
}
