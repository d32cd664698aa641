package order_test

import (
	"fmt"
	"testing"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(order.Unknown))
	assert.Equal(t, 1, int(order.Pending))
	assert.Equal(t, 2, int(order.Completed))
	assert.Equal(t, 3, int(order.Canceled))
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.Completed, order.Canceled} {
			require.NoError(t, status.Validate(), status.String())
		}
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(4), order.Status(100)} {
			t.Run(fmt.Sprintf("value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.Pending, "pending"},
		{order.Completed, "completed"},
		{order.Canceled, "canceled"},
		{order.Unknown, "unknown"},
		{order.Status(42), "unknown"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, tc.status.String())
	}
}

func TestParseStatus(t *testing.T) {
	t.Run("should parse names case-insensitively", func(t *testing.T) {
		testCases := map[string]order.Status{
			"pending":    order.Pending,
			"COMPLETED":  order.Completed,
			" Canceled ": order.Canceled,
		}
		for in, expected := range testCases {
			got, err := order.ParseStatus(in)

			require.NoError(t, err, in)
			assert.Equal(t, expected, got)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, in := range []string{"", "unknown", "cancelled", "shipped"} {
			_, err := order.ParseStatus(in)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, in)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.Pending.IsTerminal())
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Canceled.IsTerminal())
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("pending can be completed or canceled", func(t *testing.T) {
		next, err := order.Pending.Complete()
		require.NoError(t, err)
		assert.Equal(t, order.Completed, next)

		next, err = order.Pending.Cancel()
		require.NoError(t, err)
		assert.Equal(t, order.Canceled, next)
	})

	t.Run("nothing leaves a terminal or invalid status", func(t *testing.T) {
		for _, from := range []order.Status{order.Completed, order.Canceled, order.Unknown} {
			for name, transition := range map[string]func() (order.Status, error){
				"complete": from.Complete,
				"cancel":   from.Cancel,
			} {
				t.Run(fmt.Sprintf("%s from %s", name, from), func(t *testing.T) {
					next, err := transition()

					require.ErrorIs(t, err, errs.ErrInvalidTransition)
					assert.Equal(t, order.Unknown, next)
					assert.Contains(t, err.Error(), fmt.Sprintf("cannot %s from status %s", name, from))
				})
			}
		}
	})
}
