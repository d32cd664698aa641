package kernel_test

import (
	"testing"
	"time"

	"foodorder/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	in := time.Date(2026, 3, 1, 17, 30, 0, 123456789, loc)

	got := kernel.Timestamp(in)

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 123456000, got.Nanosecond())
	assert.True(t, got.Equal(time.Date(2026, 3, 1, 12, 30, 0, 123456000, time.UTC)))
}
