package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStock_AddTake(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	s := &Stock{Quantity: decimal.NewFromInt(5), UpdatedAt: t0}

	s.Add(decimal.NewFromInt(3), t1)
	assert.True(t, s.Quantity.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, t1, s.UpdatedAt)

	assert.True(t, s.Take(decimal.NewFromInt(8), t1), "se puede vaciar exactamente")
	assert.True(t, s.Quantity.IsZero())

	assert.False(t, s.Take(decimal.NewFromInt(1), t1.Add(time.Hour)))
	assert.True(t, s.Quantity.IsZero(), "sin stock no cambia")
	assert.Equal(t, t1, s.UpdatedAt)
}
