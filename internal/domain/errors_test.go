package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsufficientStockError_Message(t *testing.T) {
	err := &InsufficientStockError{
		ProductID:   "p1",
		ProductName: "Dipirona 500mg",
		Available:   2,
		Requested:   4,
	}
	assert.Equal(t, "insufficient stock for Dipirona 500mg: requested 4, available 2", err.Error())

	var target *InsufficientStockError
	wrapped := fmt.Errorf("create order: %w", err)
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, 2, target.Available)
}
