package model_test

import (
	"testing"

	"nutrisur/internal/domains/order/model"

	"github.com/stretchr/testify/assert"
)

func items() []model.OrderItem {
	return []model.OrderItem{
		{ProductID: "p1", ProductName: "Green bowl", Quantity: 2, UnitPrice: 7.5},
		{ProductID: "p2", ProductName: "Avocado toast", Quantity: 1, UnitPrice: 5},
	}
}

func TestAddLine(t *testing.T) {
	t.Run("merges same product", func(t *testing.T) {
		got := model.AddLine(items(), model.OrderItem{ProductID: "p1", Quantity: 3, UnitPrice: 7.5})

		assert.Len(t, got, 2)
		assert.Equal(t, 5, got[0].Quantity)
	})

	t.Run("appends new product", func(t *testing.T) {
		got := model.AddLine(items(), model.OrderItem{ProductID: "p3", Quantity: 1})

		assert.Len(t, got, 3)
		assert.Equal(t, "p3", got[2].ProductID)
	})
}

func TestRemoveLine(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		quantity  int
		wantLen   int
		wantFound bool
		wantQty   int
	}{
		{name: "decrement", productID: "p1", quantity: 1, wantLen: 2, wantFound: true, wantQty: 1},
		{name: "remove when quantity reaches zero", productID: "p1", quantity: 2, wantLen: 1, wantFound: true},
		{name: "remove whole line", productID: "p1", quantity: 0, wantLen: 1, wantFound: true},
		{name: "unknown product", productID: "p9", quantity: 1, wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := model.RemoveLine(items(), tt.productID, tt.quantity)

			assert.Equal(t, tt.wantFound, found)
			assert.Len(t, got, tt.wantLen)

			if tt.wantQty > 0 {
				assert.Equal(t, tt.wantQty, got[0].Quantity)
			}
		})
	}
}

func TestTotalAndSummary(t *testing.T) {
	assert.InDelta(t, 20.0, model.Total(items()), 0.001)
	assert.Zero(t, model.Total(nil))

	assert.Equal(t, "2 x Green bowl = 15.00\n1 x Avocado toast = 5.00\nTotal: 20.00", model.Summary(items()))
	assert.Empty(t, model.Summary(nil))
}
