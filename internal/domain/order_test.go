package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrder_Recalculate(t *testing.T) {
	tests := []struct {
		name     string
		items    []OrderItem
		taxRate  float64
		shipping float64
		lines    []float64
		subtotal float64
		tax      float64
		total    float64
	}{
		{
			name:     "line totals round to cents",
			items:    []OrderItem{{Quantity: 3, UnitPrice: 19.99}},
			taxRate:  0.0825,
			shipping: 9.99,
			lines:    []float64{59.97},
			subtotal: 59.97,
			tax:      4.95,
			total:    74.91,
		},
		{
			name:     "float drift is rounded away",
			items:    []OrderItem{{Quantity: 3, UnitPrice: 0.1}, {Quantity: 1, UnitPrice: 0.2}},
			lines:    []float64{0.3, 0.2},
			subtotal: 0.5,
			total:    0.5,
		},
		{
			name: "seeded multi line order",
			items: []OrderItem{
				{Quantity: 1, UnitPrice: 1419},
				{Quantity: 2, UnitPrice: 999},
			},
			taxRate:  0.08,
			shipping: 15,
			lines:    []float64{1419, 1998},
			subtotal: 3417,
			tax:      273.36,
			total:    3705.36,
		},
		{
			name:     "empty order charges only shipping",
			shipping: 15,
			total:    15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{Items: tt.items}
			o.Recalculate(tt.taxRate, tt.shipping)

			for i, want := range tt.lines {
				assert.Equal(t, want, o.Items[i].TotalPrice)
			}
			assert.Equal(t, tt.subtotal, o.Subtotal)
			assert.Equal(t, tt.tax, o.Tax)
			assert.Equal(t, tt.shipping, o.Shipping)
			assert.Equal(t, tt.total, o.Total)
		})
	}
}
