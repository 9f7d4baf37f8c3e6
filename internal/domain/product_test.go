package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_StockAndPrice(t *testing.T) {
	p := &Product{
		BasePrice: 999,
		Variants: []ProductVariant{
			{Price: 1099, Stock: 4, Availability: AvailabilityLowStock},
			{Price: 899, Stock: 0, Availability: AvailabilityOutOfStock},
			{Price: 1299, Stock: 10, Availability: AvailabilityInStock},
		},
	}
	assert.Equal(t, 14, p.TotalStock())
	lo, hi := p.PriceRange()
	assert.Equal(t, 899.0, lo)
	assert.Equal(t, 1299.0, hi)
	assert.Equal(t, AvailabilityInStock, p.Availability())

	bare := &Product{BasePrice: 499}
	assert.Equal(t, 0, bare.TotalStock())
	lo, hi = bare.PriceRange()
	assert.Equal(t, 499.0, lo)
	assert.Equal(t, 499.0, hi)
	assert.Equal(t, AvailabilityOutOfStock, bare.Availability())
}
