package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCOP(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{1000, "$1.000"},
		{50000, "$50.000"},
		{100000, "$100.000"},
		{2500000, "$2.500.000"},
		{-12500, "-$12.500"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCOP(tt.in))
		})
	}
}

func TestPriceClass(t *testing.T) {
	assert.Equal(t, PriceLow, PriceClass(40000))
	assert.Equal(t, PriceLow, PriceClass(50000))
	assert.Equal(t, PriceMedium, PriceClass(75000))
	assert.Equal(t, PriceMedium, PriceClass(100000))
	assert.Equal(t, PriceHigh, PriceClass(150000))
}

func TestStockClass(t *testing.T) {
	assert.Equal(t, StockLow, StockClass(3))
	assert.Equal(t, StockLow, StockClass(5))
	assert.Equal(t, StockMedium, StockClass(10))
	assert.Equal(t, StockHigh, StockClass(16))
}
