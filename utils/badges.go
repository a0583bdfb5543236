package utils

// Badge classes used by the dashboard tables
const (
	PriceLow    = "price-low"
	PriceMedium = "price-medium"
	PriceHigh   = "price-high"
	StockLow    = "stock-low"
	StockMedium = "stock-medium"
	StockHigh   = "stock-high"
)

// PriceClass buckets a price in pesos
func PriceClass(price int64) string {
	switch {
	case price <= 50000:
		return PriceLow
	case price <= 100000:
		return PriceMedium
	default:
		return PriceHigh
	}
}

// StockClass buckets a stock count
func StockClass(stock int) string {
	switch {
	case stock <= 5:
		return StockLow
	case stock <= 15:
		return StockMedium
	default:
		return StockHigh
	}
}
