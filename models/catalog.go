package models

// CatalogEntry is a single product card in the exported catalog
type CatalogEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Family     string `json:"family"`
	Brand      string `json:"brand,omitempty"`
	Price      int64  `json:"price"`
	PriceLabel string `json:"priceLabel"`
	Stock      int    `json:"stock"`
	ImageURL   string `json:"imageUrl,omitempty"`
}

// CatalogData is passed to the catalog template
type CatalogData struct {
	StoreName   string           `json:"storeName"`
	GeneratedAt string           `json:"generatedAt"`
	Pages       [][]CatalogEntry `json:"pages"`
	EntryCount  int              `json:"entryCount"`
}
