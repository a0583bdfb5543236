package models

// Product categories used by the products endpoint filter
const (
	CategoryConsole   = "console"
	CategoryAccessory = "accessory"
)

// Product represents a console or an accessory. Category tells them apart.
type Product struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Stock       int    `json:"stock"`
	Category    string `json:"category,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model,omitempty"`
	Features    string `json:"features,omitempty"`
	ReleaseYear int    `json:"releaseYear,omitempty"`
	Color       string `json:"color,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

func (p Product) EntityID() string   { return p.ID }
func (p Product) EntityName() string { return p.Name }

// CartItem converts the product into a single-unit cart line
func (p Product) CartItem() CartItem {
	itemType := CartTypeAccessory
	if p.Category == CategoryConsole {
		itemType = CartTypeConsole
	}
	return CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: 1,
		Brand:    p.Brand,
		Type:     itemType,
		ImageURL: p.ImageURL,
	}
}
