package models

// Cart item type tags used by the storefront views
const (
	CartTypeGame      = "juego"
	CartTypeConsole   = "consola"
	CartTypeAccessory = "accesorio"
)

// CartItem is one line of the shopping cart
type CartItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"` // integer pesos
	Quantity int    `json:"quantity"`
	Brand    string `json:"brand,omitempty"`
	Type     string `json:"type"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Subtotal returns price times quantity for the line
func (c CartItem) Subtotal() int64 {
	return c.Price * int64(c.Quantity)
}

// CartSnapshot is what cart observers and the cart view receive
type CartSnapshot struct {
	Items     []CartItem `json:"items"`
	Total     int64      `json:"total"`
	ItemCount int        `json:"itemCount"`
	Visible   bool       `json:"visible"`
}
