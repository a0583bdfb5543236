package models

// Game represents a video game as served by the games endpoint.
// The games API keeps Spanish keys for price, description, platform and genre.
type Game struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Consola     string `json:"consola,omitempty"`
	Genero      string `json:"genero,omitempty"`
	Descripcion string `json:"descripcion,omitempty"`
	Precio      int64  `json:"precio"`
	Stock       int    `json:"stock"`
	Developer   string `json:"developer,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	Rating      string `json:"rating,omitempty"`
	Multiplayer bool   `json:"multiplayer"`
	ReleaseYear int    `json:"releaseYear,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

func (g Game) EntityID() string   { return g.ID }
func (g Game) EntityName() string { return g.Name }

// CartItem converts the game into a single-unit cart line
func (g Game) CartItem() CartItem {
	return CartItem{
		ID:       g.ID,
		Name:     g.Name,
		Price:    g.Precio,
		Quantity: 1,
		Brand:    g.Publisher,
		Type:     CartTypeGame,
		ImageURL: g.ImageURL,
	}
}
