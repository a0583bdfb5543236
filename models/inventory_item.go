package models

// InventoryType is the family a generic inventory item belongs to
type InventoryType string

const (
	InventoryGames       InventoryType = "games"
	InventoryConsoles    InventoryType = "consoles"
	InventoryAccessories InventoryType = "accessories"
)

// InventoryItem is the generic inventory record served by the /inventory endpoint.
// Type-specific fields are optional and only filled for the matching family.
type InventoryItem struct {
	ID          string        `json:"_id"`
	Name        string        `json:"name"`
	Type        InventoryType `json:"type"`
	Description string        `json:"description,omitempty"`
	Price       int64         `json:"price"`
	Stock       int           `json:"stock"`
	ImageURL    string        `json:"imageUrl,omitempty"`

	Consola     string `json:"consola,omitempty"`
	Genero      string `json:"genero,omitempty"`
	Developer   string `json:"developer,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	Rating      string `json:"rating,omitempty"`
	Multiplayer bool   `json:"multiplayer,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model,omitempty"`
	Features    string `json:"features,omitempty"`
	ReleaseYear int    `json:"releaseYear,omitempty"`
	Color       string `json:"color,omitempty"`
	Category    string `json:"category,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func (i InventoryItem) EntityID() string   { return i.ID }
func (i InventoryItem) EntityName() string { return i.Name }

// Entity is implemented by every inventory variant the dashboard edits
type Entity interface {
	EntityID() string
	EntityName() string
}
