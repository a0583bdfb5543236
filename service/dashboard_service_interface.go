package service

import (
	"context"
	"encoding/json"

	"princegaming/models"
)

// InventoryAPI is the part of the inventory API the dashboard drives
type InventoryAPI interface {
	ListGames(ctx context.Context) ([]models.Game, error)
	UpdateGame(ctx context.Context, id string, delta models.Fields) (json.RawMessage, error)
	DeleteGame(ctx context.Context, id string) error

	ListProducts(ctx context.Context, category string) ([]models.Product, error)
	CreateProduct(ctx context.Context, fields models.Fields) (json.RawMessage, error)
	UpdateProduct(ctx context.Context, id string, delta models.Fields) (json.RawMessage, error)
	DeleteProduct(ctx context.Context, id string) error

	ListInventory(ctx context.Context, itemType models.InventoryType) ([]models.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, fields models.Fields) (json.RawMessage, error)
	UpdateInventoryItem(ctx context.Context, id string, delta models.Fields) (json.RawMessage, error)
	DeleteInventoryItem(ctx context.Context, id string) error

	UploadImage(ctx context.Context, file models.FileHandle) (*models.UploadResult, error)
	UploadGameImage(ctx context.Context, file models.FileHandle) (*models.UploadResult, error)
}

// Panel is an entity family's table as the dashboard sees it, whatever the entity type
type Panel interface {
	Kind() string
	Reload(ctx context.Context) error
	StartEdit(index int) error
	UpdateDraft(patch models.Fields) error
	CancelEdit()
	Editing() (int, models.Fields, bool)
	SaveCurrent(ctx context.Context) error
	DeleteAt(ctx context.Context, index int, confirm Confirmer) error
	Create(ctx context.Context, fields models.Fields) error
	Rows() []Row
}

var (
	_ Panel = (*EditController[models.Game])(nil)
	_ Panel = (*EditController[models.Product])(nil)
	_ Panel = (*EditController[models.InventoryItem])(nil)
)
