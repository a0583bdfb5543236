package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"princegaming/models"
)

const inventoryPath = "/inventory"

// ListInventory returns the generic inventory, optionally restricted to one family
func (c *Client) ListInventory(ctx context.Context, itemType models.InventoryType) ([]models.InventoryItem, error) {
	path := inventoryPath
	if itemType != "" {
		path += "?type=" + url.QueryEscape(string(itemType))
	}
	raw, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[[]models.InventoryItem](inventoryPath, raw)
}

// CreateInventoryItem creates a generic inventory item
func (c *Client) CreateInventoryItem(ctx context.Context, fields models.Fields) (json.RawMessage, error) {
	raw, err := c.doJSON(ctx, http.MethodPost, inventoryPath, fields)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[json.RawMessage](inventoryPath, raw)
}

// UpdateInventoryItem sends a partial update
func (c *Client) UpdateInventoryItem(ctx context.Context, id string, delta models.Fields) (json.RawMessage, error) {
	path := inventoryPath + "/" + url.PathEscape(id)
	raw, err := c.doJSON(ctx, http.MethodPut, path, delta)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[json.RawMessage](path, raw)
}

// DeleteInventoryItem removes a generic inventory item
func (c *Client) DeleteInventoryItem(ctx context.Context, id string) error {
	path := inventoryPath + "/" + url.PathEscape(id)
	raw, err := c.do(ctx, http.MethodDelete, path, nil, "")
	if err != nil {
		return err
	}
	_, err = decodeEnvelope[json.RawMessage](path, raw)
	return err
}
