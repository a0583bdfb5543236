package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"princegaming/models"
)

const productsPath = "/products"

// ListProducts returns products, filtered by category when one is given
func (c *Client) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	path := productsPath
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	raw, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[[]models.Product](productsPath, raw)
}

// CreateProduct creates a console or accessory
func (c *Client) CreateProduct(ctx context.Context, fields models.Fields) (json.RawMessage, error) {
	raw, err := c.doJSON(ctx, http.MethodPost, productsPath, fields)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[json.RawMessage](productsPath, raw)
}

// UpdateProduct sends a partial update
func (c *Client) UpdateProduct(ctx context.Context, id string, delta models.Fields) (json.RawMessage, error) {
	path := productsPath + "/" + url.PathEscape(id)
	raw, err := c.doJSON(ctx, http.MethodPut, path, delta)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[json.RawMessage](path, raw)
}

// DeleteProduct removes a product
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	path := productsPath + "/" + url.PathEscape(id)
	raw, err := c.do(ctx, http.MethodDelete, path, nil, "")
	if err != nil {
		return err
	}
	_, err = decodeEnvelope[json.RawMessage](path, raw)
	return err
}
