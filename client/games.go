package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"princegaming/models"
)

const gamesPath = "/games"

// ListGames returns every game
func (c *Client) ListGames(ctx context.Context) ([]models.Game, error) {
	raw, err := c.do(ctx, http.MethodGet, gamesPath, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[[]models.Game](gamesPath, raw)
}

// UpdateGame sends a partial update and returns the data the server echoed back
func (c *Client) UpdateGame(ctx context.Context, id string, delta models.Fields) (json.RawMessage, error) {
	path := gamesPath + "/" + url.PathEscape(id)
	raw, err := c.doJSON(ctx, http.MethodPut, path, delta)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[json.RawMessage](path, raw)
}

// DeleteGame removes a game
func (c *Client) DeleteGame(ctx context.Context, id string) error {
	path := gamesPath + "/" + url.PathEscape(id)
	raw, err := c.do(ctx, http.MethodDelete, path, nil, "")
	if err != nil {
		return err
	}
	_, err = decodeEnvelope[json.RawMessage](path, raw)
	return err
}
