package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"princegaming/models"
)

// UploadImage uploads a general product image
func (c *Client) UploadImage(ctx context.Context, file models.FileHandle) (*models.UploadResult, error) {
	return c.upload(ctx, "/image", file)
}

// UploadGameImage uploads an image that replaces a game cover
func (c *Client) UploadGameImage(ctx context.Context, file models.FileHandle) (*models.UploadResult, error) {
	return c.upload(ctx, "/image/game-image", file)
}

func (c *Client) upload(ctx context.Context, path string, file models.FileHandle) (*models.UploadResult, error) {
	if file.Open == nil {
		return nil, errors.New("file has no content")
	}
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer src.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, escapeQuotes(file.Name)))
	header.Set("Content-Type", file.ContentType)
	part, err := form.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, fmt.Errorf("failed to copy %s into form: %w", file.Name, err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, path, &buf, form.FormDataContentType())
	if err != nil {
		return nil, err
	}
	result, err := decodeEnvelope[models.UploadResult](path, raw)
	if err != nil {
		return nil, err
	}
	if result.ImageURL == "" {
		return nil, &APIError{Path: path, Message: "No se pudo obtener la URL de la imagen"}
	}
	return &result, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
