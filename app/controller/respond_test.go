package controller

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"princegaming/client"
	"princegaming/models"
	"princegaming/service"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &service.ValidationError{Message: "x"}, http.StatusBadRequest},
		{"declined", fmt.Errorf("games: %w", service.ErrDeleteDeclined), http.StatusConflict},
		{"not editing", service.ErrNotEditing, http.StatusConflict},
		{"out of range", fmt.Errorf("games: %w", service.ErrIndexOutOfRange), http.StatusNotFound},
		{"login 401", &service.LoginError{Status: 401, Message: "x"}, http.StatusUnauthorized},
		{"reported", &client.APIError{Message: "x"}, http.StatusUnprocessableEntity},
		{"not found", &client.TransportError{Status: 404, Class: client.ClassNotFound}, http.StatusNotFound},
		{"down", &client.TransportError{Class: client.ClassConnection}, http.StatusServiceUnavailable},
		{"server", &client.TransportError{Status: 500, Class: client.ClassServer}, http.StatusBadGateway},
		{"upload wraps reported", &service.UploadError{Message: "x", Err: &client.APIError{Message: "y"}}, http.StatusUnprocessableEntity},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestRespondFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	respondFailure(rec, &client.APIError{Message: "El nombre ya existe"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"El nombre ya existe"}`, rec.Body.String())
}

func TestDecodeFields_JSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"precio": 120000, "name": "Halo"}`))
	req.Header.Set("Content-Type", "application/json")

	fields, err := decodeFields(req)
	require.NoError(t, err)
	price, ok := fields.Int64("precio")
	assert.True(t, ok)
	assert.Equal(t, int64(120000), price)
	assert.Equal(t, "Halo", fields["name"])
}

func TestDecodeFields_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	fields, err := decodeFields(req)
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestDecodeFields_URLEncoded(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=Control&price=90000&stock=4"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	fields, err := decodeFields(req)
	require.NoError(t, err)
	assert.Equal(t, models.Fields{"name": "Control", "price": "90000", "stock": "4"}, fields)
}

func TestDecodeFields_MultipartWithFile(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "PS5"))
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="ps5.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	fields, err := decodeFields(req)
	require.NoError(t, err)
	assert.Equal(t, "PS5", fields["name"])

	file, ok := formFile(req, "image")
	require.True(t, ok)
	assert.Equal(t, "ps5.png", file.Name)
	assert.Equal(t, "image/png", file.ContentType)
	assert.Equal(t, int64(9), file.Size)

	rc, err := file.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	_, ok = formFile(req, "missing")
	assert.False(t, ok)
}
