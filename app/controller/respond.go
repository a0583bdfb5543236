package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"princegaming/client"
	"princegaming/models"
	"princegaming/service"
)

// maxFormMemory bounds the in-memory part of multipart forms; larger parts spill to disk
const maxFormMemory = 8 << 20

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorf("❌ respondJSON: Error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondFailure answers with the message the operator should read and a status matching the failure
func respondFailure(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), service.Describe(err))
}

func statusFor(err error) int {
	var (
		verr   *service.ValidationError
		lerr   *service.LoginError
		apiErr *client.APIError
		terr   *client.TransportError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrDeleteDeclined), errors.Is(err, service.ErrNotEditing):
		return http.StatusConflict
	case errors.Is(err, service.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.As(err, &lerr) && lerr.Status == http.StatusUnauthorized:
		return http.StatusUnauthorized
	case errors.As(err, &apiErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &terr):
		switch terr.Class {
		case client.ClassUnauthorized:
			return http.StatusUnauthorized
		case client.ClassNotFound:
			return http.StatusNotFound
		case client.ClassConnection:
			return http.StatusServiceUnavailable
		default:
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}

// decodeFields reads a JSON object or a form body into Fields
func decodeFields(r *http.Request) (models.Fields, error) {
	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, err
		}
		return formFields(r.MultipartForm.Value), nil
	case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return formFields(r.PostForm), nil
	}

	fields := models.Fields{}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return fields, nil
}

func formFields(values map[string][]string) models.Fields {
	fields := models.Fields{}
	for k, v := range values {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	return fields
}

// formFile returns the uploaded file under field. ok is false when none was sent.
// The request must already carry a parsed multipart form.
func formFile(r *http.Request, field string) (file models.FileHandle, ok bool) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return models.FileHandle{}, false
	}
	header := r.MultipartForm.File[field][0]
	return models.FileHandle{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}, true
}
