package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"princegaming/models"
)

// MaxImageSize is the largest file a slot accepts
const MaxImageSize = 5 << 20

const (
	msgInvalidImage = "Por favor selecciona un archivo de imagen válido."
	msgImageTooBig  = "El archivo es demasiado grande. Máximo 5MB."
	msgNoImage      = "No hay archivo seleccionado"
	msgUploadFailed = "Error al subir la imagen"
)

// Uploader sends a file to the image endpoint
type Uploader func(ctx context.Context, file models.FileHandle) (*models.UploadResult, error)

// ImageSlot stages one image for an add form. Slots share no state.
type ImageSlot struct {
	upload   Uploader
	optimize bool

	mu        sync.Mutex
	file      *models.FileHandle
	lastError string
	uploading bool
}

// NewImageSlot creates an empty slot. With optimize set, images are
// re-encoded with OptimizeImage before they are sent.
func NewImageSlot(upload Uploader, optimize bool) *ImageSlot {
	return &ImageSlot{upload: upload, optimize: optimize}
}

// SelectFile validates f and stages it. A rejected file leaves the
// previous selection in place; an accepted one clears the last error.
func (s *ImageSlot) SelectFile(f models.FileHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !strings.HasPrefix(strings.ToLower(f.ContentType), "image/") {
		s.lastError = msgInvalidImage
		return invalid(msgInvalidImage)
	}
	if f.Size > MaxImageSize {
		s.lastError = msgImageTooBig
		return invalid(msgImageTooBig)
	}
	s.file = &f
	s.lastError = ""
	return nil
}

// Selected returns the staged file
func (s *ImageSlot) Selected() (models.FileHandle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return models.FileHandle{}, false
	}
	return *s.file, true
}

// LastError returns the message of the last rejected selection
func (s *ImageSlot) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Uploading reports whether an upload is in flight
func (s *ImageSlot) Uploading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploading
}

// Upload sends the staged file and returns its public URL.
// The staged file is kept on failure. A dispatched upload cannot be cancelled.
func (s *ImageSlot) Upload(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.file == nil {
		s.mu.Unlock()
		return "", &UploadError{Message: msgNoImage}
	}
	file := *s.file
	s.uploading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.uploading = false
		s.mu.Unlock()
	}()

	if s.optimize {
		optimized, err := OptimizeFile(file, SizeMedium)
		if err != nil {
			zap.S().Warnf("⚠️  Upload: sending %s unoptimized: %v", file.Name, err)
		} else {
			file = optimized
		}
	}

	result, err := s.upload(ctx, file)
	if err != nil {
		return "", &UploadError{Message: msgUploadFailed, Err: err}
	}
	zap.S().Infof("✅ Upload: %s -> %s", file.Name, result.ImageURL)
	return result.ImageURL, nil
}

// Reset drops the staged file and error
func (s *ImageSlot) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.file = nil
	s.lastError = ""
}
