package service

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"princegaming/models"
)

// ImageSize selects the output preset of OptimizeImage
type ImageSize string

const (
	SizeThumb  ImageSize = "thumb"
	SizeMedium ImageSize = "medium"
)

const (
	qualityThumb  = 60
	qualityMedium = 75
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// OptimizeImage re-encodes an image as JPEG, shrinking it to fit the preset's box.
// Smaller images are not enlarged.
func OptimizeImage(imageData []byte, size ImageSize) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	maxDim, quality := maxSizeMedium, qualityMedium
	switch size {
	case SizeThumb:
		maxDim, quality = maxSizeThumb, qualityThumb
	case SizeMedium:
	default:
		zap.S().Warnf("⚠️  Unknown size '%s', defaulting to medium", size)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		resized := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
		zap.S().Debugf("🔄 Resizing image: %dx%d -> %dx%d", bounds.Dx(), bounds.Dy(), resized.Bounds().Dx(), resized.Bounds().Dy())
		img = resized
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	zap.S().Debugf("✓ Image optimized: size=%s, quality=%d, output_size=%d bytes", size, quality, buf.Len())
	return buf.Bytes(), nil
}

// OptimizeFile reads f, optimizes it and returns an in-memory JPEG handle
func OptimizeFile(f models.FileHandle, size ImageSize) (models.FileHandle, error) {
	src, err := f.Open()
	if err != nil {
		return f, fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return f, fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	optimized, err := OptimizeImage(data, size)
	if err != nil {
		return f, err
	}
	return BytesFile(strings.TrimSuffix(f.Name, filepath.Ext(f.Name))+".jpg", "image/jpeg", optimized), nil
}

// BytesFile wraps data in a FileHandle
func BytesFile(name, contentType string, data []byte) models.FileHandle {
	return models.FileHandle{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}
