package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"princegaming/models"
)

func declared(name, contentType string, size int64) models.FileHandle {
	return models.FileHandle{
		Name:        name,
		ContentType: contentType,
		Size:        size,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(make([]byte, 8))), nil
		},
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageSlot_RejectsNonImage(t *testing.T) {
	slot := NewImageSlot(newFakeAPI().UploadImage, false)

	err := slot.SelectFile(declared("notes.txt", "text/plain", 10))
	require.Error(t, err)
	assert.Contains(t, Describe(err), "imagen válido")
	assert.Contains(t, slot.LastError(), "imagen válido")
	_, ok := slot.Selected()
	assert.False(t, ok)
}

func TestImageSlot_RejectsOversize(t *testing.T) {
	slot := NewImageSlot(newFakeAPI().UploadImage, false)

	err := slot.SelectFile(declared("big.jpg", "image/jpeg", 6<<20))
	require.Error(t, err)
	assert.Contains(t, Describe(err), "demasiado grande")
	_, ok := slot.Selected()
	assert.False(t, ok)
}

func TestImageSlot_ExactLimitAccepted(t *testing.T) {
	slot := NewImageSlot(newFakeAPI().UploadImage, false)
	assert.NoError(t, slot.SelectFile(declared("max.jpg", "image/jpeg", MaxImageSize)))
}

func TestImageSlot_RejectionKeepsPreviousSelection(t *testing.T) {
	slot := NewImageSlot(newFakeAPI().UploadImage, false)
	require.NoError(t, slot.SelectFile(declared("cover.png", "image/png", 100)))

	require.Error(t, slot.SelectFile(declared("notes.txt", "text/plain", 10)))
	f, ok := slot.Selected()
	require.True(t, ok)
	assert.Equal(t, "cover.png", f.Name)
	assert.NotEmpty(t, slot.LastError())

	require.NoError(t, slot.SelectFile(declared("other.png", "image/png", 100)))
	assert.Empty(t, slot.LastError())
	f, _ = slot.Selected()
	assert.Equal(t, "other.png", f.Name)
}

func TestImageSlot_UploadWithoutFile(t *testing.T) {
	slot := NewImageSlot(newFakeAPI().UploadImage, false)
	_, err := slot.Upload(context.Background())
	var uerr *UploadError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "No hay archivo seleccionado", Describe(err))
}

func TestImageSlot_UploadReturnsURL(t *testing.T) {
	api := newFakeAPI()
	slot := NewImageSlot(api.UploadImage, false)
	require.NoError(t, slot.SelectFile(declared("cover.png", "image/png", 100)))

	url, err := slot.Upload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/img.jpg", url)
	assert.False(t, slot.Uploading())
}

func TestImageSlot_UploadFailureKeepsFile(t *testing.T) {
	api := newFakeAPI()
	api.failWith["UploadImage"] = serverDown()
	slot := NewImageSlot(api.UploadImage, false)
	require.NoError(t, slot.SelectFile(declared("cover.png", "image/png", 100)))

	_, err := slot.Upload(context.Background())
	var uerr *UploadError
	require.True(t, errors.As(err, &uerr))
	assert.Contains(t, Describe(err), "No se puede conectar al servidor")
	_, ok := slot.Selected()
	assert.True(t, ok)
}

func TestImageSlot_SlotsAreIndependent(t *testing.T) {
	api := newFakeAPI()
	a := NewImageSlot(api.UploadImage, false)
	b := NewImageSlot(api.UploadImage, false)

	require.NoError(t, a.SelectFile(declared("a.png", "image/png", 1)))
	require.Error(t, b.SelectFile(declared("b.txt", "text/plain", 1)))

	_, ok := b.Selected()
	assert.False(t, ok)
	assert.Empty(t, a.LastError())
}

func TestImageSlot_OptimizesBeforeUpload(t *testing.T) {
	api := newFakeAPI()
	var sent models.FileHandle
	slot := NewImageSlot(func(ctx context.Context, f models.FileHandle) (*models.UploadResult, error) {
		sent = f
		return api.UploadImage(ctx, f)
	}, true)
	require.NoError(t, slot.SelectFile(BytesFile("cover.png", "image/png", pngBytes(t, 1600, 900))))

	_, err := slot.Upload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cover.jpg", sent.Name)
	assert.Equal(t, "image/jpeg", sent.ContentType)

	rc, err := sent.Open()
	require.NoError(t, err)
	defer rc.Close()
	cfg, format, err := image.DecodeConfig(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 450, cfg.Height)
}

func TestOptimizeImage_SmallImageNotEnlarged(t *testing.T) {
	out, err := OptimizeImage(pngBytes(t, 120, 80), SizeThumb)
	require.NoError(t, err)
	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestOptimizeImage_RejectsGarbage(t *testing.T) {
	_, err := OptimizeImage([]byte("not an image"), SizeMedium)
	assert.Error(t, err)
}

func TestImageSlot_UnoptimizableStillUploads(t *testing.T) {
	api := newFakeAPI()
	slot := NewImageSlot(api.UploadImage, true)
	require.NoError(t, slot.SelectFile(declared("weird.png", "image/png", 8)))
	_, err := slot.Upload(context.Background())
	require.NoError(t, err)
	calls := api.called("UploadImage")
	require.Len(t, calls, 1)
	assert.Equal(t, "weird.png", calls[0].ID)
}
