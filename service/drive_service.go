package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"princegaming/models"
)

// DriveService reads product images from Google Drive
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// NewDriveService creates a DriveService authenticated with a Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	return NewDriveServiceWithOptions(ctx, option.WithCredentialsFile(credentialsPath))
}

// NewDriveServiceWithOptions creates a DriveService from raw client options
func NewDriveServiceWithOptions(ctx context.Context, opts ...option.ClientOption) (*DriveService, error) {
	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveService{client: driveService}, nil
}

var imageMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
}

// ListImages lists the image files of a folder
func (ds *DriveService) ListImages(ctx context.Context, folderID string) ([]models.DriveImage, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", strings.ReplaceAll(folderID, "'", `\'`))

	var images []models.DriveImage
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}
		for _, file := range r.Files {
			if !imageMimeTypes[strings.ToLower(file.MimeType)] {
				continue
			}
			images = append(images, models.DriveImage{
				ID:       file.Id,
				Name:     file.Name,
				MimeType: file.MimeType,
				URL:      fmt.Sprintf("https://drive.google.com/uc?id=%s", file.Id),
			})
		}

		pageToken = r.NextPageToken
		if pageToken == "" {
			break
		}
	}

	zap.S().Infof("📁 Drive: %d images in folder %s", len(images), folderID)
	return images, nil
}

// OpenImage downloads a Drive file into memory so it can be staged like a local pick.
// Reading stops one byte past MaxImageSize so oversize files are still rejected by the slot.
func (ds *DriveService) OpenImage(ctx context.Context, fileID string) (models.FileHandle, error) {
	meta, err := ds.client.Files.Get(fileID).Fields("id, name, mimeType, size").Context(ctx).Do()
	if err != nil {
		return models.FileHandle{}, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}

	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return models.FileHandle{}, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageSize+1))
	if err != nil {
		return models.FileHandle{}, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}

	file := BytesFile(meta.Name, meta.MimeType, data)
	if meta.Size > file.Size {
		file.Size = meta.Size
	}
	zap.S().Infof("📥 Drive: fetched %s (%s, %d bytes)", meta.Name, meta.MimeType, file.Size)
	return file, nil
}
