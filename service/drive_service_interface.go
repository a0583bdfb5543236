package service

import (
	"context"

	"princegaming/models"
)

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListImages(ctx context.Context, folderID string) ([]models.DriveImage, error)
	OpenImage(ctx context.Context, fileID string) (models.FileHandle, error)
}
