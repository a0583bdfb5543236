package models

import "io"

// UploadResult is the canonical data payload of the image upload endpoints
type UploadResult struct {
	ImageURL string `json:"imageUrl"`
	Filename string `json:"filename"`
}

// FileHandle describes a file picked by the operator.
// ContentType and Size are the declared values used for validation before any bytes are read.
type FileHandle struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}
