package models

// DriveImage is an image file found in a Google Drive folder
type DriveImage struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	URL      string `json:"url"`
}
