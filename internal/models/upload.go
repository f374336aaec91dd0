// internal/models/upload.go
package models

import "time"

// Upload is the metadata kept for a stored product image.
type Upload struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	FileName  string    `json:"fileName"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
}
