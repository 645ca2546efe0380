package entity

import "time"

// DocumentSummary is one uploaded file in the admin listing
type DocumentSummary struct {
	ID         int64          `json:"id"`
	Filename   string         `json:"filename"`
	UploadDate time.Time      `json:"upload_date"`
	Status     DocumentStatus `json:"status"`
	Size       int64          `json:"size"`
}

type UploadRequest struct {
	Filename string
	Content  []byte
}

type UploadResponse struct {
	ID       int64          `json:"id"`
	Filename string         `json:"filename"`
	Status   DocumentStatus `json:"status"`
}
