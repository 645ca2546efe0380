package entity

import (
	"fmt"
	"time"
)

type DocumentStatus string

const (
	DocumentStatusPending   DocumentStatus = "pending"
	DocumentStatusProcessed DocumentStatus = "processed"
	DocumentStatusFailed    DocumentStatus = "failed"
)

// Document is a stored chunk of an uploaded file
type Document struct {
	ID          int64          `json:"id"`
	UploadID    string         `json:"upload_id"`
	SrcFileName string         `json:"src_file_name"`
	ChunkIndex  int            `json:"chunk_index"`
	Content     string         `json:"content"`
	Status      DocumentStatus `json:"status"`
	Size        int64          `json:"size"`
	CreatedAt   time.Time      `json:"created_at"`
}

// DocumentChunk is a retrieved chunk ordered by distance to the query
type DocumentChunk struct {
	ID         int64
	SourceName string
	Content    string
	Distance   float64
}

// SourceRef identifies the chunk in an answer's source list
func (c DocumentChunk) SourceRef() string {
	return fmt.Sprintf("%s#%d", c.SourceName, c.ID)
}

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	HashedPassword string    `json:"-"`
	Disabled       bool      `json:"disabled"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
}
