package model

import (
	"time"

	"github.com/google/uuid"
)

// File is a stored object's metadata row. The binary lives in S3 under
// ObjectKey; handing the content to clients always goes through a
// presigned URL.
type File struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	ContentType string    `gorm:"size:100;not null" json:"content_type"`
	ByteSize    int64     `gorm:"not null" json:"byte_size"`
	BucketName  string    `gorm:"size:100;not null" json:"-"`
	ObjectKey   string    `gorm:"size:255;not null" json:"-"`
	UploaderID  int64     `gorm:"not null;index" json:"uploader_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (File) TableName() string {
	return "files"
}
