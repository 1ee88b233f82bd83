package model

import (
	"time"

	"github.com/google/uuid"
)

// Worksheet attaches study material to a task. The same file may back
// worksheets on many tasks.
type Worksheet struct {
	ID     int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID int64     `gorm:"not null;index" json:"task_id"`
	FileID uuid.UUID `gorm:"type:uuid;not null" json:"file_id"`
	File   *File     `gorm:"foreignKey:FileID" json:"file,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Worksheet) TableName() string {
	return "worksheets"
}

// ColumnLink attaches an external article URL to a task.
type ColumnLink struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID int64  `gorm:"not null;index" json:"task_id"`
	Link   string `gorm:"size:2048;not null" json:"link"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (ColumnLink) TableName() string {
	return "column_links"
}
