package model

import (
	"time"
)

const (
	// MaxGeneralCommentLength bounds a mentor's overall remark.
	MaxGeneralCommentLength = 200
)

// GeneralComment is the mentor's overall remark on one task, distinct
// from the per-annotation feedback comments. At most one exists per
// task.
type GeneralComment struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID int64 `gorm:"not null;uniqueIndex" json:"task_id"`

	Text DraftText `gorm:"embedded" json:"text"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (GeneralComment) TableName() string {
	return "general_comments"
}
