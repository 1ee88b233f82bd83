package model

import (
	"time"

	"github.com/google/uuid"
)

// ProofShot is one photographed page of completed homework. It owns the
// comments pinned onto it.
type ProofShot struct {
	ID     int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID int64     `gorm:"not null;index" json:"task_id"`
	FileID uuid.UUID `gorm:"type:uuid;not null" json:"file_id"`
	File   *File     `gorm:"foreignKey:FileID" json:"file,omitempty"`

	Comments []Comment `gorm:"foreignKey:ProofShotID" json:"comments,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (ProofShot) TableName() string {
	return "proof_shots"
}

// QuestionComments returns the mentee questions on this proof shot.
func (p *ProofShot) QuestionComments() []Comment {
	var out []Comment
	for _, c := range p.Comments {
		if c.IsQuestion() {
			out = append(out, c)
		}
	}
	return out
}

// HasFeedback reports whether a confirmed feedback comment exists.
func (p *ProofShot) HasFeedback() bool {
	for i := range p.Comments {
		if p.Comments[i].IsFeedback() && p.Comments[i].IsConfirmed() {
			return true
		}
	}
	return false
}

// HasReadAllFeedbacks is true when every confirmed feedback comment has
// been read by the mentee.
func (p *ProofShot) HasReadAllFeedbacks() bool {
	for i := range p.Comments {
		c := &p.Comments[i]
		if c.IsFeedback() && c.IsConfirmed() && !c.ReadByMentee {
			return false
		}
	}
	return true
}

// MarkCommentsAsRead marks every comment on this proof shot as read.
func (p *ProofShot) MarkCommentsAsRead() {
	for i := range p.Comments {
		p.Comments[i].MarkAsRead()
	}
}
