package model

import (
	"time"
)

// CommentType distinguishes who wrote a comment and when.
type CommentType string

const (
	// CommentTypeQuestion is a mentee question attached at submission time.
	CommentTypeQuestion CommentType = "QUESTION"
	// CommentTypeFeedback is a mentor remark attached while reviewing.
	CommentTypeFeedback CommentType = "FEEDBACK"
)

// RegisterStatus tells whether a feedback comment is a private draft or
// has been published to the mentee.
type RegisterStatus string

const (
	RegisterStatusTemporary RegisterStatus = "TEMPORARY"
	RegisterStatusConfirmed RegisterStatus = "CONFIRMED"
)

// Annotation pins a comment to a point on the proof-shot image.
// Coordinates are percentages of the image dimensions so they survive
// client-side scaling. Number is the 1-based display order within one
// proof shot.
type Annotation struct {
	Number   int     `gorm:"column:number;not null" json:"number"`
	PercentX float64 `gorm:"column:percent_x;not null" json:"percent_x"`
	PercentY float64 `gorm:"column:percent_y;not null" json:"percent_y"`
}

// Comment is a single annotated remark on a proof shot. Mentee questions
// may carry a mentor answer; mentor feedback may be starred.
type Comment struct {
	ID          int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProofShotID int64 `gorm:"not null;index" json:"proof_shot_id"`

	Type           CommentType    `gorm:"size:20;not null" json:"type"`
	Content        string         `gorm:"type:text;not null" json:"content"`
	Starred        bool           `gorm:"not null;default:false" json:"starred"`
	RegisterStatus RegisterStatus `gorm:"size:20;not null" json:"register_status"`
	ReadByMentee   bool           `gorm:"not null;default:false" json:"read_by_mentee"`

	Annotation Annotation `gorm:"embedded;embeddedPrefix:annotation_" json:"annotation"`
	Answer     DraftText  `gorm:"embedded;embeddedPrefix:answer_" json:"answer"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Comment) TableName() string {
	return "comments"
}

// NewQuestionComment builds a mentee question. Questions are confirmed
// immediately and count as read: the mentee wrote them.
func NewQuestionComment(content string, annotation Annotation) Comment {
	return Comment{
		Type:           CommentTypeQuestion,
		Content:        content,
		RegisterStatus: RegisterStatusConfirmed,
		ReadByMentee:   true,
		Annotation:     annotation,
	}
}

// NewFeedbackComment builds a mentor remark with the given publication
// status. Feedback starts unread by the mentee.
func NewFeedbackComment(content string, starred bool, status RegisterStatus, annotation Annotation) Comment {
	return Comment{
		Type:           CommentTypeFeedback,
		Content:        content,
		Starred:        starred,
		RegisterStatus: status,
		ReadByMentee:   false,
		Annotation:     annotation,
	}
}

func (c *Comment) IsQuestion() bool {
	return c.Type == CommentTypeQuestion
}

func (c *Comment) IsFeedback() bool {
	return c.Type == CommentTypeFeedback
}

func (c *Comment) IsConfirmed() bool {
	return c.RegisterStatus == RegisterStatusConfirmed
}

func (c *Comment) MarkAsRead() {
	c.ReadByMentee = true
}
