package model

import (
	"time"

	"gorm.io/datatypes"
)

// ReportCommentKind splits report comments into strengths and areas to
// improve.
type ReportCommentKind string

const (
	ReportCommentGood ReportCommentKind = "GOOD"
	ReportCommentBad  ReportCommentKind = "BAD"
)

// LearningReport is a mentor's periodic review of one subject for one
// mentee. At most one report exists per (mentee, subject, period).
type LearningReport struct {
	ID       int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	MenteeID int64 `gorm:"not null;index:idx_report_period,unique" json:"mentee_id"`
	MentorID int64 `gorm:"not null;index" json:"mentor_id"`

	Subject   Subject        `gorm:"size:20;not null;index:idx_report_period,unique" json:"subject"`
	StartDate datatypes.Date `gorm:"not null;index:idx_report_period,unique" json:"start_date"`
	EndDate   datatypes.Date `gorm:"not null;index:idx_report_period,unique" json:"end_date"`

	GeneralComment string `gorm:"type:text;not null" json:"general_comment"`

	Comments []ReportComment `gorm:"foreignKey:ReportID" json:"comments,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (LearningReport) TableName() string {
	return "learning_reports"
}

// GoodPoints returns the strength comments in stored order.
func (r *LearningReport) GoodPoints() []ReportComment {
	return r.commentsOfKind(ReportCommentGood)
}

// BadPoints returns the improvement comments in stored order.
func (r *LearningReport) BadPoints() []ReportComment {
	return r.commentsOfKind(ReportCommentBad)
}

func (r *LearningReport) commentsOfKind(kind ReportCommentKind) []ReportComment {
	var out []ReportComment
	for _, c := range r.Comments {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// ReportComment is one bullet point inside a learning report.
type ReportComment struct {
	ID       int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportID int64             `gorm:"not null;index" json:"report_id"`
	Kind     ReportCommentKind `gorm:"size:10;not null" json:"kind"`
	Content  string            `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (ReportComment) TableName() string {
	return "report_comments"
}
