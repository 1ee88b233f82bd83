package model

import (
	"time"

	"gorm.io/datatypes"
)

// Subject categorizes a task. RESOURCE survives in old rows but new
// tasks and materials carry a real subject; materials are flagged by
// IsResource instead.
type Subject string

const (
	SubjectKorean   Subject = "KOREAN"
	SubjectEnglish  Subject = "ENGLISH"
	SubjectMath     Subject = "MATH"
	SubjectResource Subject = "RESOURCE"
)

func (s Subject) IsValid() bool {
	switch s {
	case SubjectKorean, SubjectEnglish, SubjectMath, SubjectResource:
		return true
	}
	return false
}

const (
	// MaxTaskNameLength bounds a task name.
	MaxTaskNameLength = 50
)

// Task is a unit of homework assigned to a mentee. It owns its proof
// shots, worksheets, column links and the mentor's general comment;
// deleting a task cascades through all of them.
type Task struct {
	ID       int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	MenteeID int64 `gorm:"not null;index" json:"mentee_id"`
	Mentee   *User `gorm:"foreignKey:MenteeID" json:"mentee,omitempty"`

	Subject Subject `gorm:"size:20;not null" json:"subject"`
	Name    string  `gorm:"size:50;not null" json:"name"`

	// StartDate is set on mentee-created tasks, DueDate on mentor-created
	// ones. ScheduledDate resolves which one governs scheduling.
	StartDate *datatypes.Date `gorm:"index" json:"start_date,omitempty"`
	DueDate   *datatypes.Date `gorm:"index" json:"due_date,omitempty"`

	GoalMinutes   int  `gorm:"not null" json:"goal_minutes"`
	ActualMinutes *int `json:"actual_minutes,omitempty"`
	Completed     bool `gorm:"not null;default:false" json:"completed"`

	CreatedBy UserRole `gorm:"size:20;not null" json:"created_by"`

	// IsResource marks shared study material. Resources keep a real
	// subject; they are excluded from the daily task views, reminders,
	// reports and the mentor dashboard.
	IsResource bool `gorm:"not null;default:false" json:"is_resource"`

	Worksheets     []Worksheet     `gorm:"foreignKey:TaskID" json:"worksheets,omitempty"`
	ColumnLinks    []ColumnLink    `gorm:"foreignKey:TaskID" json:"column_links,omitempty"`
	ProofShots     []ProofShot     `gorm:"foreignKey:TaskID" json:"proof_shots,omitempty"`
	GeneralComment *GeneralComment `gorm:"foreignKey:TaskID" json:"general_comment,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// ScheduledDate returns the date the task is planned for: the due date
// when present, otherwise the start date.
func (t *Task) ScheduledDate() *datatypes.Date {
	if t.DueDate != nil {
		return t.DueDate
	}
	return t.StartDate
}

// IsScheduledAfter reports whether the task's scheduled date is strictly
// after the given date. Both sides compare as calendar dates in their own
// location, so the answer does not shift with the clock's timezone. A
// task with no scheduled date is never after.
func (t *Task) IsScheduledAfter(date time.Time) bool {
	d := t.ScheduledDate()
	if d == nil {
		return false
	}
	return calendarDay(time.Time(*d)).After(calendarDay(date))
}

// calendarDay strips a timestamp down to its calendar date.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Complete records the time actually spent and flips the task to
// completed. A completed task always carries actual minutes.
func (t *Task) Complete(actualMinutes int) {
	m := actualMinutes
	t.ActualMinutes = &m
	t.Completed = true
}

func (t *Task) IsSubmitted() bool {
	return len(t.ProofShots) > 0
}

// HasFeedback reports whether any proof shot carries a confirmed
// feedback comment. Draft comments do not count.
func (t *Task) HasFeedback() bool {
	for i := range t.ProofShots {
		if t.ProofShots[i].HasFeedback() {
			return true
		}
	}
	return false
}

// HasReadAllFeedbacks is true when the task has no feedback at all, or
// every confirmed feedback comment has been read by the mentee.
func (t *Task) HasReadAllFeedbacks() bool {
	if !t.HasFeedback() {
		return true
	}
	for i := range t.ProofShots {
		if !t.ProofShots[i].HasReadAllFeedbacks() {
			return false
		}
	}
	return true
}

// MarkFeedbackAsRead marks every comment on every proof shot as read.
func (t *Task) MarkFeedbackAsRead() {
	for i := range t.ProofShots {
		t.ProofShots[i].MarkCommentsAsRead()
	}
}

// FindProofShot returns the proof shot with the given id, or nil.
func (t *Task) FindProofShot(proofShotID int64) *ProofShot {
	for i := range t.ProofShots {
		if t.ProofShots[i].ID == proofShotID {
			return &t.ProofShots[i]
		}
	}
	return nil
}
