package model

import (
	"time"
)

// NotificationType names the event that produced a notification.
type NotificationType string

const (
	NotificationTypeFeedback       NotificationType = "FEEDBACK"
	NotificationTypeReminder       NotificationType = "REMINDER"
	NotificationTypeLearningReport NotificationType = "LEARNING_REPORT"
)

// NotificationStatus is the read-tracking state machine. NEW means the
// receiver has not yet seen the notification list since it arrived;
// UNREAD means listed but not opened; READ is terminal.
type NotificationStatus string

const (
	NotificationStatusNew    NotificationStatus = "NEW"
	NotificationStatusUnread NotificationStatus = "UNREAD"
	NotificationStatusRead   NotificationStatus = "READ"
)

// Notification is an in-app message for one receiver, optionally linked
// to the task or learning report it concerns.
type Notification struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ReceiverID int64 `gorm:"not null;index" json:"receiver_id"`

	TaskID           *int64 `gorm:"index" json:"task_id,omitempty"`
	LearningReportID *int64 `gorm:"index" json:"learning_report_id,omitempty"`

	Type    NotificationType   `gorm:"size:30;not null" json:"type"`
	Title   string             `gorm:"size:100;not null" json:"title"`
	Message string             `gorm:"size:255;not null" json:"message"`
	Status  NotificationStatus `gorm:"size:20;not null;default:NEW" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// MarkAsChecked moves a freshly delivered notification to UNREAD once it
// has appeared in the receiver's list. Other states are left alone.
func (n *Notification) MarkAsChecked() {
	if n.Status == NotificationStatusNew {
		n.Status = NotificationStatusUnread
	}
}

// MarkAsRead marks the notification opened. Safe to call repeatedly.
func (n *Notification) MarkAsRead() {
	n.Status = NotificationStatusRead
}

func (n *Notification) IsNew() bool {
	return n.Status == NotificationStatusNew
}
