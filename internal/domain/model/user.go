package model

import (
	"time"
)

// UserRole distinguishes the two sides of a mentoring pair.
type UserRole string

const (
	RoleMentor UserRole = "ROLE_MENTOR"
	RoleMentee UserRole = "ROLE_MENTEE"
)

// User is a mentor or mentee. The pairing is a self-referential relation:
// a mentee points at its single assigned mentor.
type User struct {
	ID       int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	MentorID *int64  `gorm:"index" json:"mentor_id,omitempty"`
	Mentor   *User   `gorm:"foreignKey:MentorID" json:"mentor,omitempty"`

	Role    UserRole `gorm:"size:20;not null" json:"role"`
	LoginID string   `gorm:"size:100;not null;unique" json:"login_id"`
	// Password holds the bcrypt hash; issuance and verification live in the
	// auth service.
	Password string  `gorm:"size:100;not null" json:"-"`
	Name     string  `gorm:"size:100;not null" json:"name"`
	Grade    *string `gorm:"size:50" json:"grade,omitempty"`

	// FCMToken is the push-delivery token, absent until the client registers.
	FCMToken *string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

func (u *User) IsMentor() bool {
	return u.Role == RoleMentor
}

func (u *User) IsMentee() bool {
	return u.Role == RoleMentee
}
