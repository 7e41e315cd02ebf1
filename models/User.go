package models

import "time"

// User roles
const (
	RoleParticipant = "participant"
	RoleAdmin       = "admin"
)

// User account states
const (
	UserActive = "active"
	UserBanned = "banned"
)

// User represents a contest participant or administrator
type User struct {
	ID            string `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	Email         string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	FirstName     string `gorm:"type:varchar(100)" json:"first_name"`
	LastName      string `gorm:"type:varchar(100)" json:"last_name"`
	Password      string `gorm:"type:varchar(255);not null" json:"-"`
	Role          string `gorm:"type:varchar(20);not null;default:'participant'" json:"role"`
	Status        string `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	EmailVerified bool   `gorm:"not null;default:false" json:"email_verified"`

	// Denormalized count of submissions currently owned by this user,
	// maintained in the same transaction as every submission write
	SubmissionCount int `gorm:"not null;default:0;column:submission_count" json:"submission_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the administrator role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsBanned reports whether the account is banned
func (u *User) IsBanned() bool {
	return u.Status == UserBanned
}
