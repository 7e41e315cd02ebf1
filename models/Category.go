package models

import "time"

// Category represents a contest category submissions are entered under
type Category struct {
	ID          string `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:varchar(500)" json:"description"`

	// Inactive categories reject new submissions but keep existing ones
	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	// Denormalized count of submissions assigned to this category
	SubmissionCount int `gorm:"not null;default:0;column:submission_count" json:"submission_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
