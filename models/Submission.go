package models

import "time"

// TeamMember is a collaborator listed on a submission
type TeamMember struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AdminNote is a single entry in a submission's append-only review log
type AdminNote struct {
	ID        string    `json:"id"`
	Note      string    `json:"note"`
	AdminID   string    `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Submission represents a single contest entry referencing an externally hosted StoryMap
type Submission struct {
	ID          string `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	Title       string `gorm:"type:varchar(100);not null" json:"title"`
	Slug        string `gorm:"type:varchar(120);not null" json:"slug"`
	Description string `gorm:"type:varchar(1000);not null" json:"description"`

	StoryMapURL string `gorm:"type:varchar(500);not null;uniqueIndex;column:story_map_url" json:"story_map_url"`
	StoryMapID  string `gorm:"type:varchar(100);column:story_map_id" json:"story_map_id"`

	ThumbnailURL  string   `gorm:"type:varchar(500)" json:"thumbnail_url"`
	PreviewImages []string `gorm:"serializer:json" json:"preview_images"`

	CategoryID       string   `gorm:"type:uuid;not null;column:category_id" json:"category_id"`
	Tags             []string `gorm:"serializer:json" json:"tags"`
	Region           string   `gorm:"type:varchar(30);not null" json:"region"`
	SpecificLocation string   `gorm:"type:varchar(200)" json:"specific_location"`

	SubmittedBy string       `gorm:"type:uuid;not null;column:submitted_by" json:"submitted_by"`
	TeamMembers []TeamMember `gorm:"serializer:json" json:"team_members"`

	Status         SubmissionStatus `gorm:"type:varchar(20);not null;default:'submitted'" json:"status"`
	IsPublic       bool             `gorm:"not null;default:false" json:"is_public"`
	SubmissionDate time.Time        `json:"submission_date"`
	AdminNotes     []AdminNote      `gorm:"serializer:json" json:"admin_notes"`

	// Populated by the judging subsystem, read here only as a sort key
	AverageScore float64 `gorm:"not null;default:0;column:average_score" json:"average_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Owner    *User     `gorm:"foreignKey:SubmittedBy" json:"owner,omitempty"`
}

// Regions a submission may be classified under
var ValidRegions = []string{
	"north_america",
	"south_america",
	"europe",
	"africa",
	"asia",
	"oceania",
	"middle_east",
}

// IsValidRegion reports whether region is one of the seven supported values
func IsValidRegion(region string) bool {
	for _, r := range ValidRegions {
		if r == region {
			return true
		}
	}
	return false
}
