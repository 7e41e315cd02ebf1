package config

// Submission limit configuration
type SubmissionLimitConfig struct {
	MaxPerUser        int // Maximum concurrent submissions a non-admin user may own
	MaxTeamMembers    int // Maximum team members on a submission
	MaxPreviewImages  int // Maximum preview images on a submission
	MaxTags           int // Maximum tags on a submission
	MaxBulkIDs        int // Maximum ids accepted by a bulk status operation
	PublicCacheTTLSec int // TTL for cached public listings
}

var Submissions = SubmissionLimitConfig{
	MaxPerUser:        5,
	MaxTeamMembers:    10,
	MaxPreviewImages:  5,
	MaxTags:           10,
	MaxBulkIDs:        50,
	PublicCacheTTLSec: 60,
}
