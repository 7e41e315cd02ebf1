package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the submission services
var (
	ErrNotFound  = errors.New("submission not found")
	ErrForbidden = errors.New("you do not have permission to perform this action")
)

// ValidationError reports a malformed field; the caller can correct and retry
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// DuplicateURLError reports that another submission already references the
// same StoryMap URL
type DuplicateURLError struct {
	URL string
}

func (e *DuplicateURLError) Error() string {
	return fmt.Sprintf("a submission for %s already exists", e.URL)
}

// QuotaExceededError reports that the caller already owns the maximum number
// of submissions
type QuotaExceededError struct {
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("submission limit of %d reached", e.Limit)
}

// InvalidCategoryError reports a missing or inactive category
type InvalidCategoryError struct {
	CategoryID string
	Reason     string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("category %s: %s", e.CategoryID, e.Reason)
}

// InvalidStatusError reports a status value outside the six valid literals,
// or a transition the review table does not allow
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid submission status %q", e.Status)
}

// InvalidStateError reports an owner edit attempted after the review window
// closed
type InvalidStateError struct {
	Status string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("submission can no longer be edited in status %q", e.Status)
}
