package models

// SubmissionStatus is the review state of a submission
type SubmissionStatus string

const (
	StatusDraft       SubmissionStatus = "draft"
	StatusSubmitted   SubmissionStatus = "submitted"
	StatusUnderReview SubmissionStatus = "under_review"
	StatusApproved    SubmissionStatus = "approved"
	StatusRejected    SubmissionStatus = "rejected"
	StatusWinner      SubmissionStatus = "winner"
)

// AllStatuses lists every valid review state
var AllStatuses = []SubmissionStatus{
	StatusDraft,
	StatusSubmitted,
	StatusUnderReview,
	StatusApproved,
	StatusRejected,
	StatusWinner,
}

// IsValidStatus reports whether s is one of the six valid literals
func IsValidStatus(s SubmissionStatus) bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// statusTransitions is the admin transition table. Every pair of valid states
// is currently allowed, including re-applying the current state; the review
// console relies on being able to move entries back out of terminal states.
var statusTransitions = map[SubmissionStatus][]SubmissionStatus{
	StatusDraft:       AllStatuses,
	StatusSubmitted:   AllStatuses,
	StatusUnderReview: AllStatuses,
	StatusApproved:    AllStatuses,
	StatusRejected:    AllStatuses,
	StatusWinner:      AllStatuses,
}

// CanTransition reports whether an admin may move a submission from one
// review state to another
func CanTransition(from, to SubmissionStatus) bool {
	targets, ok := statusTransitions[from]
	if !ok {
		return false
	}
	for _, t := range targets {
		if t == to {
			return true
		}
	}
	return false
}

// IsEditable reports whether the owner may still modify submission content
// in this state. Once review starts the entry is frozen for the owner.
func (s SubmissionStatus) IsEditable() bool {
	return s == StatusDraft || s == StatusSubmitted
}
