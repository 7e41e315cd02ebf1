package services

import (
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/models"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/repositories"
)

// CallerContext describes who is making a request. It is built once by the
// auth middleware; no other code compares role strings.
type CallerContext struct {
	UserID        string
	Role          string
	EmailVerified bool
	Banned        bool
}

// AnonymousCaller is the context for unauthenticated requests
func AnonymousCaller() CallerContext {
	return CallerContext{}
}

// CallerFromUser builds a caller context from a resolved user row
func CallerFromUser(user *models.User) CallerContext {
	return CallerContext{
		UserID:        user.ID,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
		Banned:        user.IsBanned(),
	}
}

func (c CallerContext) IsAuthenticated() bool { return c.UserID != "" }
func (c CallerContext) IsAdmin() bool         { return c.Role == models.RoleAdmin }

// Authorizer centralizes every visibility and mutation decision. It computes
// query-level filters for listings so records a caller may not see are never
// fetched, and per-record predicates for single-item operations.
type Authorizer struct{}

// CanView reports whether the caller may fetch this submission: the owner,
// any admin, or anyone once it is approved and public.
func (Authorizer) CanView(caller CallerContext, submission *models.Submission) bool {
	if caller.IsAdmin() {
		return true
	}
	if caller.IsAuthenticated() && submission.SubmittedBy == caller.UserID {
		return true
	}
	return submission.Status == models.StatusApproved && submission.IsPublic
}

// CanEdit decides whether the caller may modify submission content. Admins
// may edit in any state; the owner only while the entry is draft or
// submitted. Returns ErrForbidden or InvalidStateError on denial.
func (Authorizer) CanEdit(caller CallerContext, submission *models.Submission) error {
	if caller.IsAdmin() {
		return nil
	}
	if !caller.IsAuthenticated() || submission.SubmittedBy != caller.UserID {
		return ErrForbidden
	}
	if !submission.Status.IsEditable() {
		return &InvalidStateError{Status: string(submission.Status)}
	}
	return nil
}

// CanDelete reports whether the caller may delete this submission
func (Authorizer) CanDelete(caller CallerContext, submission *models.Submission) bool {
	if caller.IsAdmin() {
		return true
	}
	return caller.IsAuthenticated() && submission.SubmittedBy == caller.UserID
}

// CanTransition reports whether the caller may change review status
func (Authorizer) CanTransition(caller CallerContext) bool {
	return caller.IsAdmin()
}

// CanSubmit decides whether the caller may create submissions at all
func (Authorizer) CanSubmit(caller CallerContext) error {
	if !caller.IsAuthenticated() || caller.Banned {
		return ErrForbidden
	}
	if !caller.EmailVerified {
		return ErrForbidden
	}
	return nil
}

// ListScope turns the caller identity and requested filters into the
// repository filter. Non-admins get the public-or-owner clause and cannot
// filter by status.
func (Authorizer) ListScope(caller CallerContext, params ListParams) repositories.SubmissionFilter {
	filter := repositories.SubmissionFilter{
		CategoryID: params.CategoryID,
		Region:     params.Region,
		Search:     params.Search,
	}

	if caller.IsAdmin() {
		filter.Unrestricted = true
		filter.Status = models.SubmissionStatus(params.Status)
		return filter
	}

	if caller.IsAuthenticated() {
		filter.OwnerID = caller.UserID
	}
	return filter
}
