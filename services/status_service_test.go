package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/models"
)

func newTestStatusService(store *mockStore, broadcaster *mockBroadcaster) *StatusService {
	return NewStatusService(store, broadcaster, nil, zap.NewNop())
}

func adminCaller() CallerContext {
	return CallerContext{UserID: "admin-1", Role: models.RoleAdmin, EmailVerified: true}
}

func TestUpdateStatusAdminOnly(t *testing.T) {
	store := newMockStore()
	store.addSubmission(&models.Submission{ID: "sub-1", Status: models.StatusSubmitted})
	service := newTestStatusService(store, &mockBroadcaster{})

	participant := CallerContext{UserID: "user-1", Role: models.RoleParticipant, EmailVerified: true}
	_, err := service.UpdateStatus(context.Background(), participant, "sub-1", models.StatusApproved, "")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = service.UpdateStatus(context.Background(), AnonymousCaller(), "sub-1", models.StatusApproved, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStatusRejectsUnknownLiteral(t *testing.T) {
	store := newMockStore()
	store.addSubmission(&models.Submission{ID: "sub-1", Status: models.StatusSubmitted})
	service := newTestStatusService(store, &mockBroadcaster{})

	_, err := service.UpdateStatus(context.Background(), adminCaller(), "sub-1", "archived", "")
	var statusErr *InvalidStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "archived", statusErr.Status)
}

func TestUpdateStatusTransitionsAndBroadcasts(t *testing.T) {
	store := newMockStore()
	store.addSubmission(&models.Submission{ID: "sub-1", Status: models.StatusSubmitted})
	broadcaster := &mockBroadcaster{}
	service := newTestStatusService(store, broadcaster)

	updated, err := service.UpdateStatus(context.Background(), adminCaller(), "sub-1", models.StatusUnderReview, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnderReview, updated.Status)

	require.Len(t, broadcaster.events, 1)
	assert.Equal(t, "sub-1:submitted->under_review", broadcaster.events[0])
}

func TestUpdateStatusAppendsAdminNote(t *testing.T) {
	store := newMockStore()
	store.addSubmission(&models.Submission{ID: "sub-1", Status: models.StatusSubmitted})
	service := newTestStatusService(store, &mockBroadcaster{})

	updated, err := service.UpdateStatus(context.Background(), adminCaller(), "sub-1", models.StatusRejected, "missing attribution for imagery")
	require.NoError(t, err)

	require.Len(t, updated.AdminNotes, 1)
	note := updated.AdminNotes[0]
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "missing attribution for imagery", note.Note)
	assert.Equal(t, "admin-1", note.AdminID)
	assert.False(t, note.CreatedAt.IsZero())

	// Notes accumulate; earlier entries are never rewritten
	updated, err = service.UpdateStatus(context.Background(), adminCaller(), "sub-1", models.StatusUnderReview, "second look requested")
	require.NoError(t, err)
	require.Len(t, updated.AdminNotes, 2)
	assert.Equal(t, "missing attribution for imagery", updated.AdminNotes[0].Note)
}

func TestUpdateStatusIdempotentApprove(t *testing.T) {
	store := newMockStore()
	store.addSubmission(&models.Submission{ID: "sub-1", Status: models.StatusSubmitted})
	service := newTestStatusService(store, &mockBroadcaster{})

	_, err := service.UpdateStatus(context.Background(), adminCaller(), "sub-1", models.StatusApproved, "")
	require.NoError(t, err)

	updated, err := service.UpdateStatus(context.Background(), adminCaller(), "sub-1", models.StatusApproved, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, updated.Status)
}

func TestUpdateStatusCanReturnToDraft(t *testing.T) {
	store := newMockStore()
	store.addSubmission(&models.Submission{ID: "sub-1", Status: models.StatusApproved})
	service := newTestStatusService(store, &mockBroadcaster{})

	updated, err := service.UpdateStatus(context.Background(), adminCaller(), "sub-1", models.StatusDraft, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, updated.Status)
}

func TestUpdateStatusMissingSubmission(t *testing.T) {
	service := newTestStatusService(newMockStore(), &mockBroadcaster{})

	_, err := service.UpdateStatus(context.Background(), adminCaller(), "missing", models.StatusApproved, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBulkApprovePartialFailure(t *testing.T) {
	store := newMockStore()
	store.addSubmission(&models.Submission{ID: "sub-1", Status: models.StatusSubmitted})
	store.addSubmission(&models.Submission{ID: "sub-2", Status: models.StatusUnderReview})
	service := newTestStatusService(store, &mockBroadcaster{})

	result, err := service.BulkApprove(context.Background(), adminCaller(), []string{"sub-1", "missing", "sub-2"})
	require.NoError(t, err)

	assert.Equal(t, []string{"sub-1", "sub-2"}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "missing", result.Failed[0].ID)
	assert.Equal(t, "NotFound", result.Failed[0].Reason)

	assert.Equal(t, models.StatusApproved, store.submissions.items["sub-1"].Status)
	assert.Equal(t, models.StatusApproved, store.submissions.items["sub-2"].Status)
}

func TestBulkApproveBounds(t *testing.T) {
	service := newTestStatusService(newMockStore(), &mockBroadcaster{})
	ctx := context.Background()

	_, err := service.BulkApprove(ctx, adminCaller(), nil)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	tooMany := make([]string, 51)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("sub-%d", i)
	}
	_, err = service.BulkApprove(ctx, adminCaller(), tooMany)
	assert.ErrorAs(t, err, &validationErr)
}

func TestBulkApproveNonAdmin(t *testing.T) {
	service := newTestStatusService(newMockStore(), &mockBroadcaster{})

	participant := CallerContext{UserID: "user-1", Role: models.RoleParticipant}
	_, err := service.BulkApprove(context.Background(), participant, []string{"sub-1"})
	assert.ErrorIs(t, err, ErrForbidden)
}
