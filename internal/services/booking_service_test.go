package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/Ezra-Tech-EB/BAHIS/internal/refseq"
	"github.com/Ezra-Tech-EB/BAHIS/internal/repository/memory"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func newBookingFixture(t *testing.T) (*BookingService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	gen := refseq.NewGenerator(refseq.NewMemorySequencer(), 6)
	svc := NewBookingService(store, store.Users(), store.ImportInspections(), store.FarmInspections(), gen, nil)
	return svc, store
}

func importBookingRequest(token string) *models.SubmitBookingRequest {
	return &models.SubmitBookingRequest{
		SubmissionToken: token,
		Contact: models.ContactInfo{
			FullName: "Jordan Rolle",
			Email:    "jordan@example.com",
			Phone:    "+1-242-555-0101",
		},
		InspectionType: models.InspectionImport,
		PreferredDate:  "2026-09-10",
		PreferredTime:  "09:00",
		Urgency:        models.UrgencyRoutine,
		ImportDetails: &models.ImportRequest{
			Commodity:     "bananas",
			OriginCountry: "Ecuador",
			Quantity:      1200,
			Unit:          "kg",
			PortOfEntry:   "Nassau",
		},
	}
}

func seedInspector(t *testing.T, store *memory.Store, active bool) *models.User {
	t.Helper()
	user := &models.User{
		Email:  uuid.New().String() + "@bahfsa.gov.bs",
		Name:   "Field Inspector",
		Role:   models.RoleInspector,
		Active: active,
	}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

var adminActor = models.Actor{ID: "admin-1", Role: models.RoleAdmin}

// ============================================================================
// SUBMISSION
// ============================================================================

func TestSubmitBooking_PublicActor(t *testing.T) {
	svc, _ := newBookingFixture(t)

	booking, err := svc.Submit(context.Background(), models.PublicActor(), importBookingRequest("tok-1"))
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Regexp(t, `^BOOK-\d{4}-\d{6}$`, booking.ReferenceNumber)
	assert.Nil(t, booking.AssignedTo)
	assert.Nil(t, booking.RejectionReason)
}

func TestSubmitBooking_DuplicateTokenReturnsExisting(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()

	first, err := svc.Submit(ctx, models.PublicActor(), importBookingRequest("tok-dup"))
	require.NoError(t, err)

	second, err := svc.Submit(ctx, models.PublicActor(), importBookingRequest("tok-dup"))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ReferenceNumber, second.ReferenceNumber)
}

func TestSubmitBooking_MissingImportDetails(t *testing.T) {
	svc, _ := newBookingFixture(t)

	req := importBookingRequest("tok-2")
	req.ImportDetails = nil

	_, err := svc.Submit(context.Background(), models.PublicActor(), req)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "import_details", verr.Field)
}

func TestSubmitBooking_BadUrgency(t *testing.T) {
	svc, _ := newBookingFixture(t)

	req := importBookingRequest("tok-3")
	req.Urgency = "asap"

	_, err := svc.Submit(context.Background(), models.PublicActor(), req)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "urgency", verr.Field)
}

// ============================================================================
// LIFECYCLE TRANSITIONS
// ============================================================================

func TestBookingLifecycle_HappyPath(t *testing.T) {
	svc, store := newBookingFixture(t)
	ctx := context.Background()
	inspector := seedInspector(t, store, true)

	booking, err := svc.Submit(ctx, models.PublicActor(), importBookingRequest("tok-flow"))
	require.NoError(t, err)

	booking, err = svc.Confirm(ctx, adminActor, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, booking.Status)

	booking, err = svc.Assign(ctx, adminActor, booking.ID, inspector.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingAssigned, booking.Status)
	require.NotNil(t, booking.AssignedTo)
	assert.Equal(t, inspector.ID, *booking.AssignedTo)

	inspection := &models.ImportInspection{
		ReferenceNumber: "IMP-2026-000001",
		BookingID:       &booking.ID,
		InspectorID:     inspector.ID,
		InspectionDate:  "2026-09-10",
		Status:          models.ImportApproved,
	}
	require.NoError(t, store.ImportInspections().Create(ctx, inspection))

	booking, err = svc.Complete(ctx, adminActor, booking.ID, inspection.ReferenceNumber)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, booking.Status)
	require.NotNil(t, booking.InspectionRef)
	assert.Equal(t, inspection.ReferenceNumber, *booking.InspectionRef)

	trail, err := store.ListByEntity(ctx, booking.ID)
	require.NoError(t, err)
	assert.Len(t, trail, 3)
}

func TestBookingTransition_PendingToCompletedRejected(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()

	booking, err := svc.Submit(ctx, models.PublicActor(), importBookingRequest("tok-skip"))
	require.NoError(t, err)

	_, err = svc.Complete(ctx, adminActor, booking.ID, "IMP-2026-000001")

	var terr *models.InvalidTransition
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, string(models.BookingPending), terr.From)
	assert.Equal(t, string(models.BookingCompleted), terr.To)
}

func TestBookingTransition_TerminalStatesFrozen(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()

	booking, err := svc.Submit(ctx, models.PublicActor(), importBookingRequest("tok-term"))
	require.NoError(t, err)

	_, err = svc.Reject(ctx, adminActor, booking.ID, "incomplete paperwork")
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, adminActor, booking.ID)
	var terr *models.InvalidTransition
	assert.ErrorAs(t, err, &terr)
}

func TestRejectBooking_RequiresReason(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()

	booking, err := svc.Submit(ctx, models.PublicActor(), importBookingRequest("tok-rej"))
	require.NoError(t, err)

	_, err = svc.Reject(ctx, adminActor, booking.ID, "")
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)

	booking, err = svc.Reject(ctx, adminActor, booking.ID, "no import permit on file")
	require.NoError(t, err)
	require.NotNil(t, booking.RejectionReason)
	assert.Equal(t, "no import permit on file", *booking.RejectionReason)
}

func TestAssignBooking_InactiveInspector(t *testing.T) {
	svc, store := newBookingFixture(t)
	ctx := context.Background()
	inspector := seedInspector(t, store, false)

	booking, err := svc.Submit(ctx, models.PublicActor(), importBookingRequest("tok-inact"))
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, adminActor, booking.ID)
	require.NoError(t, err)

	_, err = svc.Assign(ctx, adminActor, booking.ID, inspector.ID)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "inspector_id", verr.Field)
}

func TestCompleteBooking_InspectionMustReferenceBooking(t *testing.T) {
	svc, store := newBookingFixture(t)
	ctx := context.Background()
	inspector := seedInspector(t, store, true)

	booking, err := svc.Submit(ctx, models.PublicActor(), importBookingRequest("tok-xref"))
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, adminActor, booking.ID)
	require.NoError(t, err)
	_, err = svc.Assign(ctx, adminActor, booking.ID, inspector.ID)
	require.NoError(t, err)

	otherID := uuid.New()
	inspection := &models.ImportInspection{
		ReferenceNumber: "IMP-2026-000099",
		BookingID:       &otherID,
		InspectorID:     inspector.ID,
		InspectionDate:  "2026-09-10",
		Status:          models.ImportApproved,
	}
	require.NoError(t, store.ImportInspections().Create(ctx, inspection))

	_, err = svc.Complete(ctx, adminActor, booking.ID, inspection.ReferenceNumber)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "inspection_ref", verr.Field)
}

func TestBookingTransition_StaleFromStateNotCommitted(t *testing.T) {
	svc, store := newBookingFixture(t)
	ctx := context.Background()

	booking, err := svc.Submit(ctx, models.PublicActor(), importBookingRequest("tok-stale"))
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, adminActor, booking.ID)
	require.NoError(t, err)

	// A writer still holding the pending snapshot must not land its update.
	stale := *booking
	stale.Status = models.BookingRejected
	err = store.UpdateTransition(ctx, &stale, models.BookingPending, &models.AuditEntry{
		EntityType: models.EntityBooking,
		EntityID:   booking.ID,
		FromState:  string(models.BookingPending),
		ToState:    string(models.BookingRejected),
	})

	var terr *models.InvalidTransition
	require.ErrorAs(t, err, &terr)

	current, err := store.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, current.Status)

	trail, err := store.ListByEntity(ctx, booking.ID)
	require.NoError(t, err)
	assert.Len(t, trail, 1)
}

func TestBookingTransition_ConcurrentAdminsSingleWinner(t *testing.T) {
	svc, store := newBookingFixture(t)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		booking, err := svc.Submit(ctx, models.PublicActor(), importBookingRequest(fmt.Sprintf("tok-race-%d", i)))
		require.NoError(t, err)

		results := make(chan error, 2)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.Confirm(ctx, adminActor, booking.ID)
			results <- err
		}()
		go func() {
			defer wg.Done()
			_, err := svc.Reject(ctx, adminActor, booking.ID, "no capacity this week")
			results <- err
		}()
		wg.Wait()
		close(results)

		succeeded := 0
		for err := range results {
			if err == nil {
				succeeded++
				continue
			}
			var terr *models.InvalidTransition
			require.ErrorAs(t, err, &terr)
		}
		require.Equal(t, 1, succeeded)

		current, err := store.GetByID(ctx, booking.ID)
		require.NoError(t, err)
		assert.Contains(t, []models.BookingStatus{models.BookingConfirmed, models.BookingRejected}, current.Status)

		trail, err := store.ListByEntity(ctx, booking.ID)
		require.NoError(t, err)
		require.Len(t, trail, 1)
	}
}

func TestBookingStatus_AssignmentWindow(t *testing.T) {
	assert.False(t, models.BookingPending.AtOrPastAssignment())
	assert.False(t, models.BookingConfirmed.AtOrPastAssignment())
	assert.False(t, models.BookingRejected.AtOrPastAssignment())
	assert.True(t, models.BookingAssigned.AtOrPastAssignment())
	assert.True(t, models.BookingCompleted.AtOrPastAssignment())
}

// ============================================================================
// ACCESS CONTROL
// ============================================================================

func TestBookingTransitions_AdminOnly(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()
	inspectorActor := models.Actor{ID: "insp-1", Role: models.RoleInspector}

	booking, err := svc.Submit(ctx, models.PublicActor(), importBookingRequest("tok-auth"))
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, inspectorActor, booking.ID)

	var denied *models.AccessDenied
	require.ErrorAs(t, err, &denied)
	assert.EqualError(t, err, "access denied")
}

func TestListBookings_PublicDenied(t *testing.T) {
	svc, _ := newBookingFixture(t)

	_, err := svc.ListBookings(context.Background(), models.PublicActor(), nil)

	var denied *models.AccessDenied
	assert.ErrorAs(t, err, &denied)
}
