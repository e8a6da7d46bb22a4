package services

import (
	"context"
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

func newImportFixture(t *testing.T) (*ImportInspectionService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	gen := refseq.NewGenerator(refseq.NewMemorySequencer(), 6)
	svc := NewImportInspectionService(store.ImportInspections(), gen, nil, nil)
	return svc, store
}

func importInspectionRequest() *models.CreateImportInspectionRequest {
	return &models.CreateImportInspectionRequest{
		InspectorID:    uuid.New(),
		InspectionDate: "2026-09-12",
		InspectionTime: "10:30",
		Location:       "Nassau Container Port",
		Consignment: models.ConsignmentDetails{
			OriginCountry: "Ecuador",
			Importer:      "Island Produce Ltd",
			PortOfEntry:   "Nassau",
		},
		Commodities: []models.Commodity{
			{Name: "bananas", Quantity: 1200, Unit: "kg"},
		},
		Compliance: models.ImportComplianceChecks{
			ImportPermit:             true,
			PhytosanitaryCertificate: true,
			PestInspection:           true,
			DocumentationComplete:    true,
		},
	}
}

var inspectorActor = models.Actor{ID: "insp-7", Role: models.RoleInspector}

// ============================================================================
// STATUS DERIVATION
// ============================================================================

func TestCreateImportInspection_CleanChecklistApproved(t *testing.T) {
	svc, _ := newImportFixture(t)

	inspection, err := svc.Create(context.Background(), inspectorActor, importInspectionRequest())
	require.NoError(t, err)

	assert.Equal(t, models.ImportApproved, inspection.Status)
	assert.False(t, inspection.StatusOverride)
	assert.Regexp(t, `^IMP-\d{4}-\d{6}$`, inspection.ReferenceNumber)
}

func TestCreateImportInspection_QuarantineRequired(t *testing.T) {
	svc, _ := newImportFixture(t)

	req := importInspectionRequest()
	req.Compliance.QuarantineRequired = true

	inspection, err := svc.Create(context.Background(), inspectorActor, req)
	require.NoError(t, err)

	assert.Equal(t, models.ImportQuarantine, inspection.Status)
}

func TestCreateImportInspection_DestroyRejected(t *testing.T) {
	svc, _ := newImportFixture(t)

	req := importInspectionRequest()
	req.Actions.Destroy = true

	inspection, err := svc.Create(context.Background(), inspectorActor, req)
	require.NoError(t, err)

	assert.Equal(t, models.ImportRejected, inspection.Status)
}

func TestCreateImportInspection_ReExportRejected(t *testing.T) {
	svc, _ := newImportFixture(t)

	req := importInspectionRequest()
	req.Actions.ReExport = true

	inspection, err := svc.Create(context.Background(), inspectorActor, req)
	require.NoError(t, err)

	assert.Equal(t, models.ImportRejected, inspection.Status)
}

func TestCreateImportInspection_DetentionDetained(t *testing.T) {
	svc, _ := newImportFixture(t)

	// Destroy and re-export outrank detention, which outranks quarantine.
	req := importInspectionRequest()
	req.Actions.Detention = true
	req.Compliance.QuarantineRequired = true

	inspection, err := svc.Create(context.Background(), inspectorActor, req)
	require.NoError(t, err)

	assert.Equal(t, models.ImportDetained, inspection.Status)
}

func TestCreateImportInspection_GPSUnavailableRecorded(t *testing.T) {
	svc, _ := newImportFixture(t)

	inspection, err := svc.Create(context.Background(), inspectorActor, importInspectionRequest())
	require.NoError(t, err)
	assert.True(t, inspection.GPSUnavailable)

	req := importInspectionRequest()
	req.GPSCoordinates = &models.GPSCoordinates{Latitude: 25.05, Longitude: -77.35}
	inspection, err = svc.Create(context.Background(), inspectorActor, req)
	require.NoError(t, err)
	assert.False(t, inspection.GPSUnavailable)
}

// ============================================================================
// VALIDATION
// ============================================================================

func TestCreateImportInspection_NoCommodities(t *testing.T) {
	svc, _ := newImportFixture(t)

	req := importInspectionRequest()
	req.Commodities = nil

	_, err := svc.Create(context.Background(), inspectorActor, req)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "commodities", verr.Field)
}

func TestCreateImportInspection_BadCommodityQuantity(t *testing.T) {
	svc, _ := newImportFixture(t)

	req := importInspectionRequest()
	req.Commodities = append(req.Commodities, models.Commodity{Name: "mangoes", Quantity: 0, Unit: "kg"})

	_, err := svc.Create(context.Background(), inspectorActor, req)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "commodities[1].quantity", verr.Field)
}

func TestCreateImportInspection_OthersNeedsText(t *testing.T) {
	svc, _ := newImportFixture(t)

	req := importInspectionRequest()
	req.Actions.Others = true

	_, err := svc.Create(context.Background(), inspectorActor, req)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "phytosanitary_actions.others_text", verr.Field)
}

// ============================================================================
// STATUS OVERRIDE
// ============================================================================

func TestOverrideStatus_AdminWinsAndFlagged(t *testing.T) {
	svc, store := newImportFixture(t)
	ctx := context.Background()

	req := importInspectionRequest()
	req.Compliance.QuarantineRequired = true
	inspection, err := svc.Create(ctx, inspectorActor, req)
	require.NoError(t, err)
	require.Equal(t, models.ImportQuarantine, inspection.Status)

	overridden, err := svc.OverrideStatus(ctx, adminActor, inspection.ID, &models.OverrideImportStatusRequest{
		Status: models.ImportApproved,
		Note:   "treatment verified at port",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ImportApproved, overridden.Status)
	assert.True(t, overridden.StatusOverride)

	trail, err := store.ListByEntity(ctx, inspection.ID)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, string(models.ImportQuarantine), trail[0].FromState)
	assert.Equal(t, string(models.ImportApproved), trail[0].ToState)
	require.NotNil(t, trail[0].Note)
	assert.Equal(t, "treatment verified at port", *trail[0].Note)
}

func TestOverrideStatus_StaleFromStateNotCommitted(t *testing.T) {
	svc, store := newImportFixture(t)
	ctx := context.Background()

	inspection, err := svc.Create(ctx, inspectorActor, importInspectionRequest())
	require.NoError(t, err)
	require.Equal(t, models.ImportApproved, inspection.Status)

	note := "pest intercepted on re-check"
	_, err = svc.OverrideStatus(ctx, adminActor, inspection.ID, &models.OverrideImportStatusRequest{
		Status: models.ImportDetained,
		Note:   note,
	})
	require.NoError(t, err)

	// A writer still holding the approved snapshot must not land its update.
	stale := *inspection
	stale.Status = models.ImportRejected
	err = store.ImportInspections().UpdateStatus(ctx, &stale, models.ImportApproved, &models.AuditEntry{
		EntityType: models.EntityImportInspection,
		EntityID:   inspection.ID,
		FromState:  string(models.ImportApproved),
		ToState:    string(models.ImportRejected),
		Note:       &note,
	})

	var terr *models.InvalidTransition
	require.ErrorAs(t, err, &terr)

	current, err := store.ImportInspections().GetByID(ctx, inspection.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ImportDetained, current.Status)

	trail, err := store.ListByEntity(ctx, inspection.ID)
	require.NoError(t, err)
	assert.Len(t, trail, 1)
}

func TestOverrideStatus_RequiresNote(t *testing.T) {
	svc, _ := newImportFixture(t)
	ctx := context.Background()

	inspection, err := svc.Create(ctx, inspectorActor, importInspectionRequest())
	require.NoError(t, err)

	_, err = svc.OverrideStatus(ctx, adminActor, inspection.ID, &models.OverrideImportStatusRequest{
		Status: models.ImportRejected,
	})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "note", verr.Field)
}

func TestOverrideStatus_StaffDenied(t *testing.T) {
	svc, _ := newImportFixture(t)
	ctx := context.Background()

	inspection, err := svc.Create(ctx, inspectorActor, importInspectionRequest())
	require.NoError(t, err)

	_, err = svc.OverrideStatus(ctx, inspectorActor, inspection.ID, &models.OverrideImportStatusRequest{
		Status: models.ImportRejected,
		Note:   "should not be allowed",
	})

	var denied *models.AccessDenied
	assert.ErrorAs(t, err, &denied)
}
