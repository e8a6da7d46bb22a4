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

func newFarmInspectionFixture(t *testing.T) (*FarmInspectionService, *memory.Store, *models.Farm) {
	t.Helper()
	store := memory.NewStore()
	gen := refseq.NewGenerator(refseq.NewMemorySequencer(), 6)
	svc := NewFarmInspectionService(store.FarmInspections(), store.Farms(), gen, nil)

	farm := &models.Farm{
		Name:               "Lucaya Produce",
		Owner:              "M. Ferguson",
		Location:           "Grand Bahama",
		RegistrationNumber: "FR-0042",
		CropTypes:          []string{"tomato", "pepper"},
	}
	require.NoError(t, store.Farms().Create(context.Background(), farm))
	return svc, store, farm
}

// allChecksPassing returns a request with every boolean check ticked, which
// scores 100.
func allChecksPassing(farmID uuid.UUID) *models.CreateFarmInspectionRequest {
	return &models.CreateFarmInspectionRequest{
		FarmID:         farmID,
		InspectorID:    uuid.New(),
		InspectionDate: "2026-09-15",
		InspectionTime: "08:00",
		CropTypes:      []string{"tomato"},
		Sanitation: models.SanitationChecklist{
			EquipmentClean:  true,
			StorageProper:   true,
			WasteManagement: true,
			WaterQuality:    true,
			FacilityHygiene: true,
		},
		Compliance: models.ComplianceChecklist{
			PesticideRecords:     true,
			WorkerSafety:         true,
			OrganicStandards:     true,
			CertificationValid:   true,
			RecordKeeping:        true,
			EquipmentMaintenance: true,
		},
		SoilHealth: models.SoilHealthChecklist{
			SoilCondition:    models.ConditionGood,
			DrainageAdequate: true,
		},
		Infrastructure: models.InfrastructureChecklist{
			IrrigationSystem:   models.ConditionGood,
			StorageConditions:  models.ConditionGood,
			EquipmentCondition: models.ConditionGood,
			AccessRoads:        models.ConditionFair,
		},
	}
}

// ============================================================================
// COMPLIANCE SCORING
// ============================================================================

func TestCreateFarmInspection_FullScoreCompleted(t *testing.T) {
	svc, _, farm := newFarmInspectionFixture(t)

	inspection, err := svc.Create(context.Background(), inspectorActor, allChecksPassing(farm.ID))
	require.NoError(t, err)

	assert.Equal(t, 100, inspection.ComplianceScore)
	assert.Equal(t, models.FarmInspectionCompleted, inspection.Status)
	assert.False(t, inspection.FollowUpNeeded)
	assert.Regexp(t, `^FARM-\d{4}-\d{6}$`, inspection.ReferenceNumber)
}

func TestCreateFarmInspection_SingleCheckDelta(t *testing.T) {
	svc, _, farm := newFarmInspectionFixture(t)

	// Unticking exactly one of the 11 checks moves the score by one step:
	// round(1000/11) = 91, still inside the completed band.
	req := allChecksPassing(farm.ID)
	req.Compliance.RecordKeeping = false

	inspection, err := svc.Create(context.Background(), inspectorActor, req)
	require.NoError(t, err)

	assert.Equal(t, 91, inspection.ComplianceScore)
	assert.Equal(t, models.FarmInspectionCompleted, inspection.Status)
	assert.False(t, inspection.FollowUpNeeded)
}

func TestCreateFarmInspection_NineOfElevenFollowUp(t *testing.T) {
	svc, _, farm := newFarmInspectionFixture(t)

	// 9 of 11 checks pass: round(900/11) = 82, inside the follow-up band.
	req := allChecksPassing(farm.ID)
	req.Sanitation.WasteManagement = false
	req.Compliance.OrganicStandards = false
	followUp := "2026-10-01"
	req.FollowUpDate = &followUp

	inspection, err := svc.Create(context.Background(), inspectorActor, req)
	require.NoError(t, err)

	assert.Equal(t, 82, inspection.ComplianceScore)
	assert.Equal(t, models.FarmInspectionFollowUpRequired, inspection.Status)
	assert.True(t, inspection.FollowUpNeeded)
}

func TestCreateFarmInspection_LowScoreNonCompliant(t *testing.T) {
	svc, _, farm := newFarmInspectionFixture(t)

	// 8 of 11 checks pass: round(800/11) = 73, below the follow-up band.
	req := allChecksPassing(farm.ID)
	req.Sanitation.WasteManagement = false
	req.Sanitation.WaterQuality = false
	req.Compliance.OrganicStandards = false

	inspection, err := svc.Create(context.Background(), inspectorActor, req)
	require.NoError(t, err)

	assert.Equal(t, 73, inspection.ComplianceScore)
	assert.Equal(t, models.FarmInspectionNonCompliant, inspection.Status)
}

func TestComputeComplianceScore_Idempotent(t *testing.T) {
	inspection := &models.FarmInspection{
		Sanitation: models.SanitationChecklist{EquipmentClean: true, StorageProper: true},
		Compliance: models.ComplianceChecklist{WorkerSafety: true},
	}

	first := inspection.ComputeComplianceScore()
	inspection.ComplianceScore = first
	second := inspection.ComputeComplianceScore()

	assert.Equal(t, first, second)
	assert.Equal(t, 27, first) // round(300/11)
}

func TestDeriveFarmStatus_Boundaries(t *testing.T) {
	assert.Equal(t, models.FarmInspectionCompleted, models.DeriveFarmStatus(100))
	assert.Equal(t, models.FarmInspectionCompleted, models.DeriveFarmStatus(90))
	assert.Equal(t, models.FarmInspectionFollowUpRequired, models.DeriveFarmStatus(89))
	assert.Equal(t, models.FarmInspectionFollowUpRequired, models.DeriveFarmStatus(75))
	assert.Equal(t, models.FarmInspectionNonCompliant, models.DeriveFarmStatus(74))
	assert.Equal(t, models.FarmInspectionNonCompliant, models.DeriveFarmStatus(0))
}

// ============================================================================
// VALIDATION
// ============================================================================

func TestCreateFarmInspection_UnknownFarm(t *testing.T) {
	svc, _, _ := newFarmInspectionFixture(t)

	req := allChecksPassing(uuid.New())

	_, err := svc.Create(context.Background(), inspectorActor, req)

	var nf *models.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, models.EntityFarm, nf.Entity)
}

func TestCreateFarmInspection_NoCropTypes(t *testing.T) {
	svc, _, farm := newFarmInspectionFixture(t)

	req := allChecksPassing(farm.ID)
	req.CropTypes = nil

	_, err := svc.Create(context.Background(), inspectorActor, req)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "crop_types", verr.Field)
}

func TestCreateFarmInspection_FollowUpNeedsDate(t *testing.T) {
	svc, _, farm := newFarmInspectionFixture(t)

	req := allChecksPassing(farm.ID)
	req.FollowUpNeeded = true

	_, err := svc.Create(context.Background(), inspectorActor, req)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "follow_up_date", verr.Field)
}

func TestCreateFarmInspection_DerivedFollowUpNeedsDate(t *testing.T) {
	svc, _, farm := newFarmInspectionFixture(t)

	// Score lands in the follow-up band but the inspector left the flag and
	// date unset; the service must still demand the date.
	req := allChecksPassing(farm.ID)
	req.Sanitation.WasteManagement = false
	req.Compliance.OrganicStandards = false

	_, err := svc.Create(context.Background(), inspectorActor, req)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "follow_up_date", verr.Field)
}

func TestCreateFarmInspection_PublicDenied(t *testing.T) {
	svc, _, farm := newFarmInspectionFixture(t)

	_, err := svc.Create(context.Background(), models.PublicActor(), allChecksPassing(farm.ID))

	var denied *models.AccessDenied
	assert.ErrorAs(t, err, &denied)
}
