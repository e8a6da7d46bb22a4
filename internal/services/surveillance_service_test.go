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

func newSurveillanceFixture(t *testing.T) (*SurveillanceService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	gen := refseq.NewGenerator(refseq.NewMemorySequencer(), 6)
	svc := NewSurveillanceService(store.Surveillance(), store.FarmInspections(), gen, nil)
	return svc, store
}

func surveillanceRequest() *models.CreateSurveillanceRequest {
	return &models.CreateSurveillanceRequest{
		InspectorID:       uuid.New(),
		ObservationDate:   "2026-09-20",
		ObservationTime:   "07:30",
		Location:          "North Andros",
		PestType:          "fruit fly",
		PopulationDensity: models.PopulationMedium,
		AffectedCrops:     []string{"mango"},
		Weather: models.WeatherConditions{
			Temperature: 30.5,
			Humidity:    78,
			CloudCover:  models.CloudPartlyCloudy,
		},
		DamageAssessment:    models.DamageMinimal,
		DistributionPattern: models.DistributionScattered,
	}
}

func TestCreateSurveillance_AssignsReference(t *testing.T) {
	svc, _ := newSurveillanceFixture(t)

	record, err := svc.Create(context.Background(), inspectorActor, surveillanceRequest())
	require.NoError(t, err)

	assert.Regexp(t, `^PEST-\d{4}-\d{6}$`, record.ReferenceNumber)
	assert.True(t, record.GPSUnavailable)
}

func TestCreateSurveillance_LinkedInspectionMustExist(t *testing.T) {
	svc, _ := newSurveillanceFixture(t)

	req := surveillanceRequest()
	missing := uuid.New()
	req.FarmInspectionID = &missing

	_, err := svc.Create(context.Background(), inspectorActor, req)

	var nf *models.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, models.EntityFarmInspection, nf.Entity)
}

func TestCreateSurveillance_LinkedInspectionAccepted(t *testing.T) {
	svc, store := newSurveillanceFixture(t)
	ctx := context.Background()

	inspection := &models.FarmInspection{
		ReferenceNumber: "FARM-2026-000001",
		FarmID:          uuid.New(),
		InspectorID:     uuid.New(),
		InspectionDate:  "2026-09-18",
		Status:          models.FarmInspectionCompleted,
	}
	require.NoError(t, store.FarmInspections().Create(ctx, inspection))

	req := surveillanceRequest()
	req.FarmInspectionID = &inspection.ID

	record, err := svc.Create(ctx, inspectorActor, req)
	require.NoError(t, err)
	require.NotNil(t, record.FarmInspectionID)
	assert.Equal(t, inspection.ID, *record.FarmInspectionID)
}

func TestCreateSurveillance_BadDensity(t *testing.T) {
	svc, _ := newSurveillanceFixture(t)

	req := surveillanceRequest()
	req.PopulationDensity = "swarming"

	_, err := svc.Create(context.Background(), inspectorActor, req)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "population_density", verr.Field)
}

func TestCreateSurveillance_PublicDenied(t *testing.T) {
	svc, _ := newSurveillanceFixture(t)

	_, err := svc.Create(context.Background(), models.PublicActor(), surveillanceRequest())

	var denied *models.AccessDenied
	assert.ErrorAs(t, err, &denied)
}
