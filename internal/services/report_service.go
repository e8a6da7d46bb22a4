package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ezra-Tech-EB/BAHIS/internal/auth"
	"github.com/Ezra-Tech-EB/BAHIS/internal/database/minio"
	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/Ezra-Tech-EB/BAHIS/internal/repository"
)

const (
	importReportTemplate = "import_inspection_report.pdf"
	farmReportTemplate   = "farm_inspection_report.pdf"
)

// ReportService renders official inspection report PDFs from the stored
// AcroForm templates and files them in the report bucket. The inspection
// record itself is never mutated here.
type ReportService struct {
	minioClient  *minio.MinioClient
	importRepo   repository.IImportInspectionRepository
	farmInspRepo repository.IFarmInspectionRepository
	farmRepo     repository.IFarmRepository
	userRepo     repository.IUserRepository
}

func NewReportService(
	minioClient *minio.MinioClient,
	importRepo repository.IImportInspectionRepository,
	farmInspRepo repository.IFarmInspectionRepository,
	farmRepo repository.IFarmRepository,
	userRepo repository.IUserRepository,
) *ReportService {
	return &ReportService{
		minioClient:  minioClient,
		importRepo:   importRepo,
		farmInspRepo: farmInspRepo,
		farmRepo:     farmRepo,
		userRepo:     userRepo,
	}
}

// GenerateImportReport renders the import inspection report and returns the
// stored document URL.
func (s *ReportService) GenerateImportReport(ctx context.Context, actor models.Actor, id uuid.UUID) (string, error) {
	if err := auth.Require(actor, auth.ResourceReports, auth.ActionCreate); err != nil {
		return "", err
	}

	inspection, err := s.importRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	values := map[string]string{
		"reference_number": inspection.ReferenceNumber,
		"inspection_date":  inspection.InspectionDate,
		"inspection_time":  inspection.InspectionTime,
		"location":         inspection.Location,
		"port_of_entry":    inspection.Consignment.PortOfEntry,
		"importer":         inspection.Consignment.Importer,
		"origin_country":   inspection.Consignment.OriginCountry,
		"commodities":      summarizeCommodities(inspection.Commodities),
		"actions":          summarizeActions(inspection.Actions),
		"status":           string(inspection.Status),
		"generated_at":     time.Now().Format("2006-01-02 15:04"),
	}
	if inspection.Notes != nil {
		values["notes"] = *inspection.Notes
	}
	if inspector, err := s.userRepo.GetByID(ctx, inspection.InspectorID); err == nil {
		values["inspector_name"] = inspector.Name
	}

	return s.renderAndStore(ctx, importReportTemplate, inspection.ReferenceNumber, values)
}

// GenerateFarmReport renders the farm inspection report and returns the
// stored document URL.
func (s *ReportService) GenerateFarmReport(ctx context.Context, actor models.Actor, id uuid.UUID) (string, error) {
	if err := auth.Require(actor, auth.ResourceReports, auth.ActionCreate); err != nil {
		return "", err
	}

	inspection, err := s.farmInspRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	values := map[string]string{
		"reference_number": inspection.ReferenceNumber,
		"inspection_date":  inspection.InspectionDate,
		"inspection_time":  inspection.InspectionTime,
		"crop_types":       strings.Join(inspection.CropTypes, ", "),
		"compliance_score": strconv.Itoa(inspection.ComplianceScore),
		"status":           string(inspection.Status),
		"generated_at":     time.Now().Format("2006-01-02 15:04"),
	}
	if inspection.Recommendations != nil {
		values["recommendations"] = *inspection.Recommendations
	}
	if inspection.FollowUpDate != nil {
		values["follow_up_date"] = *inspection.FollowUpDate
	}
	if farm, err := s.farmRepo.GetByID(ctx, inspection.FarmID); err == nil {
		values["farm_name"] = farm.Name
		values["farm_owner"] = farm.Owner
		values["farm_location"] = farm.Location
	}
	if inspector, err := s.userRepo.GetByID(ctx, inspection.InspectorID); err == nil {
		values["inspector_name"] = inspector.Name
	}

	return s.renderAndStore(ctx, farmReportTemplate, inspection.ReferenceNumber, values)
}

func (s *ReportService) renderAndStore(ctx context.Context, template, reference string, values map[string]string) (string, error) {
	if s.minioClient == nil {
		return "", &models.StorageFailure{Object: template, Err: errors.New("object storage unavailable")}
	}

	obj, err := s.minioClient.GetFile(ctx, minio.Storage.ReportTemplates, template)
	if err != nil {
		return "", &models.StorageFailure{Object: template, Err: err}
	}
	defer obj.Close()

	templateData, err := io.ReadAll(obj)
	if err != nil {
		return "", &models.StorageFailure{Object: template, Err: fmt.Errorf("failed to read template: %w", err)}
	}

	filledPDF, err := fillFormFields(templateData, values)
	if err != nil {
		return "", fmt.Errorf("failed to fill report template %s: %w", template, err)
	}

	objectName := fmt.Sprintf("%s/report-%d.pdf", reference, time.Now().Unix())
	url, err := s.minioClient.UploadBytes(ctx, minio.Storage.InspectionReports, objectName, filledPDF, "application/pdf")
	if err != nil {
		return "", &models.StorageFailure{Object: objectName, Err: err}
	}

	slog.Info("inspection report generated",
		"reference", reference,
		"template", template,
		"object", objectName,
		"size_bytes", len(filledPDF))
	return url, nil
}

func summarizeCommodities(commodities models.CommodityList) string {
	parts := make([]string, 0, len(commodities))
	for _, c := range commodities {
		parts = append(parts, fmt.Sprintf("%s (%g %s)", c.Name, c.Quantity, c.Unit))
	}
	return strings.Join(parts, "; ")
}

func summarizeActions(actions models.PhytosanitaryActions) string {
	parts := []string{}
	if actions.Detention {
		parts = append(parts, "detention")
	}
	if actions.Reconfiguration {
		parts = append(parts, "reconfiguration")
	}
	if actions.Treatment {
		parts = append(parts, "treatment")
	}
	if actions.Destroy {
		parts = append(parts, "destroy")
	}
	if actions.ReExport {
		parts = append(parts, "re-export")
	}
	if actions.Others {
		parts = append(parts, actions.OthersText)
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "; ")
}
