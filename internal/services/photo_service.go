package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Ezra-Tech-EB/BAHIS/internal/config"
	"github.com/Ezra-Tech-EB/BAHIS/internal/database/minio"
	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
)

// PhotoUpload is one attachment in a submission.
type PhotoUpload struct {
	FileName    string
	Size        int64
	ContentType string
	Content     io.Reader
}

// PhotoService stores inspection photo attachments. Each upload is bounded
// by the configured size, count and timeout limits; one failed attachment
// never aborts the rest of the batch.
type PhotoService struct {
	minioClient *minio.MinioClient
	cfg         config.WorkflowConfig
}

func NewPhotoService(minioClient *minio.MinioClient, cfg config.WorkflowConfig) *PhotoService {
	return &PhotoService{minioClient: minioClient, cfg: cfg}
}

// StorePhotos uploads a batch under the entity's reference number and returns
// the stored URLs plus a per-attachment failure list.
func (s *PhotoService) StorePhotos(ctx context.Context, entityRef string, uploads []PhotoUpload) ([]string, []*models.StorageFailure) {
	urls := []string{}
	failed := []*models.StorageFailure{}

	for i, upload := range uploads {
		if i >= s.cfg.MaxPhotoCount {
			failed = append(failed, &models.StorageFailure{
				Object: upload.FileName,
				Err:    fmt.Errorf("photo count limit of %d exceeded", s.cfg.MaxPhotoCount),
			})
			continue
		}
		if upload.Size > s.cfg.MaxPhotoBytes {
			failed = append(failed, &models.StorageFailure{
				Object: upload.FileName,
				Err:    fmt.Errorf("photo exceeds size limit of %d bytes", s.cfg.MaxPhotoBytes),
			})
			continue
		}

		url, err := s.storeOne(ctx, entityRef, upload)
		if err != nil {
			failed = append(failed, &models.StorageFailure{Object: upload.FileName, Err: err})
			slog.Warn("photo upload failed",
				"entity_ref", entityRef,
				"file", upload.FileName,
				"error", err)
			continue
		}
		urls = append(urls, url)
	}

	return urls, failed
}

func (s *PhotoService) storeOne(ctx context.Context, entityRef string, upload PhotoUpload) (string, error) {
	if s.minioClient == nil {
		return "", errors.New("object storage unavailable")
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.cfg.UploadTimeout)
	defer cancel()

	ext := filepath.Ext(upload.FileName)
	objectName := fmt.Sprintf("%s/%d-%s%s", entityRef, time.Now().Unix(), uuid.New().String()[:8], ext)

	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return s.minioClient.UploadFile(uploadCtx, minio.Storage.InspectionPhotos,
		objectName, upload.Content, upload.Size, contentType)
}
