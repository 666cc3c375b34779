package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"fleetflow/internal/models"
	"fleetflow/pkg/logger"
	"fleetflow/pkg/storage"
)

// DocumentService stores BOL paperwork: delivery photos, signed PODs
// and receipts. Keys are namespaced per load.
type DocumentService interface {
	UploadDocument(ctx context.Context, loadID, filename, contentType string, size int64, reader io.Reader) (*storage.UploadResponse, error)
	DocumentURL(ctx context.Context, key string) (string, error)
	DeleteDocument(ctx context.Context, key string) error
}

type documentService struct {
	provider storage.StorageProvider
	logger   *logger.Logger
}

func NewDocumentService(provider storage.StorageProvider, log *logger.Logger) DocumentService {
	return &documentService{
		provider: provider,
		logger:   log,
	}
}

var allowedDocumentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

func (s *documentService) UploadDocument(ctx context.Context, loadID, filename, contentType string, size int64, reader io.Reader) (*storage.UploadResponse, error) {
	if loadID == "" {
		return nil, &models.ValidationError{Fields: map[string]string{
			"load_id": "load_id is required",
		}}
	}
	if !allowedDocumentTypes[contentType] {
		return nil, &models.ValidationError{Fields: map[string]string{
			"file": fmt.Sprintf("unsupported content type %s", contentType),
		}}
	}

	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("bol/%s/%s%s", loadID, uuid.NewString(), ext)

	response, err := s.provider.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      reader,
		ContentType: contentType,
		Size:        size,
		Metadata:    map[string]string{"load_id": loadID},
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithLoadID(loadID).
		WithField("key", key).
		Info("BOL document uploaded")

	return response, nil
}

func (s *documentService) DocumentURL(ctx context.Context, key string) (string, error) {
	exists, err := s.provider.FileExists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", &models.NotFoundError{Resource: "document", ID: key}
	}

	return s.provider.GetURL(ctx, key, 15*time.Minute)
}

func (s *documentService) DeleteDocument(ctx context.Context, key string) error {
	exists, err := s.provider.FileExists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return &models.NotFoundError{Resource: "document", ID: key}
	}

	return s.provider.Delete(ctx, key)
}
