package interfaces

import (
	"context"

	"fleetflow/internal/models"
	"fleetflow/internal/utils"
)

// NotificationRepository is an append-only log of emitted pipeline
// events. Records are never updated or deleted.
type NotificationRepository interface {
	Append(ctx context.Context, record *models.NotificationRecord) error
	ListByRecipient(ctx context.Context, recipientID string, params *utils.PaginationParams) ([]*models.NotificationRecord, int64, error)
	ListBySubmission(ctx context.Context, submissionID string) ([]*models.NotificationRecord, error)
}
