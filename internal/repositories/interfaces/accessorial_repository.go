package interfaces

import (
	"context"
	"time"

	"fleetflow/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AccessorialRepository interface {
	Create(ctx context.Context, fee *models.AccessorialFee) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.AccessorialFee, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.AccessorialFee, error)
	ListByLoad(ctx context.Context, loadID string) ([]*models.AccessorialFee, error)

	// SetApproved flips the approval flag, attaching receiptNumber when
	// non-empty. Re-approving an already approved fee is a no-op, not
	// an error.
	SetApproved(ctx context.Context, id primitive.ObjectID, approvedBy, receiptNumber string, approvedAt time.Time) error
}
