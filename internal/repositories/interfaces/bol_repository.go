package interfaces

import (
	"context"

	"fleetflow/internal/models"
	"fleetflow/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BOLFilter narrows submission listings. Zero-value fields are ignored.
type BOLFilter struct {
	BrokerID string
	DriverID string
	LoadID   string
	Status   models.BOLStatus
}

type BOLRepository interface {
	Create(ctx context.Context, submission *models.BOLSubmission) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.BOLSubmission, error)
	GetByLoadID(ctx context.Context, loadID string) (*models.BOLSubmission, error)
	List(ctx context.Context, filter *BOLFilter, params *utils.PaginationParams) ([]*models.BOLSubmission, int64, error)

	// TransitionStatus applies the updates only if the stored status
	// still equals from, and returns the updated document. A submission
	// whose status moved concurrently yields an InvalidStateError
	// carrying the status that won.
	TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to models.BOLStatus, updates map[string]interface{}) (*models.BOLSubmission, error)
}
