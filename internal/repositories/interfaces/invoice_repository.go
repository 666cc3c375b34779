package interfaces

import (
	"context"

	"fleetflow/internal/models"
	"fleetflow/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*models.Invoice, error)
	GetBySubmissionID(ctx context.Context, submissionID primitive.ObjectID) (*models.Invoice, error)
	ListByBroker(ctx context.Context, brokerID string, params *utils.PaginationParams) ([]*models.Invoice, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.InvoiceStatus) error
}
