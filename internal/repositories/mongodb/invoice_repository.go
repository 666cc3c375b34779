package mongodb

import (
	"context"
	"fmt"
	"time"

	"fleetflow/internal/models"
	"fleetflow/internal/repositories/interfaces"
	"fleetflow/internal/services"
	"fleetflow/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type invoiceRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewInvoiceRepository(db *mongo.Database, cache services.CacheService) interfaces.InvoiceRepository {
	return &invoiceRepository{
		collection: db.Collection("invoices"),
		cache:      cache,
	}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	invoice.ID = primitive.NewObjectID()
	invoice.CreatedAt = time.Now()
	invoice.UpdatedAt = invoice.CreatedAt

	_, err := r.collection.InsertOne(ctx, invoice)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	// Invoices are immutable once issued, so caching on write is safe.
	r.cacheInvoice(ctx, invoice)
	return nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	if invoice := r.getInvoiceFromCache(ctx, id.Hex()); invoice != nil {
		return invoice, nil
	}

	var invoice models.Invoice
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&invoice)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.NotFoundError{Resource: "invoice", ID: id.Hex()}
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	r.cacheInvoice(ctx, &invoice)
	return &invoice, nil
}

func (r *invoiceRepository) GetByNumber(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.collection.FindOne(ctx, bson.M{"invoice_number": invoiceNumber}).Decode(&invoice)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.NotFoundError{Resource: "invoice", ID: invoiceNumber}
		}
		return nil, fmt.Errorf("failed to get invoice by number: %w", err)
	}

	return &invoice, nil
}

func (r *invoiceRepository) GetBySubmissionID(ctx context.Context, submissionID primitive.ObjectID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.collection.FindOne(ctx, bson.M{"submission_id": submissionID}).Decode(&invoice)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.NotFoundError{Resource: "invoice", ID: submissionID.Hex()}
		}
		return nil, fmt.Errorf("failed to get invoice by submission: %w", err)
	}

	return &invoice, nil
}

func (r *invoiceRepository) ListByBroker(ctx context.Context, brokerID string, params *utils.PaginationParams) ([]*models.Invoice, int64, error) {
	filter := bson.M{"broker_id": brokerID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find invoices: %w", err)
	}
	defer cursor.Close(ctx)

	var invoices []*models.Invoice
	for cursor.Next(ctx) {
		var invoice models.Invoice
		if err := cursor.Decode(&invoice); err != nil {
			return nil, 0, fmt.Errorf("failed to decode invoice: %w", err)
		}
		invoices = append(invoices, &invoice)
	}

	return invoices, total, nil
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.InvoiceStatus) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}
	if result.MatchedCount == 0 {
		return &models.NotFoundError{Resource: "invoice", ID: id.Hex()}
	}

	r.invalidateInvoiceCache(ctx, id.Hex())
	return nil
}

// Cache operations
func (r *invoiceRepository) cacheInvoice(ctx context.Context, invoice *models.Invoice) {
	if r.cache != nil {
		r.cache.Set(ctx, utils.CacheInvoicePrefix+invoice.ID.Hex(), invoice, utils.InvoiceCacheTTL)
	}
}

func (r *invoiceRepository) getInvoiceFromCache(ctx context.Context, invoiceID string) *models.Invoice {
	if r.cache == nil {
		return nil
	}

	var invoice models.Invoice
	if err := r.cache.Get(ctx, utils.CacheInvoicePrefix+invoiceID, &invoice); err != nil {
		return nil
	}

	return &invoice
}

func (r *invoiceRepository) invalidateInvoiceCache(ctx context.Context, invoiceID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheInvoicePrefix+invoiceID)
	}
}
