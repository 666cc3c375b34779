package services_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetflow/internal/config"
	"fleetflow/internal/models"
	"fleetflow/internal/repositories/interfaces"
	"fleetflow/internal/utils"
	"fleetflow/pkg/logger"
)

var errInvoiceStore = errors.New("invoice store unavailable")

func testLogger() *logger.Logger {
	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Format: "text",
		Output: "stdout",
	})
	if err != nil {
		panic(err)
	}
	return log
}

func testFeeConfig() *config.FeeConfig {
	return &config.FeeConfig{
		DefaultPercentage: 10,
		MinPercentage:     5,
		MaxPercentage:     15,
		AllowOverrides:    true,
		LoadTypeRates: map[string]float64{
			"standard":  10,
			"expedited": 12,
			"hazmat":    13,
			"oversize":  12.5,
			"team":      11,
		},
		DetentionFreeTimeHours: 2,
	}
}

func testBillingConfig() *config.BillingConfig {
	return &config.BillingConfig{
		InvoiceDueDays:      30,
		InvoiceNumberPrefix: "INV",
		Currency:            "USD",
	}
}

// memoryBOLRepo implements interfaces.BOLRepository with the same
// compare and swap semantics as the Mongo implementation.
type memoryBOLRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.BOLSubmission
}

func newMemoryBOLRepo() *memoryBOLRepo {
	return &memoryBOLRepo{items: make(map[primitive.ObjectID]*models.BOLSubmission)}
}

func (r *memoryBOLRepo) Create(ctx context.Context, submission *models.BOLSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	submission.ID = primitive.NewObjectID()
	submission.CreatedAt = time.Now()
	submission.UpdatedAt = submission.CreatedAt
	clone := *submission
	r.items[submission.ID] = &clone
	return nil
}

func (r *memoryBOLRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.BOLSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, &models.NotFoundError{Resource: "bol submission", ID: id.Hex()}
	}
	clone := *item
	return &clone, nil
}

func (r *memoryBOLRepo) GetByLoadID(ctx context.Context, loadID string) (*models.BOLSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *models.BOLSubmission
	for _, item := range r.items {
		if item.LoadID != loadID {
			continue
		}
		if latest == nil || item.CreatedAt.After(latest.CreatedAt) {
			latest = item
		}
	}
	if latest == nil {
		return nil, &models.NotFoundError{Resource: "bol submission", ID: loadID}
	}
	clone := *latest
	return &clone, nil
}

func (r *memoryBOLRepo) List(ctx context.Context, filter *interfaces.BOLFilter, params *utils.PaginationParams) ([]*models.BOLSubmission, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.BOLSubmission
	for _, item := range r.items {
		if filter != nil {
			if filter.BrokerID != "" && item.BrokerID != filter.BrokerID {
				continue
			}
			if filter.DriverID != "" && item.DriverID != filter.DriverID {
				continue
			}
			if filter.LoadID != "" && item.LoadID != filter.LoadID {
				continue
			}
			if filter.Status != "" && item.Status != filter.Status {
				continue
			}
		}
		clone := *item
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *memoryBOLRepo) TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to models.BOLStatus, updates map[string]interface{}) (*models.BOLSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, &models.NotFoundError{Resource: "bol submission", ID: id.Hex()}
	}
	if item.Status != from {
		return nil, &models.InvalidStateError{
			SubmissionID: id.Hex(),
			Status:       item.Status,
			Transition:   string(to),
		}
	}

	item.Status = to
	item.UpdatedAt = time.Now()
	for field, value := range updates {
		switch field {
		case "review_notes":
			item.ReviewNotes = value.(string)
		case "reviewed_by":
			item.ReviewedBy = value.(string)
		case "reviewed_at":
			at := value.(time.Time)
			item.ReviewedAt = &at
		case "invoice_id":
			item.InvoiceID = value.(string)
		case "invoice_amount":
			item.InvoiceAmount = value.(decimal.Decimal)
		}
	}

	clone := *item
	return &clone, nil
}

type memoryAccessorialRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.AccessorialFee
}

func newMemoryAccessorialRepo() *memoryAccessorialRepo {
	return &memoryAccessorialRepo{items: make(map[primitive.ObjectID]*models.AccessorialFee)}
}

func (r *memoryAccessorialRepo) Create(ctx context.Context, fee *models.AccessorialFee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fee.ID = primitive.NewObjectID()
	fee.CreatedAt = time.Now()
	fee.UpdatedAt = fee.CreatedAt
	clone := *fee
	r.items[fee.ID] = &clone
	return nil
}

func (r *memoryAccessorialRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.AccessorialFee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, &models.NotFoundError{Resource: "accessorial fee", ID: id.Hex()}
	}
	clone := *item
	return &clone, nil
}

func (r *memoryAccessorialRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.AccessorialFee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.AccessorialFee
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			clone := *item
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memoryAccessorialRepo) ListByLoad(ctx context.Context, loadID string) ([]*models.AccessorialFee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.AccessorialFee
	for _, item := range r.items {
		if item.LoadID == loadID {
			clone := *item
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryAccessorialRepo) SetApproved(ctx context.Context, id primitive.ObjectID, approvedBy, receiptNumber string, approvedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return &models.NotFoundError{Resource: "accessorial fee", ID: id.Hex()}
	}
	item.Approved = true
	item.ApprovedBy = approvedBy
	item.ApprovedAt = &approvedAt
	if receiptNumber != "" {
		item.ReceiptNumber = receiptNumber
	}
	item.UpdatedAt = time.Now()
	return nil
}

type memoryInvoiceRepo struct {
	mu         sync.Mutex
	items      map[primitive.ObjectID]*models.Invoice
	failCreate bool
}

func newMemoryInvoiceRepo() *memoryInvoiceRepo {
	return &memoryInvoiceRepo{items: make(map[primitive.ObjectID]*models.Invoice)}
}

func (r *memoryInvoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failCreate {
		return errInvoiceStore
	}

	invoice.ID = primitive.NewObjectID()
	invoice.CreatedAt = time.Now()
	invoice.UpdatedAt = invoice.CreatedAt
	clone := *invoice
	r.items[invoice.ID] = &clone
	return nil
}

func (r *memoryInvoiceRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, &models.NotFoundError{Resource: "invoice", ID: id.Hex()}
	}
	clone := *item
	return &clone, nil
}

func (r *memoryInvoiceRepo) GetByNumber(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.InvoiceNumber == invoiceNumber {
			clone := *item
			return &clone, nil
		}
	}
	return nil, &models.NotFoundError{Resource: "invoice", ID: invoiceNumber}
}

func (r *memoryInvoiceRepo) GetBySubmissionID(ctx context.Context, submissionID primitive.ObjectID) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.SubmissionID == submissionID {
			clone := *item
			return &clone, nil
		}
	}
	return nil, &models.NotFoundError{Resource: "invoice", ID: submissionID.Hex()}
}

func (r *memoryInvoiceRepo) ListByBroker(ctx context.Context, brokerID string, params *utils.PaginationParams) ([]*models.Invoice, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Invoice
	for _, item := range r.items {
		if item.BrokerID == brokerID {
			clone := *item
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memoryInvoiceRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.InvoiceStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return &models.NotFoundError{Resource: "invoice", ID: id.Hex()}
	}
	item.Status = status
	return nil
}

type memoryNotificationRepo struct {
	mu      sync.Mutex
	records []*models.NotificationRecord
}

func newMemoryNotificationRepo() *memoryNotificationRepo {
	return &memoryNotificationRepo{}
}

func (r *memoryNotificationRepo) Append(ctx context.Context, record *models.NotificationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now()
	clone := *record
	r.records = append(r.records, &clone)
	return nil
}

func (r *memoryNotificationRepo) ListByRecipient(ctx context.Context, recipientID string, params *utils.PaginationParams) ([]*models.NotificationRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.NotificationRecord
	for _, record := range r.records {
		if record.RecipientID == recipientID {
			clone := *record
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memoryNotificationRepo) ListBySubmission(ctx context.Context, submissionID string) ([]*models.NotificationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.NotificationRecord
	for _, record := range r.records {
		if record.SubmissionID.Hex() == submissionID {
			clone := *record
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memoryNotificationRepo) eventTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for _, record := range r.records {
		out = append(out, string(record.EventType))
	}
	return out
}

func (r *memoryNotificationRepo) has(eventType models.NotificationEventType) bool {
	for _, e := range r.eventTypes() {
		if strings.EqualFold(e, string(eventType)) {
			return true
		}
	}
	return false
}
