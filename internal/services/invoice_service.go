package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fleetflow/internal/config"
	"fleetflow/internal/models"
	"fleetflow/internal/repositories/interfaces"
	"fleetflow/internal/utils"
	"fleetflow/pkg/logger"
)

// InvoiceService turns approved BOL submissions into billing documents.
type InvoiceService interface {
	GenerateInvoice(ctx context.Context, submission *models.BOLSubmission, adjustments *models.RateAdjustments, accessorialTotal decimal.Decimal) (*models.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*models.Invoice, error)
	ListByBroker(ctx context.Context, brokerID string, params *utils.PaginationParams) ([]*models.Invoice, int64, error)
}

type invoiceService struct {
	repo   interfaces.InvoiceRepository
	config *config.BillingConfig
	logger *logger.Logger
	now    func() time.Time
}

func NewInvoiceService(repo interfaces.InvoiceRepository, cfg *config.BillingConfig, log *logger.Logger) InvoiceService {
	return &invoiceService{
		repo:   repo,
		config: cfg,
		logger: log,
		now:    time.Now,
	}
}

// invoiceNumber builds INV-<loadID>-<suffix> with a 6 digit time-derived
// suffix, matching the numbering the billing side already reconciles.
func (s *invoiceService) invoiceNumber(loadID string) string {
	suffix := s.now().UnixMilli() % 1000000
	return fmt.Sprintf("%s-%s-%06d", s.config.InvoiceNumberPrefix, loadID, suffix)
}

func (s *invoiceService) GenerateInvoice(ctx context.Context, submission *models.BOLSubmission, adjustments *models.RateAdjustments, accessorialTotal decimal.Decimal) (*models.Invoice, error) {
	baseRate := submission.Rate
	var charges, deductions []models.ChargeLine

	if adjustments != nil {
		if adjustments.Rate != nil {
			baseRate = *adjustments.Rate
		}
		charges = adjustments.AdditionalCharges
		deductions = adjustments.Deductions
	}

	if baseRate.Sign() <= 0 {
		return nil, &models.GenerationError{Reason: "base rate missing"}
	}

	amount := baseRate
	for _, line := range charges {
		amount = amount.Add(line.Amount)
	}
	for _, line := range deductions {
		amount = amount.Sub(line.Amount)
	}
	amount = amount.Add(accessorialTotal)
	amount = utils.RoundToCents(amount)

	if amount.IsNegative() {
		return nil, &models.GenerationError{Reason: "invoice amount is negative"}
	}

	issuedAt := s.now()
	invoice := &models.Invoice{
		InvoiceNumber:     s.invoiceNumber(submission.LoadID),
		SubmissionID:      submission.ID,
		LoadID:            submission.LoadID,
		BrokerID:          submission.BrokerID,
		ShipperID:         submission.ShipperID,
		BaseRate:          utils.RoundToCents(baseRate),
		AdditionalCharges: charges,
		Deductions:        deductions,
		AccessorialTotal:  utils.RoundToCents(accessorialTotal),
		Amount:            amount,
		Currency:          s.config.Currency,
		Status:            models.InvoiceStatusIssued,
		IssuedAt:          issuedAt,
		DueAt:             issuedAt.AddDate(0, 0, s.config.InvoiceDueDays),
	}

	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, &models.GenerationError{Reason: err.Error()}
	}

	s.logger.LogInvoiceEvent(invoice.InvoiceNumber, "invoice_generated", invoice.Amount, invoice.Currency)

	return invoice, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	id, err := parseObjectID(invoiceID, "invoice_id")
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *invoiceService) GetByNumber(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	return s.repo.GetByNumber(ctx, invoiceNumber)
}

func (s *invoiceService) ListByBroker(ctx context.Context, brokerID string, params *utils.PaginationParams) ([]*models.Invoice, int64, error) {
	return s.repo.ListByBroker(ctx, brokerID, params)
}
