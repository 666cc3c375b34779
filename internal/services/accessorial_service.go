package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetflow/internal/config"
	"fleetflow/internal/models"
	"fleetflow/internal/repositories/interfaces"
	"fleetflow/internal/utils"
	"fleetflow/pkg/logger"
)

// AccessorialService manages the per-load ledger of charges beyond the
// base freight rate.
type AccessorialService interface {
	// AddFee and AddDetention return the created entry together with
	// the load's updated summary.
	AddFee(ctx context.Context, loadID string, req *models.AccessorialFeeRequest) (*models.AccessorialFee, *models.AccessorialSummary, error)
	AddDetention(ctx context.Context, loadID string, req *models.DetentionFee) (*models.AccessorialFee, *models.AccessorialSummary, error)
	GetFee(ctx context.Context, feeID string) (*models.AccessorialFee, error)
	ApproveFee(ctx context.Context, feeID string, req *models.ApproveFeeRequest) (*models.AccessorialFee, error)
	ListByLoad(ctx context.Context, loadID string) ([]*models.AccessorialFee, error)
	Summarize(ctx context.Context, loadID string) (*models.AccessorialSummary, error)

	// ValidateApprovable checks receipt rules for a batch without
	// mutating anything; ApproveFees applies the batch.
	ValidateApprovable(ctx context.Context, feeIDs []string) error
	ApproveFees(ctx context.Context, feeIDs []string, approvedBy string) error
}

type accessorialService struct {
	repo   interfaces.AccessorialRepository
	cache  CacheService
	config *config.FeeConfig
	logger *logger.Logger
}

func NewAccessorialService(repo interfaces.AccessorialRepository, cache CacheService, cfg *config.FeeConfig, log *logger.Logger) AccessorialService {
	return &accessorialService{
		repo:   repo,
		cache:  cache,
		config: cfg,
		logger: log,
	}
}

// receiptRequired reports whether a fee type needs a receipt before it
// can be approved for billing. Lumper fees are paid out of pocket at
// the dock, so the receipt is the proof of payment.
func receiptRequired(feeType models.AccessorialType) bool {
	return feeType == models.AccessorialTypeLumper
}

func (s *accessorialService) AddFee(ctx context.Context, loadID string, req *models.AccessorialFeeRequest) (*models.AccessorialFee, *models.AccessorialSummary, error) {
	if !req.Type.Valid() {
		return nil, nil, &models.ValidationError{Fields: map[string]string{
			"type": "Unknown accessorial fee type",
		}}
	}
	if req.Amount.IsNegative() || req.Quantity.IsNegative() || req.RatePerUnit.IsNegative() {
		return nil, nil, &models.ValidationError{Fields: map[string]string{
			"amount": "Amounts must not be negative",
		}}
	}

	// A flat amount, zero included, stands on its own; a unit pair
	// overrides it. One half of a unit pair is a mistake.
	amount := req.Amount
	hasQuantity := req.Quantity.IsPositive()
	hasRate := req.RatePerUnit.IsPositive()
	if hasQuantity != hasRate {
		return nil, nil, &models.ValidationError{Fields: map[string]string{
			"quantity": "Provide both a quantity and a rate per unit",
		}}
	}
	if hasQuantity && hasRate {
		amount = req.Quantity.Mul(req.RatePerUnit)
	}

	fee := &models.AccessorialFee{
		LoadID:          loadID,
		Type:            req.Type,
		Description:     req.Description,
		Amount:          utils.RoundToCents(amount),
		Quantity:        req.Quantity,
		RatePerUnit:     req.RatePerUnit,
		ReceiptRequired: receiptRequired(req.Type),
		ReceiptNumber:   req.ReceiptNumber,
	}

	if err := s.repo.Create(ctx, fee); err != nil {
		return nil, nil, err
	}

	s.logger.WithLoadID(loadID).
		WithFields(map[string]interface{}{
			"fee_id":   fee.ID.Hex(),
			"fee_type": fee.Type,
			"amount":   fee.Amount.String(),
		}).Info("Accessorial fee added")

	summary, err := s.Summarize(ctx, loadID)
	if err != nil {
		return nil, nil, err
	}
	return fee, summary, nil
}

func (s *accessorialService) AddDetention(ctx context.Context, loadID string, req *models.DetentionFee) (*models.AccessorialFee, *models.AccessorialSummary, error) {
	// Zero hours is legal and bills nothing; detention fully inside
	// free time is kept as a zero-total entry.
	if req.Hours.IsNegative() || req.RatePerHour.IsNegative() {
		return nil, nil, &models.ValidationError{Fields: map[string]string{
			"hours": "Detention hours and rate must not be negative",
		}}
	}

	if req.FreeTimeHours.IsZero() {
		req.FreeTimeHours = decimal.NewFromFloat(s.config.DetentionFreeTimeHours)
	}

	fee := &models.AccessorialFee{
		LoadID:      loadID,
		Type:        models.AccessorialTypeDetention,
		Description: fmt.Sprintf("Detention at %s: %s hours at %s/hr (%s free)", req.Location, req.Hours, req.RatePerHour, req.FreeTimeHours),
		Amount:      req.Total(),
		Quantity:    req.Hours,
		RatePerUnit: req.RatePerHour,
	}

	if err := s.repo.Create(ctx, fee); err != nil {
		return nil, nil, err
	}

	s.logger.WithLoadID(loadID).
		WithFields(map[string]interface{}{
			"fee_id":   fee.ID.Hex(),
			"location": req.Location,
			"amount":   fee.Amount.String(),
		}).Info("Detention fee added")

	summary, err := s.Summarize(ctx, loadID)
	if err != nil {
		return nil, nil, err
	}
	return fee, summary, nil
}

func (s *accessorialService) GetFee(ctx context.Context, feeID string) (*models.AccessorialFee, error) {
	id, err := parseObjectID(feeID, "fee_id")
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *accessorialService) ApproveFee(ctx context.Context, feeID string, req *models.ApproveFeeRequest) (*models.AccessorialFee, error) {
	id, err := parseObjectID(feeID, "fee_id")
	if err != nil {
		return nil, err
	}

	fee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Approval is idempotent.
	if fee.Approved {
		return fee, nil
	}

	if fee.ReceiptRequired && fee.ReceiptNumber == "" && req.ReceiptNumber == "" {
		return nil, &models.ReceiptRequiredError{FeeID: feeID, FeeType: fee.Type}
	}

	now := time.Now()
	if err := s.repo.SetApproved(ctx, id, req.ApprovedBy, req.ReceiptNumber, now); err != nil {
		return nil, err
	}

	s.logger.WithLoadID(fee.LoadID).
		WithFields(map[string]interface{}{
			"fee_id":      feeID,
			"approved_by": req.ApprovedBy,
		}).Info("Accessorial fee approved")

	return s.repo.GetByID(ctx, id)
}

func (s *accessorialService) ListByLoad(ctx context.Context, loadID string) ([]*models.AccessorialFee, error) {
	return s.repo.ListByLoad(ctx, loadID)
}

func (s *accessorialService) Summarize(ctx context.Context, loadID string) (*models.AccessorialSummary, error) {
	cacheKey := utils.CacheSummaryPrefix + loadID
	if s.cache != nil {
		var cached models.AccessorialSummary
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	fees, err := s.repo.ListByLoad(ctx, loadID)
	if err != nil {
		return nil, err
	}

	summary := &models.AccessorialSummary{LoadID: loadID, Count: len(fees)}
	for _, fee := range fees {
		summary.TotalAmount = summary.TotalAmount.Add(fee.Amount)
		if fee.Approved {
			summary.TotalApproved = summary.TotalApproved.Add(fee.Amount)
		} else {
			summary.TotalPending = summary.TotalPending.Add(fee.Amount)
		}
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, summary, utils.SummaryCacheTTL)
	}

	return summary, nil
}

func (s *accessorialService) ValidateApprovable(ctx context.Context, feeIDs []string) error {
	ids, err := parseObjectIDs(feeIDs)
	if err != nil {
		return err
	}

	fees, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	found := make(map[string]*models.AccessorialFee, len(fees))
	for _, fee := range fees {
		found[fee.ID.Hex()] = fee
	}

	for _, feeID := range feeIDs {
		fee, ok := found[feeID]
		if !ok {
			return &models.NotFoundError{Resource: "accessorial fee", ID: feeID}
		}
		if fee.Approved {
			continue
		}
		if fee.ReceiptRequired && fee.ReceiptNumber == "" {
			return &models.ReceiptRequiredError{FeeID: feeID, FeeType: fee.Type}
		}
	}

	return nil
}

func (s *accessorialService) ApproveFees(ctx context.Context, feeIDs []string, approvedBy string) error {
	if err := s.ValidateApprovable(ctx, feeIDs); err != nil {
		return err
	}

	now := time.Now()
	for _, feeID := range feeIDs {
		id, err := parseObjectID(feeID, "fee_id")
		if err != nil {
			return err
		}
		if err := s.repo.SetApproved(ctx, id, approvedBy, "", now); err != nil {
			return err
		}
	}

	return nil
}

func parseObjectID(value, field string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, &models.ValidationError{Fields: map[string]string{
			field: "Invalid ID format",
		}}
	}
	return id, nil
}

func parseObjectIDs(values []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(values))
	for _, value := range values {
		id, err := parseObjectID(value, "fee_ids")
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
