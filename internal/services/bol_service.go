package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetflow/internal/models"
	"fleetflow/internal/repositories/interfaces"
	"fleetflow/internal/utils"
	"fleetflow/pkg/logger"
)

// BOLService drives the submission lifecycle: a driver submits a BOL,
// the broker reviews it exactly once, and an approved submission is
// invoiced in the same review call.
type BOLService interface {
	SubmitBOL(ctx context.Context, req *models.BOLSubmitRequest) (*models.BOLSubmission, error)
	GetSubmission(ctx context.Context, submissionID string) (*models.BOLSubmission, error)
	ListSubmissions(ctx context.Context, filter *interfaces.BOLFilter, params *utils.PaginationParams) ([]*models.BOLSubmission, int64, error)
	Review(ctx context.Context, submissionID string, decision *models.ApprovalDecision) (*models.BOLSubmission, error)
}

type bolService struct {
	repo          interfaces.BOLRepository
	accessorials  AccessorialService
	invoices      InvoiceService
	notifications NotificationService
	logger        *logger.Logger
}

func NewBOLService(
	repo interfaces.BOLRepository,
	accessorials AccessorialService,
	invoices InvoiceService,
	notifications NotificationService,
	log *logger.Logger,
) BOLService {
	return &bolService{
		repo:          repo,
		accessorials:  accessorials,
		invoices:      invoices,
		notifications: notifications,
		logger:        log,
	}
}

func (s *bolService) SubmitBOL(ctx context.Context, req *models.BOLSubmitRequest) (*models.BOLSubmission, error) {
	fields := map[string]string{}
	if req.LoadID == "" {
		fields["load_id"] = "load_id is required"
	}
	if req.DriverID == "" {
		fields["driver_id"] = "driver_id is required"
	}
	if req.BrokerID == "" {
		fields["broker_id"] = "broker_id is required"
	}
	if req.BOLData == nil {
		fields["bol_data"] = "bol_data is required"
	} else {
		if req.BOLData.BOLNumber == "" {
			fields["bol_number"] = "bol_number is required"
		}
		if req.BOLData.DriverSignature == "" {
			fields["driver_signature"] = "driver_signature is required"
		}
	}
	if req.Rate.IsNegative() {
		fields["rate"] = "rate must not be negative"
	}
	if len(fields) > 0 {
		return nil, &models.ValidationError{Fields: fields}
	}

	submission := &models.BOLSubmission{
		LoadID:      req.LoadID,
		DriverID:    req.DriverID,
		BrokerID:    req.BrokerID,
		ShipperID:   req.ShipperID,
		Rate:        req.Rate,
		BOLData:     *req.BOLData,
		Status:      models.BOLStatusPending,
		DriverPhone: req.DriverPhone,
		BrokerPhone: req.BrokerPhone,
	}

	if err := s.repo.Create(ctx, submission); err != nil {
		return nil, err
	}

	s.logger.LogSubmissionEvent(submission.ID, "bol_submitted", map[string]interface{}{
		"load_id":   submission.LoadID,
		"driver_id": submission.DriverID,
	})

	s.notifications.Notify(ctx, &models.NotificationEvent{
		Type:           models.EventBOLSubmitted,
		SubmissionID:   submission.ID,
		LoadID:         submission.LoadID,
		RecipientRole:  models.RecipientRoleBroker,
		RecipientID:    submission.BrokerID,
		RecipientPhone: submission.BrokerPhone,
		Message:        fmt.Sprintf("BOL %s submitted for load %s, pending your review", submission.BOLData.BOLNumber, submission.LoadID),
	})

	return submission, nil
}

func (s *bolService) GetSubmission(ctx context.Context, submissionID string) (*models.BOLSubmission, error) {
	id, err := parseObjectID(submissionID, "submission_id")
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *bolService) ListSubmissions(ctx context.Context, filter *interfaces.BOLFilter, params *utils.PaginationParams) ([]*models.BOLSubmission, int64, error) {
	return s.repo.List(ctx, filter, params)
}

func (s *bolService) Review(ctx context.Context, submissionID string, decision *models.ApprovalDecision) (*models.BOLSubmission, error) {
	id, err := parseObjectID(submissionID, "submission_id")
	if err != nil {
		return nil, err
	}

	if decision.ReviewedBy == "" {
		return nil, &models.ValidationError{Fields: map[string]string{
			"reviewed_by": "reviewed_by is required",
		}}
	}

	if !decision.Approved {
		return s.reject(ctx, id, decision)
	}
	return s.approve(ctx, id, decision)
}

func (s *bolService) reject(ctx context.Context, id primitive.ObjectID, decision *models.ApprovalDecision) (*models.BOLSubmission, error) {
	now := time.Now()
	submission, err := s.repo.TransitionStatus(ctx, id, models.BOLStatusPending, models.BOLStatusRejected, map[string]interface{}{
		"review_notes": decision.ReviewNotes,
		"reviewed_by":  decision.ReviewedBy,
		"reviewed_at":  now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogSubmissionEvent(submission.ID, "bol_rejected", map[string]interface{}{
		"reviewed_by": decision.ReviewedBy,
	})

	s.notifications.Notify(ctx, &models.NotificationEvent{
		Type:           models.EventBOLRejected,
		SubmissionID:   submission.ID,
		LoadID:         submission.LoadID,
		RecipientRole:  models.RecipientRoleDriver,
		RecipientID:    submission.DriverID,
		RecipientPhone: submission.DriverPhone,
		Message:        fmt.Sprintf("BOL for load %s was rejected: %s", submission.LoadID, decision.ReviewNotes),
	})

	return submission, nil
}

func (s *bolService) approve(ctx context.Context, id primitive.ObjectID, decision *models.ApprovalDecision) (*models.BOLSubmission, error) {
	// Receipt rules are checked before any state moves so a doomed
	// approval leaves the submission untouched.
	var feeIDs []string
	if decision.Adjustments != nil {
		feeIDs = decision.Adjustments.ApprovedFeeIDs
	}
	if len(feeIDs) > 0 {
		if err := s.accessorials.ValidateApprovable(ctx, feeIDs); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	submission, err := s.repo.TransitionStatus(ctx, id, models.BOLStatusPending, models.BOLStatusApproved, map[string]interface{}{
		"review_notes": decision.ReviewNotes,
		"reviewed_by":  decision.ReviewedBy,
		"reviewed_at":  now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogSubmissionEvent(submission.ID, "bol_approved", map[string]interface{}{
		"reviewed_by": decision.ReviewedBy,
	})

	if len(feeIDs) > 0 {
		if err := s.accessorials.ApproveFees(ctx, feeIDs, decision.ReviewedBy); err != nil {
			return nil, err
		}
	}

	summary, err := s.accessorials.Summarize(ctx, submission.LoadID)
	if err != nil {
		return nil, err
	}

	// Invoice generation failure leaves the submission approved; the
	// review is done even if billing needs a retry.
	invoice, err := s.invoices.GenerateInvoice(ctx, submission, decision.Adjustments, summary.TotalApproved)
	if err != nil {
		return nil, err
	}

	submission, err = s.repo.TransitionStatus(ctx, id, models.BOLStatusApproved, models.BOLStatusInvoiced, map[string]interface{}{
		"invoice_id":     invoice.ID.Hex(),
		"invoice_amount": invoice.Amount,
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(ctx, &models.NotificationEvent{
		Type:           models.EventBOLApproved,
		SubmissionID:   submission.ID,
		LoadID:         submission.LoadID,
		RecipientRole:  models.RecipientRoleDriver,
		RecipientID:    submission.DriverID,
		RecipientPhone: submission.DriverPhone,
		Message:        fmt.Sprintf("BOL for load %s was approved", submission.LoadID),
	})
	s.notifications.Notify(ctx, &models.NotificationEvent{
		Type:           models.EventInvoiceGenerated,
		SubmissionID:   submission.ID,
		LoadID:         submission.LoadID,
		RecipientRole:  models.RecipientRoleBroker,
		RecipientID:    submission.BrokerID,
		RecipientPhone: submission.BrokerPhone,
		Message:        fmt.Sprintf("Invoice %s for load %s issued: %s %s", invoice.InvoiceNumber, submission.LoadID, invoice.Amount, invoice.Currency),
	})

	return submission, nil
}
