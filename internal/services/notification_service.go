package services

import (
	"context"

	"fleetflow/internal/models"
	"fleetflow/internal/repositories/interfaces"
	"fleetflow/internal/utils"
	"fleetflow/pkg/logger"
	"fleetflow/pkg/sms"
)

// NotificationService records pipeline events and pushes them over SMS.
// Delivery is fire-and-forget: Notify never returns an error, and a
// failed send never blocks or rolls back the state transition that
// produced it.
type NotificationService interface {
	Notify(ctx context.Context, event *models.NotificationEvent)
	ListByRecipient(ctx context.Context, recipientID string, params *utils.PaginationParams) ([]*models.NotificationRecord, int64, error)
	ListBySubmission(ctx context.Context, submissionID string) ([]*models.NotificationRecord, error)
}

type notificationService struct {
	repo     interfaces.NotificationRepository
	provider sms.SMSProvider
	logger   *logger.Logger
}

func NewNotificationService(repo interfaces.NotificationRepository, provider sms.SMSProvider, log *logger.Logger) NotificationService {
	if provider == nil {
		provider = sms.NewNoopProvider()
	}
	return &notificationService{
		repo:     repo,
		provider: provider,
		logger:   log,
	}
}

func (s *notificationService) Notify(ctx context.Context, event *models.NotificationEvent) {
	record := &models.NotificationRecord{
		RecipientRole:  event.RecipientRole,
		RecipientID:    event.RecipientID,
		RecipientPhone: event.RecipientPhone,
		SubmissionID:   event.SubmissionID,
		LoadID:         event.LoadID,
		EventType:      event.Type,
		Message:        event.Message,
		Channel:        "log",
	}

	delivered := false
	if event.RecipientPhone != "" {
		_, err := s.provider.SendSMS(ctx, &sms.SMSRequest{
			To:      event.RecipientPhone,
			Message: event.Message,
			Type:    "transactional",
		})
		if err != nil {
			s.logger.WithError(err).
				WithSubmissionID(event.SubmissionID).
				WithField("recipient_role", event.RecipientRole).
				Warn("SMS delivery failed")
		} else {
			record.Channel = "sms"
			delivered = true
		}
	}

	if err := s.repo.Append(ctx, record); err != nil {
		s.logger.WithError(err).
			WithSubmissionID(event.SubmissionID).
			Error("Failed to record notification")
		return
	}

	s.logger.LogNotificationEvent(event.SubmissionID, string(event.Type), string(event.RecipientRole), delivered)
}

func (s *notificationService) ListByRecipient(ctx context.Context, recipientID string, params *utils.PaginationParams) ([]*models.NotificationRecord, int64, error) {
	return s.repo.ListByRecipient(ctx, recipientID, params)
}

func (s *notificationService) ListBySubmission(ctx context.Context, submissionID string) ([]*models.NotificationRecord, error) {
	return s.repo.ListBySubmission(ctx, submissionID)
}
