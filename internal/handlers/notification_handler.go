package handlers

import (
	"fleetflow/internal/services"
	"fleetflow/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// ListNotifications returns the emitted event records for a recipient,
// or for a submission when submission_id is given.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	if submissionID := c.Query("submission_id"); submissionID != "" {
		records, err := h.notificationService.ListBySubmission(c.Request.Context(), submissionID)
		if err != nil {
			utils.DomainErrorResponse(c, err)
			return
		}
		utils.SuccessResponse(c, "Notifications retrieved", records)
		return
	}

	recipientID := c.Query("recipient_id")
	if recipientID == "" {
		utils.BadRequestResponse(c, "recipient_id or submission_id query parameter is required")
		return
	}

	params := utils.GetPaginationParams(c)
	records, total, err := h.notificationService.ListByRecipient(c.Request.Context(), recipientID, params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(records),
	}
	utils.SuccessResponseWithMeta(c, "Notifications retrieved", records, meta)
}
