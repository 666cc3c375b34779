package handlers

import (
	"fleetflow/internal/models"
	"fleetflow/internal/repositories/interfaces"
	"fleetflow/internal/services"
	"fleetflow/internal/utils"
	"fleetflow/internal/validators"

	"github.com/gin-gonic/gin"
)

type BOLHandler struct {
	bolService services.BOLService
}

func NewBOLHandler(bolService services.BOLService) *BOLHandler {
	return &BOLHandler{
		bolService: bolService,
	}
}

// SubmitBOL accepts a driver's delivery confirmation and opens a pending
// submission for broker review.
func (h *BOLHandler) SubmitBOL(c *gin.Context) {
	var request models.BOLSubmitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := validators.ValidateBOLSubmit(&request); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	submission, err := h.bolService.SubmitBOL(c.Request.Context(), &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "BOL submitted for review", submission)
}

// ReviewBOL applies the broker's verdict. Approval runs the full
// pipeline: fee approval, invoice generation and notifications.
func (h *BOLHandler) ReviewBOL(c *gin.Context) {
	var decision models.ApprovalDecision
	if err := c.ShouldBindJSON(&decision); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := validators.ValidateApprovalDecision(&decision); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	submission, err := h.bolService.Review(c.Request.Context(), c.Param("id"), &decision)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	message := "BOL submission rejected"
	if decision.Approved {
		message = "BOL submission approved and invoiced"
	}
	utils.SuccessResponse(c, message, submission)
}

// GetSubmission returns a single submission by id.
func (h *BOLHandler) GetSubmission(c *gin.Context) {
	submission, err := h.bolService.GetSubmission(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "BOL submission retrieved", submission)
}

// ListSubmissions returns submissions filtered by broker, driver, load
// or status, paginated.
func (h *BOLHandler) ListSubmissions(c *gin.Context) {
	filter := &interfaces.BOLFilter{
		BrokerID: c.Query("broker_id"),
		DriverID: c.Query("driver_id"),
		LoadID:   c.Query("load_id"),
		Status:   models.BOLStatus(c.Query("status")),
	}
	params := utils.GetPaginationParams(c)

	submissions, total, err := h.bolService.ListSubmissions(c.Request.Context(), filter, params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(submissions),
	}
	utils.SuccessResponseWithMeta(c, "BOL submissions retrieved", submissions, meta)
}
