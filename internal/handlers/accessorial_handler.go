package handlers

import (
	"fleetflow/internal/models"
	"fleetflow/internal/services"
	"fleetflow/internal/utils"
	"fleetflow/internal/validators"

	"github.com/gin-gonic/gin"
)

type AccessorialHandler struct {
	accessorialService services.AccessorialService
}

func NewAccessorialHandler(accessorialService services.AccessorialService) *AccessorialHandler {
	return &AccessorialHandler{
		accessorialService: accessorialService,
	}
}

// AddFee records a charge on a load's ledger.
func (h *AccessorialHandler) AddFee(c *gin.Context) {
	var request models.AccessorialFeeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := validators.ValidateAccessorialFee(&request); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	fee, summary, err := h.accessorialService.AddFee(c.Request.Context(), c.Param("loadId"), &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Accessorial fee added", gin.H{
		"fee":     fee,
		"summary": summary,
	})
}

// AddDetention records detention time as a ledger entry, applying the
// configured free time when none is given.
func (h *AccessorialHandler) AddDetention(c *gin.Context) {
	var request models.DetentionFee
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := validators.ValidateDetention(&request); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	fee, summary, err := h.accessorialService.AddDetention(c.Request.Context(), c.Param("loadId"), &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Detention fee added", gin.H{
		"fee":     fee,
		"summary": summary,
	})
}

// ApproveFee marks a single ledger entry approved for billing.
func (h *AccessorialHandler) ApproveFee(c *gin.Context) {
	var request models.ApproveFeeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := validators.ValidateApproveFee(&request); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	fee, err := h.accessorialService.ApproveFee(c.Request.Context(), c.Param("id"), &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Accessorial fee approved", fee)
}

// ListByLoad returns the full ledger for a load.
func (h *AccessorialHandler) ListByLoad(c *gin.Context) {
	fees, err := h.accessorialService.ListByLoad(c.Request.Context(), c.Param("loadId"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Accessorial fees retrieved", fees)
}

// GetSummary returns the approved/pending totals for a load.
func (h *AccessorialHandler) GetSummary(c *gin.Context) {
	summary, err := h.accessorialService.Summarize(c.Request.Context(), c.Param("loadId"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Accessorial summary retrieved", summary)
}
