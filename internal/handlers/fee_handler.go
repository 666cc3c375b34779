package handlers

import (
	"fleetflow/internal/models"
	"fleetflow/internal/services"
	"fleetflow/internal/utils"
	"fleetflow/internal/validators"

	"github.com/gin-gonic/gin"
)

type FeeHandler struct {
	feeService services.FeeService
}

func NewFeeHandler(feeService services.FeeService) *FeeHandler {
	return &FeeHandler{
		feeService: feeService,
	}
}

// CalculateFee quotes the dispatch fee for a load amount and type.
func (h *FeeHandler) CalculateFee(c *gin.Context) {
	var request models.FeeCalculationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := validators.ValidateFeeCalculation(&request); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	quote, err := h.feeService.ComputeFee(c.Request.Context(), &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Dispatch fee calculated", quote)
}
