package handlers

import (
	"strings"

	"fleetflow/internal/models"
	"fleetflow/internal/services"
	"fleetflow/internal/utils"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService services.InvoiceService
}

func NewInvoiceHandler(invoiceService services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// GetInvoice returns an invoice by object id or by invoice number.
// Invoice numbers carry dashes, object ids never do.
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	ref := c.Param("id")

	var invoice *models.Invoice
	var err error
	if strings.Contains(ref, "-") {
		invoice, err = h.invoiceService.GetByNumber(c.Request.Context(), ref)
	} else {
		invoice, err = h.invoiceService.GetInvoice(c.Request.Context(), ref)
	}
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Invoice retrieved", invoice)
}

// ListByBroker returns a broker's invoices, paginated.
func (h *InvoiceHandler) ListByBroker(c *gin.Context) {
	brokerID := c.Query("broker_id")
	if brokerID == "" {
		utils.BadRequestResponse(c, "broker_id query parameter is required")
		return
	}

	params := utils.GetPaginationParams(c)
	invoices, total, err := h.invoiceService.ListByBroker(c.Request.Context(), brokerID, params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(invoices),
	}
	utils.SuccessResponseWithMeta(c, "Invoices retrieved", invoices, meta)
}
