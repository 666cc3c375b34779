package routes

import (
	"fleetflow/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupBillingRoutes sets up routes for fee quoting, invoices and
// notification history
func SetupBillingRoutes(
	r *gin.RouterGroup,
	feeHandler *handlers.FeeHandler,
	invoiceHandler *handlers.InvoiceHandler,
	notificationHandler *handlers.NotificationHandler,
) {
	fees := r.Group("/fees")
	{
		fees.POST("/dispatch", feeHandler.CalculateFee)
	}

	invoices := r.Group("/invoices")
	{
		invoices.GET("", invoiceHandler.ListByBroker)
		invoices.GET("/:id", invoiceHandler.GetInvoice)
	}

	notifications := r.Group("/notifications")
	{
		notifications.GET("", notificationHandler.ListNotifications)
	}
}
