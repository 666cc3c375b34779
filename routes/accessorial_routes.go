package routes

import (
	"fleetflow/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAccessorialRoutes sets up routes for the per-load fee ledger
func SetupAccessorialRoutes(r *gin.RouterGroup, accessorialHandler *handlers.AccessorialHandler) {
	loads := r.Group("/loads/:loadId/accessorials")
	{
		loads.POST("", accessorialHandler.AddFee)
		loads.POST("/detention", accessorialHandler.AddDetention)
		loads.GET("", accessorialHandler.ListByLoad)
		loads.GET("/summary", accessorialHandler.GetSummary)
	}

	fees := r.Group("/accessorials")
	{
		fees.PUT("/:id/approve", accessorialHandler.ApproveFee)
	}
}
