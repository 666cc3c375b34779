package routes

import (
	"fleetflow/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupBOLRoutes sets up routes for the BOL submission workflow
func SetupBOLRoutes(r *gin.RouterGroup, bolHandler *handlers.BOLHandler, documentHandler *handlers.DocumentHandler) {
	submissions := r.Group("/bol/submissions")
	{
		submissions.POST("", bolHandler.SubmitBOL)
		submissions.GET("", bolHandler.ListSubmissions)
		submissions.GET("/:id", bolHandler.GetSubmission)
		submissions.POST("/:id/review", bolHandler.ReviewBOL)
	}

	documents := r.Group("/loads/:loadId/documents")
	{
		documents.POST("", documentHandler.UploadDocument)
	}
	r.GET("/documents/url", documentHandler.GetDocumentURL)
}
