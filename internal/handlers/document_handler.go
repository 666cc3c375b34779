package handlers

import (
	"fleetflow/internal/services"
	"fleetflow/internal/utils"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	documentService services.DocumentService
}

func NewDocumentHandler(documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// UploadDocument stores a BOL photo or POD for a load. Multipart form
// with a single "file" field.
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "file field is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, "failed to read uploaded file")
		return
	}
	defer file.Close()

	response, err := h.documentService.UploadDocument(
		c.Request.Context(),
		c.Param("loadId"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Document uploaded", response)
}

// GetDocumentURL returns a time-limited link to a stored document.
func (h *DocumentHandler) GetDocumentURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		utils.BadRequestResponse(c, "key query parameter is required")
		return
	}

	url, err := h.documentService.DocumentURL(c.Request.Context(), key)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Document URL generated", gin.H{"key": key, "url": url})
}
