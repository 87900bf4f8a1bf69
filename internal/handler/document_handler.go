package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"counsellor/internal/service"
)

// DocumentHandler handles document vault endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// List godoc
// @Summary List the caller's documents
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Document
// @Router /documents/ [get]
func (h *DocumentHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	documents, err := h.documentService.List(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, documents)
}

// Upload godoc
// @Summary Upload a document
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Document file"
// @Param category formData string false "Document category"
// @Success 201 {object} model.Document
// @Failure 400 {object} errors.ErrorResponse
// @Router /documents/upload [post]
func (h *DocumentHandler) Upload(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "unable to read uploaded file")
	}
	defer src.Close()

	document, err := h.documentService.Upload(
		c.Request().Context(),
		userID,
		fileHeader.Filename,
		c.FormValue("category"),
		fileHeader.Size,
		src,
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, document)
}

// Delete godoc
// @Summary Delete a document
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param document_id path int true "Document ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /documents/{document_id} [delete]
func (h *DocumentHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	documentID, err := parseIDParam(c, "document_id")
	if err != nil {
		return badRequest(c, "invalid document id")
	}

	if err := h.documentService.Delete(c.Request().Context(), userID, documentID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "document deleted"})
}
