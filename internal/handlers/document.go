package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skanderbz/batitrack/internal/middleware"
	"github.com/skanderbz/batitrack/internal/services"
	"github.com/skanderbz/batitrack/pkg/response"
	"gorm.io/gorm"
)

type DocumentHandler struct {
	documentService *services.DocumentService
	maxUploadBytes  int64
}

func NewDocumentHandler(db *gorm.DB, storage *services.FileStorage) *DocumentHandler {
	access := services.NewAccessService(db)
	return &DocumentHandler{
		documentService: services.NewDocumentService(db, access, storage),
		maxUploadBytes:  storage.MaxBytes(),
	}
}

// List returns a project's documents with uploader emails
// GET /api/projects/:id/documents
func (h *DocumentHandler) List(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	docs, err := h.documentService.List(projectID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, docs)
}

// Upload receives a multipart file and records it against the project.
// Restricted to architecte and moa at the route level.
// POST /api/projects/:id/documents
func (h *DocumentHandler) Upload(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	// Reject oversized payloads before reading the multipart form
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		response.BadRequest(c, "file exceeds maximum allowed size")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.ServerError(c, "failed to read uploaded file")
		return
	}
	defer src.Close()

	doc, err := h.documentService.Upload(
		projectID,
		middleware.GetUserID(c),
		c.PostForm("doc_type"),
		src,
		fileHeader.Filename,
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, doc)
}

// Sign records a convention signature for the caller
// POST /api/projects/:id/documents/:documentID/sign
func (h *DocumentHandler) Sign(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	documentID, err := strconv.ParseUint(c.Param("documentID"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid document id")
		return
	}

	result, err := h.documentService.Sign(
		projectID,
		uint(documentID),
		middleware.GetUserID(c),
		c.ClientIP(),
		c.Request.UserAgent(),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
