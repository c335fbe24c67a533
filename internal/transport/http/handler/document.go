package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/model"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/pkg/pdfextract"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/study"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/transport/http/response"
)

type DocumentHandler struct {
	documentService *study.DocumentService
	maxUploadBytes  int64
}

type documentSummary struct {
	PDFID      string    `json:"pdf_id"`
	Filename   string    `json:"filename"`
	TotalPages int       `json:"total_pages"`
	FileSize   int64     `json:"file_size"`
	IsScanned  bool      `json:"is_scanned"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func NewDocumentHandler(documentService *study.DocumentService, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		maxUploadBytes:  maxUploadBytes,
	}
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file field")
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "only PDF files are accepted")
		return
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest,
			fmt.Sprintf("file exceeds the %dMB upload limit", h.maxUploadBytes>>20))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "unreadable upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "unreadable upload")
		return
	}

	doc, err := h.documentService.Upload(c.Request.Context(), filepath.Base(fileHeader.Filename), data)
	if err != nil {
		switch {
		case errors.Is(err, study.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, pdfextract.ErrNoText):
			response.Error(c, http.StatusUnprocessableEntity, response.CodeUnprocessable, "could not extract any content from the PDF")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "upload failed")
		}
		return
	}

	response.OK(c, summarize(doc))
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.documentService.List()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list documents failed")
		return
	}

	summaries := make([]documentSummary, len(docs))
	for i := range docs {
		summaries[i] = summarize(&docs[i])
	}
	response.OK(c, gin.H{
		"pdfs":  summaries,
		"total": len(summaries),
	})
}

// GetFile streams the stored PDF back to the client.
func (h *DocumentHandler) GetFile(c *gin.Context) {
	doc, err := h.documentService.Get(c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.Filename))
	c.File(doc.FilePath)
}

func (h *DocumentHandler) GetText(c *gin.Context) {
	doc, err := h.documentService.Get(c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	response.OK(c, gin.H{
		"pdf_id":      doc.ID,
		"filename":    doc.Filename,
		"total_pages": doc.TotalPages,
		"is_scanned":  doc.IsScanned,
		"pages":       doc.Pages(),
	})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.documentService.Delete(c.Request.Context(), id); err != nil {
		h.respondLookupError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted_pdf_id": id})
}

func (h *DocumentHandler) respondLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, study.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, study.ErrDocumentNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "document lookup failed")
	}
}

func summarize(doc *model.Document) documentSummary {
	return documentSummary{
		PDFID:      doc.ID,
		Filename:   doc.Filename,
		TotalPages: doc.TotalPages,
		FileSize:   doc.FileSize,
		IsScanned:  doc.IsScanned,
		UploadedAt: doc.UploadedAt,
	}
}
