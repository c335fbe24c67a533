package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/study"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/transport/http/response"
)

type ProgressHandler struct {
	progressService *study.ProgressService
}

func NewProgressHandler(progressService *study.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (h *ProgressHandler) Get(c *gin.Context) {
	report, err := h.progressService.Summarize()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "progress aggregation failed")
		return
	}
	response.OK(c, report)
}
