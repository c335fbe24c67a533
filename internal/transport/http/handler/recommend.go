package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/study"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/transport/http/response"
)

type RecommendHandler struct {
	recommendService *study.RecommendService
}

type YouTubeRequest struct {
	Topic string `json:"topic" binding:"required"`
	PDFID string `json:"pdf_id"`
}

func NewRecommendHandler(recommendService *study.RecommendService) *RecommendHandler {
	return &RecommendHandler{recommendService: recommendService}
}

func (h *RecommendHandler) YouTube(c *gin.Context) {
	var req YouTubeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	recommendations, err := h.recommendService.RecommendVideos(c.Request.Context(), req.Topic, req.PDFID)
	if err != nil {
		switch {
		case errors.Is(err, study.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, study.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "recommendation failed")
		}
		return
	}

	response.OK(c, gin.H{
		"topic":           req.Topic,
		"recommendations": recommendations,
	})
}
