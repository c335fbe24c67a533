package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/study"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/transport/http/response"
)

type ChatHandler struct {
	chatService *study.ChatService
}

type ChatRequest struct {
	ChatID  string `json:"chat_id"`
	Message string `json:"message" binding:"required"`
	PDFID   string `json:"pdf_id"`
}

func NewChatHandler(chatService *study.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) Ask(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.chatService.Ask(c.Request.Context(), req.ChatID, req.PDFID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, study.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, study.ErrChatNotFound), errors.Is(err, study.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "chat failed")
		}
		return
	}

	response.OK(c, result)
}

func (h *ChatHandler) History(c *gin.Context) {
	summaries, err := h.chatService.Sessions()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list chats failed")
		return
	}
	response.OK(c, gin.H{
		"chats": summaries,
		"total": len(summaries),
	})
}

func (h *ChatHandler) Get(c *gin.Context) {
	id := c.Param("id")
	messages, err := h.chatService.Messages(c.Request.Context(), id)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}
	response.OK(c, gin.H{
		"chat_id":  id,
		"messages": messages,
	})
}

func (h *ChatHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.chatService.DeleteSession(c.Request.Context(), id); err != nil {
		h.respondLookupError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted_chat_id": id})
}

func (h *ChatHandler) respondLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, study.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, study.ErrChatNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "chat lookup failed")
	}
}
