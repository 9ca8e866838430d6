package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"policy-vault.backend/internal/domain/entities"
	domainerrors "policy-vault.backend/internal/domain/errors"
	"policy-vault.backend/internal/interfaces/http/middleware"
	"policy-vault.backend/internal/interfaces/http/response"
	"policy-vault.backend/internal/usecases"
)

// ChatbotHandler relays chat questions to the retrieval service
type ChatbotHandler struct {
	chatbotUsecase *usecases.ChatbotUsecase
}

// NewChatbotHandler creates a new chatbot handler
func NewChatbotHandler(chatbotUsecase *usecases.ChatbotUsecase) *ChatbotHandler {
	return &ChatbotHandler{
		chatbotUsecase: chatbotUsecase,
	}
}

// Query answers a natural-language question about the user's policies
// POST /api/chatbot/query
func (h *ChatbotHandler) Query(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.ChatQueryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	answer, err := h.chatbotUsecase.Ask(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, answer)
}
