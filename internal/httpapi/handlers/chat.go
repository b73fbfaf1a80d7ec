package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/goldsmith-storefront/internal/common"
)

type sendMessageReq struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// SendChatMessage always answers 200 once the body is valid; assistant
// failures come back as the apology text.
func (h *Handler) SendChatMessage(c *gin.Context) {
	var req sendMessageReq
	if !bindJSON(c, &req) {
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		id, err := common.NewULID()
		if err != nil {
			common.Fail(c, http.StatusInternalServerError, common.CodeInternal, "failed to create session")
			return
		}
		sessionID = id
	}

	common.OK(c, h.ChatSvc.Respond(c.Request.Context(), sessionID, req.Message))
}

func (h *Handler) ListChatMessages(c *gin.Context) {
	sessionID := c.Param("session_id")
	limit, _ := strconv.Atoi(c.Query("limit"))

	turns, err := h.ChatSvc.History(c.Request.Context(), sessionID, limit)
	if err != nil {
		h.storeError(c, "list messages", err)
		return
	}
	common.OK(c, gin.H{
		"session_id": sessionID,
		"messages":   turns,
	})
}
