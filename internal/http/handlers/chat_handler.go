// README: Chat pipeline handlers (chat, extract, structured search).
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"waypoint/internal/http/middleware"
	"waypoint/internal/modules/chat"
	"waypoint/internal/types"
)

type ChatHandler struct {
	chat *chat.Service
}

func NewChatHandler(chatSvc *chat.Service) *ChatHandler {
	return &ChatHandler{chat: chatSvc}
}

type chatReq struct {
	Message     string           `json:"message"`
	ChatHistory []types.ChatTurn `json:"chat_history"`
}

type chatResp struct {
	Response string              `json:"response"`
	Places   []types.PlaceResult `json:"places,omitempty"`
}

// Chat handles POST /v1/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	req, ok := bindChatReq(c)
	if !ok {
		return
	}

	res, err := h.chat.Respond(c.Request.Context(), middleware.CallerToken(c), req.Message, req.ChatHistory)
	if err != nil {
		writePipelineError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, chatResp{Response: res.Response, Places: res.Places})
}

type extractReq struct {
	Message         string `json:"message"`
	LocationContext string `json:"location_context"`
}

// Extract handles POST /v1/chat/extract.
func (h *ChatHandler) Extract(c *gin.Context) {
	var req extractReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}

	ext, err := h.chat.Extract(c.Request.Context(), req.Message, req.LocationContext)
	if err != nil {
		writePipelineError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"search_request": ext.Request,
		"explanation":    ext.Explanation,
	})
}

// Search handles POST /v1/chat/search: the structured view of the pipeline.
func (h *ChatHandler) Search(c *gin.Context) {
	req, ok := bindChatReq(c)
	if !ok {
		return
	}

	res, err := h.chat.Respond(c.Request.Context(), middleware.CallerToken(c), req.Message, req.ChatHistory)
	if err != nil {
		writePipelineError(c, err)
		return
	}

	if !res.IsSearch {
		writeJSON(c, http.StatusOK, gin.H{
			"response_message": res.Response,
			"is_search_intent": false,
		})
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"query":            res.Query,
		"places":           res.Places,
		"response_message": res.Response,
		"is_search_intent": true,
	})
}

func bindChatReq(c *gin.Context) (chatReq, bool) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return req, false
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return req, false
	}
	return req, true
}
