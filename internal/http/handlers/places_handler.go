// README: Direct structured place search handler.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"waypoint/internal/modules/chat"
	"waypoint/internal/types"
)

type PlacesHandler struct {
	chat *chat.Service
}

func NewPlacesHandler(chatSvc *chat.Service) *PlacesHandler {
	return &PlacesHandler{chat: chatSvc}
}

// Search handles POST /v1/places/search with an already-structured request.
// Location precedence (explicit bias over geocoded name) matches the pipeline.
func (h *PlacesHandler) Search(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(c, http.StatusBadRequest, "missing query")
		return
	}

	resp := h.chat.SearchPlaces(c.Request.Context(), req)
	writeJSON(c, http.StatusOK, resp)
}
