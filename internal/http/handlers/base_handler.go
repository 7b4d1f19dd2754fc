// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"waypoint/internal/modules/auth"
	"waypoint/internal/modules/chat"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writePipelineError maps pipeline errors to statuses. Provider error bodies
// never reach the client; they are logged server-side only.
func writePipelineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		writeError(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, auth.ErrRateLimited):
		writeError(c, http.StatusTooManyRequests, "too many requests")
	case errors.Is(err, chat.ErrExtractionFailed):
		writeError(c, http.StatusBadRequest, "could not extract a search request from the message")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
