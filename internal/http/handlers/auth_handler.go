// README: Session handlers (login issues a token, logout revokes it).
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"waypoint/internal/http/middleware"
	"waypoint/internal/modules/auth"
	"waypoint/internal/modules/chat"
)

type AuthHandler struct {
	auth *auth.Service
	chat *chat.Service
}

func NewAuthHandler(authSvc *auth.Service, chatSvc *chat.Service) *AuthHandler {
	return &AuthHandler{auth: authSvc, chat: chatSvc}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /v1/auth.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	token, err := h.auth.Authenticate(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			writeError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"token": token})
}

// Logout handles DELETE /v1/auth. Revocation also drops the token's cached
// search results.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.CallerToken(c)
	h.auth.Revoke(token)
	h.chat.ForgetToken(token)
	writeJSON(c, http.StatusOK, gin.H{"ok": true})
}
