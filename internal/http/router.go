// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"waypoint/internal/http/handlers"
	"waypoint/internal/http/middleware"
	"waypoint/internal/modules/auth"
	"waypoint/internal/modules/chat"
)

type RouterDeps struct {
	Auth           *auth.Service
	Chat           *chat.Service
	FrontendOrigin string
	Log            *logrus.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(deps.Log),
		middleware.Logging(deps.Log),
		middleware.CORS(deps.FrontendOrigin),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	authHandler := handlers.NewAuthHandler(deps.Auth, deps.Chat)
	r.POST("/v1/auth", authHandler.Login)

	chatHandler := handlers.NewChatHandler(deps.Chat)
	placesHandler := handlers.NewPlacesHandler(deps.Chat)

	v1 := r.Group("/v1", middleware.Auth(deps.Auth), middleware.RateLimit(deps.Auth, deps.Log))
	v1.DELETE("/auth", authHandler.Logout)
	v1.POST("/chat", chatHandler.Chat)
	v1.POST("/chat/extract", chatHandler.Extract)
	v1.POST("/chat/search", chatHandler.Search)
	v1.POST("/places/search", placesHandler.Search)

	return r
}
