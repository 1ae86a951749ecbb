package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"messenger/auth"
)

// SetupRouter wires the contract routes behind the auth middleware.
// Only the health probe is reachable without a token.
func SetupRouter(handler *MessengerHandler, tokens *auth.TokenManager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := r.Group("/")
	authed.Use(auth.Middleware(tokens))
	{
		authed.GET("/rooms", handler.ListRooms)
		authed.POST("/rooms", handler.CreateRoom)
		authed.GET("/rooms/:id/messages", handler.ListMessagesForRoom)
		authed.POST("/rooms/:id/messages", handler.CreateMessage)
		authed.DELETE("/messages/:id", handler.DeleteMessage)
	}

	return r
}
