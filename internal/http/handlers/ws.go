package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"nhooyr.io/websocket"

	"github.com/Muskan6505/Local-helpHub/internal/chat"
	"github.com/Muskan6505/Local-helpHub/internal/logger"
	"github.com/Muskan6505/Local-helpHub/internal/tokens"
)

type WSHandler struct {
	Hub    *chat.Hub
	Tokens *tokens.Manager
	Log    *logger.Logger

	// InsecureSkipVerify bypasses origin checks for cross-origin dev
	// frontends. Never enable in production.
	InsecureSkipVerify bool
}

// Handle upgrades the connection and hands it to the hub. The identity is
// bound here from a verified access token; browser WebSocket clients cannot
// set an Authorization header, so the token arrives as a query param or in
// the auth cookie.
func (h *WSHandler) Handle(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		if cookie, err := c.Cookie("accessToken"); err == nil {
			tokenStr = cookie
		}
	}
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
		return
	}

	claims, err := h.Tokens.ParseAccess(tokenStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}

	opts := &websocket.AcceptOptions{}
	if h.InsecureSkipVerify {
		opts.InsecureSkipVerify = true
	}

	conn, err := websocket.Accept(c.Writer, c.Request, opts)
	if err != nil {
		// Accept already wrote the error response.
		return
	}

	h.Log.Debug("websocket connected", "user", claims.UserID)
	h.Hub.Serve(c.Request.Context(), claims.UserID, chat.NewWebsocketConn(conn))
}
