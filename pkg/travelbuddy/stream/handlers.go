// Package stream pushes listing activity and session changes to clients
// over WebSocket.
package stream

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/auth"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/events"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler serves the event stream
type Handler struct {
	svc *auth.Service
	hub *events.Hub
}

// NewHandler creates a new stream handler
func NewHandler(svc *auth.Service, hub *events.Hub) *Handler {
	return &Handler{svc: svc, hub: hub}
}

// Stream upgrades to a WebSocket carrying the listings feed and the
// caller's session changes. The socket closes when the session signs out.
// Browsers cannot set headers on WebSocket requests, so the token may also
// be passed as ?token=.
// @Summary Event stream
// @Tags events
// @Param token query string false "Session token"
// @Success 101 {object} events.Event
// @Failure 401 {object} map[string]string "Not signed in"
// @Router /events [get]
func (h *Handler) Stream(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		var err error
		if token, err = auth.BearerToken(c.GetHeader("Authorization")); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
	}

	state, err := h.svc.Resume(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrNoSession) || errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrExpiredToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
			return
		}
		log.Printf("Failed to resume session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return
	}
	defer state.Close()

	// Subscribed before the handshake completes so nothing published after
	// the client connects is missed.
	feed := h.hub.Subscribe(events.TopicListings)
	defer h.hub.Unsubscribe(feed)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	// The client never sends anything useful; reading detects disconnects.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case e, ok := <-feed.Events:
			if !ok {
				return
			}
			if err := write(conn, e); err != nil {
				return
			}
		case e, ok := <-state.Changes():
			if !ok {
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "signed out")
				conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
				return
			}
			if err := write(conn, e); err != nil {
				return
			}
		case <-gone:
			return
		}
	}
}

func write(conn *websocket.Conn, e events.Event) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(e)
}

// RegisterRoutes registers the stream route. It authenticates on its own
// and must not sit behind AuthMiddleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events", h.Stream)
}
