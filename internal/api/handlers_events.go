package api

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The API is unauthenticated; any origin may subscribe.
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// handleEvents handles GET /api/events: it upgrades the connection and
// streams group lifecycle events until the client disconnects.
func (s *Server) handleEvents(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		hub:  s.wsHub,
		conn: ws,
		send: make(chan []byte, 64),
	}
	s.wsHub.register <- client

	go client.writePump()
	go client.readPump()

	return nil
}
