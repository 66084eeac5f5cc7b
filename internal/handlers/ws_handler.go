package handlers

import (
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/realtime"
)

// PipelineWebSocket streams pipeline phase events to the connected user
// (autentikasi via query param user_id).
func PipelineWebSocket(hub *realtime.Hub) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		userID := c.Query("user_id")
		if userID == "" {
			log.Println("WebSocket: user_id parameter missing")
			c.Close()
			return
		}

		userUUID, err := uuid.Parse(userID)
		if err != nil {
			log.Println("WebSocket: invalid user_id:", userID, "error:", err)
			c.Close()
			return
		}

		client := &realtime.Client{
			ID:     uuid.New().String(),
			UserID: userUUID,
			Conn:   realtime.NewWebSocketConn(c),
			Send:   make(chan []byte, 256),
		}

		hub.RegisterClient(client)
		defer func() {
			hub.UnregisterClient(client)
			log.Printf("WebSocket: user %s disconnected\n", userID)
		}()

		// hub -> client
		go func() {
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					log.Println("WebSocket write error:", err)
					return
				}
			}
		}()

		// baca dari client cuma untuk keep-alive
		for {
			var payload map[string]interface{}
			if err := c.ReadJSON(&payload); err != nil {
				break
			}
		}
	}
}
