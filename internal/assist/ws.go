package assist

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Content string `json:"content"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type    string `json:"type"` // "response" or "error"
	Content string `json:"content"`
}

// handleChatSocket runs an interactive chat session over a WebSocket.
// The conversation history lives in the connection, so each message only
// carries the new user turn.
func handleChatSocket(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("assist: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		var history []ChatMessage

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("assist: websocket read: %v", err)
				}
				return
			}

			var req wsRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				sendSocket(conn, wsResponse{Type: "error", Content: "invalid message format"})
				continue
			}
			if req.Content == "" {
				sendSocket(conn, wsResponse{Type: "error", Content: "content is required"})
				continue
			}

			reply, err := svc.Chat(r.Context(), history, req.Content)
			if err != nil {
				sendSocket(conn, wsResponse{Type: "error", Content: err.Error()})
				continue
			}

			history = append(history,
				ChatMessage{Role: "user", Content: req.Content},
				ChatMessage{Role: "assistant", Content: reply},
			)

			sendSocket(conn, wsResponse{Type: "response", Content: reply})
		}
	}
}

func sendSocket(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("assist: websocket write: %v", err)
	}
}
