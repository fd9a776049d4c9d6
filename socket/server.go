package socket

import (
	"context"
	"log"

	socketio "github.com/googollee/go-socket.io"

	"devtinder_server/models"
	"devtinder_server/services"
)

// NewSocketServer initializes the Socket.IO server for realtime chat.
// Rooms are keyed by the chat pair key; messages sent over the socket
// are persisted through the same ChatService the REST layer uses.
func NewSocketServer(chats *services.ChatService, presence *services.PresenceService) *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	// joinChat puts the connection into the pair's room and marks the
	// user online.
	server.OnEvent("/", "joinChat", func(c socketio.Conn, data map[string]string) {
		userID, targetUserID := data["userId"], data["targetUserId"]
		if userID == "" || targetUserID == "" {
			log.Println("❌ Invalid joinChat payload")
			return
		}

		room := models.PairKey(userID, targetUserID)
		c.SetContext(userID)
		c.Join(room)
		log.Printf("👥 User %s joined room %s", userID, room)

		if err := presence.MarkOnline(context.Background(), userID); err != nil {
			log.Printf("⚠️ presence: %v", err)
		}
	})

	// sendMessage persists the message and fans it out to the room
	server.OnEvent("/", "sendMessage", func(c socketio.Conn, data map[string]string) {
		userID, targetUserID, text := data["userId"], data["targetUserId"], data["text"]
		if userID == "" || targetUserID == "" {
			log.Println("❌ Invalid sendMessage payload")
			return
		}

		_, message, err := chats.AppendMessage(context.Background(), userID, targetUserID, text)
		if err != nil {
			log.Printf("❌ Failed to store socket message: %v", err)
			c.Emit("errorMessage", map[string]string{"message": "Failed to send message"})
			return
		}

		room := models.PairKey(userID, targetUserID)
		server.BroadcastToRoom("/", room, "messageReceived", map[string]string{
			"messageId": message.MessageID,
			"senderId":  message.SenderID,
			"firstName": data["firstName"],
			"text":      message.Text,
			"createdAt": message.CreatedAt,
		})

		if err := presence.Refresh(context.Background(), userID); err != nil {
			log.Printf("⚠️ presence: %v", err)
		}
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		if userID, ok := c.Context().(string); ok && userID != "" {
			if err := presence.MarkOffline(context.Background(), userID); err != nil {
				log.Printf("⚠️ presence: %v", err)
			}
		}
		log.Println("❌ Socket disconnected:", c.ID(), reason)
	})

	return server
}
