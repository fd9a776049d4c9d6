package models

import "time"

// ChatMessage is a single message inside a chat document
type ChatMessage struct {
	MessageID string `dynamodbav:"messageId" json:"messageId"`
	SenderID  string `dynamodbav:"senderId" json:"senderId"`
	Text      string `dynamodbav:"text" json:"text"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"` // RFC3339Nano
}

// Chat is one document per unordered participant pair: an append-only
// message list plus per-participant lastSeen and unread counters.
type Chat struct {
	ChatID       string            `dynamodbav:"chatId" json:"chatId"` // ✅ Partition Key (pair key)
	Participants []string          `dynamodbav:"participants" json:"participants"`
	Messages     []ChatMessage     `dynamodbav:"messages" json:"messages"`
	LastSeen     map[string]string `dynamodbav:"lastSeen,omitempty" json:"lastSeen,omitempty"`
	UnreadCount  map[string]int    `dynamodbav:"unreadCount,omitempty" json:"-"`
	CreatedAt    string            `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt    string            `dynamodbav:"updatedAt" json:"updatedAt"`
}

// ChatSummary is one entry of the chat-list view
type ChatSummary struct {
	ChatID        string        `json:"chatId"`
	Participant   PublicProfile `json:"participant"`
	LatestMessage *ChatMessage  `json:"latestMessage,omitempty"`
	UnreadCount   int           `json:"unreadCount"`
	IsOnline      bool          `json:"isOnline"`
}

// OtherParticipant returns the first participant that is not the
// given viewer.
func (c *Chat) OtherParticipant(viewerID string) string {
	for _, p := range c.Participants {
		if p != viewerID {
			return p
		}
	}
	return ""
}

// UnreadCountFor counts messages the viewer has not seen yet: messages
// from the other participant created strictly after the viewer's
// lastSeen timestamp, or all of them when the viewer never opened the
// chat. Pure function of the document; single scan over the messages.
func (c *Chat) UnreadCountFor(viewerID string) int {
	lastSeenRaw, seen := "", false
	if c.LastSeen != nil {
		lastSeenRaw, seen = c.LastSeen[viewerID]
		seen = seen && lastSeenRaw != ""
	}

	var lastSeen time.Time
	if seen {
		t, err := time.Parse(time.RFC3339Nano, lastSeenRaw)
		if err != nil {
			seen = false
		} else {
			lastSeen = t
		}
	}

	count := 0
	for _, msg := range c.Messages {
		if msg.SenderID == viewerID {
			continue
		}
		if !seen {
			count++
			continue
		}
		createdAt, err := time.Parse(time.RFC3339Nano, msg.CreatedAt)
		if err == nil && createdAt.After(lastSeen) {
			count++
		}
	}
	return count
}

// ChatsTable is the DynamoDB table name for chat documents
const ChatsTable = "Chats"
