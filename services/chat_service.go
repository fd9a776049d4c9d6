package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"devtinder_server/models"
	"devtinder_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ChatService manages one-document-per-pair chats: lazy creation,
// message appends, last-seen bookkeeping and unread counters.
type ChatService struct {
	Dynamo   DynamoAPI
	Users    *UserService
	Presence *PresenceService
}

// GetOrCreateChat returns the chat between viewer and target, creating
// an empty document on first contact. Invoked as a view action: the
// viewer's lastSeen moves up to now and their unread counter resets,
// so viewing twice in a row is idempotent.
func (cs *ChatService) GetOrCreateChat(ctx context.Context, viewerID, targetUserID string) (*models.Chat, error) {
	if _, err := cs.Users.GetUserByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	chat, err := cs.loadOrCreate(ctx, viewerID, targetUserID)
	if err != nil {
		return nil, err
	}

	cs.markSeen(chat, viewerID)
	if err := cs.Dynamo.PutItem(ctx, models.ChatsTable, chat); err != nil {
		return nil, err
	}

	return chat, nil
}

// AppendMessage appends a trimmed, non-empty message to the pair's
// chat and bumps the counterpart's unread counter. The sender's own
// lastSeen is left alone: their messages never count against them.
func (cs *ChatService) AppendMessage(ctx context.Context, senderID, targetUserID, text string) (*models.Chat, *models.ChatMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil, NewValidationError(map[string]string{"text": "message text is required"})
	}

	if _, err := cs.Users.GetUserByID(ctx, targetUserID); err != nil {
		return nil, nil, err
	}

	chat, err := cs.loadOrCreate(ctx, senderID, targetUserID)
	if err != nil {
		return nil, nil, err
	}

	message := models.ChatMessage{
		MessageID: uuid.NewString(),
		SenderID:  senderID,
		Text:      trimmed,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	other := chat.OtherParticipant(senderID)
	if chat.UnreadCount == nil {
		// documents that predate the counter: seed it from the scan so
		// the counterpart's accumulated unread history is not lost
		chat.UnreadCount = map[string]int{other: chat.UnreadCountFor(other)}
	}
	chat.Messages = append(chat.Messages, message)
	chat.UnreadCount[other]++
	chat.UpdatedAt = message.CreatedAt

	if err := cs.Dynamo.PutItem(ctx, models.ChatsTable, chat); err != nil {
		return nil, nil, err
	}

	log.Printf("📩 Message %s appended to chat %s", message.MessageID, chat.ChatID)
	return chat, &message, nil
}

// ListChats returns every chat the user participates in that has at
// least one message, annotated with the unread count, the latest
// message and the counterpart's public profile. Chats whose
// counterpart no longer resolves are filtered out.
func (cs *ChatService) ListChats(ctx context.Context, userID string) ([]models.ChatSummary, error) {
	var chats []models.Chat
	filter := func(item map[string]types.AttributeValue) bool {
		return utils.ListContains(item, "participants", userID)
	}
	if err := cs.Dynamo.ScanWithFilter(ctx, models.ChatsTable, filter, nil, &chats); err != nil {
		return nil, err
	}

	summaries := make([]models.ChatSummary, 0, len(chats))
	for i := range chats {
		chat := &chats[i]
		if len(chat.Messages) == 0 {
			continue
		}

		otherID := chat.OtherParticipant(userID)
		other, err := cs.Users.GetUserByID(ctx, otherID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue // deleted account
			}
			return nil, err
		}

		latest := chat.Messages[len(chat.Messages)-1]
		summaries = append(summaries, models.ChatSummary{
			ChatID:        chat.ChatID,
			Participant:   other.Public(),
			LatestMessage: &latest,
			UnreadCount:   cs.unreadCount(chat, userID),
			IsOnline:      cs.isOnline(ctx, otherID),
		})
	}

	// RFC3339Nano trims trailing fractional zeros, so the strings do
	// not sort chronologically; compare parsed times
	sort.SliceStable(summaries, func(i, j int) bool {
		return parseMessageTime(summaries[i].LatestMessage.CreatedAt).After(parseMessageTime(summaries[j].LatestMessage.CreatedAt))
	})
	return summaries, nil
}

func parseMessageTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// unreadCount prefers the incrementally maintained counter and falls
// back to the lastSeen scan for documents that predate it. The two
// must agree; UnreadCountFor stays the authoritative definition.
func (cs *ChatService) unreadCount(chat *models.Chat, viewerID string) int {
	if chat.UnreadCount != nil {
		return chat.UnreadCount[viewerID]
	}
	return chat.UnreadCountFor(viewerID)
}

func (cs *ChatService) isOnline(ctx context.Context, userID string) bool {
	if cs.Presence == nil {
		return false
	}
	online, err := cs.Presence.IsOnline(ctx, userID)
	if err != nil {
		return false
	}
	return online
}

// loadOrCreate fetches the pair's chat document, creating an empty one
// when absent. A lost creation race falls back to reading the winner.
func (cs *ChatService) loadOrCreate(ctx context.Context, userA, userB string) (*models.Chat, error) {
	chatID := models.PairKey(userA, userB)
	key := map[string]types.AttributeValue{
		"chatId": &types.AttributeValueMemberS{Value: chatID},
	}

	item, err := cs.Dynamo.GetItem(ctx, models.ChatsTable, key)
	if err == nil {
		var chat models.Chat
		if err := attributevalue.UnmarshalMap(item, &chat); err != nil {
			return nil, fmt.Errorf("failed to unmarshal chat: %w", err)
		}
		return &chat, nil
	}
	if !errors.Is(err, ErrItemNotFound) {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	chat := &models.Chat{
		ChatID:       chatID,
		Participants: []string{userA, userB},
		Messages:     []models.ChatMessage{},
		LastSeen:     map[string]string{},
		UnreadCount:  map[string]int{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = cs.Dynamo.PutItemWithCondition(ctx, models.ChatsTable, chat, "attribute_not_exists(chatId)", nil, nil)
	if err == nil {
		log.Printf("💬 Chat created: %s", chatID)
		return chat, nil
	}
	if !errors.Is(err, ErrConditionFailed) {
		return nil, err
	}

	item, err = cs.Dynamo.GetItem(ctx, models.ChatsTable, key)
	if err != nil {
		return nil, err
	}
	var existing models.Chat
	if err := attributevalue.UnmarshalMap(item, &existing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat: %w", err)
	}
	return &existing, nil
}

// markSeen moves the viewer's lastSeen forward (never backwards) and
// clears their unread counter.
func (cs *ChatService) markSeen(chat *models.Chat, viewerID string) {
	if chat.UnreadCount == nil {
		chat.UnreadCount = map[string]int{}
	}
	chat.UnreadCount[viewerID] = 0

	now := time.Now().UTC()
	if chat.LastSeen == nil {
		chat.LastSeen = map[string]string{}
	}
	if prev, ok := chat.LastSeen[viewerID]; ok {
		// lastSeen is monotonically non-decreasing
		if t, err := time.Parse(time.RFC3339Nano, prev); err == nil && t.After(now) {
			return
		}
	}
	chat.LastSeen[viewerID] = now.Format(time.RFC3339Nano)
	chat.UpdatedAt = chat.LastSeen[viewerID]
}
