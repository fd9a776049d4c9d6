package models

import (
	"testing"
	"time"
)

func chatWithMessages(sender string, times ...time.Time) *Chat {
	chat := &Chat{
		ChatID:       PairKey("viewer", sender),
		Participants: []string{"viewer", sender},
	}
	for i, at := range times {
		chat.Messages = append(chat.Messages, ChatMessage{
			MessageID: string(rune('a' + i)),
			SenderID:  sender,
			Text:      "msg",
			CreatedAt: at.Format(time.RFC3339Nano),
		})
	}
	return chat
}

func TestUnreadCountStrictlyAfterLastSeen(t *testing.T) {
	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	chat := chatWithMessages("other", t1, t2)

	// lastSeen halfway between the two: only the later message counts
	chat.LastSeen = map[string]string{
		"viewer": t1.Add(30 * time.Second).Format(time.RFC3339Nano),
	}
	if got := chat.UnreadCountFor("viewer"); got != 1 {
		t.Fatalf("expected 1 unread, got %d", got)
	}

	// lastSeen exactly at t2: t2 is not strictly greater, so zero
	chat.LastSeen["viewer"] = t2.Format(time.RFC3339Nano)
	if got := chat.UnreadCountFor("viewer"); got != 0 {
		t.Fatalf("expected 0 unread, got %d", got)
	}
}

func TestUnreadCountNeverSeen(t *testing.T) {
	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	chat := chatWithMessages("other", t1, t1.Add(time.Second), t1.Add(2*time.Second))

	if got := chat.UnreadCountFor("viewer"); got != 3 {
		t.Fatalf("expected 3 unread, got %d", got)
	}
}

func TestUnreadCountIgnoresOwnMessages(t *testing.T) {
	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	chat := chatWithMessages("other", t1)
	chat.Messages = append(chat.Messages, ChatMessage{
		MessageID: "own",
		SenderID:  "viewer",
		Text:      "mine",
		CreatedAt: t1.Add(time.Second).Format(time.RFC3339Nano),
	})

	if got := chat.UnreadCountFor("viewer"); got != 1 {
		t.Fatalf("expected 1 unread, got %d", got)
	}
}

func TestOtherParticipant(t *testing.T) {
	chat := &Chat{Participants: []string{"a", "b"}}
	if got := chat.OtherParticipant("a"); got != "b" {
		t.Fatalf("expected b, got %s", got)
	}
	if got := chat.OtherParticipant("b"); got != "a" {
		t.Fatalf("expected a, got %s", got)
	}
	if got := chat.OtherParticipant("c"); got != "a" {
		t.Fatalf("expected first participant for non-member, got %s", got)
	}
}
