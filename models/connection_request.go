package models

import "strings"

// ConnectionRequest is a directed interest edge between two users.
// The table is keyed by the unordered pair, so a conditional put on
// pairKey is enough to guarantee at most one request per pair in
// either direction.
type ConnectionRequest struct {
	PairKey    string `dynamodbav:"pairKey" json:"-"` // ✅ Partition Key
	RequestID  string `dynamodbav:"requestId" json:"requestId"`
	FromUserID string `dynamodbav:"fromUserId" json:"fromUserId"`
	ToUserID   string `dynamodbav:"toUserId" json:"toUserId"`
	Status     string `dynamodbav:"status" json:"status"`
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt  string `dynamodbav:"updatedAt" json:"updatedAt"`
}

// RequestWithProfile is a request joined with the counterpart's public profile
type RequestWithProfile struct {
	RequestID string        `json:"requestId"`
	Status    string        `json:"status"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
	User      PublicProfile `json:"user"`
}

// PairKey builds the canonical key for an unordered user pair
func PairKey(userA, userB string) string {
	if strings.Compare(userA, userB) > 0 {
		userA, userB = userB, userA
	}
	return userA + "#" + userB
}

// ConnectionRequestsTable is the DynamoDB table name for connection requests
const ConnectionRequestsTable = "ConnectionRequests"

// GSI names for request lookups
const (
	RequestIDIndex = "requestId-index"
	FromUserIndex  = "fromUserId-index"
	ToUserIndex    = "toUserId-index"
)
