package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"devtinder_server/models"
	"devtinder_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// Feed page bounds
const (
	DefaultFeedLimit = 10
	MaxFeedLimit     = 50
)

// RequestService manages the connection-request workflow: sending,
// reviewing, canceling, and the feed of not-yet-contacted users.
type RequestService struct {
	Dynamo DynamoAPI
	Users  *UserService
}

// SendRequest creates a new directed request. The requests table is
// keyed by the unordered pair, so the conditional put is the whole
// uniqueness check: no request may exist between the two users in
// either direction, whatever its status.
func (rs *RequestService) SendRequest(ctx context.Context, fromUserID, toUserID, status string) (*models.ConnectionRequest, error) {
	if fromUserID == toUserID {
		return nil, ErrInvalidOperation
	}
	if !models.IsInitialStatus(status) {
		return nil, NewValidationError(map[string]string{"status": "must be interested or ignored"})
	}
	if _, err := rs.Users.GetUserByID(ctx, toUserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	request := &models.ConnectionRequest{
		PairKey:    models.PairKey(fromUserID, toUserID),
		RequestID:  uuid.NewString(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := rs.Dynamo.PutItemWithCondition(ctx, models.ConnectionRequestsTable, request, "attribute_not_exists(pairKey)", nil, nil)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return nil, ErrConflict
		}
		return nil, err
	}

	log.Printf("✅ Request sent: %s -> %s (%s)", fromUserID, toUserID, status)
	return request, nil
}

// ReviewRequest lets the recipient accept or reject an interested
// request. The guarded write keeps a raced double-review from
// overwriting an already resolved request.
func (rs *RequestService) ReviewRequest(ctx context.Context, reviewerID, requestID, decision string) (*models.ConnectionRequest, error) {
	if !models.IsReviewStatus(decision) {
		return nil, NewValidationError(map[string]string{"status": "must be accepted or rejected"})
	}

	request, err := rs.getByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ToUserID != reviewerID {
		return nil, ErrForbidden
	}
	if request.Status != models.StatusInterested {
		return nil, ErrInvalidOperation
	}

	request.Status = decision
	request.UpdatedAt = time.Now().UTC().Format(time.RFC3339Nano)

	err = rs.Dynamo.PutItemWithCondition(ctx, models.ConnectionRequestsTable, request,
		"#status = :expected",
		map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberS{Value: models.StatusInterested},
		},
		map[string]string{"#status": "status"},
	)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return nil, ErrInvalidOperation
		}
		return nil, err
	}

	log.Printf("✅ Request %s reviewed by %s: %s", requestID, reviewerID, decision)
	return request, nil
}

// CancelRequest lets the sender withdraw a request that has not been
// resolved yet. The record is deleted, which reopens the pair for a
// future request and puts the target back into the sender's feed.
func (rs *RequestService) CancelRequest(ctx context.Context, requesterID, requestID string) error {
	request, err := rs.getByRequestID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.FromUserID != requesterID {
		return ErrForbidden
	}
	if !models.IsCancelable(request.Status) {
		return ErrInvalidOperation
	}

	key := map[string]types.AttributeValue{
		"pairKey": &types.AttributeValueMemberS{Value: request.PairKey},
	}
	err = rs.Dynamo.DeleteItemWithCondition(ctx, models.ConnectionRequestsTable, key,
		"#status IN (:interested, :ignored)",
		map[string]types.AttributeValue{
			":interested": &types.AttributeValueMemberS{Value: models.StatusInterested},
			":ignored":    &types.AttributeValueMemberS{Value: models.StatusIgnored},
		},
		map[string]string{"#status": "status"},
	)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return ErrInvalidOperation
		}
		return err
	}

	log.Printf("✅ Request %s canceled by %s", requestID, requesterID)
	return nil
}

// ListReceived returns the actionable inbox: interested requests
// addressed to the user, joined with the sender's public profile.
func (rs *RequestService) ListReceived(ctx context.Context, userID string) ([]models.RequestWithProfile, error) {
	requests, err := rs.queryByIndex(ctx, models.ToUserIndex, "toUserId", userID)
	if err != nil {
		return nil, err
	}

	interested := requests[:0]
	for _, req := range requests {
		if req.Status == models.StatusInterested {
			interested = append(interested, req)
		}
	}

	return rs.withProfiles(ctx, interested, func(req models.ConnectionRequest) string {
		return req.FromUserID
	})
}

// ListSent returns every request the user has sent, any status, joined
// with the recipient's public profile.
func (rs *RequestService) ListSent(ctx context.Context, userID string) ([]models.RequestWithProfile, error) {
	requests, err := rs.queryByIndex(ctx, models.FromUserIndex, "fromUserId", userID)
	if err != nil {
		return nil, err
	}

	return rs.withProfiles(ctx, requests, func(req models.ConnectionRequest) string {
		return req.ToUserID
	})
}

// Connections returns the public profiles of everyone the user has an
// accepted request with, in either direction.
func (rs *RequestService) Connections(ctx context.Context, userID string) ([]models.PublicProfile, error) {
	received, err := rs.queryByIndex(ctx, models.ToUserIndex, "toUserId", userID)
	if err != nil {
		return nil, err
	}
	sent, err := rs.queryByIndex(ctx, models.FromUserIndex, "fromUserId", userID)
	if err != nil {
		return nil, err
	}

	var counterparts []string
	for _, req := range received {
		if req.Status == models.StatusAccepted {
			counterparts = append(counterparts, req.FromUserID)
		}
	}
	for _, req := range sent {
		if req.Status == models.StatusAccepted {
			counterparts = append(counterparts, req.ToUserID)
		}
	}

	profiles, err := rs.Users.PublicProfiles(ctx, counterparts)
	if err != nil {
		return nil, err
	}

	connections := make([]models.PublicProfile, 0, len(profiles))
	for _, id := range counterparts {
		if profile, ok := profiles[id]; ok {
			connections = append(connections, profile)
			delete(profiles, id)
		}
	}
	return connections, nil
}

// GetFeed returns up to limit candidate users: everyone except the
// caller and anyone already linked to the caller by a request in
// either direction, whatever its status. A set difference, not a
// ranking.
func (rs *RequestService) GetFeed(ctx context.Context, userID string, limit int) ([]models.PublicProfile, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}

	excluded, err := rs.linkedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	var users []models.User
	filter := func(item map[string]types.AttributeValue) bool {
		return !excluded[utils.ExtractString(item, "userId")]
	}
	excludeFields := map[string]string{"userId": userID}
	if err := rs.Dynamo.ScanWithFilter(ctx, models.UsersTable, filter, excludeFields, &users); err != nil {
		return nil, err
	}

	feed := make([]models.PublicProfile, 0, limit)
	for _, user := range users {
		if len(feed) == limit {
			break
		}
		feed = append(feed, user.Public())
	}
	return feed, nil
}

// linkedUserIDs collects every user connected to userID by any request
func (rs *RequestService) linkedUserIDs(ctx context.Context, userID string) (map[string]bool, error) {
	linked := make(map[string]bool)

	received, err := rs.queryByIndex(ctx, models.ToUserIndex, "toUserId", userID)
	if err != nil {
		return nil, err
	}
	for _, req := range received {
		linked[req.FromUserID] = true
	}

	sent, err := rs.queryByIndex(ctx, models.FromUserIndex, "fromUserId", userID)
	if err != nil {
		return nil, err
	}
	for _, req := range sent {
		linked[req.ToUserID] = true
	}

	return linked, nil
}

func (rs *RequestService) getByRequestID(ctx context.Context, requestID string) (*models.ConnectionRequest, error) {
	keyCondition := "requestId = :requestId"
	expressionValues := map[string]types.AttributeValue{
		":requestId": &types.AttributeValueMemberS{Value: requestID},
	}

	items, err := rs.Dynamo.QueryItemsWithIndex(ctx, models.ConnectionRequestsTable, models.RequestIDIndex, keyCondition, expressionValues, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to query request: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}

	var request models.ConnectionRequest
	if err := attributevalue.UnmarshalMap(items[0], &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal request: %w", err)
	}
	return &request, nil
}

func (rs *RequestService) queryByIndex(ctx context.Context, indexName, keyAttribute, userID string) ([]models.ConnectionRequest, error) {
	keyCondition := fmt.Sprintf("%s = :userId", keyAttribute)
	expressionValues := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberS{Value: userID},
	}

	// limit 0: a user's full request history is needed, both for the
	// listings and for the feed-exclusion set
	items, err := rs.Dynamo.QueryItemsWithIndex(ctx, models.ConnectionRequestsTable, indexName, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}

	var requests []models.ConnectionRequest
	if err := attributevalue.UnmarshalListOfMaps(items, &requests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal requests: %w", err)
	}
	return requests, nil
}

// withProfiles joins requests with the counterpart's public profile,
// dropping requests whose counterpart no longer resolves.
func (rs *RequestService) withProfiles(ctx context.Context, requests []models.ConnectionRequest, counterpart func(models.ConnectionRequest) string) ([]models.RequestWithProfile, error) {
	ids := make([]string, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, counterpart(req))
	}

	profiles, err := rs.Users.PublicProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]models.RequestWithProfile, 0, len(requests))
	for _, req := range requests {
		profile, ok := profiles[counterpart(req)]
		if !ok {
			continue
		}
		result = append(result, models.RequestWithProfile{
			RequestID: req.RequestID,
			Status:    req.Status,
			CreatedAt: req.CreatedAt,
			UpdatedAt: req.UpdatedAt,
			User:      profile,
		})
	}
	return result, nil
}
