package services

import (
	"context"
	"testing"
	"time"

	"devtinder_server/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequestService(fake *fakeDynamo) *RequestService {
	users := &UserService{Dynamo: fake}
	return &RequestService{Dynamo: fake, Users: users}
}

func seedUser(t *testing.T, fake *fakeDynamo, firstName string) string {
	t.Helper()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	user := &models.User{
		UserID:       uuid.NewString(),
		FirstName:    firstName,
		EmailID:      firstName + "@example.com",
		AuthProvider: models.AuthProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, fake.PutItem(context.Background(), models.UsersTable, user))
	return user.UserID
}

func TestSendRequestToSelf(t *testing.T) {
	fake := newFakeDynamo()
	svc := newRequestService(fake)
	userA := seedUser(t, fake, "alice")

	_, err := svc.SendRequest(context.Background(), userA, userA, models.StatusInterested)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestSendRequestInvalidStatus(t *testing.T) {
	fake := newFakeDynamo()
	svc := newRequestService(fake)
	userA := seedUser(t, fake, "alice")
	userB := seedUser(t, fake, "bob")

	_, err := svc.SendRequest(context.Background(), userA, userB, models.StatusAccepted)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSendRequestUnknownTarget(t *testing.T) {
	fake := newFakeDynamo()
	svc := newRequestService(fake)
	userA := seedUser(t, fake, "alice")

	_, err := svc.SendRequest(context.Background(), userA, uuid.NewString(), models.StatusInterested)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSendRequestDuplicatePairEitherDirection(t *testing.T) {
	fake := newFakeDynamo()
	svc := newRequestService(fake)
	userA := seedUser(t, fake, "alice")
	userB := seedUser(t, fake, "bob")

	_, err := svc.SendRequest(context.Background(), userA, userB, models.StatusInterested)
	require.NoError(t, err)

	_, err = svc.SendRequest(context.Background(), userA, userB, models.StatusInterested)
	assert.ErrorIs(t, err, ErrConflict)

	// crossed request from the other side hits the same pair key
	_, err = svc.SendRequest(context.Background(), userB, userA, models.StatusIgnored)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestReviewRequest(t *testing.T) {
	fake := newFakeDynamo()
	svc := newRequestService(fake)
	userA := seedUser(t, fake, "alice")
	userB := seedUser(t, fake, "bob")

	sent, err := svc.SendRequest(context.Background(), userA, userB, models.StatusInterested)
	require.NoError(t, err)

	// only the recipient may review
	_, err = svc.ReviewRequest(context.Background(), userA, sent.RequestID, models.StatusAccepted)
	assert.ErrorIs(t, err, ErrForbidden)

	reviewed, err := svc.ReviewRequest(context.Background(), userB, sent.RequestID, models.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, reviewed.Status)

	// a resolved request cannot be reviewed again
	_, err = svc.ReviewRequest(context.Background(), userB, sent.RequestID, models.StatusRejected)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestReviewIgnoredRequestNotAllowed(t *testing.T) {
	fake := newFakeDynamo()
	svc := newRequestService(fake)
	userA := seedUser(t, fake, "alice")
	userB := seedUser(t, fake, "bob")

	sent, err := svc.SendRequest(context.Background(), userA, userB, models.StatusIgnored)
	require.NoError(t, err)

	_, err = svc.ReviewRequest(context.Background(), userB, sent.RequestID, models.StatusAccepted)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestReviewUnknownRequest(t *testing.T) {
	fake := newFakeDynamo()
	svc := newRequestService(fake)
	userB := seedUser(t, fake, "bob")

	_, err := svc.ReviewRequest(context.Background(), userB, uuid.NewString(), models.StatusAccepted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelRequest(t *testing.T) {
	fake := newFakeDynamo()
	svc := newRequestService(fake)
	userA := seedUser(t, fake, "alice")
	userB := seedUser(t, fake, "bob")

	sent, err := svc.SendRequest(context.Background(), userA, userB, models.StatusInterested)
	require.NoError(t, err)

	// only the sender may cancel
	err = svc.CancelRequest(context.Background(), userB, sent.RequestID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.CancelRequest(context.Background(), userA, sent.RequestID))

	// gone from both listings
	sentList, err := svc.ListSent(context.Background(), userA)
	require.NoError(t, err)
	assert.Empty(t, sentList)

	received, err := svc.ListReceived(context.Background(), userB)
	require.NoError(t, err)
	assert.Empty(t, received)

	// the pair is open again
	_, err = svc.SendRequest(context.Background(), userB, userA, models.StatusInterested)
	assert.NoError(t, err)
}

func TestCancelResolvedRequestNotAllowed(t *testing.T) {
	fake := newFakeDynamo()
	svc := newRequestService(fake)
	userA := seedUser(t, fake, "alice")
	userB := seedUser(t, fake, "bob")

	sent, err := svc.SendRequest(context.Background(), userA, userB, models.StatusInterested)
	require.NoError(t, err)
	_, err = svc.ReviewRequest(context.Background(), userB, sent.RequestID, models.StatusRejected)
	require.NoError(t, err)

	err = svc.CancelRequest(context.Background(), userA, sent.RequestID)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestListReceivedOnlyInterested(t *testing.T) {
	fake := newFakeDynamo()
	svc := newRequestService(fake)
	userA := seedUser(t, fake, "alice")
	userB := seedUser(t, fake, "bob")
	userC := seedUser(t, fake, "carol")

	_, err := svc.SendRequest(context.Background(), userA, userC, models.StatusInterested)
	require.NoError(t, err)
	_, err = svc.SendRequest(context.Background(), userB, userC, models.StatusIgnored)
	require.NoError(t, err)

	received, err := svc.ListReceived(context.Background(), userC)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, userA, received[0].User.UserID)
	assert.Equal(t, models.StatusInterested, received[0].Status)
}

func TestFeedExcludesLinkedUsers(t *testing.T) {
	fake := newFakeDynamo()
	svc := newRequestService(fake)
	userA := seedUser(t, fake, "alice")
	userB := seedUser(t, fake, "bob")
	userC := seedUser(t, fake, "carol")
	userD := seedUser(t, fake, "dave")

	_, err := svc.SendRequest(context.Background(), userA, userB, models.StatusInterested)
	require.NoError(t, err)
	_, err = svc.SendRequest(context.Background(), userC, userA, models.StatusIgnored)
	require.NoError(t, err)

	feed, err := svc.GetFeed(context.Background(), userA, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, userD, feed[0].UserID)
}

func TestFeedLimit(t *testing.T) {
	fake := newFakeDynamo()
	svc := newRequestService(fake)
	userA := seedUser(t, fake, "alice")
	for _, name := range []string{"bob", "carol", "dave", "erin"} {
		seedUser(t, fake, name)
	}

	feed, err := svc.GetFeed(context.Background(), userA, 2)
	require.NoError(t, err)
	assert.Len(t, feed, 2)
}

func TestListingsBeyondSingleQueryPage(t *testing.T) {
	fake := newFakeDynamo()
	svc := newRequestService(fake)
	userA := seedUser(t, fake, "alice")

	const total = 105
	for i := 0; i < total; i++ {
		target := seedUser(t, fake, "user"+uuid.NewString())
		_, err := svc.SendRequest(context.Background(), userA, target, models.StatusInterested)
		require.NoError(t, err)
	}

	// the full history comes back, not one query page of it
	sentList, err := svc.ListSent(context.Background(), userA)
	require.NoError(t, err)
	assert.Len(t, sentList, total)

	// and the feed exclusion set covers every requested user
	feed, err := svc.GetFeed(context.Background(), userA, MaxFeedLimit)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

// Full workflow: send -> inbox -> accept -> sent list shows accepted ->
// cancel refused.
func TestRequestLifecycle(t *testing.T) {
	fake := newFakeDynamo()
	svc := newRequestService(fake)
	userA := seedUser(t, fake, "alice")
	userB := seedUser(t, fake, "bob")

	sent, err := svc.SendRequest(context.Background(), userA, userB, models.StatusInterested)
	require.NoError(t, err)

	received, err := svc.ListReceived(context.Background(), userB)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, sent.RequestID, received[0].RequestID)

	_, err = svc.ReviewRequest(context.Background(), userB, sent.RequestID, models.StatusAccepted)
	require.NoError(t, err)

	sentList, err := svc.ListSent(context.Background(), userA)
	require.NoError(t, err)
	require.Len(t, sentList, 1)
	assert.Equal(t, models.StatusAccepted, sentList[0].Status)

	err = svc.CancelRequest(context.Background(), userA, sent.RequestID)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	// both sides now list each other as connections
	connectionsA, err := svc.Connections(context.Background(), userA)
	require.NoError(t, err)
	require.Len(t, connectionsA, 1)
	assert.Equal(t, userB, connectionsA[0].UserID)

	connectionsB, err := svc.Connections(context.Background(), userB)
	require.NoError(t, err)
	require.Len(t, connectionsB, 1)
	assert.Equal(t, userA, connectionsB[0].UserID)
}
