package services

import (
	"context"
	"testing"
	"time"

	"devtinder_server/models"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	recipients []string
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.recipients = append(f.recipients, params.Destination.ToAddresses...)
	return &sesv2.SendEmailOutput{}, nil
}

func seedRequest(t *testing.T, fake *fakeDynamo, fromUserID, toUserID, status, createdAt string) {
	t.Helper()
	request := &models.ConnectionRequest{
		PairKey:    models.PairKey(fromUserID, toUserID),
		RequestID:  uuid.NewString(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Status:     status,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	require.NoError(t, fake.PutItem(context.Background(), models.ConnectionRequestsTable, request))
}

func TestRunRemindersWindow(t *testing.T) {
	fake := newFakeDynamo()
	users := &UserService{Dynamo: fake}
	ses := &fakeSES{}
	cron := NewCronService(fake, users, &EmailService{Client: ses})

	userA := seedUser(t, fake, "alice")
	userB := seedUser(t, fake, "bob")
	userC := seedUser(t, fake, "carol")
	userD := seedUser(t, fake, "dave")

	window := 24 * time.Hour

	// fresh request: bob gets a reminder. Exact-second timestamps have
	// no fractional digits, which must not confuse the cutoff check.
	fresh := time.Now().UTC().Add(-time.Hour).Truncate(time.Second).Format(time.RFC3339Nano)
	seedRequest(t, fake, userA, userB, models.StatusInterested, fresh)

	// request right at the window edge: outside, no reminder
	boundary := time.Now().UTC().Add(-window).Truncate(time.Second).Format(time.RFC3339Nano)
	seedRequest(t, fake, userC, userD, models.StatusInterested, boundary)

	cron.runReminders(window)

	require.Len(t, ses.recipients, 1)
	assert.Equal(t, "bob@example.com", ses.recipients[0])
}

func TestRunRemindersSkipsSeedAccounts(t *testing.T) {
	fake := newFakeDynamo()
	users := &UserService{Dynamo: fake}
	ses := &fakeSES{}
	cron := NewCronService(fake, users, &EmailService{Client: ses})

	userA := seedUser(t, fake, "alice")

	now := time.Now().UTC().Format(time.RFC3339Nano)
	mock := &models.User{
		UserID:       uuid.NewString(),
		FirstName:    "mock",
		EmailID:      "mock@devtinder.dev",
		IsSeed:       true,
		AuthProvider: models.AuthProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, fake.PutItem(context.Background(), models.UsersTable, mock))

	seedRequest(t, fake, userA, mock.UserID, models.StatusInterested, now)

	cron.runReminders(24 * time.Hour)
	assert.Empty(t, ses.recipients)
}
