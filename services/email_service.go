package services

import (
	"context"
	"fmt"
	"log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"devtinder_server/config"
)

// SESSender is the subset of the SES client the email service uses
type SESSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService sends transactional mail through Amazon SES
type EmailService struct {
	Client SESSender
}

// InitializeSESClient initializes the SES v2 client
func InitializeSESClient() *sesv2.Client {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(config.AWSRegion))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return sesv2.NewFromConfig(cfg)
}

// SendPendingRequestsReminder mails a user that connection requests
// are waiting for their review.
func (es *EmailService) SendPendingRequestsReminder(ctx context.Context, toEmail, firstName string, pendingCount int) error {
	subject := "You have pending connection requests on DevTinder"
	body := fmt.Sprintf(
		"Hi %s,\n\n%d developer(s) are interested in connecting with you. Log in to review their requests: %s\n\n- DevTinder",
		firstName, pendingCount, config.AppURL,
	)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: &config.SESSender,
		Destination: &sestypes.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: &subject},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: &body},
				},
			},
		},
	}

	if _, err := es.Client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send reminder to %s: %w", toEmail, err)
	}

	log.Printf("📧 Reminder sent to %s (%d pending)", toEmail, pendingCount)
	return nil
}
