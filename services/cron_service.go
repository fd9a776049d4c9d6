package services

import (
	"context"
	"errors"
	"log"
	"time"

	"devtinder_server/models"
)

// CronService handles scheduled background tasks
type CronService struct {
	Dynamo DynamoAPI
	Users  *UserService
	Email  *EmailService

	stopChan  chan bool
	isRunning bool
}

// NewCronService creates a new cron service instance
func NewCronService(dynamo DynamoAPI, users *UserService, email *EmailService) *CronService {
	return &CronService{
		Dynamo:   dynamo,
		Users:    users,
		Email:    email,
		stopChan: make(chan bool),
	}
}

// StartReminderCron starts the periodic pending-request reminder job
func (c *CronService) StartReminderCron(interval time.Duration) {
	if c.isRunning {
		log.Println("⚠️ Reminder cron is already running")
		return
	}

	c.isRunning = true
	log.Printf("🚀 Starting reminder cron job (interval: %v)", interval)

	go func() {
		for {
			select {
			case <-c.stopChan:
				log.Println("🛑 Stopping reminder cron job")
				return
			case <-time.After(interval):
				c.runReminders(interval)
			}
		}
	}()
}

// StopReminderCron stops the reminder cron job
func (c *CronService) StopReminderCron() {
	if !c.isRunning {
		log.Println("⚠️ Reminder cron is not running")
		return
	}

	c.isRunning = false
	c.stopChan <- true
}

// runReminders mails every user who received interested requests
// within the last interval. Failures are logged and skipped; the next
// run picks things up again.
func (c *CronService) runReminders(window time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cutoff := time.Now().UTC().Add(-window)

	var requests []models.ConnectionRequest
	if err := c.Dynamo.ScanWithFilter(ctx, models.ConnectionRequestsTable, nil, nil, &requests); err != nil {
		log.Printf("❌ Reminder scan failed: %v", err)
		return
	}

	pendingByUser := make(map[string]int)
	for _, req := range requests {
		if req.Status != models.StatusInterested {
			continue
		}
		createdAt, err := time.Parse(time.RFC3339Nano, req.CreatedAt)
		if err != nil || !createdAt.After(cutoff) {
			continue
		}
		pendingByUser[req.ToUserID]++
	}

	for userID, count := range pendingByUser {
		user, err := c.Users.GetUserByID(ctx, userID)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				log.Printf("❌ Reminder lookup failed for %s: %v", userID, err)
			}
			continue
		}
		if user.IsSeed {
			continue
		}
		if err := c.Email.SendPendingRequestsReminder(ctx, user.EmailID, user.FirstName, count); err != nil {
			log.Printf("❌ %v", err)
		}
	}

	log.Printf("✅ Reminder run complete: %d user(s) notified", len(pendingByUser))
}
