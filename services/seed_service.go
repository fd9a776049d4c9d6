package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"devtinder_server/models"
	"devtinder_server/utils"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

var seedSkillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "React", "Node.js",
	"Docker", "Kubernetes", "AWS", "PostgreSQL", "MongoDB", "Redis",
	"GraphQL", "gRPC", "Terraform", "Rust",
}

// SeedMockUsers inserts count synthetic users flagged isSeed, so a
// fresh deployment has a feed worth swiping through. Existing emails
// are skipped, making reruns harmless.
func SeedMockUsers(ctx context.Context, users *UserService, count int) error {
	password, err := utils.HashPassword("Seed@Tinder$1")
	if err != nil {
		return err
	}

	created := 0
	for i := 0; i < count; i++ {
		gender := models.GenderMale
		if gofakeit.Bool() {
			gender = models.GenderFemale
		}

		firstName := gofakeit.FirstName()
		lastName := gofakeit.LastName()
		emailID := strings.ToLower(fmt.Sprintf("%s.%s%d@devtinder.dev", firstName, lastName, gofakeit.Number(10, 99)))

		if _, err := users.GetUserByEmail(ctx, emailID); err == nil {
			continue
		}

		skillCount := gofakeit.Number(2, 5)
		indexes := seedIndexes()
		gofakeit.ShuffleInts(indexes)
		skills := make([]string, 0, skillCount)
		for _, idx := range indexes[:skillCount] {
			skills = append(skills, seedSkillPool[idx])
		}

		now := time.Now().UTC().Format(time.RFC3339Nano)
		user := &models.User{
			UserID:       uuid.NewString(),
			FirstName:    firstName,
			LastName:     lastName,
			EmailID:      emailID,
			Password:     password,
			Age:          gofakeit.Number(18, 45),
			Gender:       gender,
			PhotoURL:     models.DefaultPhotoURL(gender),
			About:        gofakeit.Sentence(12),
			Skills:       skills,
			IsSeed:       true,
			AuthProvider: models.AuthProviderLocal,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := users.Dynamo.PutItem(ctx, models.UsersTable, user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", emailID, err)
		}
		created++
	}

	log.Printf("✅ Seeded %d mock user(s)", created)
	return nil
}

func seedIndexes() []int {
	indexes := make([]int, len(seedSkillPool))
	for i := range indexes {
		indexes[i] = i
	}
	return indexes
}
