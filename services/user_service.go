package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"devtinder_server/models"
	"devtinder_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// UserService struct
type UserService struct {
	Dynamo DynamoAPI
}

// SignupParams is the validated payload for account creation
type SignupParams struct {
	FirstName string `json:"firstName" validate:"required,min=4,max=50"`
	LastName  string `json:"lastName" validate:"omitempty,max=50"`
	EmailID   string `json:"emailId" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Age       int    `json:"age" validate:"omitempty,gte=18"`
	Gender    string `json:"gender" validate:"omitempty,oneof=male female other"`
}

// ProfileUpdateParams carries the whitelisted editable profile fields.
// Nil pointers mean "leave unchanged".
type ProfileUpdateParams struct {
	FirstName *string   `json:"firstName" validate:"omitempty,min=4,max=50"`
	LastName  *string   `json:"lastName" validate:"omitempty,max=50"`
	Age       *int      `json:"age" validate:"omitempty,gte=18"`
	Gender    *string   `json:"gender" validate:"omitempty,oneof=male female other"`
	About     *string   `json:"about" validate:"omitempty,max=500"`
	PhotoURL  *string   `json:"photoUrl"`
	Skills    *[]string `json:"skills" validate:"omitempty,max=20,dive,min=1,max=50"`
}

// CreateUser registers a new local account and returns the stored user
func (us *UserService) CreateUser(ctx context.Context, params SignupParams) (*models.User, error) {
	if err := validate.Struct(params); err != nil {
		return nil, validationError(err)
	}

	emailID := strings.ToLower(strings.TrimSpace(params.EmailID))

	if _, err := us.GetUserByEmail(ctx, emailID); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	user := &models.User{
		UserID:       uuid.NewString(),
		FirstName:    strings.TrimSpace(params.FirstName),
		LastName:     strings.TrimSpace(params.LastName),
		EmailID:      emailID,
		Password:     passwordHash,
		Age:          params.Age,
		Gender:       params.Gender,
		PhotoURL:     models.DefaultPhotoURL(params.Gender),
		About:        models.DefaultAbout,
		AuthProvider: models.AuthProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// userId is a fresh uuid, so the condition only guards against the
	// same signup racing itself. Email uniqueness is checked above; the
	// window between check and write is accepted at this scale.
	err = us.Dynamo.PutItemWithCondition(ctx, models.UsersTable, user, "attribute_not_exists(userId)", nil, nil)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User created: %s (%s)", user.UserID, user.EmailID)
	return user, nil
}

// VerifyCredentials checks an email/password pair and returns the user
func (us *UserService) VerifyCredentials(ctx context.Context, emailID, password string) (*models.User, error) {
	user, err := us.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(emailID)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.AuthProvider != models.AuthProviderLocal || user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if !utils.VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUserByEmail looks a user up through the email GSI
func (us *UserService) GetUserByEmail(ctx context.Context, emailID string) (*models.User, error) {
	keyCondition := "emailId = :emailId"
	expressionValues := map[string]types.AttributeValue{
		":emailId": &types.AttributeValueMemberS{Value: emailID},
	}

	items, err := us.Dynamo.QueryItemsWithIndex(ctx, models.UsersTable, models.EmailIndex, keyCondition, expressionValues, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(items[0], &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// GetUserByID fetches a user record by its primary key
func (us *UserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := us.Dynamo.GetItem(ctx, models.UsersTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// UpdateProfile applies the whitelisted edits and stores the document
func (us *UserService) UpdateProfile(ctx context.Context, userID string, params ProfileUpdateParams) (*models.User, error) {
	if err := validate.Struct(params); err != nil {
		return nil, validationError(err)
	}
	if params.PhotoURL != nil {
		if err := validatePhotoURL(*params.PhotoURL); err != nil {
			return nil, err
		}
	}

	user, err := us.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if params.FirstName != nil {
		user.FirstName = strings.TrimSpace(*params.FirstName)
	}
	if params.LastName != nil {
		user.LastName = strings.TrimSpace(*params.LastName)
	}
	if params.Age != nil {
		user.Age = *params.Age
	}
	if params.Gender != nil {
		user.Gender = *params.Gender
	}
	if params.About != nil {
		user.About = *params.About
	}
	if params.PhotoURL != nil {
		user.PhotoURL = *params.PhotoURL
	}
	if params.Skills != nil {
		user.Skills = *params.Skills
	}
	user.UpdatedAt = time.Now().UTC().Format(time.RFC3339Nano)

	if err := us.Dynamo.PutItem(ctx, models.UsersTable, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Profile updated for %s", userID)
	return user, nil
}

// PublicProfiles resolves a set of user IDs to their public
// projections. IDs that no longer resolve are silently dropped, so
// callers can filter out counterparts with deleted accounts.
func (us *UserService) PublicProfiles(ctx context.Context, userIDs []string) (map[string]models.PublicProfile, error) {
	profiles := make(map[string]models.PublicProfile, len(userIDs))
	for _, id := range userIDs {
		if _, done := profiles[id]; done {
			continue
		}
		user, err := us.GetUserByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		profiles[id] = user.Public()
	}
	return profiles, nil
}

// validatePhotoURL accepts locally served uploads or any valid URL
func validatePhotoURL(photoURL string) error {
	if photoURL == "" || strings.HasPrefix(photoURL, "/api/uploads/") {
		return nil
	}
	if err := validate.Var(photoURL, "url"); err != nil {
		return NewValidationError(map[string]string{"photoUrl": "invalid photo URL"})
	}
	return nil
}

// validationError flattens validator output into a ValidationError
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewValidationError(map[string]string{"payload": "invalid"})
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fmt.Sprintf("failed on '%s'", fe.Tag())
	}
	return NewValidationError(fields)
}
