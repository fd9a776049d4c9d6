package models

// User defines the structure for user accounts
type User struct {
	UserID         string   `dynamodbav:"userId" json:"userId"`
	FirstName      string   `dynamodbav:"firstName" json:"firstName"`
	LastName       string   `dynamodbav:"lastName,omitempty" json:"lastName,omitempty"`
	EmailID        string   `dynamodbav:"emailId" json:"emailId"` // stored lowercase, unique
	Password       string   `dynamodbav:"password,omitempty" json:"-"`
	Age            int      `dynamodbav:"age,omitempty" json:"age,omitempty"`
	Gender         string   `dynamodbav:"gender,omitempty" json:"gender,omitempty"` // male, female, other
	PhotoURL       string   `dynamodbav:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	About          string   `dynamodbav:"about,omitempty" json:"about,omitempty"`
	Skills         []string `dynamodbav:"skills,omitempty" json:"skills,omitempty"`
	IsPremium      bool     `dynamodbav:"isPremium" json:"isPremium"`
	MembershipType string   `dynamodbav:"membershipType,omitempty" json:"membershipType,omitempty"`
	IsSeed         bool     `dynamodbav:"isSeed,omitempty" json:"-"`
	AuthProvider   string   `dynamodbav:"authProvider" json:"-"` // local, google
	GoogleID       string   `dynamodbav:"googleId,omitempty" json:"-"`
	CreatedAt      string   `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt      string   `dynamodbav:"updatedAt" json:"updatedAt"`
}

// PublicProfile is the projection of a user shown to other users
type PublicProfile struct {
	UserID    string   `dynamodbav:"userId" json:"userId"`
	FirstName string   `dynamodbav:"firstName" json:"firstName"`
	LastName  string   `dynamodbav:"lastName,omitempty" json:"lastName,omitempty"`
	PhotoURL  string   `dynamodbav:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Age       int      `dynamodbav:"age,omitempty" json:"age,omitempty"`
	Gender    string   `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	About     string   `dynamodbav:"about,omitempty" json:"about,omitempty"`
	Skills    []string `dynamodbav:"skills,omitempty" json:"skills,omitempty"`
}

// Public returns the user's public projection
func (u *User) Public() PublicProfile {
	return PublicProfile{
		UserID:    u.UserID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		PhotoURL:  u.PhotoURL,
		Age:       u.Age,
		Gender:    u.Gender,
		About:     u.About,
		Skills:    u.Skills,
	}
}

// DefaultPhotoURL returns the placeholder photo for a gender
func DefaultPhotoURL(gender string) string {
	switch gender {
	case GenderFemale:
		return "https://images.unsplash.com/photo-1544725176-7c40e5a2c9f9?w=256&h=256&fit=crop&auto=format"
	case GenderMale:
		return "https://images.unsplash.com/photo-1547425260-76bcadfb4f2c?w=256&h=256&fit=crop&auto=format"
	default:
		return "https://images.unsplash.com/photo-1548932813-1ff6aa1e0a02?w=256&h=256&fit=crop&auto=format"
	}
}

// DefaultAbout is the blurb applied when a profile has no bio
const DefaultAbout = "Software developer passionate about building innovative solutions with modern technologies"

// UsersTable is the DynamoDB table name for user accounts
const UsersTable = "Users"

// EmailIndex is the GSI used to look up users by email
const EmailIndex = "emailId-index"
