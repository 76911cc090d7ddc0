package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/myousuf-code/StudyWiseAI/core"
)

const (
	DefaultTimezone      = "UTC"
	DefaultLearningStyle = "mixed"
)

// LearningStyles are the accepted User.LearningStyle values.
var LearningStyles = []string{"visual", "auditory", "kinesthetic", "reading", DefaultLearningStyle}

var bcryptCost = bcrypt.DefaultCost

type User struct {
	ID            int       `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	FullName      string    `json:"full_name"`
	IsActive      bool      `json:"is_active"`
	LearningStyle string    `json:"learning_style"`
	StudyGoals    string    `json:"study_goals"`
	Timezone      string    `json:"timezone"`
	PasswordHash  []byte    `json:"-"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at"` // UTC
	LastLogin     time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// PreferredLearningStyle falls back to DefaultLearningStyle when the user never set one.
func (u User) PreferredLearningStyle() string {
	if u.LearningStyle == "" {
		return DefaultLearningStyle
	}
	return u.LearningStyle
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Username string `json:"username" validate:"required,min=3,max=50,alphanum_"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"required,notblank,max=100"`
}

func (nu *NewUser) Clean() {
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.FullName = core.CleanString(nu.FullName)
}

// UpdateProfile defines the profile fields a User may change.
type UpdateProfile struct {
	FullName      string `json:"full_name" validate:"required,notblank,max=100"`
	LearningStyle string `json:"learning_style" validate:"omitempty,learningstyle"`
	StudyGoals    string `json:"study_goals" validate:"max=2000"`
	Timezone      string `json:"timezone" validate:"omitempty,tzname"`
}

func (up *UpdateProfile) Clean() {
	up.FullName = core.CleanString(up.FullName)
	up.LearningStyle = core.CleanString(up.LearningStyle, true /* lower */)
	up.StudyGoals = core.CleanString(up.StudyGoals)
	up.Timezone = core.CleanString(up.Timezone)
	if up.Timezone == "" {
		up.Timezone = DefaultTimezone
	}
}

type ChangePassword struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}
