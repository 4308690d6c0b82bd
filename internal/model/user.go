package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered member of the network.
type User struct {
	ID         uuid.UUID `json:"_id" gorm:"type:char(36);primaryKey"`
	FullName   string    `json:"fullName" gorm:"size:100;not null"`
	Username   string    `json:"username" gorm:"uniqueIndex;size:30;not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;size:254;not null"`
	Password   string    `json:"-" gorm:"size:255;not null"` // bcrypt hash, never serialized
	ProfileImg string    `json:"profileImg" gorm:"size:512;default:''"`
	CoverImg   string    `json:"coverImg" gorm:"size:512;default:''"`
	Bio        string    `json:"bio" gorm:"size:280;default:''"`
	Link       string    `json:"link" gorm:"size:512;default:''"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Materialized from the follows table by the repository.
	Followers []uuid.UUID `json:"followers" gorm:"-"`
	Following []uuid.UUID `json:"following" gorm:"-"`
}

// NewUser builds an unsaved user from signup input and an already hashed password.
// It returns nil when the identifying fields are blank.
func NewUser(fullName, username, email, passwordHash string) *User {
	fullName = strings.TrimSpace(fullName)
	username = strings.TrimSpace(username)
	if fullName == "" || username == "" || email == "" || passwordHash == "" {
		return nil
	}
	return &User{
		ID:        uuid.New(),
		FullName:  fullName,
		Username:  username,
		Email:     email,
		Password:  passwordHash,
		Followers: []uuid.UUID{},
		Following: []uuid.UUID{},
	}
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Follow is a directed edge: FollowerID follows FollowingID.
type Follow struct {
	FollowerID  uuid.UUID `gorm:"type:char(36);primaryKey"`
	FollowingID uuid.UUID `gorm:"type:char(36);primaryKey;index"`
	CreatedAt   time.Time
}
