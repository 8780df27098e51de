package user

import (
	"github.com/google/uuid"

	"github.com/saulo-duarte/quizard-lambda/internal/auth"
	"github.com/saulo-duarte/quizard-lambda/internal/query"
)

type User struct {
	query.Base
	FullName    string    `gorm:"not null" json:"full_name"`
	DisplayName string    `json:"display_name"`
	Email       string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password    string    `json:"-"`
	Role        auth.Role `gorm:"size:16;not null;default:user" json:"role"`
	Disabled    bool      `gorm:"not null;default:false" json:"disabled"`
}

func (User) TableName() string {
	return "users"
}

// RefreshToken is the server-side half of a refresh token. The client holds
// the id; rotating a token revokes the old row.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"size:36;primaryKey"`
	UserID    int64     `gorm:"not null;index"`
	ExpiresAt int64     `gorm:"not null"`
	Revoked   bool      `gorm:"not null;default:false"`
	CreatedAt int64     `gorm:"autoCreateTime"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
