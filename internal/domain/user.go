package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a storefront account created on first magic-link sign-in.
type User struct {
	ID            string     `gorm:"primaryKey;size:64" json:"id"`
	Name          string     `gorm:"size:256" json:"name"`
	Email         string     `gorm:"size:256;uniqueIndex" json:"email"`
	Role          string     `gorm:"size:16;default:user" json:"role"`
	EmailVerified *time.Time `json:"emailVerified"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "user"
}

// LoginToken is a single-use magic-link token mailed to a user.
type LoginToken struct {
	Identifier string    `gorm:"primaryKey;size:256" json:"identifier"`
	Token      string    `gorm:"primaryKey;size:128;index" json:"token"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

func (LoginToken) TableName() string {
	return "login_token"
}
