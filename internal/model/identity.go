package model

import "time"

// The identity tables belong to the auth subsystem. The content core only
// stores user ids as opaque actor references and never reads these tables.

type User struct {
	ID             string    `gorm:"primaryKey;size:36"`
	Email          string    `gorm:"size:254;not null;uniqueIndex:idx_mitre_users_email"`
	Username       *string   `gorm:"size:50;uniqueIndex:idx_mitre_users_username"`
	HashedPassword *string   `gorm:"type:text"`
	IsActive       bool      `gorm:"not null"`
	IsSuperuser    bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"not null"`
	LastLogin      *time.Time
}

func (User) TableName() string {
	return "mitre_users"
}

type OAuthIdentity struct {
	ID             string  `gorm:"primaryKey;size:36"`
	UserID         string  `gorm:"size:36;not null;index"`
	Provider       string  `gorm:"size:50;not null;index:idx_mitre_oauth_identities_provider_user_id,priority:1"`
	ProviderUserID string  `gorm:"size:255;not null;index:idx_mitre_oauth_identities_provider_user_id,priority:2"`
	AccessToken    *string `gorm:"type:text"`
	RefreshToken   *string `gorm:"type:text"`
	TokenExpiry    *time.Time
	CreatedAt      time.Time `gorm:"not null"`
}

func (OAuthIdentity) TableName() string {
	return "mitre_oauth_identities"
}

type RefreshToken struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"size:36;not null;index"`
	Token     string    `gorm:"not null;uniqueIndex:idx_mitre_refresh_tokens_token"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	IsRevoked bool      `gorm:"not null;default:false"`
}

func (RefreshToken) TableName() string {
	return "mitre_refresh_tokens"
}
