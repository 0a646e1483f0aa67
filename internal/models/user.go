package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered member of the platform
type User struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Email           string          `gorm:"uniqueIndex;not null" json:"email"`
	Username        string          `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash    string          `gorm:"not null" json:"-"`
	Bio             *string         `gorm:"size:500" json:"bio,omitempty"`
	ReputationScore decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"reputation_score"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// RegisterRequest represents a signup request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=30"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful registration or login
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// LeaderboardEntry is one row of the reputation leaderboard
type LeaderboardEntry struct {
	UserID          uint            `json:"user_id"`
	Username        string          `json:"username"`
	ReputationScore decimal.Decimal `json:"reputation_score"`
	EvaluatedCount  int64           `json:"evaluated_count"`
	AvgAccuracy     *float64        `json:"avg_accuracy"`
}

// UserProfile is the public view of a user with prediction stats
type UserProfile struct {
	User             *User    `json:"user"`
	TotalPredictions int64    `json:"total_predictions"`
	ActiveCount      int64    `json:"active_count"`
	EvaluatedCount   int64    `json:"evaluated_count"`
	AvgAccuracy      *float64 `json:"avg_accuracy"`
}
