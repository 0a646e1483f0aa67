package models

import (
	"time"

	"github.com/google/uuid"
)

type VoteType string

const (
	VoteTypeUp   VoteType = "upvote"
	VoteTypeDown VoteType = "downvote"
)

// Vote records one user's sentiment on a prediction. The composite
// unique index makes a re-vote an upsert, never a second row.
type Vote struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:(gen_random_uuid())" json:"id"`
	PredictionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_votes_prediction_user" json:"prediction_id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_votes_prediction_user" json:"user_id"`
	VoteType     VoteType  `gorm:"size:10;not null" json:"vote_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for Vote model
func (Vote) TableName() string {
	return "votes"
}

// VoteRequest represents a vote action on a prediction
type VoteRequest struct {
	VoteType string `json:"vote_type" binding:"required"`
}

// VoteTally is the up/down count for one prediction
type VoteTally struct {
	PredictionID uuid.UUID `json:"prediction_id"`
	Upvotes      int64     `json:"upvotes"`
	Downvotes    int64     `json:"downvotes"`
}
