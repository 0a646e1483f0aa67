package repository

import (
	"context"

	"sovest/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertVote inserts a vote or, when the user already voted on the
// prediction, replaces the vote type. One row per (prediction, user).
func (r *Repository) UpsertVote(ctx context.Context, vote *models.Vote) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "prediction_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"vote_type":  vote.VoteType,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(vote).Error
}

// GetVoteTally counts upvotes and downvotes for a prediction
func (r *Repository) GetVoteTally(ctx context.Context, predictionID uuid.UUID) (*models.VoteTally, error) {
	tally := &models.VoteTally{PredictionID: predictionID}

	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("prediction_id = ? AND vote_type = ?", predictionID, models.VoteTypeUp).
		Count(&tally.Upvotes).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("prediction_id = ? AND vote_type = ?", predictionID, models.VoteTypeDown).
		Count(&tally.Downvotes).Error
	if err != nil {
		return nil, err
	}

	return tally, nil
}

// GetUserVote retrieves a user's vote on a prediction, if any
func (r *Repository) GetUserVote(ctx context.Context, predictionID uuid.UUID, userID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("prediction_id = ? AND user_id = ?", predictionID, userID).
		First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}
