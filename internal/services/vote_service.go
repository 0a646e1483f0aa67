package services

import (
	"context"
	"fmt"
	"strings"

	"sovest/internal/models"
	"sovest/internal/repository"

	"github.com/google/uuid"
)

// VoteService records directional sentiment on predictions. Votes are
// display-only: they never touch accuracy or reputation.
type VoteService struct {
	repo *repository.Repository
}

// NewVoteService creates a new VoteService
func NewVoteService(repo *repository.Repository) *VoteService {
	return &VoteService{repo: repo}
}

// Vote records or replaces a user's vote on a prediction and returns
// the updated tally. Re-voting changes the type, never adds a row.
func (s *VoteService) Vote(ctx context.Context, predictionID uuid.UUID, userID uint, voteType string) (*models.VoteTally, error) {
	vt := models.VoteType(strings.ToLower(strings.TrimSpace(voteType)))
	if vt != models.VoteTypeUp && vt != models.VoteTypeDown {
		return nil, ErrInvalidVoteType
	}

	if _, err := s.repo.GetPredictionByID(ctx, predictionID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPredictionNotFound
		}
		return nil, fmt.Errorf("looking up prediction: %w", err)
	}

	vote := &models.Vote{
		ID:           uuid.New(),
		PredictionID: predictionID,
		UserID:       userID,
		VoteType:     vt,
	}

	if err := s.repo.UpsertVote(ctx, vote); err != nil {
		return nil, fmt.Errorf("recording vote: %w", err)
	}

	return s.repo.GetVoteTally(ctx, predictionID)
}

// GetTally returns the up/down counts for a prediction
func (s *VoteService) GetTally(ctx context.Context, predictionID uuid.UUID) (*models.VoteTally, error) {
	if _, err := s.repo.GetPredictionByID(ctx, predictionID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPredictionNotFound
		}
		return nil, err
	}
	return s.repo.GetVoteTally(ctx, predictionID)
}
