package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"sovest/internal/models"
	"sovest/internal/repository"

	"github.com/google/uuid"
)

func TestVoteValidation(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "x@example.com", "xavi")
	service := NewVoteService(repo)

	if _, err := service.Vote(ctx, uuid.New(), user.ID, "sideways"); !errors.Is(err, ErrInvalidVoteType) {
		t.Errorf("expected ErrInvalidVoteType, got %v", err)
	}

	if _, err := service.Vote(ctx, uuid.New(), user.ID, "upvote"); !errors.Is(err, ErrPredictionNotFound) {
		t.Errorf("expected ErrPredictionNotFound, got %v", err)
	}
}

func TestVoteUpsert(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "y@example.com", "yara")
	voter := createTestUser(t, db, "z@example.com", "zane")
	stock := createTestStock(t, db, "GOOG")
	prediction := createMaturedPrediction(t, db, author.ID, stock.ID, models.DirectionBullish,
		time.Now().AddDate(0, 0, -1), time.Now().AddDate(0, 0, 30))

	service := NewVoteService(repo)

	tally, err := service.Vote(ctx, prediction.ID, voter.ID, "upvote")
	if err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if tally.Upvotes != 1 || tally.Downvotes != 0 {
		t.Errorf("expected tally 1/0, got %d/%d", tally.Upvotes, tally.Downvotes)
	}

	// re-voting replaces the row, never duplicates it
	tally, err = service.Vote(ctx, prediction.ID, voter.ID, "downvote")
	if err != nil {
		t.Fatalf("re-vote failed: %v", err)
	}
	if tally.Upvotes != 0 || tally.Downvotes != 1 {
		t.Errorf("expected tally 0/1 after re-vote, got %d/%d", tally.Upvotes, tally.Downvotes)
	}

	var count int64
	if err := db.Model(&models.Vote{}).
		Where("prediction_id = ? AND user_id = ?", prediction.ID, voter.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("failed to count votes: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one vote row, got %d", count)
	}

	// a second voter is counted independently
	tally, err = service.Vote(ctx, prediction.ID, author.ID, "upvote")
	if err != nil {
		t.Fatalf("second voter failed: %v", err)
	}
	if tally.Upvotes != 1 || tally.Downvotes != 1 {
		t.Errorf("expected tally 1/1, got %d/%d", tally.Upvotes, tally.Downvotes)
	}
}
