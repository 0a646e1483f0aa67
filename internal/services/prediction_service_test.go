package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"sovest/internal/models"
	"sovest/internal/repository"

	"github.com/shopspring/decimal"
)

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestCreatePredictionValidation(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "v@example.com", "vera")
	createTestStock(t, db, "AAPL")

	service := NewPredictionService(repo)

	tests := []struct {
		name    string
		req     models.PredictionRequest
		wantErr error
	}{
		{
			name: "unknown direction",
			req: models.PredictionRequest{
				Symbol: "AAPL", Direction: "Sideways", EndDate: futureDate(30), Reasoning: "because",
			},
			wantErr: ErrInvalidDirection,
		},
		{
			name: "lowercase direction is rejected",
			req: models.PredictionRequest{
				Symbol: "AAPL", Direction: "bullish", EndDate: futureDate(30), Reasoning: "because",
			},
			wantErr: ErrInvalidDirection,
		},
		{
			name: "past end date",
			req: models.PredictionRequest{
				Symbol: "AAPL", Direction: "Bullish", EndDate: "2020-01-01", Reasoning: "because",
			},
			wantErr: ErrInvalidEndDate,
		},
		{
			name: "unparseable end date",
			req: models.PredictionRequest{
				Symbol: "AAPL", Direction: "Bullish", EndDate: "next tuesday", Reasoning: "because",
			},
			wantErr: ErrInvalidEndDate,
		},
		{
			name: "whitespace reasoning",
			req: models.PredictionRequest{
				Symbol: "AAPL", Direction: "Bullish", EndDate: futureDate(30), Reasoning: "   ",
			},
			wantErr: ErrMissingReasoning,
		},
		{
			name: "negative target price",
			req: models.PredictionRequest{
				Symbol: "AAPL", Direction: "Bullish", EndDate: futureDate(30), Reasoning: "because",
				TargetPrice: floatPtr(-5),
			},
			wantErr: ErrInvalidTargetPrice,
		},
		{
			name: "unknown stock",
			req: models.PredictionRequest{
				Symbol: "ZZZZ", Direction: "Bullish", EndDate: futureDate(30), Reasoning: "because",
			},
			wantErr: ErrStockNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreatePrediction(ctx, user.ID, &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreatePredictionSuccess(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "w@example.com", "walt")
	createTestStock(t, db, "NVDA")

	service := NewPredictionService(repo)

	prediction, err := service.CreatePrediction(ctx, user.ID, &models.PredictionRequest{
		Symbol:      "nvda",
		Direction:   " Bullish ",
		EndDate:     futureDate(14),
		Reasoning:   "  datacenter demand  ",
		TargetPrice: floatPtr(150),
	})
	if err != nil {
		t.Fatalf("CreatePrediction failed: %v", err)
	}

	if !prediction.IsActive {
		t.Error("new prediction must be active")
	}
	if prediction.Accuracy != nil {
		t.Error("new prediction must have null accuracy")
	}
	if prediction.Reasoning != "datacenter demand" {
		t.Errorf("reasoning not trimmed: %q", prediction.Reasoning)
	}
	if prediction.Direction != models.DirectionBullish {
		t.Errorf("direction not normalized: %q", prediction.Direction)
	}
	if prediction.TargetPrice == nil || !prediction.TargetPrice.Equal(decimal.NewFromInt(150)) {
		t.Errorf("target price not coerced: %v", prediction.TargetPrice)
	}
}

func TestUpdatePredictionRules(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "o@example.com", "owen")
	other := createTestUser(t, db, "p@example.com", "pam")
	stock := createTestStock(t, db, "AMD")

	service := NewPredictionService(repo)

	prediction, err := service.CreatePrediction(ctx, owner.ID, &models.PredictionRequest{
		Symbol: "AMD", Direction: "Bearish", EndDate: futureDate(7), Reasoning: "overvalued",
	})
	if err != nil {
		t.Fatalf("CreatePrediction failed: %v", err)
	}

	edit := models.PredictionRequest{
		Symbol: "AMD", Direction: "Bullish", EndDate: futureDate(14), Reasoning: "changed my mind",
	}

	// only the owner can edit
	if _, err := service.UpdatePrediction(ctx, other.ID, prediction.ID, &edit); !errors.Is(err, ErrNotPredictionOwner) {
		t.Errorf("expected ErrNotPredictionOwner, got %v", err)
	}

	// a valid edit goes through
	updated, err := service.UpdatePrediction(ctx, owner.ID, prediction.ID, &edit)
	if err != nil {
		t.Fatalf("UpdatePrediction failed: %v", err)
	}
	if updated.Direction != models.DirectionBullish {
		t.Errorf("edit not applied, direction is %q", updated.Direction)
	}

	// an evaluated prediction is frozen
	if won, err := repo.MarkEvaluated(ctx, prediction.ID, 80); err != nil || !won {
		t.Fatalf("setup evaluation failed: won=%v err=%v", won, err)
	}
	if _, err := service.UpdatePrediction(ctx, owner.ID, prediction.ID, &edit); !errors.Is(err, ErrPredictionNotEditable) {
		t.Errorf("expected ErrPredictionNotEditable, got %v", err)
	}

	_ = stock
}

func floatPtr(v float64) *float64 {
	return &v
}
