package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sovest/internal/models"
	"sovest/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// endDateLayouts are the accepted formats for a prediction end date
var endDateLayouts = []string{"2006-01-02", time.RFC3339}

// PredictionService gates creation and edits of predictions: every
// payload passes the validator before reaching durable storage.
type PredictionService struct {
	repo *repository.Repository
}

// NewPredictionService creates a new PredictionService
func NewPredictionService(repo *repository.Repository) *PredictionService {
	return &PredictionService{repo: repo}
}

// normalizedPrediction is a validated, trimmed and coerced payload
// ready for persistence.
type normalizedPrediction struct {
	stock       *models.Stock
	direction   models.PredictionDirection
	targetPrice *decimal.Decimal
	endDate     time.Time
	reasoning   string
}

// validate checks the payload invariants and returns the normalized
// form. It has no side effects; persistence is the caller's step.
func (s *PredictionService) validate(ctx context.Context, req *models.PredictionRequest) (*normalizedPrediction, error) {
	direction := models.PredictionDirection(strings.TrimSpace(req.Direction))
	if direction != models.DirectionBullish && direction != models.DirectionBearish {
		return nil, ErrInvalidDirection
	}

	endDate, err := parseEndDate(strings.TrimSpace(req.EndDate))
	if err != nil || !endDate.After(time.Now()) {
		return nil, ErrInvalidEndDate
	}

	reasoning := strings.TrimSpace(req.Reasoning)
	if reasoning == "" {
		return nil, ErrMissingReasoning
	}

	var targetPrice *decimal.Decimal
	if req.TargetPrice != nil {
		if *req.TargetPrice < 0 {
			return nil, ErrInvalidTargetPrice
		}
		target := decimal.NewFromFloat(*req.TargetPrice)
		targetPrice = &target
	}

	stock, err := s.repo.GetStockBySymbol(ctx, strings.TrimSpace(req.Symbol))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrStockNotFound
		}
		return nil, fmt.Errorf("looking up stock: %w", err)
	}

	return &normalizedPrediction{
		stock:       stock,
		direction:   direction,
		targetPrice: targetPrice,
		endDate:     endDate,
		reasoning:   reasoning,
	}, nil
}

// CreatePrediction validates the payload and persists a new active
// prediction with no accuracy.
func (s *PredictionService) CreatePrediction(ctx context.Context, userID uint, req *models.PredictionRequest) (*models.Prediction, error) {
	normalized, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	prediction := &models.Prediction{
		ID:          uuid.New(),
		UserID:      userID,
		StockID:     normalized.stock.ID,
		Direction:   normalized.direction,
		TargetPrice: normalized.targetPrice,
		Reasoning:   normalized.reasoning,
		EndDate:     normalized.endDate,
		IsActive:    true,
	}

	if err := s.repo.CreatePrediction(ctx, prediction); err != nil {
		return nil, fmt.Errorf("persisting prediction: %w", err)
	}

	prediction.Stock = normalized.stock
	return prediction, nil
}

// UpdatePrediction validates an edit of an existing prediction. Only
// the owner may edit, and only while the prediction is still active;
// evaluated predictions are frozen.
func (s *PredictionService) UpdatePrediction(ctx context.Context, userID uint, predictionID uuid.UUID, req *models.PredictionRequest) (*models.Prediction, error) {
	existing, err := s.repo.GetPredictionByID(ctx, predictionID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPredictionNotFound
		}
		return nil, err
	}

	if existing.UserID != userID {
		return nil, ErrNotPredictionOwner
	}
	if !existing.IsActive {
		return nil, ErrPredictionNotEditable
	}

	normalized, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"stock_id":  normalized.stock.ID,
		"direction": normalized.direction,
		"reasoning": normalized.reasoning,
		"end_date":  normalized.endDate,
	}
	if normalized.targetPrice != nil {
		updates["target_price"] = *normalized.targetPrice
	} else {
		updates["target_price"] = nil
	}

	if err := s.repo.UpdatePredictionFields(ctx, predictionID, updates); err != nil {
		return nil, fmt.Errorf("updating prediction: %w", err)
	}

	return s.repo.GetPredictionByID(ctx, predictionID)
}

// GetPrediction retrieves one prediction with its vote tally
func (s *PredictionService) GetPrediction(ctx context.Context, predictionID uuid.UUID) (*models.PredictionResponse, error) {
	prediction, err := s.repo.GetPredictionByID(ctx, predictionID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPredictionNotFound
		}
		return nil, err
	}

	tally, err := s.repo.GetVoteTally(ctx, predictionID)
	if err != nil {
		return nil, err
	}

	return &models.PredictionResponse{
		Prediction: prediction,
		Upvotes:    tally.Upvotes,
		Downvotes:  tally.Downvotes,
	}, nil
}

// ListUserPredictions retrieves a user's predictions, newest first
func (s *PredictionService) ListUserPredictions(ctx context.Context, userID uint, limit, offset int) ([]*models.Prediction, int64, error) {
	return s.repo.GetUserPredictions(ctx, userID, limit, offset)
}

// ListRecentPredictions retrieves the newest predictions for the feed
func (s *PredictionService) ListRecentPredictions(ctx context.Context, limit, offset int) ([]*models.Prediction, error) {
	return s.repo.GetRecentPredictions(ctx, limit, offset)
}

func parseEndDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range endDateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
