package services

import (
	"context"
	"fmt"
	"time"

	"sovest/internal/marketdata"
	"sovest/internal/models"
	"sovest/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ScoringService converts matured active predictions into scored,
// terminal records and applies the author's reputation delta exactly
// once per prediction.
type ScoringService struct {
	repo   *repository.Repository
	prices marketdata.PriceProvider
	policy ScoringPolicy
	logger zerolog.Logger
}

// NewScoringService creates a new ScoringService
func NewScoringService(repo *repository.Repository, prices marketdata.PriceProvider, policy ScoringPolicy) *ScoringService {
	return &ScoringService{
		repo:   repo,
		prices: prices,
		policy: policy,
		logger: log.With().Str("component", "scoring_service").Logger(),
	}
}

// SweepReport is the aggregate result of one evaluation sweep
type SweepReport struct {
	Total     int `json:"total"`
	Evaluated int `json:"evaluated"`
	Errors    int `json:"errors"`
}

// EvaluateActivePredictions runs one best-effort sweep over every
// active prediction whose end date has passed. A per-prediction failure
// is logged and counted; it never aborts the batch. Failed predictions
// stay active and are picked up by a later sweep.
func (s *ScoringService) EvaluateActivePredictions(ctx context.Context) (*SweepReport, error) {
	candidates, err := s.repo.GetMaturedActivePredictions(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("fetching matured predictions: %w", err)
	}

	report := &SweepReport{Total: len(candidates)}
	if len(candidates) == 0 {
		return report, nil
	}

	s.logger.Info().Int("candidates", len(candidates)).Msg("Starting evaluation sweep")

	for _, prediction := range candidates {
		if err := s.EvaluatePrediction(ctx, prediction); err != nil {
			s.logger.Error().Err(err).
				Str("prediction_id", prediction.ID.String()).
				Msg("Evaluation failed, prediction left active")
			report.Errors++
			continue
		}
		report.Evaluated++
	}

	s.logger.Info().
		Int("total", report.Total).
		Int("evaluated", report.Evaluated).
		Int("errors", report.Errors).
		Msg("Evaluation sweep finished")

	return report, nil
}

// EvaluatePrediction scores one prediction against observed prices and
// commits the terminal transition. Already-evaluated predictions are a
// no-op. The flip of is_active and the reputation increment happen in
// one transaction: a failed reputation write leaves the prediction
// active for retry.
func (s *ScoringService) EvaluatePrediction(ctx context.Context, prediction *models.Prediction) error {
	if !prediction.IsActive {
		return nil
	}

	symbol, err := s.resolveSymbol(ctx, prediction)
	if err != nil {
		return err
	}

	baselinePrice, err := s.prices.PriceOnOrNear(ctx, symbol, prediction.CreatedAt)
	if err != nil {
		return fmt.Errorf("baseline price for %s: %w", symbol, err)
	}

	endPrice, err := s.prices.PriceOnOrNear(ctx, symbol, prediction.EndDate)
	if err != nil {
		return fmt.Errorf("end price for %s: %w", symbol, err)
	}

	accuracy := s.policy.Accuracy(prediction, baselinePrice, endPrice)

	applied := false
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		won, err := tx.MarkEvaluated(ctx, prediction.ID, accuracy)
		if err != nil {
			return fmt.Errorf("evaluation transition: %w", err)
		}
		if !won {
			// another sweep got here first; nothing to apply
			return nil
		}

		delta := s.policy.ReputationDelta(accuracy)
		if !delta.IsZero() {
			if err := tx.IncrementReputation(ctx, prediction.UserID, delta); err != nil {
				return fmt.Errorf("reputation update: %w", err)
			}
		}

		applied = true
		return nil
	})
	if err != nil {
		return err
	}

	if applied {
		prediction.IsActive = false
		prediction.Accuracy = &accuracy

		s.logger.Info().
			Str("prediction_id", prediction.ID.String()).
			Str("symbol", symbol).
			Float64("baseline", baselinePrice).
			Float64("end", endPrice).
			Float64("accuracy", accuracy).
			Msg("Prediction evaluated")
	}

	return nil
}

func (s *ScoringService) resolveSymbol(ctx context.Context, prediction *models.Prediction) (string, error) {
	if prediction.Stock != nil {
		return prediction.Stock.Symbol, nil
	}

	stock, err := s.repo.GetStockByID(ctx, prediction.StockID)
	if err != nil {
		return "", fmt.Errorf("resolving stock %d: %w", prediction.StockID, err)
	}
	prediction.Stock = stock
	return stock.Symbol, nil
}
