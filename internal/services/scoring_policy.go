package services

import (
	"math"

	"sovest/internal/config"
	"sovest/internal/models"

	"github.com/shopspring/decimal"
)

// ScoringPolicy holds the documented, adjustable constants of the
// accuracy and reputation computation. The flat-outcome score and the
// shape of the precision penalty are deliberate policy choices; they
// live here so they can be tuned and tested rather than inlined.
type ScoringPolicy struct {
	FlatScore        float64
	PenaltyTolerance float64
	MaxPenalty       float64
	GoodThreshold    float64
	PoorThreshold    float64
	ReputationGain   int64
	ReputationLoss   int64
}

// DefaultScoringPolicy returns the stock policy: flat outcomes score
// 50, the precision penalty grows linearly and caps at 50 points once
// the target misses the actual close by 20% of the baseline price, and
// reputation moves +10/-5 at the 70/30 accuracy thresholds.
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		FlatScore:        50,
		PenaltyTolerance: 0.20,
		MaxPenalty:       50,
		GoodThreshold:    70,
		PoorThreshold:    30,
		ReputationGain:   10,
		ReputationLoss:   5,
	}
}

// PolicyFromConfig builds a ScoringPolicy from the loaded configuration
func PolicyFromConfig(cfg config.ScoringConfig) ScoringPolicy {
	return ScoringPolicy{
		FlatScore:        cfg.FlatScore,
		PenaltyTolerance: cfg.PenaltyTolerance,
		MaxPenalty:       cfg.MaxPenalty,
		GoodThreshold:    cfg.GoodThreshold,
		PoorThreshold:    cfg.PoorThreshold,
		ReputationGain:   cfg.ReputationGain,
		ReputationLoss:   cfg.ReputationLoss,
	}
}

// DirectionScore scores the stated direction against the observed
// movement: 100 on a match, 0 on a miss, FlatScore when the price
// closed exactly where it started.
func (p ScoringPolicy) DirectionScore(direction models.PredictionDirection, baselinePrice, endPrice float64) float64 {
	switch {
	case endPrice > baselinePrice:
		if direction == models.DirectionBullish {
			return 100
		}
		return 0
	case endPrice < baselinePrice:
		if direction == models.DirectionBearish {
			return 100
		}
		return 0
	default:
		return p.FlatScore
	}
}

// PrecisionPenalty converts the relative error between the target price
// and the actual close into an accuracy deduction. The penalty is
// linear in the error and caps at MaxPenalty once the error reaches
// PenaltyTolerance of the baseline price; an exact hit costs nothing.
func (p ScoringPolicy) PrecisionPenalty(targetPrice, endPrice, baselinePrice float64) float64 {
	if baselinePrice <= 0 || p.PenaltyTolerance <= 0 {
		return 0
	}

	relativeError := math.Abs(targetPrice-endPrice) / baselinePrice
	if relativeError >= p.PenaltyTolerance {
		return p.MaxPenalty
	}
	return relativeError / p.PenaltyTolerance * p.MaxPenalty
}

// Accuracy computes the final 0-100 accuracy for a prediction given
// the baseline and end prices: direction score reduced by the target
// precision penalty, clamped to [0, 100].
func (p ScoringPolicy) Accuracy(prediction *models.Prediction, baselinePrice, endPrice float64) float64 {
	score := p.DirectionScore(prediction.Direction, baselinePrice, endPrice)

	if prediction.TargetPrice != nil {
		score -= p.PrecisionPenalty(prediction.TargetPrice.InexactFloat64(), endPrice, baselinePrice)
	}

	return clamp(score, 0, 100)
}

// ReputationDelta maps an accuracy into a signed reputation change.
// The mapping is a monotonic step function: accuracies at or above
// GoodThreshold earn ReputationGain, at or below PoorThreshold cost
// ReputationLoss, and the mid-band is neutral.
func (p ScoringPolicy) ReputationDelta(accuracy float64) decimal.Decimal {
	switch {
	case accuracy >= p.GoodThreshold:
		return decimal.NewFromInt(p.ReputationGain)
	case accuracy <= p.PoorThreshold:
		return decimal.NewFromInt(-p.ReputationLoss)
	default:
		return decimal.Zero
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
