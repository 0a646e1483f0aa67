package services

import (
	"testing"

	"sovest/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDirectionScore(t *testing.T) {
	policy := DefaultScoringPolicy()

	tests := []struct {
		name      string
		direction models.PredictionDirection
		baseline  float64
		end       float64
		want      float64
	}{
		{"bullish and price rose", models.DirectionBullish, 100, 110, 100},
		{"bullish and price fell", models.DirectionBullish, 100, 90, 0},
		{"bullish and price flat", models.DirectionBullish, 100, 100, 50},
		{"bearish and price fell", models.DirectionBearish, 100, 90, 100},
		{"bearish and price rose", models.DirectionBearish, 100, 110, 0},
		{"bearish and price flat", models.DirectionBearish, 100, 100, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.DirectionScore(tt.direction, tt.baseline, tt.end)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrecisionPenalty(t *testing.T) {
	policy := DefaultScoringPolicy()

	// exact hit costs nothing
	assert.Equal(t, 0.0, policy.PrecisionPenalty(120, 120, 100))

	// error at or beyond the tolerance band caps at MaxPenalty
	assert.Equal(t, policy.MaxPenalty, policy.PrecisionPenalty(120, 140, 100))
	assert.Equal(t, policy.MaxPenalty, policy.PrecisionPenalty(120, 200, 100))

	// linear inside the band: 10% error on a 20% band is half the cap
	assert.InDelta(t, policy.MaxPenalty/2, policy.PrecisionPenalty(120, 130, 100), 1e-9)

	// degenerate baseline never divides by zero
	assert.Equal(t, 0.0, policy.PrecisionPenalty(120, 130, 0))
}

func TestAccuracy(t *testing.T) {
	policy := DefaultScoringPolicy()

	target := decimal.NewFromInt(120)
	prediction := &models.Prediction{
		Direction:   models.DirectionBullish,
		TargetPrice: &target,
	}

	// exact target hit with the right direction is a perfect score
	assert.Equal(t, 100.0, policy.Accuracy(prediction, 100, 120))

	// a large target miss costs accuracy even when the direction was right
	assert.Less(t, policy.Accuracy(prediction, 100, 140), 100.0)

	// no target means the direction score stands unmodified
	noTarget := &models.Prediction{Direction: models.DirectionBullish}
	assert.Equal(t, 100.0, policy.Accuracy(noTarget, 100, 110))
	assert.Equal(t, 0.0, policy.Accuracy(noTarget, 100, 90))
	assert.Equal(t, policy.FlatScore, policy.Accuracy(noTarget, 100, 100))
}

func TestAccuracyClamped(t *testing.T) {
	policy := DefaultScoringPolicy()

	target := decimal.NewFromInt(500)
	prediction := &models.Prediction{
		Direction:   models.DirectionBearish,
		TargetPrice: &target,
	}

	for _, end := range []float64{1, 50, 100, 150, 500, 1000} {
		accuracy := policy.Accuracy(prediction, 100, end)
		assert.GreaterOrEqual(t, accuracy, 0.0, "end=%v", end)
		assert.LessOrEqual(t, accuracy, 100.0, "end=%v", end)
	}
}

func TestReputationDeltaMonotonic(t *testing.T) {
	policy := DefaultScoringPolicy()

	previous := policy.ReputationDelta(0)
	for accuracy := 1.0; accuracy <= 100; accuracy++ {
		current := policy.ReputationDelta(accuracy)
		assert.True(t, current.GreaterThanOrEqual(previous),
			"delta at %v (%s) below delta at %v (%s)", accuracy, current, accuracy-1, previous)
		previous = current
	}
}

func TestReputationDeltaThresholds(t *testing.T) {
	policy := DefaultScoringPolicy()

	assert.True(t, policy.ReputationDelta(100).Equal(decimal.NewFromInt(policy.ReputationGain)))
	assert.True(t, policy.ReputationDelta(policy.GoodThreshold).Equal(decimal.NewFromInt(policy.ReputationGain)))
	assert.True(t, policy.ReputationDelta(50).IsZero())
	assert.True(t, policy.ReputationDelta(policy.PoorThreshold).Equal(decimal.NewFromInt(-policy.ReputationLoss)))
	assert.True(t, policy.ReputationDelta(0).Equal(decimal.NewFromInt(-policy.ReputationLoss)))
}
