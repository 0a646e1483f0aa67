package repository

import (
	"context"
	"time"

	"sovest/internal/models"

	"github.com/google/uuid"
)

// CreatePrediction creates a new prediction
func (r *Repository) CreatePrediction(ctx context.Context, prediction *models.Prediction) error {
	return r.db.WithContext(ctx).Create(prediction).Error
}

// GetPredictionByID retrieves a prediction with its stock preloaded
func (r *Repository) GetPredictionByID(ctx context.Context, predictionID uuid.UUID) (*models.Prediction, error) {
	var prediction models.Prediction
	err := r.db.WithContext(ctx).Preload("Stock").Where("id = ?", predictionID).First(&prediction).Error
	if err != nil {
		return nil, err
	}
	return &prediction, nil
}

// UpdatePredictionFields updates the given columns of a prediction
func (r *Repository) UpdatePredictionFields(ctx context.Context, predictionID uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Prediction{}).
		Where("id = ?", predictionID).
		Updates(updates).Error
}

// GetMaturedActivePredictions retrieves active predictions whose end
// date has passed, the candidate set for one evaluation sweep.
func (r *Repository) GetMaturedActivePredictions(ctx context.Context, now time.Time) ([]*models.Prediction, error) {
	var predictions []*models.Prediction
	err := r.db.WithContext(ctx).Preload("Stock").
		Where("is_active = ? AND end_date <= ?", true, now).
		Order("end_date ASC").
		Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

// MarkEvaluated performs the conditional evaluation transition:
// is_active flips to false and accuracy is set only if the row is still
// active. Returns false when another writer already won the race, in
// which case the caller must not apply a reputation delta.
func (r *Repository) MarkEvaluated(ctx context.Context, predictionID uuid.UUID, accuracy float64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Prediction{}).
		Where("id = ? AND is_active = ?", predictionID, true).
		Updates(map[string]interface{}{
			"is_active": false,
			"accuracy":  accuracy,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetUserPredictions retrieves a user's predictions, newest first
func (r *Repository) GetUserPredictions(ctx context.Context, userID uint, limit, offset int) ([]*models.Prediction, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Prediction{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var predictions []*models.Prediction
	err = r.db.WithContext(ctx).Preload("Stock").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&predictions).Error
	if err != nil {
		return nil, 0, err
	}

	return predictions, total, nil
}

// GetRecentPredictions retrieves the newest predictions for the feed
func (r *Repository) GetRecentPredictions(ctx context.Context, limit, offset int) ([]*models.Prediction, error) {
	var predictions []*models.Prediction
	err := r.db.WithContext(ctx).Preload("Stock").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

// UserPredictionStats holds per-user prediction aggregates
type UserPredictionStats struct {
	Total       int64
	Active      int64
	Evaluated   int64
	AvgAccuracy *float64
}

// GetUserPredictionStats returns prediction aggregates for one user
func (r *Repository) GetUserPredictionStats(ctx context.Context, userID uint) (*UserPredictionStats, error) {
	var stats UserPredictionStats
	db := r.db.WithContext(ctx).Model(&models.Prediction{})

	if err := db.Where("user_id = ?", userID).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Prediction{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	stats.Evaluated = stats.Total - stats.Active

	if stats.Evaluated > 0 {
		var avg *float64
		err := r.db.WithContext(ctx).Model(&models.Prediction{}).
			Where("user_id = ? AND is_active = ? AND accuracy IS NOT NULL", userID, false).
			Select("AVG(accuracy)").
			Scan(&avg).Error
		if err != nil {
			return nil, err
		}
		stats.AvgAccuracy = avg
	}

	return &stats, nil
}
