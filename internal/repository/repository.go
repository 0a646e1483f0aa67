package repository

import (
	"context"

	"sovest/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx runs fn inside a database transaction. The repository passed
// to fn is bound to the transaction; any error rolls everything back.
func (r *Repository) WithTx(ctx context.Context, fn func(txRepo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// CreateUser creates a new user
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUserByID retrieves a user by ID
func (r *Repository) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// IncrementReputation applies a relative delta to a user's reputation
// score. The update is an in-database increment, never an absolute set,
// so concurrent evaluations of the same author's predictions all land.
func (r *Repository) IncrementReputation(ctx context.Context, userID uint, delta decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("reputation_score", gorm.Expr("reputation_score + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetLeaderboard returns the top users by reputation with their
// evaluated-prediction counts and average accuracy.
func (r *Repository) GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := r.db.WithContext(ctx).Table("users").
		Select("users.id AS user_id, users.username, users.reputation_score, "+
			"COUNT(p.id) AS evaluated_count, AVG(p.accuracy) AS avg_accuracy").
		Joins("LEFT JOIN predictions p ON p.user_id = users.id AND p.is_active = ? AND p.accuracy IS NOT NULL", false).
		Group("users.id, users.username, users.reputation_score").
		Order("users.reputation_score DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// PlatformStats holds aggregate counts for the admin dashboard
type PlatformStats struct {
	TotalUsers           int64 `json:"total_users"`
	TotalStocks          int64 `json:"total_stocks"`
	TotalPredictions     int64 `json:"total_predictions"`
	ActivePredictions    int64 `json:"active_predictions"`
	EvaluatedPredictions int64 `json:"evaluated_predictions"`
	TotalVotes           int64 `json:"total_votes"`
}

// GetPlatformStats returns aggregate platform counts
func (r *Repository) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	var stats PlatformStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Stock{}).Count(&stats.TotalStocks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Prediction{}).Count(&stats.TotalPredictions).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Prediction{}).Where("is_active = ?", true).Count(&stats.ActivePredictions).Error; err != nil {
		return nil, err
	}
	stats.EvaluatedPredictions = stats.TotalPredictions - stats.ActivePredictions
	if err := db.Model(&models.Vote{}).Count(&stats.TotalVotes).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
