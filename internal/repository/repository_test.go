package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"sovest/internal/marketdata"
	"sovest/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRepo(t *testing.T) (*Repository, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Stock{},
		&models.StockPrice{},
		&models.Prediction{},
		&models.Vote{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	db.Exec("DELETE FROM votes")
	db.Exec("DELETE FROM predictions")
	db.Exec("DELETE FROM stock_prices")
	db.Exec("DELETE FROM stocks")
	db.Exec("DELETE FROM users")

	return NewRepository(db), db
}

func TestMarkEvaluatedIsConditional(t *testing.T) {
	repo, db := setupTestRepo(t)
	ctx := context.Background()

	prediction := &models.Prediction{
		ID:        uuid.New(),
		UserID:    1,
		StockID:   1,
		Direction: models.DirectionBullish,
		Reasoning: "r",
		EndDate:   time.Now().AddDate(0, 0, -1),
		IsActive:  true,
	}
	if err := db.Create(prediction).Error; err != nil {
		t.Fatalf("failed to create prediction: %v", err)
	}

	won, err := repo.MarkEvaluated(ctx, prediction.ID, 75)
	if err != nil {
		t.Fatalf("MarkEvaluated failed: %v", err)
	}
	if !won {
		t.Fatal("first transition must win")
	}

	// the second writer must observe zero rows affected
	won, err = repo.MarkEvaluated(ctx, prediction.ID, 10)
	if err != nil {
		t.Fatalf("second MarkEvaluated errored: %v", err)
	}
	if won {
		t.Fatal("second transition must be a no-op")
	}

	var stored models.Prediction
	if err := db.Where("id = ?", prediction.ID).First(&stored).Error; err != nil {
		t.Fatalf("failed to reload prediction: %v", err)
	}
	if stored.Accuracy == nil || *stored.Accuracy != 75 {
		t.Errorf("accuracy overwritten by losing writer: %v", stored.Accuracy)
	}
}

func TestIncrementReputationAccumulates(t *testing.T) {
	repo, db := setupTestRepo(t)
	ctx := context.Background()

	user := &models.User{Email: "r@example.com", Username: "rita", PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	// deltas are relative increments, not absolute sets
	if err := repo.IncrementReputation(ctx, user.ID, decimal.NewFromInt(10)); err != nil {
		t.Fatalf("first increment failed: %v", err)
	}
	if err := repo.IncrementReputation(ctx, user.ID, decimal.NewFromInt(-5)); err != nil {
		t.Fatalf("second increment failed: %v", err)
	}

	var stored models.User
	if err := db.Where("id = ?", user.ID).First(&stored).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if !stored.ReputationScore.Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected reputation 5, got %s", stored.ReputationScore)
	}

	// unknown user is surfaced, not silently ignored
	if err := repo.IncrementReputation(ctx, 9999, decimal.NewFromInt(1)); err == nil {
		t.Error("expected an error for an unknown user")
	}
}

func TestPriceCacheNearestAndWriteThrough(t *testing.T) {
	repo, db := setupTestRepo(t)
	ctx := context.Background()

	stock := &models.Stock{Symbol: "AAPL", CompanyName: "Apple Inc"}
	if err := db.Create(stock).Error; err != nil {
		t.Fatalf("failed to create stock: %v", err)
	}

	friday := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	if err := repo.SaveClose(ctx, "AAPL", friday, 170.73); err != nil {
		t.Fatalf("SaveClose failed: %v", err)
	}
	if err := repo.SaveClose(ctx, "AAPL", monday, 172.75); err != nil {
		t.Fatalf("SaveClose failed: %v", err)
	}

	// saving the same day twice keeps a single row
	if err := repo.SaveClose(ctx, "AAPL", friday, 999); err != nil {
		t.Fatalf("duplicate SaveClose failed: %v", err)
	}
	var count int64
	if err := db.Model(&models.StockPrice{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count prices: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 cached prices, got %d", count)
	}

	// Saturday resolves to Friday's close
	saturday := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	price, err := repo.GetCachedClose(ctx, "AAPL", saturday, 5)
	if err != nil {
		t.Fatalf("GetCachedClose failed: %v", err)
	}
	if price != 170.73 {
		t.Errorf("expected nearest close 170.73, got %v", price)
	}

	// outside the window nothing is found
	_, err = repo.GetCachedClose(ctx, "AAPL", friday.AddDate(0, 1, 0), 5)
	if !errors.Is(err, marketdata.ErrPriceUnavailable) {
		t.Errorf("expected ErrPriceUnavailable, got %v", err)
	}
}
