package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PredictionDirection string

const (
	DirectionBullish PredictionDirection = "Bullish"
	DirectionBearish PredictionDirection = "Bearish"
)

// Prediction represents a user's directional call on a stock.
// A prediction stays active until its end date passes and the scoring
// engine evaluates it; after that it is frozen with a final accuracy.
type Prediction struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey;default:(gen_random_uuid())" json:"id"`
	UserID      uint                `gorm:"not null;index" json:"user_id"`
	StockID     uint                `gorm:"not null;index" json:"stock_id"`
	Stock       *Stock              `gorm:"foreignKey:StockID" json:"stock,omitempty"`
	Direction   PredictionDirection `gorm:"size:10;not null" json:"direction"`
	TargetPrice *decimal.Decimal    `gorm:"type:decimal(14,4)" json:"target_price,omitempty"`
	Reasoning   string              `gorm:"type:text;not null" json:"reasoning"`
	EndDate     time.Time           `gorm:"not null;index" json:"end_date"`
	IsActive    bool                `gorm:"not null;default:true;index" json:"is_active"`
	Accuracy    *float64            `gorm:"type:decimal(5,2)" json:"accuracy,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TableName specifies the table name for Prediction model
func (Prediction) TableName() string {
	return "predictions"
}

// PredictionRequest carries the user-supplied fields for creating or
// editing a prediction. Direction, end date and reasoning are validated
// by the prediction service rather than by binding tags so the caller
// gets the domain error taxonomy instead of a generic 400.
type PredictionRequest struct {
	Symbol      string   `json:"symbol" binding:"required"`
	Direction   string   `json:"direction"`
	TargetPrice *float64 `json:"target_price"`
	EndDate     string   `json:"end_date"`
	Reasoning   string   `json:"reasoning"`
}

// PredictionResponse wraps a prediction with its vote tally for display
type PredictionResponse struct {
	Prediction *Prediction `json:"prediction"`
	Upvotes    int64       `json:"upvotes"`
	Downvotes  int64       `json:"downvotes"`
}
