package models

import (
	"time"
)

// Stock represents a tradable symbol users can predict on
type Stock struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Symbol      string    `gorm:"size:10;uniqueIndex;not null" json:"symbol"`
	CompanyName string    `gorm:"size:255;not null" json:"company_name"`
	Sector      *string   `gorm:"size:100" json:"sector,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for Stock model
func (Stock) TableName() string {
	return "stocks"
}

// StockPrice is a cached daily closing price for a stock.
// Rows are written through on successful provider lookups so repeat
// evaluations don't hit the upstream API.
type StockPrice struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StockID    uint      `gorm:"not null;uniqueIndex:idx_stock_price_date" json:"stock_id"`
	PriceDate  time.Time `gorm:"not null;uniqueIndex:idx_stock_price_date" json:"price_date"`
	ClosePrice float64   `gorm:"type:decimal(14,4);not null" json:"close_price"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for StockPrice model
func (StockPrice) TableName() string {
	return "stock_prices"
}

// CreateStockRequest represents an admin request to register a stock
type CreateStockRequest struct {
	Symbol      string  `json:"symbol" binding:"required,max=10"`
	CompanyName string  `json:"company_name" binding:"required"`
	Sector      *string `json:"sector"`
}
