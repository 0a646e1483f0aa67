package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"sovest/internal/marketdata"
	"sovest/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateStock creates a new stock
func (r *Repository) CreateStock(ctx context.Context, stock *models.Stock) error {
	return r.db.WithContext(ctx).Create(stock).Error
}

// GetStockByID retrieves a stock by ID
func (r *Repository) GetStockByID(ctx context.Context, stockID uint) (*models.Stock, error) {
	var stock models.Stock
	err := r.db.WithContext(ctx).Where("id = ?", stockID).First(&stock).Error
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// GetStockBySymbol retrieves a stock by its ticker symbol
func (r *Repository) GetStockBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	var stock models.Stock
	err := r.db.WithContext(ctx).Where("symbol = ?", strings.ToUpper(symbol)).First(&stock).Error
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// SearchStocks matches stocks by symbol or company name prefix/substring
func (r *Repository) SearchStocks(ctx context.Context, query string, limit int) ([]models.Stock, error) {
	var stocks []models.Stock
	pattern := "%" + strings.ToUpper(query) + "%"
	err := r.db.WithContext(ctx).
		Where("UPPER(symbol) LIKE ? OR UPPER(company_name) LIKE ?", pattern, pattern).
		Order("symbol ASC").
		Limit(limit).
		Find(&stocks).Error
	if err != nil {
		return nil, err
	}
	return stocks, nil
}

// GetCachedClose returns the cached close nearest to date within the
// window, or marketdata.ErrPriceUnavailable when nothing is cached.
func (r *Repository) GetCachedClose(ctx context.Context, symbol string, date time.Time, windowDays int) (float64, error) {
	date = date.Truncate(24 * time.Hour)
	start := date.AddDate(0, 0, -windowDays)
	end := date.AddDate(0, 0, windowDays)

	var prices []models.StockPrice
	err := r.db.WithContext(ctx).
		Joins("JOIN stocks ON stocks.id = stock_prices.stock_id").
		Where("stocks.symbol = ? AND stock_prices.price_date BETWEEN ? AND ?",
			strings.ToUpper(symbol), start, end).
		Order("stock_prices.price_date ASC").
		Find(&prices).Error
	if err != nil {
		return 0, err
	}
	if len(prices) == 0 {
		return 0, marketdata.ErrPriceUnavailable
	}

	best := prices[0]
	bestDistance := absDuration(best.PriceDate.Sub(date))
	for _, p := range prices[1:] {
		if d := absDuration(p.PriceDate.Sub(date)); d < bestDistance {
			best = p
			bestDistance = d
		}
	}

	return best.ClosePrice, nil
}

// SaveClose writes a provider lookup through to the price cache
func (r *Repository) SaveClose(ctx context.Context, symbol string, date time.Time, price float64) error {
	stock, err := r.GetStockBySymbol(ctx, symbol)
	if err != nil {
		return err
	}

	record := models.StockPrice{
		StockID:    stock.ID,
		PriceDate:  date.Truncate(24 * time.Hour),
		ClosePrice: price,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stock_id"}, {Name: "price_date"}},
		DoNothing: true,
	}).Create(&record).Error
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

var _ marketdata.PriceStore = (*Repository)(nil)

// IsNotFound reports whether err is the store's missing-record error
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
