package services

import (
	"context"
	"fmt"
	"strings"

	"sovest/internal/models"
	"sovest/internal/repository"
)

// StockService handles stock lookup and search suggestions
type StockService struct {
	repo *repository.Repository
}

// NewStockService creates a new StockService
func NewStockService(repo *repository.Repository) *StockService {
	return &StockService{repo: repo}
}

// Search returns stocks matching the query by symbol or company name
func (s *StockService) Search(ctx context.Context, query string, limit int) ([]models.Stock, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Stock{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.repo.SearchStocks(ctx, query, limit)
}

// GetBySymbol retrieves one stock by ticker symbol
func (s *StockService) GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	stock, err := s.repo.GetStockBySymbol(ctx, strings.TrimSpace(symbol))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrStockNotFound
		}
		return nil, err
	}
	return stock, nil
}

// Create registers a new stock
func (s *StockService) Create(ctx context.Context, req *models.CreateStockRequest) (*models.Stock, error) {
	stock := &models.Stock{
		Symbol:      strings.ToUpper(strings.TrimSpace(req.Symbol)),
		CompanyName: strings.TrimSpace(req.CompanyName),
		Sector:      req.Sector,
	}

	if err := s.repo.CreateStock(ctx, stock); err != nil {
		return nil, fmt.Errorf("creating stock: %w", err)
	}
	return stock, nil
}
