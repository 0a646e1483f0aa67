package handlers

import (
	"net/http"
	"strconv"

	"sovest/internal/models"
	"sovest/internal/services"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	stockService *services.StockService
}

func NewStockHandler(stockService *services.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// Search returns stock suggestions matching a query
// GET /api/stocks/search?q=...
func (h *StockHandler) Search(c *gin.Context) {
	query := c.Query("q")

	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	stocks, err := h.stockService.Search(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stocks": stocks})
}

// GetBySymbol retrieves one stock
// GET /api/stocks/:symbol
func (h *StockHandler) GetBySymbol(c *gin.Context) {
	stock, err := h.stockService.GetBySymbol(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stock)
}

// Create registers a new stock
// POST /api/admin/stocks
func (h *StockHandler) Create(c *gin.Context) {
	var req models.CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stock, err := h.stockService.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create stock"})
		return
	}

	c.JSON(http.StatusCreated, stock)
}
