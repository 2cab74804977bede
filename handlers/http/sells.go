package httpHandler

import (
	"context"
	"net/http"

	"marketplace-server/entities"

	"github.com/gin-gonic/gin"
)

type SellService interface {
	CreateSell(ctx context.Context, s *entities.Sell) error
	GetSell(ctx context.Context, id string) (*entities.Sell, error)
	GetAllSells(ctx context.Context) ([]entities.Sell, error)
	UpdateSell(ctx context.Context, id string, changes entities.Sell) (*entities.Sell, error)
	DeleteSell(ctx context.Context, id string) error
}

type SellHandler struct {
	sells SellService
}

func NewSellHandler(sells SellService) *SellHandler {
	return &SellHandler{sells: sells}
}

type SellRequest struct {
	SellerID  string `json:"seller_id" binding:"required,max=36"`
	BuyerID   string `json:"buyer_id" binding:"required,max=36"`
	ProductID string `json:"product_id" binding:"required,max=36"`
}

type UpdateSellRequest struct {
	SellerID  string `json:"seller_id" binding:"omitempty,max=36"`
	BuyerID   string `json:"buyer_id" binding:"omitempty,max=36"`
	ProductID string `json:"product_id" binding:"omitempty,max=36"`
}

// CreateSell handles POST /api/sells
func (h *SellHandler) CreateSell(c *gin.Context) {
	var req SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sell := entities.Sell{SellerID: req.SellerID, BuyerID: req.BuyerID, ProductID: req.ProductID}
	if err := h.sells.CreateSell(c.Request.Context(), &sell); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sell created successfully",
		"data":    sell,
	})
}

// GetSell handles GET /api/sells/:id
func (h *SellHandler) GetSell(c *gin.Context) {
	sell, err := h.sells.GetSell(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sell})
}

// GetAllSells handles GET /api/sells
func (h *SellHandler) GetAllSells(c *gin.Context) {
	sells, err := h.sells.GetAllSells(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sells, "count": len(sells)})
}

// UpdateSell handles PUT /api/sells/:id
func (h *SellHandler) UpdateSell(c *gin.Context) {
	var req UpdateSellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sell, err := h.sells.UpdateSell(c.Request.Context(), c.Param("id"), entities.Sell{
		SellerID:  req.SellerID,
		BuyerID:   req.BuyerID,
		ProductID: req.ProductID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Sell updated successfully",
		"data":    sell,
	})
}

// DeleteSell handles DELETE /api/sells/:id
func (h *SellHandler) DeleteSell(c *gin.Context) {
	if err := h.sells.DeleteSell(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sell deleted successfully"})
}
