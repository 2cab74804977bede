package httpHandler

import (
	"context"
	"net/http"

	"marketplace-server/entities"

	"github.com/gin-gonic/gin"
)

type ProductService interface {
	CreateProduct(ctx context.Context, p *entities.Product) error
	GetProduct(ctx context.Context, id string) (*entities.Product, error)
	GetAllProducts(ctx context.Context) ([]entities.Product, error)
	GetProductsBySeller(ctx context.Context, sellerID string) ([]entities.Product, error)
	UpdateProduct(ctx context.Context, id string, changes entities.Product) (*entities.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type ProductHandler struct {
	products ProductService
}

func NewProductHandler(products ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type ProductRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	State       string `json:"state" binding:"omitempty,oneof=PENDING ACCEPTED CLOSED"`
	Type        string `json:"type" binding:"omitempty,oneof=COMPUTER PIECES"`
	SellerID    string `json:"seller_id" binding:"omitempty,max=36"`
}

func (r ProductRequest) product() entities.Product {
	return entities.Product{
		Title:       r.Title,
		Description: r.Description,
		State:       r.State,
		Type:        r.Type,
		SellerID:    r.SellerID,
	}
}

// CreateProduct handles POST /api/products. The seller defaults to the
// authenticated user.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product := req.product()
	if product.SellerID == "" {
		product.SellerID = c.GetString(ContextUserID)
	}
	if err := h.products.CreateProduct(c.Request.Context(), &product); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    product,
	})
}

// GetProduct handles GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

// GetAllProducts handles GET /api/products, optionally filtered by ?seller_id=
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	var (
		products []entities.Product
		err      error
	)
	if seller := c.Query("seller_id"); seller != "" {
		products, err = h.products.GetProductsBySeller(c.Request.Context(), seller)
	} else {
		products, err = h.products.GetAllProducts(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products, "count": len(products)})
}

// UpdateProduct handles PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), c.Param("id"), req.product())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    product,
	})
}

// DeleteProduct handles DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.products.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
