package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beautyhub/shop_api/internal/service"
	"github.com/beautyhub/shop_api/internal/utils"
)

// ProductHandler handles catalog read endpoints.
type ProductHandler struct {
	productService *service.ProductService
	reviewService  *service.ReviewService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService, reviewService *service.ReviewService) *ProductHandler {
	return &ProductHandler{productService: productService, reviewService: reviewService}
}

// GetProduct returns a product with its variations.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Product id must be a number")
		return
	}

	product, err := h.productService.Get(id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Product retrieved", product)
}

// GetProductReviews returns a product's published reviews.
func (h *ProductHandler) GetProductReviews(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Product id must be a number")
		return
	}

	if _, err := h.productService.Get(id); err != nil {
		h.handleError(c, err)
		return
	}

	reviews, err := h.reviewService.ListApproved(id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Reviews retrieved", gin.H{"reviews": reviews})
}

func (h *ProductHandler) handleError(c *gin.Context, err error) {
	switch err {
	case utils.ErrProductNotFound:
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", "Internal server error")
	}
}
