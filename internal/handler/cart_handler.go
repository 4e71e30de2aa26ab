package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beautyhub/shop_api/internal/middleware"
	"github.com/beautyhub/shop_api/internal/models"
	"github.com/beautyhub/shop_api/internal/service"
	"github.com/beautyhub/shop_api/internal/utils"
)

// CartHandler handles the shopping cart endpoints. Guests and signed-in
// accounts share the same surface; the session middleware decides which
// cart backs the request.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart returns the caller's reconciled cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	sess := middleware.GetSession(c)

	cart, err := h.cartService.Load(c.Request.Context(), sess)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Cart retrieved", cartPayload(cart))
}

type addItemRequest struct {
	ProductID   int  `json:"productId" binding:"required"`
	Quantity    int  `json:"quantity" binding:"required"`
	VariationID *int `json:"variationId"`
}

// AddItem adds a product to the cart.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	sess := middleware.GetSession(c)
	cart, err := h.cartService.AddItem(c.Request.Context(), sess, req.ProductID, req.Quantity, req.VariationID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Item added", cartPayload(cart))
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity sets a line's quantity; zero or below removes the line.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Product id must be a number")
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	sess := middleware.GetSession(c)
	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), sess, productID, req.Quantity)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Cart updated", cartPayload(cart))
}

// RemoveItem drops a product's line from the cart.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Product id must be a number")
		return
	}

	sess := middleware.GetSession(c)
	cart, err := h.cartService.RemoveItem(c.Request.Context(), sess, productID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Item removed", cartPayload(cart))
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	sess := middleware.GetSession(c)

	if err := h.cartService.Clear(c.Request.Context(), sess); err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Cart cleared", cartPayload(nil))
}

func cartPayload(cart models.Cart) gin.H {
	if cart == nil {
		cart = models.Cart{}
	}
	return gin.H{
		"items":      cart,
		"subtotal":   cart.Subtotal(),
		"totalItems": cart.TotalItems(),
	}
}

func (h *CartHandler) handleError(c *gin.Context, err error) {
	switch err {
	case utils.ErrInvalidQuantity:
		utils.Error(c, 400, "INVALID_QUANTITY", "Quantity must be at least 1")
	case utils.ErrProductNotFound:
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
	case utils.ErrVariationNotFound:
		utils.Error(c, 404, "VARIATION_NOT_FOUND", "Variation not found for this product")
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", "Internal server error")
	}
}
