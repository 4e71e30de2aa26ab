package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beautyhub/shop_api/internal/middleware"
	"github.com/beautyhub/shop_api/internal/models"
	"github.com/beautyhub/shop_api/internal/repository"
	"github.com/beautyhub/shop_api/internal/service"
	"github.com/beautyhub/shop_api/internal/utils"
)

// OrderHandler handles checkout and the order read endpoints.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type checkoutRequest struct {
	Address      string `json:"address" binding:"required"`
	CouponCode   string `json:"couponCode"`
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
}

// Checkout turns the caller's cart into an order.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	sess := middleware.GetSession(c)
	order, err := h.orderService.CreateOrder(c.Request.Context(), sess, service.CheckoutInput{
		Address:      req.Address,
		CouponCode:   req.CouponCode,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 201, "Order created", order)
}

// GetOrder returns one of the caller's own orders.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Order id must be a number")
		return
	}

	sess := middleware.GetSession(c)
	order, err := h.orderService.GetOrder(sess, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Order retrieved", order)
}

// ListOrders returns the caller's order history.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	sess := middleware.GetSession(c)
	orders, err := h.orderService.ListOrders(sess)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Orders retrieved", gin.H{"orders": orders})
}

// ListOrdersAdmin returns orders across accounts with filters and pagination.
func (h *OrderHandler) ListOrdersAdmin(c *gin.Context) {
	filter := &repository.OrderFilter{Page: 1, Limit: 50}

	if v := c.Query("accountId"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.AccountID = &n
		}
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("startDate"); v != "" {
		filter.StartDate = &v
	}
	if v := c.Query("endDate"); v != "" {
		filter.EndDate = &v
	}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}

	result, err := h.orderService.ListAdmin(filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessWithPagination(c, 200, "Orders retrieved", gin.H{
		"orders": result.Orders,
	}, result.Page, result.Limit, result.TotalItems)
}

// GetOrderAdmin returns any order regardless of owner.
func (h *OrderHandler) GetOrderAdmin(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Order id must be a number")
		return
	}

	order, err := h.orderService.GetAdmin(id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Order retrieved", order)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order to a new lifecycle status.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Order id must be a number")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.orderService.UpdateStatus(id, models.OrderStatus(req.Status)); err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Order status updated", gin.H{"id": id, "status": req.Status})
}

// GetOrderStats returns aggregate order statistics.
func (h *OrderHandler) GetOrderStats(c *gin.Context) {
	stats, err := h.orderService.Stats()
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Stats retrieved", stats)
}

func (h *OrderHandler) handleError(c *gin.Context, err error) {
	switch err {
	case utils.ErrUnauthorized:
		utils.Error(c, 401, "UNAUTHORIZED", "Sign in required")
	case utils.ErrEmptyCart:
		utils.Error(c, 400, "EMPTY_CART", "Cart is empty")
	case utils.ErrMissingAddress:
		utils.Error(c, 400, "MISSING_ADDRESS", "Delivery address is required")
	case utils.ErrInvalidQuantity:
		utils.Error(c, 400, "INVALID_QUANTITY", "Cart contains an invalid quantity")
	case utils.ErrInvalidStatus:
		utils.Error(c, 400, "INVALID_STATUS", "Unknown order status")
	case utils.ErrCouponNotFound:
		utils.Error(c, 404, "COUPON_NOT_FOUND", "Coupon not found")
	case utils.ErrCouponInactive:
		utils.Error(c, 400, "COUPON_INACTIVE", "Coupon is not active")
	case utils.ErrCouponExpired:
		utils.Error(c, 400, "COUPON_EXPIRED", "Coupon has expired")
	case utils.ErrInsufficientStock:
		utils.Error(c, 409, "INSUFFICIENT_STOCK", "Not enough stock for one of the items")
	case utils.ErrOrderNotFound:
		utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
	case utils.ErrTransactionFailed:
		utils.Error(c, 500, "TRANSACTION_FAILED", "Order could not be created")
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", "Internal server error")
	}
}
