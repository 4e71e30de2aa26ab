package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/beautyhub/shop_api/internal/models"
	"github.com/beautyhub/shop_api/internal/service"
	"github.com/beautyhub/shop_api/internal/utils"
)

// CouponHandler handles coupon validation for shoppers and the admin CRUD.
type CouponHandler struct {
	couponService *service.CouponService
}

// NewCouponHandler constructs a CouponHandler.
func NewCouponHandler(couponService *service.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// ValidateCoupon checks a code and reports the discount it would yield for
// an optional ?subtotal= amount. The cart total is still computed at
// checkout; this endpoint only previews.
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	coupon, err := h.couponService.Validate(c.Param("code"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	data := gin.H{"coupon": coupon}
	if v := c.Query("subtotal"); v != "" {
		subtotal, err := strconv.ParseFloat(v, 64)
		if err != nil || subtotal < 0 {
			utils.Error(c, 400, "INVALID_SUBTOTAL", "Subtotal must be a non-negative number")
			return
		}
		discount := coupon.Discount(subtotal)
		total := subtotal - discount
		if total < 0 {
			total = 0
		}
		data["discount"] = discount
		data["total"] = total
	}

	utils.Success(c, 200, "Coupon is valid", data)
}

type createCouponRequest struct {
	Code      string     `json:"code" binding:"required"`
	Type      string     `json:"type" binding:"required"`
	Value     float64    `json:"value" binding:"required"`
	ExpiresAt *time.Time `json:"expiresAt"`
	Active    *bool      `json:"active"`
}

// CreateCoupon registers a new coupon.
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req createCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	coupon := &models.Coupon{
		Code:      req.Code,
		Type:      models.DiscountType(req.Type),
		Value:     req.Value,
		ExpiresAt: req.ExpiresAt,
		Active:    true,
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}

	if err := h.couponService.Create(coupon); err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 201, "Coupon created", coupon)
}

// ListCoupons returns every coupon, newest first.
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	coupons, err := h.couponService.List()
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Coupons retrieved", gin.H{"coupons": coupons})
}

// DeleteCoupon removes a coupon by code.
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	if err := h.couponService.Delete(c.Param("code")); err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Coupon deleted", nil)
}

func (h *CouponHandler) handleError(c *gin.Context, err error) {
	switch err {
	case utils.ErrCouponNotFound:
		utils.Error(c, 404, "COUPON_NOT_FOUND", "Coupon not found")
	case utils.ErrCouponInactive:
		utils.Error(c, 400, "COUPON_INACTIVE", "Coupon is not active")
	case utils.ErrCouponExpired:
		utils.Error(c, 400, "COUPON_EXPIRED", "Coupon has expired")
	case utils.ErrCouponCodeExists:
		utils.Error(c, 409, "COUPON_CODE_EXISTS", "Coupon code already exists")
	case utils.ErrInvalidCouponCode:
		utils.Error(c, 400, "INVALID_COUPON_CODE", "Coupon code must not be empty")
	case utils.ErrInvalidDiscountType:
		utils.Error(c, 400, "INVALID_DISCOUNT_TYPE", "Type must be percentage or fixed")
	case utils.ErrInvalidDiscountValue:
		utils.Error(c, 400, "INVALID_DISCOUNT_VALUE", "Value must be greater than zero")
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", "Internal server error")
	}
}
