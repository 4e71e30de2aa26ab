package utils

import "errors"

// Common application errors used across services. Handlers map these to
// distinct HTTP responses so clients can tell a validation failure from a
// coupon problem or a failed order transaction.
var (
	// Validation
	ErrEmptyCart       = errors.New("EMPTY_CART")
	ErrInvalidQuantity = errors.New("INVALID_QUANTITY")
	ErrMissingAddress  = errors.New("MISSING_ADDRESS")
	ErrInvalidStatus   = errors.New("INVALID_STATUS")
	ErrInvalidStars    = errors.New("INVALID_STARS")

	ErrInvalidCouponCode    = errors.New("INVALID_COUPON_CODE")
	ErrInvalidDiscountType  = errors.New("INVALID_DISCOUNT_TYPE")
	ErrInvalidDiscountValue = errors.New("INVALID_DISCOUNT_VALUE")

	// Not found
	ErrProductNotFound   = errors.New("PRODUCT_NOT_FOUND")
	ErrVariationNotFound = errors.New("VARIATION_NOT_FOUND")
	ErrCouponNotFound    = errors.New("COUPON_NOT_FOUND")
	ErrOrderNotFound     = errors.New("ORDER_NOT_FOUND")
	ErrReviewNotFound    = errors.New("REVIEW_NOT_FOUND")

	// Coupon validity
	ErrCouponInactive = errors.New("COUPON_INACTIVE")
	ErrCouponExpired  = errors.New("COUPON_EXPIRED")

	// Conflict
	ErrCouponCodeExists = errors.New("COUPON_CODE_EXISTS")

	// Order transaction
	ErrTransactionFailed = errors.New("TRANSACTION_FAILED")
	ErrInsufficientStock = errors.New("INSUFFICIENT_STOCK")

	// Session
	ErrUnauthorized = errors.New("UNAUTHORIZED")
)
