package service

import (
	"database/sql"
	"strings"
	"time"

	"github.com/beautyhub/shop_api/internal/models"
	"github.com/beautyhub/shop_api/internal/utils"
)

// CouponService validates discount codes for checkout and backs the admin
// coupon CRUD. Validation only answers whether a coupon is usable; the
// checkout computes the actual discount from the returned coupon.
type CouponService struct {
	coupons CouponStore
	now     func() time.Time
}

// NewCouponService constructs a CouponService using the wall clock.
func NewCouponService(coupons CouponStore) *CouponService {
	return &CouponService{coupons: coupons, now: time.Now}
}

// Validate looks up a code case-insensitively and checks it is active and
// not expired. A nil expiry never expires.
func (s *CouponService) Validate(code string) (*models.Coupon, error) {
	coupon, err := s.coupons.GetByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrCouponNotFound
		}
		return nil, err
	}
	if !coupon.Active {
		return nil, utils.ErrCouponInactive
	}
	if coupon.ExpiresAt != nil && !coupon.ExpiresAt.After(s.now()) {
		return nil, utils.ErrCouponExpired
	}
	return coupon, nil
}

// Create registers a new coupon. Codes are stored upper-cased so lookups
// match regardless of how the customer types them.
func (s *CouponService) Create(coupon *models.Coupon) error {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if coupon.Code == "" {
		return utils.ErrInvalidCouponCode
	}
	if coupon.Type != models.DiscountPercentage && coupon.Type != models.DiscountFixed {
		return utils.ErrInvalidDiscountType
	}
	if coupon.Value <= 0 {
		return utils.ErrInvalidDiscountValue
	}
	return s.coupons.Create(coupon)
}

// List returns every coupon, newest first.
func (s *CouponService) List() ([]models.Coupon, error) {
	return s.coupons.List()
}

// Delete removes a coupon by code.
func (s *CouponService) Delete(code string) error {
	if err := s.coupons.Delete(strings.ToUpper(strings.TrimSpace(code))); err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrCouponNotFound
		}
		return err
	}
	return nil
}
