package repository

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/beautyhub/shop_api/internal/models"
	"github.com/beautyhub/shop_api/internal/utils"
)

// CouponRepository handles data access for coupons. Codes are stored
// upper-cased; lookups normalize before querying.
type CouponRepository struct {
	db *sqlx.DB
}

// NewCouponRepository creates a new CouponRepository.
func NewCouponRepository(db *sqlx.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

// GetByCode returns a coupon by its canonical (upper-cased) code.
func (r *CouponRepository) GetByCode(code string) (*models.Coupon, error) {
	const q = `SELECT code, type, value, expires_at, active, created_at FROM coupons WHERE code = $1 LIMIT 1`

	var c models.Coupon
	if err := r.db.Get(&c, q, strings.ToUpper(code)); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a new coupon. A duplicate code surfaces as
// utils.ErrCouponCodeExists.
func (r *CouponRepository) Create(c *models.Coupon) error {
	const q = `
        INSERT INTO coupons (code, type, value, expires_at, active, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())`

	_, err := r.db.Exec(q, strings.ToUpper(c.Code), c.Type, c.Value, c.ExpiresAt, c.Active)
	if err != nil {
		// 23505 is the Postgres unique_violation code.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return utils.ErrCouponCodeExists
		}
		return err
	}
	return nil
}

// List returns all coupons, newest first.
func (r *CouponRepository) List() ([]models.Coupon, error) {
	const q = `SELECT code, type, value, expires_at, active, created_at FROM coupons ORDER BY created_at DESC`

	var list []models.Coupon
	if err := r.db.Select(&list, q); err != nil {
		return nil, err
	}
	return list, nil
}

// Delete removes a coupon by code.
func (r *CouponRepository) Delete(code string) error {
	const q = `DELETE FROM coupons WHERE code = $1`
	res, err := r.db.Exec(q, strings.ToUpper(code))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
