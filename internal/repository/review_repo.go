package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/beautyhub/shop_api/internal/models"
)

// ReviewRepository handles data access for reviews and owns the writeback of
// derived rating aggregates to the products table. Approval and deletion run
// through ReviewTx so the flag flip and the recompute commit together.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new, unapproved review.
func (r *ReviewRepository) Create(review *models.Review) error {
	const q = `
        INSERT INTO reviews (account_id, product_id, stars, title, body, approved, created_at)
        VALUES ($1, $2, $3, $4, $5, FALSE, NOW())
        RETURNING id`

	return r.db.QueryRow(q, review.AccountID, review.ProductID, review.Stars, review.Title, review.Body).Scan(&review.ID)
}

// ListApprovedByProduct returns a product's approved reviews with author
// names, newest first. Unapproved reviews are never visible to customers.
func (r *ReviewRepository) ListApprovedByProduct(productID int) ([]models.Review, error) {
	const q = `
        SELECT r.id, r.account_id, r.product_id, r.stars, r.title, r.body, r.approved, r.created_at,
               a.name AS author_name
        FROM reviews r
        JOIN accounts a ON r.account_id = a.id
        WHERE r.product_id = $1 AND r.approved = TRUE
        ORDER BY r.created_at DESC`

	var list []models.Review
	if err := r.db.Select(&list, q, productID); err != nil {
		return nil, err
	}
	return list, nil
}

// ListModeration returns all reviews for the moderation queue, pending
// first, then newest first.
func (r *ReviewRepository) ListModeration() ([]models.Review, error) {
	const q = `
        SELECT r.id, r.account_id, r.product_id, r.stars, r.title, r.body, r.approved, r.created_at,
               a.name AS author_name, p.name AS product_name
        FROM reviews r
        JOIN accounts a ON r.account_id = a.id
        JOIN products p ON r.product_id = p.id
        ORDER BY r.approved ASC, r.created_at DESC`

	var list []models.Review
	if err := r.db.Select(&list, q); err != nil {
		return nil, err
	}
	return list, nil
}

// ReviewTx is one moderation transaction: the review mutation and the
// product aggregate writeback commit or roll back together.
type ReviewTx interface {
	GetReview(id int) (*models.Review, error)
	MarkApproved(id int) error
	DeleteReview(id int) error
	ApprovedStats(productID int) (count int, mean float64, err error)
	UpdateProductAggregates(productID, rating, reviewCount int) error
	Commit() error
	Rollback() error
}

type reviewTx struct {
	tx *sqlx.Tx
}

// Begin opens a moderation transaction.
func (r *ReviewRepository) Begin(ctx context.Context) (ReviewTx, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &reviewTx{tx: tx}, nil
}

// GetReview returns a review by id, locked for the duration of the
// transaction.
func (t *reviewTx) GetReview(id int) (*models.Review, error) {
	const q = `
        SELECT id, account_id, product_id, stars, title, body, approved, created_at
        FROM reviews
        WHERE id = $1
        FOR UPDATE`

	var rev models.Review
	if err := t.tx.Get(&rev, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &rev, nil
}

// MarkApproved flips a review's approved flag to true.
func (t *reviewTx) MarkApproved(id int) error {
	const q = `UPDATE reviews SET approved = TRUE WHERE id = $1`
	_, err := t.tx.Exec(q, id)
	return err
}

// DeleteReview removes a review row.
func (t *reviewTx) DeleteReview(id int) error {
	const q = `DELETE FROM reviews WHERE id = $1`
	_, err := t.tx.Exec(q, id)
	return err
}

// ApprovedStats returns the count and mean stars over a product's approved
// reviews. Mean is zero when no approved reviews exist.
func (t *reviewTx) ApprovedStats(productID int) (count int, mean float64, err error) {
	const q = `
        SELECT COUNT(*) as total, COALESCE(AVG(stars), 0) as mean
        FROM reviews
        WHERE product_id = $1 AND approved = TRUE`

	row := struct {
		Total int     `db:"total"`
		Mean  float64 `db:"mean"`
	}{}
	if err := t.tx.Get(&row, q, productID); err != nil {
		return 0, 0, err
	}
	return row.Total, row.Mean, nil
}

// UpdateProductAggregates writes the derived rating and review count back to
// the product row.
func (t *reviewTx) UpdateProductAggregates(productID, rating, reviewCount int) error {
	const q = `UPDATE products SET rating = $2, review_count = $3 WHERE id = $1`
	_, err := t.tx.Exec(q, productID, rating, reviewCount)
	return err
}

// Commit commits the transaction.
func (t *reviewTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction. Safe to call after Commit.
func (t *reviewTx) Rollback() error {
	err := t.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}
