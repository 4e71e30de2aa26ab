package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/beautyhub/shop_api/internal/models"
)

// ProductRepository handles catalog reads. This core never writes catalog
// rows except for the rating aggregates, which are owned by the review
// transaction in ReviewRepository.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetByID returns a product with its variations.
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	const q = `
        SELECT id, name, brand, price, original_price, stock, rating, review_count, has_variations, created_at
        FROM products
        WHERE id = $1 LIMIT 1`

	var p models.Product
	if err := r.db.Get(&p, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}

	variations, err := r.variationsFor(p.ID)
	if err != nil {
		return nil, err
	}
	p.Variations = variations
	return &p, nil
}

// variationsFor returns the variations of a product, if any.
func (r *ProductRepository) variationsFor(productID int) ([]models.Variation, error) {
	const q = `
        SELECT id, product_id, label, stock
        FROM product_variations
        WHERE product_id = $1
        ORDER BY id ASC`

	var list []models.Variation
	if err := r.db.Select(&list, q, productID); err != nil {
		return nil, err
	}
	return list, nil
}
