package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/beautyhub/shop_api/internal/models"
)

// CartRepository handles the server-held cart record per account. The whole
// cart is serialized and replaced on every persist; last writer wins.
type CartRepository struct {
	db *sqlx.DB
}

// NewCartRepository creates a new CartRepository.
func NewCartRepository(db *sqlx.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Get returns the stored cart for an account. A missing row is an empty
// cart, not an error.
func (r *CartRepository) Get(accountID int) (models.Cart, error) {
	const q = `SELECT items_json FROM carts WHERE account_id = $1 LIMIT 1`

	var raw []byte
	if err := r.db.Get(&raw, q, accountID); err != nil {
		if err == sql.ErrNoRows {
			return models.Cart{}, nil
		}
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored cart: %w", err)
	}
	return cart, nil
}

// Save overwrites the account's cart record with the full cart contents.
func (r *CartRepository) Save(accountID int, cart models.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	const q = `
        INSERT INTO carts (account_id, items_json, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (account_id)
        DO UPDATE SET items_json = EXCLUDED.items_json, updated_at = NOW()`

	_, err = r.db.Exec(q, accountID, raw)
	return err
}

// Delete removes the account's cart record.
func (r *CartRepository) Delete(accountID int) error {
	const q = `DELETE FROM carts WHERE account_id = $1`
	_, err := r.db.Exec(q, accountID)
	return err
}
