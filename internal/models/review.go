package models

import "time"

// Review is a customer product review. Created unapproved; a moderator flips
// Approved exactly once, which is the sole trigger for recomputing the
// product's rating and review count.
type Review struct {
	ID        int       `db:"id" json:"id"`
	AccountID int       `db:"account_id" json:"accountId"`
	ProductID int       `db:"product_id" json:"productId"`
	Stars     int       `db:"stars" json:"stars"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	Approved  bool      `db:"approved" json:"approved"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Joined fields for listing views.
	AuthorName  *string `db:"author_name" json:"authorName,omitempty"`
	ProductName *string `db:"product_name" json:"productName,omitempty"`
}
