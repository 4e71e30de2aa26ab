package models

import "time"

// Account is the minimal customer identity this core needs for order
// ownership and review authorship. Credential handling lives outside this
// service; sessions only supply the account id.
type Account struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Address   *string   `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}
