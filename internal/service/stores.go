package service

import (
	"context"

	"github.com/beautyhub/shop_api/internal/models"
	"github.com/beautyhub/shop_api/internal/repository"
)

// Store interfaces consumed by the services. The sqlx repositories satisfy
// them; tests substitute in-memory fakes. Keeping the services behind these
// seams is what lets one component set serve any relational backend.

// CatalogStore supplies read-only product lookups.
type CatalogStore interface {
	GetByID(id int) (*models.Product, error)
}

// CartMirror is the server-side model of the shopper's client-held cart,
// keyed by session cart key.
type CartMirror interface {
	Get(ctx context.Context, cartKey string) (models.Cart, error)
	Set(ctx context.Context, cartKey string, cart models.Cart) error
	Delete(ctx context.Context, cartKey string) error
}

// CartStore is the durable server-held cart record per account.
type CartStore interface {
	Get(accountID int) (models.Cart, error)
	Save(accountID int, cart models.Cart) error
	Delete(accountID int) error
}

// CouponStore provides coupon persistence.
type CouponStore interface {
	GetByCode(code string) (*models.Coupon, error)
	Create(c *models.Coupon) error
	List() ([]models.Coupon, error)
	Delete(code string) error
}

// OrderStore provides order persistence. Begin opens the atomic
// order-creation transaction.
type OrderStore interface {
	Begin(ctx context.Context) (repository.OrderTx, error)
	GetWithLines(id int) (*models.Order, error)
	ListByAccount(accountID int) ([]models.Order, error)
	ListAdmin(filter *repository.OrderFilter) (*repository.OrderListResult, error)
	UpdateStatus(id int, status models.OrderStatus) error
	GetStats() (*repository.OrderStats, error)
}

// ReviewStore provides review persistence. Begin opens the atomic
// moderation transaction.
type ReviewStore interface {
	Create(review *models.Review) error
	ListApprovedByProduct(productID int) ([]models.Review, error)
	ListModeration() ([]models.Review, error)
	Begin(ctx context.Context) (repository.ReviewTx, error)
}

// Notifier is the external order-notification channel. Sends are
// best-effort; callers never fail a checkout on a Send error.
type Notifier interface {
	Send(ctx context.Context, text string) error
}
