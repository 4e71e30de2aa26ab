package service

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/beautyhub/shop_api/internal/models"
	"github.com/beautyhub/shop_api/internal/utils"
)

// CartService reconciles the client-held cart mirror with the server-held
// cart record. On load the server wins when it has content; on every
// mutation the full cart is written to both sides, mirror first. Concurrent
// edits from two devices are last-writer-wins with no merge.
type CartService struct {
	mirror  CartMirror
	carts   CartStore
	catalog CatalogStore
}

// NewCartService constructs a CartService.
func NewCartService(mirror CartMirror, carts CartStore, catalog CatalogStore) *CartService {
	return &CartService{
		mirror:  mirror,
		carts:   carts,
		catalog: catalog,
	}
}

// Load returns the caller's reconciled cart. For guests this is the mirror
// alone. For signed-in accounts a non-empty server-held cart replaces the
// mirror in full; an empty or absent server record leaves the mirror
// untouched.
func (s *CartService) Load(ctx context.Context, sess Session) (models.Cart, error) {
	client, err := s.mirror.Get(ctx, sess.CartKey)
	if err != nil {
		log.Warn().Err(err).Str("cartKey", sess.CartKey).Msg("failed to read cart mirror")
		client = models.Cart{}
	}

	if !sess.Authenticated() {
		return client, nil
	}

	server, err := s.carts.Get(*sess.AccountID)
	if err != nil {
		return nil, err
	}
	if len(server) == 0 {
		return client, nil
	}

	// Server wins on load: bring the mirror in line with it.
	if err := s.mirror.Set(ctx, sess.CartKey, server); err != nil {
		log.Warn().Err(err).Str("cartKey", sess.CartKey).Msg("failed to refresh cart mirror")
	}
	return server, nil
}

// AddItem adds a product to the cart, snapshotting the catalog price at add
// time. An already-present product has its quantity incremented instead.
func (s *CartService) AddItem(ctx context.Context, sess Session, productID, quantity int, variationID *int) (models.Cart, error) {
	if quantity < 1 {
		return nil, utils.ErrInvalidQuantity
	}

	product, err := s.catalog.GetByID(productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}

	item := models.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Brand:     product.Brand,
		Quantity:  quantity,
		UnitPrice: product.Price,
	}
	if variationID != nil {
		label, ok := variationLabel(product, *variationID)
		if !ok {
			return nil, utils.ErrVariationNotFound
		}
		item.VariationID = variationID
		item.VariationLabel = label
	}

	cart, err := s.Load(ctx, sess)
	if err != nil {
		return nil, err
	}
	cart = cart.Add(item)

	if err := s.persist(ctx, sess, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem removes a product's line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, sess Session, productID int) (models.Cart, error) {
	cart, err := s.Load(ctx, sess)
	if err != nil {
		return nil, err
	}
	cart = cart.Remove(productID)

	if err := s.persist(ctx, sess, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets a line's quantity. A quantity <= 0 removes the line
// rather than erroring.
func (s *CartService) UpdateQuantity(ctx context.Context, sess Session, productID, quantity int) (models.Cart, error) {
	cart, err := s.Load(ctx, sess)
	if err != nil {
		return nil, err
	}
	cart = cart.SetQuantity(productID, quantity)

	if err := s.persist(ctx, sess, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties both sides of the cart. Called after a successful checkout,
// never before.
func (s *CartService) Clear(ctx context.Context, sess Session) error {
	if err := s.mirror.Delete(ctx, sess.CartKey); err != nil {
		return err
	}
	if sess.Authenticated() {
		if err := s.carts.Delete(*sess.AccountID); err != nil {
			log.Error().Err(err).Int("accountId", *sess.AccountID).Msg("failed to clear server-held cart")
		}
	}
	return nil
}

// persist writes the full cart to the mirror synchronously and then
// replaces the server-held record. A failed server persist is logged, not
// surfaced, and does not roll back the mirror.
func (s *CartService) persist(ctx context.Context, sess Session, cart models.Cart) error {
	if err := s.mirror.Set(ctx, sess.CartKey, cart); err != nil {
		return err
	}
	if sess.Authenticated() {
		if err := s.carts.Save(*sess.AccountID, cart); err != nil {
			log.Error().Err(err).Int("accountId", *sess.AccountID).Msg("failed to persist server-held cart")
		}
	}
	return nil
}

// variationLabel resolves a variation id to its label on the product.
func variationLabel(product *models.Product, variationID int) (string, bool) {
	for _, v := range product.Variations {
		if v.ID == variationID {
			return v.Label, true
		}
	}
	return "", false
}
