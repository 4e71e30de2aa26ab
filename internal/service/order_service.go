package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/beautyhub/shop_api/internal/models"
	"github.com/beautyhub/shop_api/internal/repository"
	"github.com/beautyhub/shop_api/internal/utils"
	"github.com/beautyhub/shop_api/pkg/whatsapp"
)

// CartAccess is the slice of the cart service checkout needs: load the
// reconciled cart before the transaction, clear it only after commit.
type CartAccess interface {
	Load(ctx context.Context, sess Session) (models.Cart, error)
	Clear(ctx context.Context, sess Session) error
}

// CouponValidator resolves a code to a usable coupon.
type CouponValidator interface {
	Validate(code string) (*models.Coupon, error)
}

// OrderService runs checkout and the order read paths. The checkout writes
// the order header, every line and the stock decrements in one database
// transaction; nothing outside that transaction can observe a partial order.
type OrderService struct {
	orders   OrderStore
	cart     CartAccess
	coupons  CouponValidator
	notifier Notifier

	notifyTimeout time.Duration
}

// NewOrderService constructs an OrderService.
func NewOrderService(orders OrderStore, cart CartAccess, coupons CouponValidator, notifier Notifier, notifyTimeout time.Duration) *OrderService {
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &OrderService{
		orders:        orders,
		cart:          cart,
		coupons:       coupons,
		notifier:      notifier,
		notifyTimeout: notifyTimeout,
	}
}

// CheckoutInput is everything the shopper supplies at checkout beyond the
// cart itself.
type CheckoutInput struct {
	Address      string
	CouponCode   string
	CustomerName string
	Phone        string
}

// CreateOrder turns the caller's cart into a persisted order. Unit prices
// come from the cart snapshot, never recomputed from the catalog. On
// success the cart is cleared and the order notification is dispatched
// without blocking or failing the checkout.
func (s *OrderService) CreateOrder(ctx context.Context, sess Session, input CheckoutInput) (*models.Order, error) {
	if !sess.Authenticated() {
		return nil, utils.ErrUnauthorized
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, utils.ErrMissingAddress
	}

	cart, err := s.cart.Load(ctx, sess)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, utils.ErrEmptyCart
	}
	for _, item := range cart {
		if item.Quantity < 1 {
			return nil, utils.ErrInvalidQuantity
		}
	}

	subtotal := cart.Subtotal()

	var coupon *models.Coupon
	var discount float64
	if strings.TrimSpace(input.CouponCode) != "" {
		coupon, err = s.coupons.Validate(input.CouponCode)
		if err != nil {
			return nil, err
		}
		discount = coupon.Discount(subtotal)
	}

	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	order := &models.Order{
		AccountID: *sess.AccountID,
		Total:     total,
		Address:   strings.TrimSpace(input.Address),
		Status:    models.OrderStatusProcessing,
	}

	if err := s.writeOrder(ctx, order, cart); err != nil {
		return nil, err
	}

	if err := s.cart.Clear(ctx, sess); err != nil {
		log.Error().Err(err).Int("orderId", order.ID).Msg("failed to clear cart after checkout")
	}

	s.notify(order, cart, coupon, input)

	return order, nil
}

// writeOrder runs the atomic part of checkout: header, lines and stock
// decrements commit together or not at all.
func (s *OrderService) writeOrder(ctx context.Context, order *models.Order, cart models.Cart) error {
	tx, err := s.orders.Begin(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to open order transaction")
		return utils.ErrTransactionFailed
	}
	defer tx.Rollback()

	id, err := tx.InsertOrder(order)
	if err != nil {
		log.Error().Err(err).Msg("failed to insert order header")
		return utils.ErrTransactionFailed
	}
	order.ID = id

	for _, item := range cart {
		line := models.OrderLine{
			OrderID:     id,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			VariationID: item.VariationID,
		}
		if item.VariationLabel != "" {
			label := item.VariationLabel
			line.VariationLabel = &label
		}
		if err := tx.InsertLine(&line); err != nil {
			log.Error().Err(err).Int("productId", item.ProductID).Msg("failed to insert order line")
			return utils.ErrTransactionFailed
		}

		var ok bool
		if item.VariationID != nil {
			ok, err = tx.DecrementVariationStock(*item.VariationID, item.Quantity)
		} else {
			ok, err = tx.DecrementProductStock(item.ProductID, item.Quantity)
		}
		if err != nil {
			log.Error().Err(err).Int("productId", item.ProductID).Msg("failed to decrement stock")
			return utils.ErrTransactionFailed
		}
		if !ok {
			return utils.ErrInsufficientStock
		}

		order.Lines = append(order.Lines, line)
	}

	if err := tx.Commit(); err != nil {
		log.Error().Err(err).Int("orderId", id).Msg("failed to commit order transaction")
		return utils.ErrTransactionFailed
	}
	return nil
}

// notify dispatches the order summary in the background with its own
// timeout. A failed send is logged and never surfaced to the shopper.
func (s *OrderService) notify(order *models.Order, cart models.Cart, coupon *models.Coupon, input CheckoutInput) {
	if s.notifier == nil {
		return
	}

	summary := whatsapp.OrderSummary{
		OrderID:      order.ID,
		CustomerName: input.CustomerName,
		Phone:        input.Phone,
		Address:      order.Address,
		Total:        order.Total,
	}
	for _, item := range cart {
		summary.Lines = append(summary.Lines, whatsapp.SummaryLine{
			Quantity:  item.Quantity,
			Name:      item.Name,
			Variation: item.VariationLabel,
			UnitPrice: item.UnitPrice,
		})
	}
	if coupon != nil {
		summary.CouponCode = coupon.Code
		summary.Discount = coupon.Discount(cart.Subtotal())
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()

		if err := s.notifier.Send(ctx, whatsapp.BuildOrderSummary(summary)); err != nil {
			log.Error().Err(err).Int("orderId", order.ID).Msg("failed to send order notification")
		}
	}()
}

// GetOrder returns one of the caller's own orders with its lines.
func (s *OrderService) GetOrder(sess Session, id int) (*models.Order, error) {
	if !sess.Authenticated() {
		return nil, utils.ErrUnauthorized
	}

	order, err := s.orders.GetWithLines(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrOrderNotFound
		}
		return nil, err
	}
	if order.AccountID != *sess.AccountID {
		return nil, utils.ErrOrderNotFound
	}
	return order, nil
}

// ListOrders returns the caller's order history, newest first.
func (s *OrderService) ListOrders(sess Session) ([]models.Order, error) {
	if !sess.Authenticated() {
		return nil, utils.ErrUnauthorized
	}
	return s.orders.ListByAccount(*sess.AccountID)
}

// ListAdmin returns orders across all accounts with filters and pagination.
func (s *OrderService) ListAdmin(filter *repository.OrderFilter) (*repository.OrderListResult, error) {
	return s.orders.ListAdmin(filter)
}

// GetAdmin returns any order with its lines, regardless of owner.
func (s *OrderService) GetAdmin(id int) (*models.Order, error) {
	order, err := s.orders.GetWithLines(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// UpdateStatus moves an order to a new status.
func (s *OrderService) UpdateStatus(id int, status models.OrderStatus) error {
	if !status.IsValid() {
		return utils.ErrInvalidStatus
	}
	if err := s.orders.UpdateStatus(id, status); err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrOrderNotFound
		}
		return err
	}
	return nil
}

// Stats returns aggregate order statistics for the admin dashboard.
func (s *OrderService) Stats() (*repository.OrderStats, error) {
	return s.orders.GetStats()
}
