package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/beautyhub/shop_api/internal/models"
)

// OrderRepository handles data access for orders and order lines. Order
// creation goes through OrderTx so that the header, every line and the stock
// decrements land in one database transaction.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// OrderTx is a single order-creation transaction: the header, every line
// and the stock decrements either all commit or all roll back. Rollback
// after Commit is a no-op, so callers can always defer it.
type OrderTx interface {
	InsertOrder(order *models.Order) (int, error)
	InsertLine(line *models.OrderLine) error
	DecrementProductStock(productID, quantity int) (bool, error)
	DecrementVariationStock(variationID, quantity int) (bool, error)
	Commit() error
	Rollback() error
}

type orderTx struct {
	tx *sqlx.Tx
}

// Begin opens an order-creation transaction.
func (r *OrderRepository) Begin(ctx context.Context) (OrderTx, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &orderTx{tx: tx}, nil
}

// InsertOrder inserts the order header row and returns the new order id.
func (t *orderTx) InsertOrder(order *models.Order) (int, error) {
	const q = `
        INSERT INTO orders (account_id, total, address, status, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id`

	var id int
	if err := t.tx.QueryRow(q, order.AccountID, order.Total, order.Address, order.Status).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// InsertLine inserts one order line row.
func (t *orderTx) InsertLine(line *models.OrderLine) error {
	const q = `
        INSERT INTO order_lines (order_id, product_id, quantity, unit_price, variation_id, variation_label)
        VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := t.tx.Exec(q, line.OrderID, line.ProductID, line.Quantity, line.UnitPrice, line.VariationID, line.VariationLabel)
	return err
}

// DecrementProductStock conditionally decrements product-level stock.
// Returns false when the remaining stock cannot cover the quantity.
func (t *orderTx) DecrementProductStock(productID, quantity int) (bool, error) {
	const q = `UPDATE products SET stock = stock - $2 WHERE id = $1 AND stock >= $2`
	res, err := t.tx.Exec(q, productID, quantity)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DecrementVariationStock conditionally decrements variation-level stock.
// Returns false when the remaining stock cannot cover the quantity.
func (t *orderTx) DecrementVariationStock(variationID, quantity int) (bool, error) {
	const q = `UPDATE product_variations SET stock = stock - $2 WHERE id = $1 AND stock >= $2`
	res, err := t.tx.Exec(q, variationID, quantity)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Commit commits the transaction.
func (t *orderTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction. Safe to call after Commit.
func (t *orderTx) Rollback() error {
	err := t.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}

// GetWithLines returns an order with its lines and the owning account's
// contact fields joined in.
func (r *OrderRepository) GetWithLines(id int) (*models.Order, error) {
	const q = `
        SELECT o.id, o.account_id, o.total, o.address, o.status, o.created_at,
               a.name AS account_name, a.email AS account_email
        FROM orders o
        JOIN accounts a ON o.account_id = a.id
        WHERE o.id = $1 LIMIT 1`

	var o models.Order
	if err := r.db.Get(&o, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}

	lines, err := r.linesFor(o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

// linesFor returns the lines of an order with product names joined in.
func (r *OrderRepository) linesFor(orderID int) ([]models.OrderLine, error) {
	const q = `
        SELECT l.order_id, l.product_id, l.quantity, l.unit_price, l.variation_id, l.variation_label,
               p.name AS product_name
        FROM order_lines l
        JOIN products p ON l.product_id = p.id
        WHERE l.order_id = $1
        ORDER BY l.product_id ASC`

	var lines []models.OrderLine
	if err := r.db.Select(&lines, q, orderID); err != nil {
		return nil, err
	}
	return lines, nil
}

// ListByAccount returns an account's order history, newest first, each order
// carrying its lines.
func (r *OrderRepository) ListByAccount(accountID int) ([]models.Order, error) {
	const q = `
        SELECT id, account_id, total, address, status, created_at
        FROM orders
        WHERE account_id = $1
        ORDER BY created_at DESC`

	var orders []models.Order
	if err := r.db.Select(&orders, q, accountID); err != nil {
		return nil, err
	}
	for i := range orders {
		lines, err := r.linesFor(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}
	return orders, nil
}

// OrderFilter holds filters for admin order queries.
type OrderFilter struct {
	AccountID *int
	Status    *string
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

// OrderListResult contains paginated order results.
type OrderListResult struct {
	Orders     []models.Order
	TotalItems int
	TotalPages int
	Page       int
	Limit      int
}

// ListAdmin returns orders for admin with filters and pagination.
func (r *OrderRepository) ListAdmin(filter *OrderFilter) (*OrderListResult, error) {
	baseQ := `FROM orders o
              JOIN accounts a ON o.account_id = a.id
              WHERE 1=1`

	args := []interface{}{}
	argIdx := 1

	if filter.AccountID != nil {
		baseQ += fmt.Sprintf(" AND o.account_id = $%d", argIdx)
		args = append(args, *filter.AccountID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseQ += fmt.Sprintf(" AND o.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseQ += fmt.Sprintf(" AND o.created_at >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseQ += fmt.Sprintf(" AND o.created_at < ($%d::date + interval '1 day')", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	// Count total
	countQ := "SELECT COUNT(*) " + baseQ
	var total int
	if err := r.db.Get(&total, countQ, args...); err != nil {
		return nil, err
	}

	// Calculate pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	offset := (filter.Page - 1) * filter.Limit
	totalPages := (total + filter.Limit - 1) / filter.Limit

	selectQ := fmt.Sprintf(`
        SELECT o.id, o.account_id, o.total, o.address, o.status, o.created_at,
               a.name AS account_name, a.email AS account_email
        %s
        ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d`, baseQ, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	var orders []models.Order
	if err := r.db.Select(&orders, selectQ, args...); err != nil {
		return nil, err
	}

	return &OrderListResult{
		Orders:     orders,
		TotalItems: total,
		TotalPages: totalPages,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// UpdateStatus sets the status of an order.
func (r *OrderRepository) UpdateStatus(id int, status models.OrderStatus) error {
	const q = `UPDATE orders SET status = $2 WHERE id = $1`
	res, err := r.db.Exec(q, id, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// OrderStats contains order statistics for the admin dashboard. Cancelled
// orders are excluded from revenue figures.
type OrderStats struct {
	TotalOrders   int     `db:"total_orders" json:"totalOrders"`
	TotalRevenue  float64 `db:"total_revenue" json:"totalRevenue"`
	AverageTicket float64 `db:"average_ticket" json:"averageTicket"`
	Processing    int     `db:"processing_orders" json:"processingOrders"`
	Cancelled     int     `db:"cancelled_orders" json:"cancelledOrders"`
}

// GetStats returns aggregate order statistics.
func (r *OrderRepository) GetStats() (*OrderStats, error) {
	const q = `SELECT
            COUNT(*) FILTER (WHERE status != 'cancelled') as total_orders,
            COALESCE(SUM(total) FILTER (WHERE status != 'cancelled'), 0) as total_revenue,
            COALESCE(AVG(total) FILTER (WHERE status != 'cancelled'), 0) as average_ticket,
            COUNT(*) FILTER (WHERE status = 'processing') as processing_orders,
            COUNT(*) FILTER (WHERE status = 'cancelled') as cancelled_orders
          FROM orders`

	var stats OrderStats
	if err := r.db.Get(&stats, q); err != nil {
		return nil, err
	}
	return &stats, nil
}
