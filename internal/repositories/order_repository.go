package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/ovenfresh/bakery-platform/internal/models"
	"github.com/ovenfresh/bakery-platform/internal/utils"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order, cartItemIDs []uuid.UUID) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error)
	ListOrders(ctx context.Context, filter *models.OrderFilter) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, rejectionComment string) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// CreateOrder persists the order snapshot and flags the source cart lines as
// ordered, all in one transaction so a failed insert never strands a cart.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order, cartItemIDs []uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, customer_id, status, phone_number, delivery_time, total_price, upfront_paid, payment_proof, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`

	_, err = tx.ExecContext(dbCtx, query,
		order.ID, order.CustomerID, order.Status, order.PhoneNumber, order.DeliveryTime,
		order.TotalPrice, order.UpfrontPaid, order.PaymentProof)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, product_name, subcategory_id, subcategory_name, quantity, kilo, pieces, custom_text, unit_price, line_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
	`

	for _, item := range order.Items {
		_, err := tx.ExecContext(dbCtx, itemQuery,
			item.ID, order.ID, item.ProductID, item.ProductName, item.SubcategoryID, item.SubcategoryName,
			item.Quantity, item.Kilo, item.Pieces, item.CustomText, item.UnitPrice, item.LineTotal)
		if err != nil {
			return fmt.Errorf("failed to insert an order item: %w", err)
		}
	}

	_, err = tx.ExecContext(dbCtx,
		`UPDATE cart_items SET is_ordered = TRUE, updated_at = NOW() WHERE id = ANY($1)`,
		pq.Array(cartItemIDs))
	if err != nil {
		return fmt.Errorf("failed to mark cart items ordered: %w", err)
	}

	return tx.Commit()
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{ID: id}

	query := `
		SELECT customer_id, status, phone_number, delivery_time, total_price, upfront_paid, payment_proof, rejection_comment, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var rejectionComment sql.NullString

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&order.CustomerID, &order.Status, &order.PhoneNumber, &order.DeliveryTime,
		&order.TotalPrice, &order.UpfrontPaid, &order.PaymentProof, &rejectionComment,
		&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	order.RejectionComment = rejectionComment.String

	items, err := r.getOrderItems(dbCtx, id)
	if err != nil {
		return nil, err
	}

	order.Items = items

	return order, nil
}

func (r *orderRepository) getOrderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {

	query := `
		SELECT id, product_id, product_name, subcategory_id, subcategory_name, quantity, kilo, pieces, custom_text, unit_price, line_total, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get the order items: %w", err)
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {
		var item models.OrderItem
		var kilo sql.NullFloat64
		var pieces sql.NullInt64

		err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.SubcategoryID, &item.SubcategoryName,
			&item.Quantity, &kilo, &pieces, &item.CustomText, &item.UnitPrice, &item.LineTotal, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		if kilo.Valid {
			item.Kilo = &kilo.Float64
		}

		if pieces.Valid {
			p := int(pieces.Int64)
			item.Pieces = &p
		}

		item.OrderID = orderID
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *orderRepository) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM orders WHERE customer_id = $1`

	if err := r.DB.QueryRowContext(dbCtx, countQuery, customerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT id, customer_id, status, phone_number, delivery_time, total_price, upfront_paid, payment_proof, rejection_comment, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	orders, err := r.queryOrders(dbCtx, query, customerID, size, offset)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, filter *models.OrderFilter) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	where := ``
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = ` WHERE status = $1`
	}

	var total int

	countQuery := `SELECT COUNT(*) FROM orders` + where

	if err := r.DB.QueryRowContext(dbCtx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	args = append(args, filter.PageSize, offset)

	query := `
		SELECT id, customer_id, status, phone_number, delivery_time, total_price, upfront_paid, payment_proof, rejection_comment, created_at, updated_at
		FROM orders` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	orders, err := r.queryOrders(dbCtx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		var order models.Order
		var rejectionComment sql.NullString

		err := rows.Scan(&order.ID, &order.CustomerID, &order.Status, &order.PhoneNumber, &order.DeliveryTime,
			&order.TotalPrice, &order.UpfrontPaid, &order.PaymentProof, &rejectionComment,
			&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan the orders: %w", err)
		}

		order.RejectionComment = rejectionComment.String
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.getOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}

		orders[i].Items = items
	}

	return orders, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, rejectionComment string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders SET status = $1, rejection_comment = $2, updated_at = NOW() WHERE id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, rejectionComment, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
