package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/ovenfresh/bakery-platform/internal/models"
	"github.com/ovenfresh/bakery-platform/internal/utils"
)

type CartRepository interface {
	AddItem(ctx context.Context, item *models.CartItem) error
	GetItemByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	ListByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]models.CartItem, error)
	UpdateItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, id, userID uuid.UUID) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

const cartItemColumns = `
	ci.id, ci.user_id, ci.product_id, ci.subcategory_id, ci.quantity, ci.kilo, ci.pieces,
	ci.custom_text, ci.additional_description, ci.is_ordered, ci.created_at, ci.updated_at,
	p.id, p.name, p.images, p.status,
	s.id, s.name, s.price, s.kilo_to_price_map`

const cartItemJoins = `
	FROM cart_items ci
	JOIN products p ON ci.product_id = p.id
	JOIN subcategories s ON ci.subcategory_id = s.id`

func (r *cartRepository) AddItem(ctx context.Context, item *models.CartItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_items (id, user_id, product_id, subcategory_id, quantity, kilo, pieces, custom_text, additional_description, is_ordered, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		item.ID, item.UserID, item.ProductID, item.SubcategoryID, item.Quantity,
		item.Kilo, item.Pieces, item.CustomText, item.AdditionalDescription,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
}

func scanCartItem(scanner interface{ Scan(...any) error }) (*models.CartItem, error) {
	item := &models.CartItem{}
	product := &models.Product{}
	sub := &models.Subcategory{}

	var kilo sql.NullFloat64
	var pieces sql.NullInt64
	var imagesJSON []byte
	var price sql.NullFloat64
	var priceMapJSON []byte

	err := scanner.Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.SubcategoryID, &item.Quantity, &kilo, &pieces,
		&item.CustomText, &item.AdditionalDescription, &item.IsOrdered, &item.CreatedAt, &item.UpdatedAt,
		&product.ID, &product.Name, &imagesJSON, &product.Status,
		&sub.ID, &sub.Name, &price, &priceMapJSON,
	)
	if err != nil {
		return nil, err
	}

	if kilo.Valid {
		item.Kilo = &kilo.Float64
	}

	if pieces.Valid {
		p := int(pieces.Int64)
		item.Pieces = &p
	}

	if err := json.Unmarshal(imagesJSON, &product.Images); err != nil {
		return nil, fmt.Errorf("failed to unmarshal images: %w", err)
	}

	if price.Valid {
		sub.Price = &price.Float64
	}

	if len(priceMapJSON) > 0 {
		if err := json.Unmarshal(priceMapJSON, &sub.KiloToPriceMap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal price map: %w", err)
		}
	}

	item.Product = product
	item.Subcategory = sub

	return item, nil
}

func (r *cartRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT` + cartItemColumns + cartItemJoins + ` WHERE ci.id = $1`

	item, err := scanCartItem(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return item, nil
}

func (r *cartRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT` + cartItemColumns + cartItemJoins + `
		WHERE ci.user_id = $1 AND ci.is_ordered = FALSE
		ORDER BY ci.created_at`

	return r.queryItems(dbCtx, query, userID)
}

// ListByIDs returns only active lines owned by the user; ids of other users'
// lines or already-ordered lines are silently absent from the result.
func (r *cartRepository) ListByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT` + cartItemColumns + cartItemJoins + `
		WHERE ci.user_id = $1 AND ci.is_ordered = FALSE AND ci.id = ANY($2)
		ORDER BY ci.created_at`

	return r.queryItems(dbCtx, query, userID, pq.Array(ids))
}

func (r *cartRepository) queryItems(ctx context.Context, query string, args ...any) ([]models.CartItem, error) {

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	defer rows.Close()

	var items []models.CartItem

	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepository) UpdateItem(ctx context.Context, item *models.CartItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE cart_items
		SET quantity = $1, kilo = $2, pieces = $3, custom_text = $4, additional_description = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7 AND is_ordered = FALSE
	`

	result, err := r.DB.ExecContext(dbCtx, query,
		item.Quantity, item.Kilo, item.Pieces, item.CustomText, item.AdditionalDescription,
		item.ID, item.UserID)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
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

func (r *cartRepository) DeleteItem(ctx context.Context, id, userID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2 AND is_ordered = FALSE`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deleted == 0 {
		return sql.ErrNoRows
	}

	return nil
}
