package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ovenfresh/bakery-platform/internal/models"
	"github.com/ovenfresh/bakery-platform/internal/utils"
)

type SubcategoryRepository interface {
	CreateSubcategory(ctx context.Context, sub *models.Subcategory) error
	GetSubcategoryByID(ctx context.Context, id int64) (*models.Subcategory, error)
	ListSubcategories(ctx context.Context, categoryID *int64) ([]models.Subcategory, error)
	UpdateSubcategory(ctx context.Context, sub *models.Subcategory) error
	DeleteSubcategory(ctx context.Context, id int64) error
}

type subcategoryRepository struct {
	DB *sql.DB
}

func NewSubcategoryRepo(db *sql.DB) SubcategoryRepository {
	return &subcategoryRepository{DB: db}
}

// kilo_to_price_map is stored as JSONB; an empty map is stored as NULL so the
// fixed-price mode reads back cleanly.
func marshalPriceMap(m map[string]float64) (any, error) {
	if len(m) == 0 {
		return nil, nil
	}

	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal price map: %w", err)
	}

	return data, nil
}

func (r *subcategoryRepository) CreateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	priceMap, err := marshalPriceMap(sub.KiloToPriceMap)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO subcategories (category_id, name, description, image_url, price, kilo_to_price_map, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, sub.CategoryID, sub.Name, sub.Description, sub.ImageURL, sub.Price, priceMap).
		Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

func (r *subcategoryRepository) GetSubcategoryByID(ctx context.Context, id int64) (*models.Subcategory, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT s.id, s.category_id, s.name, s.description, s.image_url, s.price, s.kilo_to_price_map,
		       s.created_at, s.updated_at, c.id, c.name, c.description, c.created_at, c.updated_at
		FROM subcategories s
		JOIN categories c ON s.category_id = c.id
		WHERE s.id = $1
	`

	sub := &models.Subcategory{}
	category := &models.Category{}

	var price sql.NullFloat64
	var priceMapJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&sub.ID, &sub.CategoryID, &sub.Name, &sub.Description, &sub.ImageURL, &price, &priceMapJSON,
		&sub.CreatedAt, &sub.UpdatedAt,
		&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	if price.Valid {
		sub.Price = &price.Float64
	}

	if len(priceMapJSON) > 0 {
		if err := json.Unmarshal(priceMapJSON, &sub.KiloToPriceMap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal price map: %w", err)
		}
	}

	sub.Category = category

	return sub, nil
}

func (r *subcategoryRepository) ListSubcategories(ctx context.Context, categoryID *int64) ([]models.Subcategory, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, category_id, name, description, image_url, price, kilo_to_price_map, created_at, updated_at
		FROM subcategories
	`
	args := []any{}

	if categoryID != nil {
		query += ` WHERE category_id = $1`
		args = append(args, *categoryID)
	}

	query += ` ORDER BY name`

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}

	defer rows.Close()

	var subs []models.Subcategory

	for rows.Next() {
		var sub models.Subcategory
		var price sql.NullFloat64
		var priceMapJSON []byte

		err := rows.Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.Description, &sub.ImageURL,
			&price, &priceMapJSON, &sub.CreatedAt, &sub.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subcategory: %w", err)
		}

		if price.Valid {
			sub.Price = &price.Float64
		}

		if len(priceMapJSON) > 0 {
			if err := json.Unmarshal(priceMapJSON, &sub.KiloToPriceMap); err != nil {
				return nil, fmt.Errorf("failed to unmarshal price map: %w", err)
			}
		}

		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subs, nil
}

func (r *subcategoryRepository) UpdateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	priceMap, err := marshalPriceMap(sub.KiloToPriceMap)
	if err != nil {
		return err
	}

	query := `
		UPDATE subcategories
		SET category_id = $1, name = $2, description = $3, image_url = $4, price = $5, kilo_to_price_map = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, sub.CategoryID, sub.Name, sub.Description, sub.ImageURL, sub.Price, priceMap, sub.ID).
		Scan(&sub.UpdatedAt)
}

func (r *subcategoryRepository) DeleteSubcategory(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subcategory: %w", err)
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
