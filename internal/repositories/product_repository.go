package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ovenfresh/bakery-platform/internal/models"
	"github.com/ovenfresh/bakery-platform/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]models.Product, int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func marshalImages(images []string) ([]byte, error) {
	if images == nil {
		images = []string{}
	}

	data, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal images: %w", err)
	}

	return data, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	imagesJSON, err := marshalImages(product.Images)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO products (subcategory_id, name, description, images, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.SubcategoryID, product.Name, product.Description, imagesJSON, product.Status).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT p.id, p.subcategory_id, p.name, p.description, p.images, p.status, p.created_at, p.updated_at,
		       s.id, s.category_id, s.name, s.description, s.image_url, s.price, s.kilo_to_price_map
		FROM products p
		JOIN subcategories s ON p.subcategory_id = s.id
		WHERE p.id = $1
	`

	product := &models.Product{}
	sub := &models.Subcategory{}

	var imagesJSON []byte
	var price sql.NullFloat64
	var priceMapJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&product.ID, &product.SubcategoryID, &product.Name, &product.Description, &imagesJSON, &product.Status,
		&product.CreatedAt, &product.UpdatedAt,
		&sub.ID, &sub.CategoryID, &sub.Name, &sub.Description, &sub.ImageURL, &price, &priceMapJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
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

	product.Subcategory = sub

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	imagesJSON, err := marshalImages(product.Images)
	if err != nil {
		return err
	}

	query := `
		UPDATE products
		SET subcategory_id = $1, name = $2, description = $3, images = $4, status = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.SubcategoryID, product.Name, product.Description, imagesJSON, product.Status, product.ID).
		Scan(&product.UpdatedAt)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
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

func (r *productRepository) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	where := ` WHERE p.status = 'active'`
	args := []any{}

	if filter.SubcategoryID != nil {
		args = append(args, *filter.SubcategoryID)
		where += fmt.Sprintf(" AND p.subcategory_id = $%d", len(args))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND p.name ILIKE $%d", len(args))
	}

	var total int

	countQuery := `SELECT COUNT(*) FROM products p` + where

	if err := r.DB.QueryRowContext(dbCtx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	args = append(args, filter.PageSize, offset)

	query := `
		SELECT p.id, p.subcategory_id, p.name, p.description, p.images, p.status, p.created_at, p.updated_at,
		       s.id, s.category_id, s.name, s.description, s.image_url, s.price, s.kilo_to_price_map
		FROM products p
		JOIN subcategories s ON p.subcategory_id = s.id` + where +
		fmt.Sprintf(" ORDER BY p.id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var products []models.Product

	for rows.Next() {
		var product models.Product
		sub := &models.Subcategory{}

		var imagesJSON []byte
		var price sql.NullFloat64
		var priceMapJSON []byte

		err := rows.Scan(
			&product.ID, &product.SubcategoryID, &product.Name, &product.Description, &imagesJSON, &product.Status,
			&product.CreatedAt, &product.UpdatedAt,
			&sub.ID, &sub.CategoryID, &sub.Name, &sub.Description, &sub.ImageURL, &price, &priceMapJSON,
		)
		if err != nil {
			return nil, 0, err
		}

		if err := json.Unmarshal(imagesJSON, &product.Images); err != nil {
			return nil, 0, fmt.Errorf("failed to unmarshal images: %w", err)
		}

		if price.Valid {
			sub.Price = &price.Float64
		}

		if len(priceMapJSON) > 0 {
			if err := json.Unmarshal(priceMapJSON, &sub.KiloToPriceMap); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal price map: %w", err)
			}
		}

		product.Subcategory = sub
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}
