package service

import (
	"context"

	"github.com/ovenfresh/bakery-platform/internal/errors"
	"github.com/ovenfresh/bakery-platform/internal/models"
	repository "github.com/ovenfresh/bakery-platform/internal/repositories"
	"github.com/ovenfresh/bakery-platform/internal/uploads"
)

type ProductService struct {
	repo          repository.ProductRepository
	subcategories repository.SubcategoryRepository
}

func NewProductService(repo repository.ProductRepository, subcategories repository.SubcategoryRepository) *ProductService {
	return &ProductService{repo: repo, subcategories: subcategories}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	if _, err := s.subcategories.GetSubcategoryByID(ctx, req.SubcategoryID); err != nil {
		return nil, errors.BadRequestError("Subcategory does not exist").WithError(err)
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	product := &models.Product{
		SubcategoryID: req.SubcategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Images:        []string{},
		Status:        status,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]models.Product, int, error) {

	products, total, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list products").WithError(err)
	}

	return products, total, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if req.SubcategoryID != nil {
		if _, err := s.subcategories.GetSubcategoryByID(ctx, *req.SubcategoryID); err != nil {
			return nil, errors.BadRequestError("Subcategory does not exist").WithError(err)
		}

		product.SubcategoryID = *req.SubcategoryID
	}

	if req.Name != nil {
		product.Name = *req.Name
	}

	if req.Description != nil {
		product.Description = *req.Description
	}

	if req.Status != nil {
		product.Status = *req.Status
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return errors.NotFoundError("Product not found").WithError(err)
	}

	return nil
}

// AddImage appends an already-stored image URL to the product gallery.
func (s *ProductService) AddImage(ctx context.Context, id int64, imageURL string) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if len(product.Images) >= uploads.MaxProductImages {
		return nil, errors.BadRequestError("Product already has the maximum number of images")
	}

	product.Images = append(product.Images, imageURL)

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to save product image").WithError(err)
	}

	return product, nil
}
