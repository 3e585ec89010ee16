package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/ovenfresh/bakery-platform/internal/api/middleware"
	"github.com/ovenfresh/bakery-platform/internal/cache"
	"github.com/ovenfresh/bakery-platform/internal/errors"
	"github.com/ovenfresh/bakery-platform/internal/models"
	repository "github.com/ovenfresh/bakery-platform/internal/repositories"
)

const (
	categoryListCacheKey = "catalog:categories"
	categoryCacheTTL     = 10 * time.Minute
)

// CatalogService owns categories and subcategories. The category list is the
// hottest read of the storefront, so it is served through the cache and
// invalidated on every write.
type CatalogService struct {
	categories    repository.CategoryRepository
	subcategories repository.SubcategoryRepository
	cache         cache.Cache
}

func NewCatalogService(categories repository.CategoryRepository, subcategories repository.SubcategoryRepository, c cache.Cache) *CatalogService {
	return &CatalogService{
		categories:    categories,
		subcategories: subcategories,
		cache:         c,
	}
}

func (s *CatalogService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.categories.CreateCategory(ctx, category); err != nil {
		return nil, errors.DatabaseError("Failed to create category").WithError(err)
	}

	s.invalidateCategoryCache(ctx)

	return category, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {

	category, err := s.categories.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Category not found").WithError(err)
	}

	return category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {

	var cached []models.Category

	if s.cache != nil {
		hit, err := s.cache.Get(ctx, categoryListCacheKey, &cached)
		if err != nil {
			middleware.LoggerFromContext(ctx).Warn("Category cache read failed", slog.Any("error", err))
		} else if hit {
			return cached, nil
		}
	}

	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list categories").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, categoryListCacheKey, categories, categoryCacheTTL); err != nil {
			middleware.LoggerFromContext(ctx).Warn("Category cache write failed", slog.Any("error", err))
		}
	}

	return categories, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, req *models.UpdateCategoryRequest) (*models.Category, error) {

	category, err := s.categories.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Category not found").WithError(err)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}

	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.categories.UpdateCategory(ctx, category); err != nil {
		return nil, errors.DatabaseError("Failed to update category").WithError(err)
	}

	s.invalidateCategoryCache(ctx)

	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {

	if err := s.categories.DeleteCategory(ctx, id); err != nil {
		return errors.NotFoundError("Category not found").WithError(err)
	}

	s.invalidateCategoryCache(ctx)

	return nil
}

func (s *CatalogService) invalidateCategoryCache(ctx context.Context) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, categoryListCacheKey); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Category cache invalidation failed", slog.Any("error", err))
	}
}

func (s *CatalogService) CreateSubcategory(ctx context.Context, req *models.CreateSubcategoryRequest) (*models.Subcategory, error) {

	if _, err := s.categories.GetCategoryByID(ctx, req.CategoryID); err != nil {
		return nil, errors.BadRequestError("Parent category does not exist").WithError(err)
	}

	sub := &models.Subcategory{
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		Price:          req.Price,
		KiloToPriceMap: req.KiloToPriceMap,
	}

	if err := s.subcategories.CreateSubcategory(ctx, sub); err != nil {
		return nil, errors.DatabaseError("Failed to create subcategory").WithError(err)
	}

	return sub, nil
}

func (s *CatalogService) GetSubcategory(ctx context.Context, id int64) (*models.Subcategory, error) {

	sub, err := s.subcategories.GetSubcategoryByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Subcategory not found").WithError(err)
	}

	return sub, nil
}

func (s *CatalogService) ListSubcategories(ctx context.Context, categoryID *int64) ([]models.Subcategory, error) {

	subs, err := s.subcategories.ListSubcategories(ctx, categoryID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list subcategories").WithError(err)
	}

	return subs, nil
}

func (s *CatalogService) UpdateSubcategory(ctx context.Context, id int64, req *models.UpdateSubcategoryRequest) (*models.Subcategory, error) {

	sub, err := s.subcategories.GetSubcategoryByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Subcategory not found").WithError(err)
	}

	if req.CategoryID != nil {
		if _, err := s.categories.GetCategoryByID(ctx, *req.CategoryID); err != nil {
			return nil, errors.BadRequestError("Parent category does not exist").WithError(err)
		}

		sub.CategoryID = *req.CategoryID
	}

	if req.Name != nil {
		sub.Name = *req.Name
	}

	if req.Description != nil {
		sub.Description = *req.Description
	}

	if req.ImageURL != nil {
		sub.ImageURL = *req.ImageURL
	}

	if req.Price != nil {
		sub.Price = req.Price
	}

	if req.KiloToPriceMap != nil {
		sub.KiloToPriceMap = req.KiloToPriceMap
	}

	if err := s.subcategories.UpdateSubcategory(ctx, sub); err != nil {
		return nil, errors.DatabaseError("Failed to update subcategory").WithError(err)
	}

	return sub, nil
}

func (s *CatalogService) DeleteSubcategory(ctx context.Context, id int64) error {

	if err := s.subcategories.DeleteSubcategory(ctx, id); err != nil {
		return errors.NotFoundError("Subcategory not found").WithError(err)
	}

	return nil
}
