package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/ovenfresh/bakery-platform/internal/errors"
	"github.com/ovenfresh/bakery-platform/internal/models"
	"github.com/ovenfresh/bakery-platform/internal/pricing"
	repository "github.com/ovenfresh/bakery-platform/internal/repositories"
)

type CartService struct {
	repo      repository.CartRepository
	products  repository.ProductRepository
	sanitizer *bluemonday.Policy
}

func NewCartService(repo repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{
		repo:      repo,
		products:  products,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// GetCart returns the active cart lines with unit prices resolved against the
// current catalog, plus the running subtotal.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error) {

	items, err := s.repo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	var subtotal float64

	for i := range items {
		items[i].UnitPrice = pricing.ResolveUnitPrice(&items[i], items[i].Subcategory)
		subtotal += items[i].UnitPrice * float64(items[i].Quantity)
	}

	if items == nil {
		items = []models.CartItem{}
	}

	return &models.CartResponse{Items: items, Subtotal: subtotal}, nil
}

func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.CartItem, error) {

	product, err := s.products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, errors.BadRequestError("Product does not exist").WithError(err)
	}

	if product.Status != "active" {
		return nil, errors.BadRequestError("Product is not available")
	}

	item := &models.CartItem{
		ID:                    uuid.New(),
		UserID:                userID,
		ProductID:             product.ID,
		SubcategoryID:         product.SubcategoryID,
		Quantity:              req.Quantity,
		Kilo:                  req.Kilo,
		Pieces:                req.Pieces,
		CustomText:            s.sanitizer.Sanitize(req.CustomText),
		AdditionalDescription: s.sanitizer.Sanitize(req.AdditionalDescription),
	}

	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, errors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	item.Product = product
	item.Subcategory = product.Subcategory
	item.UnitPrice = pricing.ResolveUnitPrice(item, item.Subcategory)

	return item, nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req *models.UpdateCartItemRequest) (*models.CartItem, error) {

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, errors.NotFoundError("Cart item not found").WithError(err)
	}

	if item.UserID != userID {
		return nil, errors.ForbiddenError("Cart item belongs to another user")
	}

	if item.IsOrdered {
		return nil, errors.BadRequestError("Cart item has already been ordered")
	}

	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}

	if req.Kilo != nil {
		item.Kilo = req.Kilo
	}

	if req.Pieces != nil {
		item.Pieces = req.Pieces
	}

	if req.CustomText != nil {
		item.CustomText = s.sanitizer.Sanitize(*req.CustomText)
	}

	if req.AdditionalDescription != nil {
		item.AdditionalDescription = s.sanitizer.Sanitize(*req.AdditionalDescription)
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, errors.DatabaseError("Failed to update cart item").WithError(err)
	}

	item.UnitPrice = pricing.ResolveUnitPrice(item, item.Subcategory)

	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {

	if err := s.repo.DeleteItem(ctx, itemID, userID); err != nil {
		return errors.NotFoundError("Cart item not found").WithError(err)
	}

	return nil
}
